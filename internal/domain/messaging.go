package domain

import "context"

// OutboundMessage is one message to deliver over a channel. Delivery
// (email, SMS, WhatsApp) lives behind MessageSender; this subsystem only
// records what was requested and when it was handed off.
type OutboundMessage struct {
	Channel     ChannelType
	Recipient   string
	Title       string
	Content     string
	ClientID    string
	OfficeID    string
	ReferenceID string
}

type MessageSender interface {
	Send(ctx context.Context, msg OutboundMessage) error
}
