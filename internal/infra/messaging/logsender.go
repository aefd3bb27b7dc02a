// Package messaging holds the delivery-side stub. Real email/SMS/WhatsApp
// delivery is an external collaborator behind domain.MessageSender.
package messaging

import (
	"context"
	"log"

	"exsys/internal/domain"
)

type LogSender struct{}

func NewLogSender() *LogSender {
	return &LogSender{}
}

func (s *LogSender) Send(_ context.Context, msg domain.OutboundMessage) error {
	log.Printf("outbound %s message %q to client %s (office %s)", msg.Channel, msg.Title, msg.ClientID, msg.OfficeID)
	return nil
}
