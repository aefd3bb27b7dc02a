package domain

type Role string

const (
	RoleAdmin Role = "admin"
	RoleAgent Role = "agent"
)

func RoleValues() []string {
	return []string{string(RoleAdmin), string(RoleAgent)}
}

func ParseRole(value string) (Role, bool) {
	switch Role(value) {
	case RoleAdmin, RoleAgent:
		return Role(value), true
	}
	return "", false
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func StatusValues() []string {
	return []string{string(StatusActive), string(StatusInactive)}
}

func ParseStatus(value string) (Status, bool) {
	switch Status(value) {
	case StatusActive, StatusInactive:
		return Status(value), true
	}
	return "", false
}

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

func GenderValues() []string {
	return []string{string(GenderMale), string(GenderFemale)}
}

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyJPY Currency = "JPY"
	CurrencyCHF Currency = "CHF"
	CurrencyCAD Currency = "CAD"
	CurrencyAUD Currency = "AUD"
	CurrencyCNY Currency = "CNY"
	CurrencyMAD Currency = "MAD"
	CurrencyDZD Currency = "DZD"
	CurrencyTND Currency = "TND"
	CurrencyEGP Currency = "EGP"
	CurrencySAR Currency = "SAR"
	CurrencyAED Currency = "AED"
	CurrencyQAR Currency = "QAR"
	CurrencyKWD Currency = "KWD"
)

func CurrencyValues() []string {
	return []string{
		string(CurrencyUSD), string(CurrencyEUR), string(CurrencyGBP), string(CurrencyJPY),
		string(CurrencyCHF), string(CurrencyCAD), string(CurrencyAUD), string(CurrencyCNY),
		string(CurrencyMAD), string(CurrencyDZD), string(CurrencyTND), string(CurrencyEGP),
		string(CurrencySAR), string(CurrencyAED), string(CurrencyQAR), string(CurrencyKWD),
	}
}

func ParseCurrency(value string) (Currency, bool) {
	for _, v := range CurrencyValues() {
		if v == value {
			return Currency(value), true
		}
	}
	return "", false
}

func ValidCurrency(value string) bool {
	_, ok := ParseCurrency(value)
	return ok
}

type ChannelType string

const (
	ChannelEmail    ChannelType = "email"
	ChannelSMS      ChannelType = "sms"
	ChannelWhatsApp ChannelType = "whatsapp"
)

func ChannelTypeValues() []string {
	return []string{string(ChannelEmail), string(ChannelSMS), string(ChannelWhatsApp)}
}

func ValidChannelType(value string) bool {
	switch ChannelType(value) {
	case ChannelEmail, ChannelSMS, ChannelWhatsApp:
		return true
	}
	return false
}

type CampaignStatus string

const (
	CampaignDraft     CampaignStatus = "draft"
	CampaignActive    CampaignStatus = "active"
	CampaignCompleted CampaignStatus = "completed"
	CampaignCancelled CampaignStatus = "cancelled"
)

func CampaignStatusValues() []string {
	return []string{
		string(CampaignDraft), string(CampaignActive),
		string(CampaignCompleted), string(CampaignCancelled),
	}
}

func ValidCampaignStatus(value string) bool {
	switch CampaignStatus(value) {
	case CampaignDraft, CampaignActive, CampaignCompleted, CampaignCancelled:
		return true
	}
	return false
}

type AcquisitionSource string

const (
	AcquisitionOnline      AcquisitionSource = "online"
	AcquisitionWalkIn      AcquisitionSource = "walk_in"
	AcquisitionReferral    AcquisitionSource = "referral"
	AcquisitionPhoneCall   AcquisitionSource = "phone_call"
	AcquisitionEmail       AcquisitionSource = "email"
	AcquisitionSocialMedia AcquisitionSource = "social_media"
	AcquisitionAdvertising AcquisitionSource = "advertising"
	AcquisitionPartnership AcquisitionSource = "partnership"
	AcquisitionAgentDirect AcquisitionSource = "agent_direct"
	AcquisitionOther       AcquisitionSource = "other"
)

func AcquisitionSourceValues() []string {
	return []string{
		string(AcquisitionOnline), string(AcquisitionWalkIn), string(AcquisitionReferral),
		string(AcquisitionPhoneCall), string(AcquisitionEmail), string(AcquisitionSocialMedia),
		string(AcquisitionAdvertising), string(AcquisitionPartnership),
		string(AcquisitionAgentDirect), string(AcquisitionOther),
	}
}
