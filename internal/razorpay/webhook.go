package razorpay

// EventPaymentLinkPaid is the only webhook event the bot reconciles.
const EventPaymentLinkPaid = "payment_link.paid"

// WebhookEvent is a Razorpay webhook body. Only payment_link events carry
// a payload the bot reads; everything else is acknowledged untouched.
type WebhookEvent struct {
	Event   string         `json:"event"`
	Payload WebhookPayload `json:"payload"`
}

type WebhookPayload struct {
	PaymentLink PaymentLinkWrapper `json:"payment_link"`
}

type PaymentLinkWrapper struct {
	Entity PaymentLinkEntity `json:"entity"`
}

// PaymentLinkEntity carries the paid link details. Amount is in paise.
type PaymentLinkEntity struct {
	ID          string `json:"id"`
	ReferenceID string `json:"reference_id"`
	Amount      int64  `json:"amount"`
}
