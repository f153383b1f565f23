package dto

// WebhookResponse acknowledges a payment event delivery. The HTTP status code
// carries the retry contract; the body is informational.
type WebhookResponse struct {
	Result string `json:"result"`
}
