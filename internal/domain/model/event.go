package model

import "time"

// Payment event types delivered by the processor.
const (
	EventTypePaymentCaptured = "payment.captured"
	EventTypePaymentFailed   = "payment.failed"
)

// PaymentEvent is a verified, schema-checked processor notification.
// OrderID comes from the session metadata and may be empty when the processor
// delivered an event the storefront never initiated.
type PaymentEvent struct {
	ID              string
	Type            string
	SessionRef      string
	TransactionRef  string
	OrderID         string
	Amount          int64
	Currency        string
	CustomerEmail   string
	ShippingAddress *Address
}

// EventOutcome records how a processed event was resolved.
type EventOutcome string

const (
	// EventOutcomeReceived marks a claim whose resolution is still inside the
	// reconciliation transaction.
	EventOutcomeReceived EventOutcome = "received"
	// EventOutcomeApplied marks an event that transitioned an order to paid.
	EventOutcomeApplied EventOutcome = "applied"
	// EventOutcomeSkipped marks a benign no-op (order missing or already resolved).
	EventOutcomeSkipped EventOutcome = "skipped"
)

// ProcessedEvent is the durable idempotency record: exactly one row exists per
// fully-applied external event identifier.
type ProcessedEvent struct {
	EventID     string
	Outcome     EventOutcome
	ProcessedAt time.Time
}
