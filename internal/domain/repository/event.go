package repository

import (
	"context"

	"github.com/maisonforma/storefront/internal/domain/model"
)

// EventRepository describes the processed-event idempotency records.
type EventRepository interface {
	// Claim inserts the event identifier if absent and reports whether this
	// caller won the claim. A rollback of the enclosing transaction releases
	// the claim so a legitimate retry is not blocked.
	Claim(ctx context.Context, eventID string) (bool, error)
	// SetOutcome records the resolution before the claiming transaction
	// commits. Committed records are never updated again.
	SetOutcome(ctx context.Context, eventID string, outcome model.EventOutcome) error
	Get(ctx context.Context, eventID string) (*model.ProcessedEvent, error)
}
