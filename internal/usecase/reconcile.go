package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	domainErrors "github.com/maisonforma/storefront/internal/domain/errors"
	"github.com/maisonforma/storefront/internal/domain/model"
	"github.com/maisonforma/storefront/internal/domain/repository"
)

// Outcome classifies how a payment event was resolved.
type Outcome int

const (
	// OutcomeApplied means the order transitioned to paid and stock was decremented.
	OutcomeApplied Outcome = iota
	// OutcomeDuplicate means the event identifier was already claimed.
	OutcomeDuplicate
	// OutcomeStale means the referenced order is missing or already resolved;
	// the event is recorded and acknowledged without mutation.
	OutcomeStale
	// OutcomeOrphaned means the event carries no order reference at all.
	OutcomeOrphaned
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeDuplicate:
		return "duplicate"
	case OutcomeStale:
		return "stale"
	case OutcomeOrphaned:
		return "orphaned"
	default:
		return "unknown"
	}
}

// Result is the reconciliation outcome. Order is set only when the event was
// applied, so callers can dispatch notifications from the committed state.
type Result struct {
	Outcome Outcome
	Order   *model.Order
}

// Reconciler applies a captured payment event to the order ledger and
// inventory inside a single atomic transaction. A nil error means the event
// is settled and the processor must not redeliver it; a non-nil error means
// the failure is transient and a retry will help.
type Reconciler struct {
	store  repository.Store
	logger *slog.Logger
}

// NewReconciler constructs Reconciler.
func NewReconciler(store repository.Store, logger *slog.Logger) *Reconciler {
	return &Reconciler{store: store, logger: logger}
}

// Reconcile runs the claim, order transition, and stock decrements in one
// transaction. Duplicate deliveries and events for already-resolved orders
// commit as no-ops.
func (r *Reconciler) Reconcile(ctx context.Context, event *model.PaymentEvent) (Result, error) {
	if event.OrderID == "" {
		// Permanent data error: nothing to retry against. Acknowledge the
		// delivery and leave a trace for manual investigation.
		r.logger.Error("payment event without order metadata",
			slog.String("event_id", event.ID),
			slog.String("session_ref", event.SessionRef),
		)
		return Result{Outcome: OutcomeOrphaned}, nil
	}

	var res Result
	err := r.store.WithinTransaction(ctx, func(s repository.Store) error {
		claimed, err := s.Events().Claim(ctx, event.ID)
		if err != nil {
			return err
		}
		if !claimed {
			res = Result{Outcome: OutcomeDuplicate}
			return nil
		}

		order, err := s.Orders().GetForUpdate(ctx, event.OrderID)
		if errors.Is(err, domainErrors.ErrNotFound) {
			res = Result{Outcome: OutcomeStale}
			return s.Events().SetOutcome(ctx, event.ID, model.EventOutcomeSkipped)
		}
		if err != nil {
			return err
		}

		if order.Status != model.OrderStatusPending {
			res = Result{Outcome: OutcomeStale}
			return s.Events().SetOutcome(ctx, event.ID, model.EventOutcomeSkipped)
		}

		for _, item := range order.Items {
			if _, err := s.Inventory().Decrement(ctx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		var email *string
		if event.CustomerEmail != "" {
			email = &event.CustomerEmail
		}
		paid, err := s.Orders().MarkPaid(ctx, order.ID, event.TransactionRef, email, event.ShippingAddress)
		if err != nil {
			return err
		}

		if err := s.Events().SetOutcome(ctx, event.ID, model.EventOutcomeApplied); err != nil {
			return err
		}

		res = Result{Outcome: OutcomeApplied, Order: paid}
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("reconcile event %s: %w", event.ID, err)
	}

	r.logger.Info("payment event reconciled",
		slog.String("event_id", event.ID),
		slog.String("order_id", event.OrderID),
		slog.String("outcome", res.Outcome.String()),
	)
	return res, nil
}
