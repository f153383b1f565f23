package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	domainErrors "github.com/maisonforma/storefront/internal/domain/errors"
	"github.com/maisonforma/storefront/internal/domain/model"
	"github.com/maisonforma/storefront/internal/domain/repository"
)

// Ledger encapsulates order lifecycle logic outside of payment reconciliation:
// order creation at checkout, lookups, and manual status advancement.
type Ledger struct {
	store  repository.Store
	logger *slog.Logger
}

// NewLedger constructs Ledger.
func NewLedger(store repository.Store, logger *slog.Logger) *Ledger {
	return &Ledger{store: store, logger: logger}
}

// CreateOrder registers a new pending order with uuid identity. Called when
// checkout begins, before any payment session exists.
func (l *Ledger) CreateOrder(ctx context.Context, items []model.LineItem, currency string, email, sessionRef *string) (*model.Order, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("order has no items: %w", domainErrors.ErrInvalidLineItem)
	}
	if currency == "" {
		return nil, fmt.Errorf("order has no currency: %w", domainErrors.ErrInvalidLineItem)
	}

	var total int64
	for _, item := range items {
		if item.ProductID == "" {
			return nil, fmt.Errorf("line item without product: %w", domainErrors.ErrInvalidLineItem)
		}
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("line item quantity %d: %w", item.Quantity, domainErrors.ErrInvalidQuantity)
		}
		if item.UnitPrice < 0 {
			return nil, fmt.Errorf("line item price %d: %w", item.UnitPrice, domainErrors.ErrInvalidLineItem)
		}
		total += int64(item.Quantity) * item.UnitPrice
	}

	order := &model.Order{
		ID:                uuid.NewString(),
		Items:             items,
		TotalAmount:       total,
		Currency:          currency,
		CustomerEmail:     email,
		Status:            model.OrderStatusPending,
		PaymentSessionRef: sessionRef,
	}
	if err := l.store.Orders().Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Find returns the order by identifier.
func (l *Ledger) Find(ctx context.Context, orderID string) (*model.Order, error) {
	return l.store.Orders().Get(ctx, orderID)
}

// List returns most recent orders for the back office.
func (l *Ledger) List(ctx context.Context, limit int) ([]model.Order, error) {
	return l.store.Orders().List(ctx, limit)
}

// AdvanceStatus moves an order along the manual lifecycle under a row lock.
// The paid gate belongs to the reconciliation engine: a manual advance may
// only target the current status (an idempotent no-op) or its immediate
// successor, and never pending or paid.
func (l *Ledger) AdvanceStatus(ctx context.Context, orderID string, target model.OrderStatus, trackingNumber *string) (*model.Order, error) {
	if !target.Valid() {
		return nil, fmt.Errorf("unknown status %q: %w", target, domainErrors.ErrInvalidTransition)
	}
	if target == model.OrderStatusPending || target == model.OrderStatusPaid {
		return nil, fmt.Errorf("status %q is not manually reachable: %w", target, domainErrors.ErrInvalidTransition)
	}

	if trackingNumber != nil && target != model.OrderStatusShipped {
		l.logger.Debug("tracking number ignored for non-shipped target",
			slog.String("order_id", orderID),
			slog.String("target", string(target)),
		)
		trackingNumber = nil
	}

	var updated *model.Order
	err := l.store.WithinTransaction(ctx, func(s repository.Store) error {
		order, err := s.Orders().GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}

		if order.Status == target {
			updated = order
			return nil
		}
		if !order.Status.CanTransitionTo(target) {
			return fmt.Errorf("%s -> %s: %w", order.Status, target, domainErrors.ErrInvalidTransition)
		}

		updated, err = s.Orders().UpdateStatus(ctx, orderID, target, trackingNumber)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
