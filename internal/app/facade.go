package app

import (
	"context"

	"github.com/maisonforma/storefront/internal/domain/model"
	"github.com/maisonforma/storefront/internal/redisx"
	"github.com/maisonforma/storefront/internal/usecase"
)

// Notifier receives committed paid orders for best-effort side effects.
type Notifier interface {
	OrderPaid(order *model.Order)
}

// HealthChecker verifies backing store connectivity.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// StorefrontFacade aggregates the use cases behind the HTTP surface and
// owns the two-phase split between the reconciliation transaction and the
// post-commit notification dispatch.
type StorefrontFacade struct {
	ledger     *usecase.Ledger
	inventory  *usecase.Inventory
	reconciler *usecase.Reconciler
	adminAuth  *usecase.AdminAuth
	dedup      redisx.Dedup
	notifier   Notifier
	health     HealthChecker
}

// NewStorefrontFacade constructs StorefrontFacade.
func NewStorefrontFacade(
	ledger *usecase.Ledger,
	inventory *usecase.Inventory,
	reconciler *usecase.Reconciler,
	adminAuth *usecase.AdminAuth,
	dedup redisx.Dedup,
	notifier Notifier,
	health HealthChecker,
) *StorefrontFacade {
	return &StorefrontFacade{
		ledger:     ledger,
		inventory:  inventory,
		reconciler: reconciler,
		adminAuth:  adminAuth,
		dedup:      dedup,
		notifier:   notifier,
		health:     health,
	}
}

// HandlePaymentEvent reconciles one verified capture event. Notifications are
// dispatched only after the transaction committed, so a delivery failure can
// never be mistaken for a reconciliation failure.
func (f *StorefrontFacade) HandlePaymentEvent(ctx context.Context, event *model.PaymentEvent) (usecase.Result, error) {
	if f.dedup.Seen(ctx, event.ID) {
		return usecase.Result{Outcome: usecase.OutcomeDuplicate}, nil
	}

	result, err := f.reconciler.Reconcile(ctx, event)
	if err != nil {
		return usecase.Result{}, err
	}

	switch result.Outcome {
	case usecase.OutcomeApplied, usecase.OutcomeDuplicate, usecase.OutcomeStale:
		f.dedup.Mark(ctx, event.ID)
	}

	if result.Outcome == usecase.OutcomeApplied && result.Order != nil {
		f.notifier.OrderPaid(result.Order)
	}
	return result, nil
}

func (f *StorefrontFacade) CreateOrder(ctx context.Context, items []model.LineItem, currency string, email, sessionRef *string) (*model.Order, error) {
	return f.ledger.CreateOrder(ctx, items, currency, email, sessionRef)
}

func (f *StorefrontFacade) Order(ctx context.Context, orderID string) (*model.Order, error) {
	return f.ledger.Find(ctx, orderID)
}

func (f *StorefrontFacade) Orders(ctx context.Context, limit int) ([]model.Order, error) {
	return f.ledger.List(ctx, limit)
}

func (f *StorefrontFacade) AdvanceOrder(ctx context.Context, orderID string, target model.OrderStatus, trackingNumber *string) (*model.Order, error) {
	return f.ledger.AdvanceStatus(ctx, orderID, target, trackingNumber)
}

func (f *StorefrontFacade) Stock(ctx context.Context, productID string) (*model.StockLevel, error) {
	return f.inventory.Stock(ctx, productID)
}

func (f *StorefrontFacade) SetStock(ctx context.Context, productID string, quantity int) (*model.StockLevel, error) {
	return f.inventory.SetStock(ctx, productID, quantity)
}

func (f *StorefrontFacade) AdminLogin(password string) (string, error) {
	return f.adminAuth.Login(password)
}

func (f *StorefrontFacade) ParseAdminToken(token string) (string, error) {
	return f.adminAuth.ParseToken(token)
}

func (f *StorefrontFacade) Ping(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}
