package repository

import (
	"context"

	"github.com/maisonforma/storefront/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	Get(ctx context.Context, orderID string) (*model.Order, error)
	// GetForUpdate loads the order holding a row lock for the duration of the
	// enclosing transaction. Outside a transaction it behaves like Get.
	GetForUpdate(ctx context.Context, orderID string) (*model.Order, error)
	List(ctx context.Context, limit int) ([]model.Order, error)
	// MarkPaid transitions the order to paid, attaching the captured
	// transaction reference, shipping address, and customer email. Callers are
	// expected to have verified the pending status under lock first.
	MarkPaid(ctx context.Context, orderID, transactionRef string, email *string, address *model.Address) (*model.Order, error)
	// UpdateStatus persists an already-validated status change.
	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus, trackingNumber *string) (*model.Order, error)
}
