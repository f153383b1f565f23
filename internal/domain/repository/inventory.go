package repository

import (
	"context"

	"github.com/maisonforma/storefront/internal/domain/model"
)

// InventoryRepository describes persistence operations with stock counters.
type InventoryRepository interface {
	Get(ctx context.Context, productID string) (*model.StockLevel, error)
	// Decrement atomically reduces stock by quantity, clamping at zero, and
	// returns the resulting quantity. A missing counter counts as zero stock.
	Decrement(ctx context.Context, productID string, quantity int) (int, error)
	// SetQuantity is the catalog-management path: an absolute overwrite.
	SetQuantity(ctx context.Context, productID string, quantity int) (*model.StockLevel, error)
}
