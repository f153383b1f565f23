package usecase

import (
	"context"
	"fmt"

	domainErrors "github.com/maisonforma/storefront/internal/domain/errors"
	"github.com/maisonforma/storefront/internal/domain/model"
	"github.com/maisonforma/storefront/internal/domain/repository"
)

// Inventory exposes the catalog-facing stock operations. The relative clamped
// decrement is reserved for the reconciliation transaction and is not
// reachable from here.
type Inventory struct {
	store repository.Store
}

// NewInventory constructs Inventory.
func NewInventory(store repository.Store) *Inventory {
	return &Inventory{store: store}
}

// Stock returns the current counter for a product.
func (i *Inventory) Stock(ctx context.Context, productID string) (*model.StockLevel, error) {
	return i.store.Inventory().Get(ctx, productID)
}

// SetStock is the absolute overwrite used by catalog management.
func (i *Inventory) SetStock(ctx context.Context, productID string, quantity int) (*model.StockLevel, error) {
	if productID == "" {
		return nil, fmt.Errorf("empty product id: %w", domainErrors.ErrNotFound)
	}
	if quantity < 0 {
		return nil, fmt.Errorf("stock %d: %w", quantity, domainErrors.ErrInvalidQuantity)
	}
	return i.store.Inventory().SetQuantity(ctx, productID, quantity)
}
