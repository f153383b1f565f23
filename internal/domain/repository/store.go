package repository

import "context"

// Store gives access to the domain repositories over a single backing store.
// WithinTransaction runs fn against a Store whose repositories share one
// atomic transaction: every mutation fn performs commits together or not at
// all. Implementations must roll back when fn returns an error.
type Store interface {
	Orders() OrderRepository
	Inventory() InventoryRepository
	Events() EventRepository
	WithinTransaction(ctx context.Context, fn func(Store) error) error
}
