package memory

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/maisonforma/storefront/internal/domain/errors"
	"github.com/maisonforma/storefront/internal/domain/model"
	"github.com/maisonforma/storefront/internal/domain/repository"
)

// Store is an in-memory repository.Store. Transactions are serialized by a
// single mutex and rolled back by restoring a snapshot, which is enough to
// give tests and local runs the same atomicity the database provides.
type Store struct {
	mu sync.Mutex
	st *state
}

var _ repository.Store = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{st: newState()}
}

func (s *Store) Orders() repository.OrderRepository {
	return &lockedOrders{s: s}
}

func (s *Store) Inventory() repository.InventoryRepository {
	return &lockedInventory{s: s}
}

func (s *Store) Events() repository.EventRepository {
	return &lockedEvents{s: s}
}

// WithinTransaction serializes fn under the store mutex and restores the
// pre-transaction snapshot when fn fails.
func (s *Store) WithinTransaction(ctx context.Context, fn func(repository.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	if err := fn(&txStore{st: s.st}); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

// txStore exposes repositories that mutate state directly; the enclosing
// WithinTransaction already holds the lock.
type txStore struct {
	st *state
}

func (t *txStore) Orders() repository.OrderRepository        { return &stateOrders{st: t.st} }
func (t *txStore) Inventory() repository.InventoryRepository { return &stateInventory{st: t.st} }
func (t *txStore) Events() repository.EventRepository        { return &stateEvents{st: t.st} }

func (t *txStore) WithinTransaction(ctx context.Context, fn func(repository.Store) error) error {
	return fn(t)
}

// --- shared state ---

type state struct {
	orders map[string]*model.Order
	stock  map[string]*model.StockLevel
	events map[string]*model.ProcessedEvent
}

func newState() *state {
	return &state{
		orders: make(map[string]*model.Order),
		stock:  make(map[string]*model.StockLevel),
		events: make(map[string]*model.ProcessedEvent),
	}
}

func (st *state) clone() *state {
	cp := newState()
	for id, o := range st.orders {
		cp.orders[id] = copyOrder(o)
	}
	for id, l := range st.stock {
		level := *l
		cp.stock[id] = &level
	}
	for id, e := range st.events {
		record := *e
		cp.events[id] = &record
	}
	return cp
}

func copyOrder(o *model.Order) *model.Order {
	cp := *o
	cp.Items = append([]model.LineItem(nil), o.Items...)
	if o.CustomerEmail != nil {
		email := *o.CustomerEmail
		cp.CustomerEmail = &email
	}
	if o.ShippingAddress != nil {
		addr := *o.ShippingAddress
		cp.ShippingAddress = &addr
	}
	if o.PaymentSessionRef != nil {
		ref := *o.PaymentSessionRef
		cp.PaymentSessionRef = &ref
	}
	if o.PaymentTransactionRef != nil {
		ref := *o.PaymentTransactionRef
		cp.PaymentTransactionRef = &ref
	}
	if o.TrackingNumber != nil {
		tn := *o.TrackingNumber
		cp.TrackingNumber = &tn
	}
	return &cp
}

// --- order repository over raw state ---

type stateOrders struct {
	st *state
}

func (r *stateOrders) Create(ctx context.Context, order *model.Order) error {
	if _, exists := r.st.orders[order.ID]; exists {
		return domainErrors.ErrAlreadyExists
	}
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now
	r.st.orders[order.ID] = copyOrder(order)
	return nil
}

func (r *stateOrders) Get(ctx context.Context, orderID string) (*model.Order, error) {
	order, ok := r.st.orders[orderID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return copyOrder(order), nil
}

func (r *stateOrders) GetForUpdate(ctx context.Context, orderID string) (*model.Order, error) {
	return r.Get(ctx, orderID)
}

func (r *stateOrders) List(ctx context.Context, limit int) ([]model.Order, error) {
	if limit <= 0 {
		limit = 50
	}
	result := make([]model.Order, 0, len(r.st.orders))
	for _, o := range r.st.orders {
		result = append(result, *copyOrder(o))
	}
	sortOrdersByCreation(result)
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *stateOrders) MarkPaid(ctx context.Context, orderID, transactionRef string, email *string, address *model.Address) (*model.Order, error) {
	order, ok := r.st.orders[orderID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	order.Status = model.OrderStatusPaid
	ref := transactionRef
	order.PaymentTransactionRef = &ref
	if email != nil {
		e := *email
		order.CustomerEmail = &e
	}
	if address != nil {
		addr := *address
		order.ShippingAddress = &addr
	}
	order.UpdatedAt = time.Now()
	return copyOrder(order), nil
}

func (r *stateOrders) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus, trackingNumber *string) (*model.Order, error) {
	order, ok := r.st.orders[orderID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	order.Status = status
	if trackingNumber != nil {
		tn := *trackingNumber
		order.TrackingNumber = &tn
	}
	order.UpdatedAt = time.Now()
	return copyOrder(order), nil
}

func sortOrdersByCreation(orders []model.Order) {
	for i := 1; i < len(orders); i++ {
		for j := i; j > 0 && orders[j].CreatedAt.After(orders[j-1].CreatedAt); j-- {
			orders[j], orders[j-1] = orders[j-1], orders[j]
		}
	}
}

// --- inventory repository over raw state ---

type stateInventory struct {
	st *state
}

func (r *stateInventory) Get(ctx context.Context, productID string) (*model.StockLevel, error) {
	level, ok := r.st.stock[productID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	cp := *level
	return &cp, nil
}

func (r *stateInventory) Decrement(ctx context.Context, productID string, quantity int) (int, error) {
	level, ok := r.st.stock[productID]
	if !ok {
		return 0, nil
	}
	level.Quantity -= quantity
	if level.Quantity < 0 {
		level.Quantity = 0
	}
	level.UpdatedAt = time.Now()
	return level.Quantity, nil
}

func (r *stateInventory) SetQuantity(ctx context.Context, productID string, quantity int) (*model.StockLevel, error) {
	if quantity < 0 {
		return nil, domainErrors.ErrInvalidQuantity
	}
	level, ok := r.st.stock[productID]
	if !ok {
		level = &model.StockLevel{ProductID: productID}
		r.st.stock[productID] = level
	}
	level.Quantity = quantity
	level.UpdatedAt = time.Now()
	cp := *level
	return &cp, nil
}

// --- event repository over raw state ---

type stateEvents struct {
	st *state
}

func (r *stateEvents) Claim(ctx context.Context, eventID string) (bool, error) {
	if _, exists := r.st.events[eventID]; exists {
		return false, nil
	}
	r.st.events[eventID] = &model.ProcessedEvent{
		EventID:     eventID,
		Outcome:     model.EventOutcomeReceived,
		ProcessedAt: time.Now(),
	}
	return true, nil
}

func (r *stateEvents) SetOutcome(ctx context.Context, eventID string, outcome model.EventOutcome) error {
	record, ok := r.st.events[eventID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	record.Outcome = outcome
	record.ProcessedAt = time.Now()
	return nil
}

func (r *stateEvents) Get(ctx context.Context, eventID string) (*model.ProcessedEvent, error) {
	record, ok := r.st.events[eventID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	cp := *record
	return &cp, nil
}

// --- locking wrappers for use outside a transaction ---

type lockedOrders struct {
	s *Store
}

func (r *lockedOrders) Create(ctx context.Context, order *model.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&stateOrders{st: r.s.st}).Create(ctx, order)
}

func (r *lockedOrders) Get(ctx context.Context, orderID string) (*model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&stateOrders{st: r.s.st}).Get(ctx, orderID)
}

func (r *lockedOrders) GetForUpdate(ctx context.Context, orderID string) (*model.Order, error) {
	return r.Get(ctx, orderID)
}

func (r *lockedOrders) List(ctx context.Context, limit int) ([]model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&stateOrders{st: r.s.st}).List(ctx, limit)
}

func (r *lockedOrders) MarkPaid(ctx context.Context, orderID, transactionRef string, email *string, address *model.Address) (*model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&stateOrders{st: r.s.st}).MarkPaid(ctx, orderID, transactionRef, email, address)
}

func (r *lockedOrders) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus, trackingNumber *string) (*model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&stateOrders{st: r.s.st}).UpdateStatus(ctx, orderID, status, trackingNumber)
}

type lockedInventory struct {
	s *Store
}

func (r *lockedInventory) Get(ctx context.Context, productID string) (*model.StockLevel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&stateInventory{st: r.s.st}).Get(ctx, productID)
}

func (r *lockedInventory) Decrement(ctx context.Context, productID string, quantity int) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&stateInventory{st: r.s.st}).Decrement(ctx, productID, quantity)
}

func (r *lockedInventory) SetQuantity(ctx context.Context, productID string, quantity int) (*model.StockLevel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&stateInventory{st: r.s.st}).SetQuantity(ctx, productID, quantity)
}

type lockedEvents struct {
	s *Store
}

func (r *lockedEvents) Claim(ctx context.Context, eventID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&stateEvents{st: r.s.st}).Claim(ctx, eventID)
}

func (r *lockedEvents) SetOutcome(ctx context.Context, eventID string, outcome model.EventOutcome) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&stateEvents{st: r.s.st}).SetOutcome(ctx, eventID, outcome)
}

func (r *lockedEvents) Get(ctx context.Context, eventID string) (*model.ProcessedEvent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&stateEvents{st: r.s.st}).Get(ctx, eventID)
}
