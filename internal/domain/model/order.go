package model

import "time"

// OrderStatus describes order lifecycle state.
type OrderStatus string

const (
	OrderStatusPending      OrderStatus = "pending"
	OrderStatusPaid         OrderStatus = "paid"
	OrderStatusInProduction OrderStatus = "in_production"
	OrderStatusShipped      OrderStatus = "shipped"
	OrderStatusDelivered    OrderStatus = "delivered"
	OrderStatusCancelled    OrderStatus = "cancelled"
)

// successors maps each status to the set of statuses it may move to.
// Progression is strictly monotonic; cancellation is terminal and only
// reachable before production starts.
var successors = map[OrderStatus][]OrderStatus{
	OrderStatusPending:      {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:         {OrderStatusInProduction, OrderStatusCancelled},
	OrderStatusInProduction: {OrderStatusShipped},
	OrderStatusShipped:      {OrderStatusDelivered},
	OrderStatusDelivered:    nil,
	OrderStatusCancelled:    nil,
}

// Valid reports whether the status is a known lifecycle state.
func (s OrderStatus) Valid() bool {
	_, ok := successors[s]
	return ok
}

// CanTransitionTo reports whether next is a legal successor of s.
// Re-applying the current status is not a transition; callers treat it
// as an idempotent no-op.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, candidate := range successors[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is possible.
func (s OrderStatus) Terminal() bool {
	return len(successors[s]) == 0 && s.Valid()
}

// LineItem is a purchased product position, snapshotted at checkout time.
type LineItem struct {
	ProductID     string
	Quantity      int
	UnitPrice     int64
	Customization string
}

// Address is the shipping destination confirmed by the payment processor.
type Address struct {
	Name       string
	Line1      string
	Line2      string
	City       string
	PostalCode string
	Country    string
}

// Order describes a customer order. Amounts are integer minor units.
type Order struct {
	ID                    string
	Items                 []LineItem
	TotalAmount           int64
	Currency              string
	CustomerEmail         *string
	ShippingAddress       *Address
	Status                OrderStatus
	PaymentSessionRef     *string
	PaymentTransactionRef *string
	TrackingNumber        *string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
