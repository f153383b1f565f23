package dto

import "time"

// CreateOrderItem describes one checkout line item.
type CreateOrderItem struct {
	ProductID     string `json:"product_id"`
	Quantity      int    `json:"quantity"`
	UnitPrice     int64  `json:"unit_price"`
	Customization string `json:"customization,omitempty"`
}

// CreateOrderRequest describes the checkout order payload.
type CreateOrderRequest struct {
	Items             []CreateOrderItem `json:"items"`
	Currency          string            `json:"currency"`
	CustomerEmail     *string           `json:"customer_email,omitempty"`
	PaymentSessionRef *string           `json:"payment_session_ref,omitempty"`
}

// AddressResponse is a shipping address representation.
type AddressResponse struct {
	Name       string `json:"name"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// OrderItemResponse is a line item representation.
type OrderItemResponse struct {
	ProductID     string `json:"product_id"`
	Quantity      int    `json:"quantity"`
	UnitPrice     int64  `json:"unit_price"`
	Customization string `json:"customization,omitempty"`
}

// OrderResponse is the order representation returned by the API.
type OrderResponse struct {
	ID                    string              `json:"id"`
	Status                string              `json:"status"`
	Items                 []OrderItemResponse `json:"items"`
	TotalAmount           int64               `json:"total_amount"`
	Currency              string              `json:"currency"`
	CustomerEmail         *string             `json:"customer_email,omitempty"`
	ShippingAddress       *AddressResponse    `json:"shipping_address,omitempty"`
	PaymentSessionRef     *string             `json:"payment_session_ref,omitempty"`
	PaymentTransactionRef *string             `json:"payment_transaction_ref,omitempty"`
	TrackingNumber        *string             `json:"tracking_number,omitempty"`
	CreatedAt             time.Time           `json:"created_at"`
	UpdatedAt             time.Time           `json:"updated_at"`
}
