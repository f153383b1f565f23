package dto

import "time"

// LoginRequest carries the back office operator password.
type LoginRequest struct {
	Password string `json:"password"`
}

// LoginResponse returns the issued session token.
type LoginResponse struct {
	Token string `json:"token"`
}

// AdvanceStatusRequest asks to move an order along the manual lifecycle.
// Tracking number without a status implies shipping.
type AdvanceStatusRequest struct {
	Status         *string `json:"status,omitempty"`
	TrackingNumber *string `json:"tracking_number,omitempty"`
}

// StockRequest sets an absolute stock quantity.
type StockRequest struct {
	Quantity int `json:"quantity"`
}

// StockResponse describes a product stock counter.
type StockResponse struct {
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	UpdatedAt time.Time `json:"updated_at"`
}
