package model

import "time"

// StockLevel is the per-product stock counter. Quantity never goes below zero;
// decrements clamp at the floor instead of failing.
type StockLevel struct {
	ProductID string
	Quantity  int
	UpdatedAt time.Time
}
