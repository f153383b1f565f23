package handlers

import (
	"context"

	"github.com/maisonforma/storefront/internal/domain/model"
	"github.com/maisonforma/storefront/internal/usecase"
)

// PaymentFacade applies verified payment events.
type PaymentFacade interface {
	HandlePaymentEvent(ctx context.Context, event *model.PaymentEvent) (usecase.Result, error)
}

// OrderFacade encapsulates storefront order operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, items []model.LineItem, currency string, email, sessionRef *string) (*model.Order, error)
	Order(ctx context.Context, orderID string) (*model.Order, error)
}

// AdminFacade provides back office operations.
type AdminFacade interface {
	AdminLogin(password string) (string, error)
	ParseAdminToken(token string) (string, error)
	Orders(ctx context.Context, limit int) ([]model.Order, error)
	AdvanceOrder(ctx context.Context, orderID string, target model.OrderStatus, trackingNumber *string) (*model.Order, error)
	Stock(ctx context.Context, productID string) (*model.StockLevel, error)
	SetStock(ctx context.Context, productID string, quantity int) (*model.StockLevel, error)
}

// StorefrontFacade aggregates the full set of operations used across handlers.
type StorefrontFacade interface {
	PaymentFacade
	OrderFacade
	AdminFacade
	Ping(ctx context.Context) error
}
