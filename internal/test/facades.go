package test

import (
	"context"

	"github.com/maisonforma/storefront/internal/domain/model"
	"github.com/maisonforma/storefront/internal/usecase"
)

// StorefrontFacadeStub allows handler and router tests to customize behaviour
// per operation.
type StorefrontFacadeStub struct {
	HandlePaymentEventFn func(context.Context, *model.PaymentEvent) (usecase.Result, error)
	CreateOrderFn        func(context.Context, []model.LineItem, string, *string, *string) (*model.Order, error)
	OrderFn              func(context.Context, string) (*model.Order, error)
	OrdersFn             func(context.Context, int) ([]model.Order, error)
	AdvanceOrderFn       func(context.Context, string, model.OrderStatus, *string) (*model.Order, error)
	StockFn              func(context.Context, string) (*model.StockLevel, error)
	SetStockFn           func(context.Context, string, int) (*model.StockLevel, error)
	AdminLoginFn         func(string) (string, error)
	ParseAdminTokenFn    func(string) (string, error)
	PingFn               func(context.Context) error
}

func (s StorefrontFacadeStub) HandlePaymentEvent(ctx context.Context, event *model.PaymentEvent) (usecase.Result, error) {
	if s.HandlePaymentEventFn == nil {
		return usecase.Result{}, nil
	}
	return s.HandlePaymentEventFn(ctx, event)
}

func (s StorefrontFacadeStub) CreateOrder(ctx context.Context, items []model.LineItem, currency string, email, sessionRef *string) (*model.Order, error) {
	if s.CreateOrderFn == nil {
		return &model.Order{}, nil
	}
	return s.CreateOrderFn(ctx, items, currency, email, sessionRef)
}

func (s StorefrontFacadeStub) Order(ctx context.Context, orderID string) (*model.Order, error) {
	if s.OrderFn == nil {
		return &model.Order{ID: orderID}, nil
	}
	return s.OrderFn(ctx, orderID)
}

func (s StorefrontFacadeStub) Orders(ctx context.Context, limit int) ([]model.Order, error) {
	if s.OrdersFn == nil {
		return nil, nil
	}
	return s.OrdersFn(ctx, limit)
}

func (s StorefrontFacadeStub) AdvanceOrder(ctx context.Context, orderID string, target model.OrderStatus, trackingNumber *string) (*model.Order, error) {
	if s.AdvanceOrderFn == nil {
		return &model.Order{ID: orderID, Status: target}, nil
	}
	return s.AdvanceOrderFn(ctx, orderID, target, trackingNumber)
}

func (s StorefrontFacadeStub) Stock(ctx context.Context, productID string) (*model.StockLevel, error) {
	if s.StockFn == nil {
		return &model.StockLevel{ProductID: productID}, nil
	}
	return s.StockFn(ctx, productID)
}

func (s StorefrontFacadeStub) SetStock(ctx context.Context, productID string, quantity int) (*model.StockLevel, error) {
	if s.SetStockFn == nil {
		return &model.StockLevel{ProductID: productID, Quantity: quantity}, nil
	}
	return s.SetStockFn(ctx, productID, quantity)
}

func (s StorefrontFacadeStub) AdminLogin(password string) (string, error) {
	if s.AdminLoginFn == nil {
		return "token", nil
	}
	return s.AdminLoginFn(password)
}

func (s StorefrontFacadeStub) ParseAdminToken(token string) (string, error) {
	if s.ParseAdminTokenFn == nil {
		return usecase.AdminSubject, nil
	}
	return s.ParseAdminTokenFn(token)
}

func (s StorefrontFacadeStub) Ping(ctx context.Context) error {
	if s.PingFn == nil {
		return nil
	}
	return s.PingFn(ctx)
}
