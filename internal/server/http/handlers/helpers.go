package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/maisonforma/storefront/internal/domain/model"
	"github.com/maisonforma/storefront/internal/server/http/dto"
	"github.com/maisonforma/storefront/internal/server/http/middleware"
)

// CurrentAdminSubject extracts the authenticated admin subject from context.
func CurrentAdminSubject(c *gin.Context) string {
	val, ok := c.Get(middleware.AdminSubjectContextKey)
	if !ok {
		return ""
	}
	subject, _ := val.(string)
	return subject
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, dto.OrderItemResponse{
			ProductID:     item.ProductID,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			Customization: item.Customization,
		})
	}

	resp := dto.OrderResponse{
		ID:                    order.ID,
		Status:                string(order.Status),
		Items:                 items,
		TotalAmount:           order.TotalAmount,
		Currency:              order.Currency,
		CustomerEmail:         order.CustomerEmail,
		PaymentSessionRef:     order.PaymentSessionRef,
		PaymentTransactionRef: order.PaymentTransactionRef,
		TrackingNumber:        order.TrackingNumber,
		CreatedAt:             order.CreatedAt,
		UpdatedAt:             order.UpdatedAt,
	}
	if addr := order.ShippingAddress; addr != nil {
		resp.ShippingAddress = &dto.AddressResponse{
			Name:       addr.Name,
			Line1:      addr.Line1,
			Line2:      addr.Line2,
			City:       addr.City,
			PostalCode: addr.PostalCode,
			Country:    addr.Country,
		}
	}
	return resp
}

func toStockResponse(level model.StockLevel) dto.StockResponse {
	return dto.StockResponse{
		ProductID: level.ProductID,
		Quantity:  level.Quantity,
		UpdatedAt: level.UpdatedAt,
	}
}
