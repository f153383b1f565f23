package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/maisonforma/storefront/internal/domain/errors"
	"github.com/maisonforma/storefront/internal/domain/model"
	"github.com/maisonforma/storefront/internal/server/http/dto"
	"github.com/maisonforma/storefront/internal/server/http/middleware"
)

// AdminHandler manages the back office endpoints: manual order transitions
// and catalog stock management.
type AdminHandler struct {
	facade AdminFacade
	logger *slog.Logger
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(facade AdminFacade, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{facade: facade, logger: logger}
}

// Login handles POST /api/admin/login.
func (h *AdminHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	token, err := h.facade.AdminLogin(req.Password)
	if err != nil {
		if errors.Is(err, domainErrors.ErrUnauthorized) {
			c.Status(http.StatusUnauthorized)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, dto.LoginResponse{Token: token})
}

// ListOrders handles GET /api/admin/orders.
func (h *AdminHandler) ListOrders(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.Status(http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	orders, err := h.facade.Orders(c.Request.Context(), limit)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, order := range orders {
		response = append(response, toOrderResponse(order))
	}
	c.JSON(http.StatusOK, response)
}

// UpdateStatus handles PATCH /api/admin/orders/:id/status. A tracking number
// without an explicit status implies shipping.
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	var req dto.AdvanceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	if req.Status == nil && req.TrackingNumber == nil {
		c.Status(http.StatusBadRequest)
		return
	}

	target := model.OrderStatusShipped
	if req.Status != nil {
		target = model.OrderStatus(*req.Status)
	}

	order, err := h.facade.AdvanceOrder(c.Request.Context(), c.Param("id"), target, req.TrackingNumber)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	h.logger.Info("order status updated",
		slog.String("order_id", order.ID),
		slog.String("status", string(order.Status)),
		slog.String("subject", CurrentAdminSubject(c)),
	)
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// SetStock handles PUT /api/admin/products/:id/stock.
func (h *AdminHandler) SetStock(c *gin.Context) {
	var req dto.StockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	level, err := h.facade.SetStock(c.Request.Context(), c.Param("id"), req.Quantity)
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidQuantity) {
			c.Status(http.StatusUnprocessableEntity)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	h.logger.Info("stock overwritten",
		slog.String("product_id", level.ProductID),
		slog.Int("quantity", level.Quantity),
		slog.String("subject", CurrentAdminSubject(c)),
	)
	c.JSON(http.StatusOK, toStockResponse(*level))
}

// GetStock handles GET /api/admin/products/:id/stock.
func (h *AdminHandler) GetStock(c *gin.Context) {
	level, err := h.facade.Stock(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, toStockResponse(*level))
}
