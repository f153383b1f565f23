package router

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/maisonforma/storefront/internal/domain/errors"
	"github.com/maisonforma/storefront/internal/pkg/signature"
	"github.com/maisonforma/storefront/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(facade test.StorefrontFacadeStub) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return Setup(facade, signature.NewVerifier("whsec_test"), logger)
}

func TestHealthRoute(t *testing.T) {
	engine := newEngine(test.StorefrontFacadeStub{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	engine := newEngine(test.StorefrontFacadeStub{
		ParseAdminTokenFn: func(string) (string, error) {
			return "", domainErrors.ErrUnauthorized
		},
	})

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/admin/orders"},
		{http.MethodGet, "/api/admin/orders/ord-1"},
		{http.MethodPatch, "/api/admin/orders/ord-1/status"},
		{http.MethodPut, "/api/admin/products/sku-1/stock"},
		{http.MethodGet, "/api/admin/products/sku-1/stock"},
	}
	for _, route := range routes {
		req := httptest.NewRequest(route.method, route.path, nil)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401, got %d", route.method, route.path, rec.Code)
		}
	}
}

func TestAdminRouteWithToken(t *testing.T) {
	engine := newEngine(test.StorefrontFacadeStub{})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestWebhookRouteRejectsUnsignedBody(t *testing.T) {
	engine := newEngine(test.StorefrontFacadeStub{})

	req := httptest.NewRequest(http.MethodPost, "/api/payments/events", strings.NewReader(`{"id":"evt_1","type":"payment.captured"}`))
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestPublicOrderRoute(t *testing.T) {
	engine := newEngine(test.StorefrontFacadeStub{})

	req := httptest.NewRequest(http.MethodGet, "/api/orders/ord-1", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUnknownRoute(t *testing.T) {
	engine := newEngine(test.StorefrontFacadeStub{})

	req := httptest.NewRequest(http.MethodGet, "/api/unknown", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
