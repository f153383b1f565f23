package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/maisonforma/storefront/internal/domain/errors"
	"github.com/maisonforma/storefront/internal/domain/model"
	"github.com/maisonforma/storefront/internal/pkg/signature"
	"github.com/maisonforma/storefront/internal/server/http/dto"
)

// SignatureHeader carries the processor's HMAC digest of the raw body.
const SignatureHeader = "X-Payment-Signature"

// WebhookHandler receives asynchronous payment event deliveries.
//
// Status codes are the retry contract with the processor: 200 means settled
// (do not redeliver), 400 means permanently rejected, 503 means transient
// failure (redeliver with backoff).
type WebhookHandler struct {
	verifier *signature.Verifier
	facade   PaymentFacade
	logger   *slog.Logger
}

// NewWebhookHandler constructs WebhookHandler.
func NewWebhookHandler(verifier *signature.Verifier, facade PaymentFacade, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{verifier: verifier, facade: facade, logger: logger}
}

// Handle processes POST /api/payments/events.
func (h *WebhookHandler) Handle(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	event, err := h.verifier.VerifyAndDecode(body, c.GetHeader(SignatureHeader))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidSignature):
			// Frequent rejections here are a potential attack signal.
			h.logger.Warn("rejected payment event signature", slog.String("error", err.Error()))
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrDataIntegrity):
			h.logger.Warn("rejected malformed payment event", slog.String("error", err.Error()))
			c.Status(http.StatusBadRequest)
		default:
			c.Status(http.StatusBadRequest)
		}
		return
	}

	if event.Type != model.EventTypePaymentCaptured {
		// Not a capture; acknowledge so the processor stops delivering it.
		c.JSON(http.StatusOK, dto.WebhookResponse{Result: "ignored"})
		return
	}

	result, err := h.facade.HandlePaymentEvent(c.Request.Context(), event)
	if err != nil {
		h.logger.Error("payment event reconciliation failed",
			slog.String("event_id", event.ID),
			slog.String("error", err.Error()),
		)
		c.Status(http.StatusServiceUnavailable)
		return
	}

	c.JSON(http.StatusOK, dto.WebhookResponse{Result: result.Outcome.String()})
}
