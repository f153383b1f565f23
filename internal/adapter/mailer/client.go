package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	domainErrors "github.com/maisonforma/storefront/internal/domain/errors"
)

// Message is a rendered notification addressed to a single recipient.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Client exposes delivery through the mail service.
type Client interface {
	Send(ctx context.Context, msg Message) error
}

// HTTPClient implements Client via the mail service HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPClient creates HTTP mailer client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse mailer url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("mailer url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Send posts the message to the mail service. Every failure mode resolves to
// ErrDelivery so callers can treat delivery as a single opaque outcome.
func (c *HTTPClient) Send(ctx context.Context, msg Message) error {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/messages")

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode message: %w", domainErrors.ErrDelivery)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", domainErrors.ErrDelivery)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send message: %w", domainErrors.ErrDelivery)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("mailer request failed",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)),
		)
		return fmt.Errorf("mailer status %s: %w", resp.Status, domainErrors.ErrDelivery)
	}
	return nil
}
