package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/maisonforma/storefront/internal/adapter/mailer"
	"github.com/maisonforma/storefront/internal/domain/model"
)

const sendTimeout = 10 * time.Second

// Dispatcher delivers post-payment notifications from a background worker
// pool. Enqueueing never blocks the caller and delivery failures are only
// logged: a missed email must never look like a missed order.
type Dispatcher struct {
	mailer      mailer.Client
	adminEmail  string
	adminAlerts bool
	workers     int
	logger      *slog.Logger

	jobs   chan *model.Order
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
	closed bool
}

// NewDispatcher constructs the notification worker pool.
func NewDispatcher(client mailer.Client, adminEmail string, adminAlerts bool, workers, queueSize int, logger *slog.Logger) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	return &Dispatcher{
		mailer:      client,
		adminEmail:  adminEmail,
		adminAlerts: adminAlerts,
		workers:     workers,
		logger:      logger,
		jobs:        make(chan *model.Order, queueSize),
	}
}

// Start launches background delivery workers. Workers run on an internal
// context rather than the caller's: queued notifications must still be
// deliverable during shutdown drain, after the process context is cancelled.
// sendTimeout remains the only bound on an individual delivery.
func (d *Dispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()

	runCtx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(runCtx)
	}
}

// Stop drains the queue and waits for in-flight deliveries.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.jobs)
	}
	cancel := d.cancel
	d.cancel = nil
	d.mu.Unlock()

	d.wg.Wait()
	if cancel != nil {
		cancel()
	}
}

// OrderPaid enqueues notifications for a freshly reconciled order. The order
// must come from committed state; the queue being full drops the job with a
// log line rather than blocking the reconciliation acknowledgment.
func (d *Dispatcher) OrderPaid(order *model.Order) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		d.logger.Warn("notification dropped, dispatcher stopped", slog.String("order_id", order.ID))
		return
	}
	select {
	case d.jobs <- order:
	default:
		d.logger.Warn("notification dropped, queue full", slog.String("order_id", order.ID))
	}
}

func (d *Dispatcher) worker(ctx context.Context) {
	defer d.wg.Done()
	for order := range d.jobs {
		d.deliver(ctx, order)
	}
}

func (d *Dispatcher) deliver(ctx context.Context, order *model.Order) {
	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	if order.CustomerEmail != nil && *order.CustomerEmail != "" {
		msg := customerConfirmation(order, *order.CustomerEmail)
		if err := d.mailer.Send(sendCtx, msg); err != nil {
			d.logger.Error("customer confirmation failed",
				slog.String("order_id", order.ID),
				slog.String("error", err.Error()),
			)
		}
	} else {
		d.logger.Warn("order has no customer email", slog.String("order_id", order.ID))
	}

	if !d.adminAlerts || d.adminEmail == "" {
		return
	}
	if err := d.mailer.Send(sendCtx, adminAlert(order, d.adminEmail)); err != nil {
		d.logger.Error("admin alert failed",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}
}

func customerConfirmation(order *model.Order, to string) mailer.Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Thank you for your order %s.\n\n", order.ID)
	for _, item := range order.Items {
		fmt.Fprintf(&b, "- %s x%d (%s)\n", item.ProductID, item.Quantity, formatMinor(item.UnitPrice, order.Currency))
	}
	fmt.Fprintf(&b, "\nTotal: %s\n", formatMinor(order.TotalAmount, order.Currency))
	return mailer.Message{
		To:      to,
		Subject: "Your order is confirmed",
		Body:    b.String(),
	}
}

func adminAlert(order *model.Order, to string) mailer.Message {
	return mailer.Message{
		To:      to,
		Subject: fmt.Sprintf("New paid order %s", order.ID),
		Body: fmt.Sprintf("Order %s was paid: %s, %d item(s).",
			order.ID, formatMinor(order.TotalAmount, order.Currency), len(order.Items)),
	}
}

func formatMinor(amount int64, currency string) string {
	return fmt.Sprintf("%d.%02d %s", amount/100, amount%100, strings.ToUpper(currency))
}
