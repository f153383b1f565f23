package notify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/maisonforma/storefront/internal/adapter/mailer"
	"github.com/maisonforma/storefront/internal/domain/model"
	"github.com/maisonforma/storefront/internal/test"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func paidOrder(id string, email *string) *model.Order {
	return &model.Order{
		ID:            id,
		Items:         []model.LineItem{{ProductID: "sku-1", Quantity: 2, UnitPrice: 1500}},
		TotalAmount:   3000,
		Currency:      "EUR",
		CustomerEmail: email,
		Status:        model.OrderStatusPaid,
	}
}

func TestDispatcherDeliversCustomerAndAdminMail(t *testing.T) {
	stub := &test.MailerStub{}
	d := NewDispatcher(stub, "ops@example.com", true, 2, 8, testLogger())
	d.Start()

	email := "buyer@example.com"
	d.OrderPaid(paidOrder("ord-1", &email))
	d.Stop()

	messages := stub.Messages()
	if len(messages) != 2 {
		t.Fatalf("expected customer mail and admin alert, got %d messages", len(messages))
	}

	byRecipient := make(map[string]int)
	for i, msg := range messages {
		byRecipient[msg.To] = i
	}

	idx, ok := byRecipient["buyer@example.com"]
	if !ok {
		t.Fatal("missing customer confirmation")
	}
	if body := messages[idx].Body; !strings.Contains(body, "ord-1") || !strings.Contains(body, "30.00 EUR") {
		t.Errorf("unexpected customer body: %s", body)
	}

	idx, ok = byRecipient["ops@example.com"]
	if !ok {
		t.Fatal("missing admin alert")
	}
	if subject := messages[idx].Subject; !strings.Contains(subject, "ord-1") {
		t.Errorf("unexpected admin subject: %s", subject)
	}
}

func TestDispatcherAdminAlertsDisabled(t *testing.T) {
	stub := &test.MailerStub{}
	d := NewDispatcher(stub, "ops@example.com", false, 1, 8, testLogger())
	d.Start()

	email := "buyer@example.com"
	d.OrderPaid(paidOrder("ord-1", &email))
	d.Stop()

	messages := stub.Messages()
	if len(messages) != 1 {
		t.Fatalf("expected only the customer mail, got %d messages", len(messages))
	}
	if messages[0].To != "buyer@example.com" {
		t.Errorf("unexpected recipient %q", messages[0].To)
	}
}

func TestDispatcherNoAdminEmailConfigured(t *testing.T) {
	stub := &test.MailerStub{}
	d := NewDispatcher(stub, "", true, 1, 8, testLogger())
	d.Start()

	email := "buyer@example.com"
	d.OrderPaid(paidOrder("ord-1", &email))
	d.Stop()

	if got := len(stub.Messages()); got != 1 {
		t.Fatalf("expected only the customer mail, got %d messages", got)
	}
}

func TestDispatcherSkipsCustomerMailWithoutEmail(t *testing.T) {
	stub := &test.MailerStub{}
	d := NewDispatcher(stub, "ops@example.com", true, 1, 8, testLogger())
	d.Start()

	d.OrderPaid(paidOrder("ord-1", nil))
	d.Stop()

	messages := stub.Messages()
	if len(messages) != 1 {
		t.Fatalf("expected only the admin alert, got %d messages", len(messages))
	}
	if messages[0].To != "ops@example.com" {
		t.Errorf("unexpected recipient %q", messages[0].To)
	}
}

func TestDispatcherDeliveryFailureIsSwallowed(t *testing.T) {
	stub := &test.MailerStub{Err: errors.New("smtp down")}
	d := NewDispatcher(stub, "ops@example.com", true, 1, 8, testLogger())
	d.Start()

	email := "buyer@example.com"
	d.OrderPaid(paidOrder("ord-1", &email))
	d.Stop()

	if got := len(stub.Messages()); got != 0 {
		t.Fatalf("expected no recorded deliveries, got %d", got)
	}
}

func TestDispatcherDropsWhenQueueFull(t *testing.T) {
	stub := &test.MailerStub{}
	// One-slot queue with workers never started: the second enqueue must drop
	// instead of blocking.
	d := NewDispatcher(stub, "", false, 1, 1, testLogger())

	email := "buyer@example.com"
	done := make(chan struct{})
	go func() {
		d.OrderPaid(paidOrder("ord-1", &email))
		d.OrderPaid(paidOrder("ord-2", &email))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("enqueue blocked with a full queue")
	}

	d.Start()
	d.Stop()
	if got := len(stub.Messages()); got != 1 {
		t.Fatalf("expected exactly one delivery, got %d", got)
	}
}

// contextMailer records the state of the delivery context at send time.
type contextMailer struct {
	mu       sync.Mutex
	ctxErrs  []error
	deadline []bool
}

func (m *contextMailer) Send(ctx context.Context, _ mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ctxErrs = append(m.ctxErrs, ctx.Err())
	_, ok := ctx.Deadline()
	m.deadline = append(m.deadline, ok)
	return nil
}

func TestDispatcherDrainDeliversWithLiveContext(t *testing.T) {
	rec := &contextMailer{}
	d := NewDispatcher(rec, "", false, 1, 8, testLogger())
	d.Start()

	// Deliveries drained by Stop must run on a live context bounded only by
	// the send timeout, even when the process context is already cancelled.
	email := "buyer@example.com"
	d.OrderPaid(paidOrder("ord-1", &email))
	d.Stop()

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.ctxErrs) != 1 {
		t.Fatalf("expected one delivery attempt, got %d", len(rec.ctxErrs))
	}
	if rec.ctxErrs[0] != nil {
		t.Fatalf("drained delivery ran with dead context: %v", rec.ctxErrs[0])
	}
	if !rec.deadline[0] {
		t.Error("delivery context must still carry the send timeout")
	}
}

func TestDispatcherStopIsIdempotentAndRejectsLateJobs(t *testing.T) {
	stub := &test.MailerStub{}
	d := NewDispatcher(stub, "", false, 1, 8, testLogger())
	d.Start()
	d.Stop()
	d.Stop()

	email := "buyer@example.com"
	d.OrderPaid(paidOrder("ord-late", &email))

	if got := len(stub.Messages()); got != 0 {
		t.Fatalf("expected late job dropped, got %d deliveries", got)
	}
}
