//go:build integration

package test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"github.com/khushiag23/POS-System/internal/catalog"
	"github.com/khushiag23/POS-System/internal/domain"
	"github.com/khushiag23/POS-System/internal/messaging"
	"github.com/khushiag23/POS-System/internal/payment"
	"github.com/khushiag23/POS-System/internal/pos"
	"github.com/khushiag23/POS-System/internal/receipts"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestKafkaConnection(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	brokers, cleanup := SetupKafka(ctx, t)
	defer cleanup()

	if len(brokers) == 0 {
		t.Fatal("expected at least one broker")
	}

	t.Logf("kafka brokers: %v", brokers)
}

// consumeUntil runs a receipts consumer until out contains want or ctx ends.
func consumeUntil(ctx context.Context, t *testing.T, brokers []string, groupID string, out *syncBuffer, want string) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	consumer := messaging.NewConsumer(brokers, messaging.OrderCompletedTopic, groupID,
		messaging.WithStartOffset(kafka.FirstOffset))
	defer func() { _ = consumer.Close() }()

	handler := receipts.NewHandler(out, logger)

	consumeCtx, stop := context.WithCancel(ctx)
	defer stop()

	done := make(chan error, 1)
	go func() {
		done <- consumer.Consume(consumeCtx, handler.Handle)
	}()

	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case err := <-done:
			t.Fatalf("consumer stopped early: %v", err)
		case <-ctx.Done():
			t.Fatalf("timed out waiting for receipt containing %q, got:\n%s", want, out.String())
		case <-ticker.C:
			if strings.Contains(out.String(), want) {
				stop()
				if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
					t.Fatalf("consumer error: %v", err)
				}
				return
			}
		}
	}
}

func TestOrderEventReachesReceiptPrinter(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	brokers, cleanup := SetupKafka(ctx, t)
	defer cleanup()

	producer := messaging.NewProducer(brokers, messaging.OrderCompletedTopic)
	defer func() { _ = producer.Close() }()

	event := domain.OrderCompletedEvent{
		OrderID: "ORD-1791968400000",
		Cashier: "cashier@store.test",
		Items: []domain.CartLine{
			{Product: domain.Product{ID: 1, Name: "Espresso", Price: decimal.RequireFromString("3.50"), Category: "Beverages"}, Quantity: 2},
		},
		Subtotal:      decimal.RequireFromString("7.00"),
		Tax:           decimal.RequireFromString("0.56"),
		Total:         decimal.RequireFromString("7.56"),
		PaymentMethod: domain.PaymentMethodCash,
		Timestamp:     time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC),
	}

	if err := producer.Publish(ctx, event.OrderID, event); err != nil {
		t.Fatalf("failed to publish event: %v", err)
	}

	out := &syncBuffer{}
	consumeUntil(ctx, t, brokers, "receipt-printer-direct", out, event.OrderID)

	receipt := out.String()
	for _, want := range []string{"Espresso", "7.56", "cash"} {
		if !strings.Contains(receipt, want) {
			t.Errorf("expected receipt to contain %q, got:\n%s", want, receipt)
		}
	}
}

func TestCheckoutPublishesOrderCompleted(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	brokers, cleanup := SetupKafka(ctx, t)
	defer cleanup()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	paymentMux := http.NewServeMux()
	paymentMux.HandleFunc("POST /confirm", payment.NewHandler(10*time.Millisecond, logger).HandleConfirm)
	paymentServer := httptest.NewServer(paymentMux)
	defer paymentServer.Close()

	producer := messaging.NewProducer(brokers, messaging.OrderCompletedTopic)
	defer func() { _ = producer.Close() }()

	products, err := catalog.Default()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}

	svc, err := pos.NewService(
		products,
		pos.NewStore(),
		payment.NewClient(paymentServer.URL, &http.Client{Timeout: 10 * time.Second}),
		logger,
		pos.WithPublisher(producer),
	)
	if err != nil {
		t.Fatalf("failed to create pos service: %v", err)
	}

	sid, _, err := svc.Login("cashier@store.test", "secret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if _, err := svc.AddItem(sid, 6); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if _, err := svc.SelectPayment(sid, domain.PaymentMethodCard); err != nil {
		t.Fatalf("select payment failed: %v", err)
	}

	order, err := svc.ConfirmPayment(ctx, sid)
	if err != nil {
		t.Fatalf("confirm payment failed: %v", err)
	}

	out := &syncBuffer{}
	consumeUntil(ctx, t, brokers, "receipt-printer-checkout", out, order.ID)

	receipt := out.String()
	for _, want := range []string{"Pizza", "13.50", "card"} {
		if !strings.Contains(receipt, want) {
			t.Errorf("expected receipt to contain %q, got:\n%s", want, receipt)
		}
	}
}
