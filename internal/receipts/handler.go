package receipts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/khushiag23/POS-System/internal/cart"
	"github.com/khushiag23/POS-System/internal/domain"
	"github.com/khushiag23/POS-System/internal/messaging"
)

const receiptWidth = 40

// Handler prints a receipt for every completed order it receives.
type Handler struct {
	mu     sync.Mutex
	out    io.Writer
	logger *slog.Logger
}

func NewHandler(out io.Writer, logger *slog.Logger) *Handler {
	return &Handler{
		out:    out,
		logger: logger,
	}
}

func (h *Handler) Handle(ctx context.Context, payload []byte) error {
	var event domain.OrderCompletedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		h.logger.Error("dropping undecodable order event", "error", err)
		return messaging.Permanent(fmt.Errorf("unmarshal order completed event: %w", err))
	}
	if event.OrderID == "" {
		h.logger.Error("dropping order event without id")
		return messaging.Permanent(fmt.Errorf("order completed event has no order id"))
	}

	receipt := Format(event)

	h.mu.Lock()
	_, err := io.WriteString(h.out, receipt)
	h.mu.Unlock()
	if err != nil {
		return fmt.Errorf("print receipt %s: %w", event.OrderID, err)
	}

	h.logger.InfoContext(ctx, "receipt printed",
		"order_id", event.OrderID,
		"payment_method", event.PaymentMethod,
		"total", event.Total.StringFixed(2),
		"items", len(event.Items),
	)
	return nil
}

// Format renders the receipt with amounts to two decimals.
func Format(event domain.OrderCompletedEvent) string {
	var b strings.Builder
	rule := strings.Repeat("-", receiptWidth) + "\n"

	fmt.Fprintf(&b, "Order %s\n", event.OrderID)
	fmt.Fprintf(&b, "%s\n", event.Timestamp.Format("2006-01-02 15:04:05 MST"))
	if event.Cashier != "" {
		fmt.Fprintf(&b, "Cashier: %s\n", event.Cashier)
	}
	b.WriteString(rule)
	for _, item := range event.Items {
		label := fmt.Sprintf("%d x %s @ %s", item.Quantity, item.Name, item.Price.StringFixed(2))
		writeRow(&b, label, cart.LineTotal(item).StringFixed(2))
	}
	b.WriteString(rule)
	writeRow(&b, "Subtotal", event.Subtotal.StringFixed(2))
	writeRow(&b, "Tax (8%)", event.Tax.StringFixed(2))
	writeRow(&b, "Total", event.Total.StringFixed(2))
	writeRow(&b, "Paid by", string(event.PaymentMethod))
	b.WriteString(rule)

	return b.String()
}

func writeRow(b *strings.Builder, label, value string) {
	pad := receiptWidth - len(label) - len(value)
	if pad < 1 {
		pad = 1
	}
	b.WriteString(label)
	b.WriteString(strings.Repeat(" ", pad))
	b.WriteString(value)
	b.WriteString("\n")
}
