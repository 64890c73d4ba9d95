package orders

import (
	"time"

	"github.com/khushiag23/POS-System/internal/cart"
	"github.com/khushiag23/POS-System/internal/domain"
)

// Snapshot freezes the cart into an order. Lines are copied so later cart
// changes cannot reach the order.
func Snapshot(id string, c domain.Cart, method domain.PaymentMethod, at time.Time) domain.Order {
	totals := cart.Totals(c)
	items := make([]domain.CartLine, len(c.Lines))
	copy(items, c.Lines)

	return domain.Order{
		ID:            id,
		Items:         items,
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		Total:         totals.Total,
		PaymentMethod: method,
		CreatedAt:     at.UTC(),
	}
}
