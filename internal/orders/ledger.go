package orders

import "github.com/khushiag23/POS-System/internal/domain"

// Ledger is the session's order history, newest first. The zero value is an
// empty ledger.
type Ledger struct {
	orders []domain.Order
}

// Append returns a ledger with order placed in front. l is left untouched.
func Append(l Ledger, order domain.Order) Ledger {
	next := make([]domain.Order, 0, len(l.orders)+1)
	next = append(next, order)
	next = append(next, l.orders...)
	return Ledger{orders: next}
}

func (l Ledger) Len() int {
	return len(l.orders)
}

// All returns the orders newest first. The slice is a copy.
func (l Ledger) All() []domain.Order {
	out := make([]domain.Order, len(l.orders))
	copy(out, l.orders)
	return out
}

func (l Ledger) Find(id string) (domain.Order, bool) {
	for _, order := range l.orders {
		if order.ID == id {
			return order, true
		}
	}
	return domain.Order{}, false
}
