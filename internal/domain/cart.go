package domain

import "github.com/shopspring/decimal"

// CartLine is one product in the sale. Quantity is always at least 1.
type CartLine struct {
	Product
	Quantity int `json:"quantity"`
}

// Cart lines are kept in first-add order.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

func (c Cart) Find(productID int) (CartLine, bool) {
	for _, line := range c.Lines {
		if line.ID == productID {
			return line, true
		}
	}
	return CartLine{}, false
}

// Clone returns a cart that shares no backing array with c.
func (c Cart) Clone() Cart {
	if c.Lines == nil {
		return Cart{}
	}
	lines := make([]CartLine, len(c.Lines))
	copy(lines, c.Lines)
	return Cart{Lines: lines}
}

type OrderTotals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}
