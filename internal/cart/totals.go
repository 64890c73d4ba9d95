package cart

import (
	"github.com/shopspring/decimal"

	"github.com/khushiag23/POS-System/internal/domain"
)

// TaxRate is the flat sales tax applied to every subtotal.
var TaxRate = decimal.RequireFromString("0.08")

func LineTotal(line domain.CartLine) decimal.Decimal {
	return line.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
}

// Totals derives subtotal, tax and total from the cart. Values are exact;
// rounding is left to display.
func Totals(c domain.Cart) domain.OrderTotals {
	subtotal := decimal.Zero
	for _, line := range c.Lines {
		subtotal = subtotal.Add(LineTotal(line))
	}
	tax := subtotal.Mul(TaxRate)
	return domain.OrderTotals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}

// ItemCount sums the quantities of every line.
func ItemCount(c domain.Cart) int {
	var n int
	for _, line := range c.Lines {
		n += line.Quantity
	}
	return n
}
