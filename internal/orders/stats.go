package orders

import (
	"github.com/shopspring/decimal"

	"github.com/khushiag23/POS-System/internal/domain"
)

const recentOrderCount = 5

type Summary struct {
	TotalSales    decimal.Decimal `json:"total_sales"`
	TotalOrders   int             `json:"total_orders"`
	AvgOrderValue decimal.Decimal `json:"avg_order_value"`
	CashOrders    int             `json:"cash_orders"`
	CardOrders    int             `json:"card_orders"`
	RecentOrders  []domain.Order  `json:"recent_orders"`
}

// Summarize aggregates the ledger for the dashboard.
func Summarize(l Ledger) Summary {
	s := Summary{
		TotalSales:    decimal.Zero,
		AvgOrderValue: decimal.Zero,
		RecentOrders:  []domain.Order{},
	}

	for _, order := range l.orders {
		s.TotalSales = s.TotalSales.Add(order.Total)
		switch order.PaymentMethod {
		case domain.PaymentMethodCash:
			s.CashOrders++
		case domain.PaymentMethodCard:
			s.CardOrders++
		}
	}

	s.TotalOrders = len(l.orders)
	if s.TotalOrders > 0 {
		s.AvgOrderValue = s.TotalSales.Div(decimal.NewFromInt(int64(s.TotalOrders)))
	}

	n := min(recentOrderCount, len(l.orders))
	s.RecentOrders = append(s.RecentOrders, l.orders[:n]...)

	return s
}
