package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderCompletedEvent struct {
	OrderID       string          `json:"order_id"`
	Cashier       string          `json:"cashier"`
	Items         []CartLine      `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	Timestamp     time.Time       `json:"timestamp"`
}

func NewOrderCompletedEvent(order Order, cashier string) OrderCompletedEvent {
	return OrderCompletedEvent{
		OrderID:       order.ID,
		Cashier:       cashier,
		Items:         order.Items,
		Subtotal:      order.Subtotal,
		Tax:           order.Tax,
		Total:         order.Total,
		PaymentMethod: order.PaymentMethod,
		Timestamp:     order.CreatedAt,
	}
}
