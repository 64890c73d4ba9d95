package domain

import "github.com/shopspring/decimal"

type Product struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
	Image    string          `json:"image"`
	Stock    int             `json:"stock"`
}
