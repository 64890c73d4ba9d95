package orders

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khushiag23/POS-System/internal/cart"
	"github.com/khushiag23/POS-System/internal/domain"
)

func testCart() domain.Cart {
	c := domain.Cart{}
	c = cart.Reduce(c, cart.AddItem(domain.Product{ID: 1, Name: "Tea", Price: decimal.RequireFromString("10.00")}))
	c = cart.Reduce(c, cart.AddItem(domain.Product{ID: 1, Name: "Tea", Price: decimal.RequireFromString("10.00")}))
	c = cart.Reduce(c, cart.AddItem(domain.Product{ID: 2, Name: "Cake", Price: decimal.RequireFromString("5.00")}))
	return c
}

func order(id string, total string, method domain.PaymentMethod) domain.Order {
	return domain.Order{ID: id, Total: decimal.RequireFromString(total), PaymentMethod: method}
}

func TestSnapshot(t *testing.T) {
	c := testCart()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("X", 3600))

	o := Snapshot("ORD-1", c, domain.PaymentMethodCard, at)

	assert.Equal(t, "ORD-1", o.ID)
	assert.Equal(t, domain.PaymentMethodCard, o.PaymentMethod)
	assert.Equal(t, time.UTC, o.CreatedAt.Location())
	assert.True(t, o.CreatedAt.Equal(at))
	assert.Equal(t, cart.Totals(c), o.Totals())
	assert.Equal(t, 3, o.ItemCount())

	t.Run("later cart changes do not reach the order", func(t *testing.T) {
		mutated := cart.Reduce(c, cart.SetQuantity(1, 50))
		c.Lines[1].Quantity = 9
		_ = cart.Reduce(mutated, cart.Clear())

		require.Len(t, o.Items, 2)
		assert.Equal(t, 2, o.Items[0].Quantity)
		assert.Equal(t, 1, o.Items[1].Quantity)
		assert.Equal(t, "27", o.Total.String())
	})
}

func TestLedger(t *testing.T) {
	var l Ledger
	assert.Equal(t, 0, l.Len())
	assert.Empty(t, l.All())

	o1 := order("ORD-1", "10", domain.PaymentMethodCash)
	o2 := order("ORD-2", "20", domain.PaymentMethodCard)

	l1 := Append(l, o1)
	l2 := Append(l1, o2)

	assert.Equal(t, []domain.Order{o2, o1}, l2.All())
	assert.Equal(t, 1, l1.Len(), "append must not modify the previous ledger")
	assert.Equal(t, 0, l.Len())

	found, ok := l2.Find("ORD-1")
	require.True(t, ok)
	assert.Equal(t, o1, found)

	_, ok = l2.Find("ORD-404")
	assert.False(t, ok)

	all := l2.All()
	all[0] = domain.Order{}
	assert.Equal(t, o2, l2.All()[0])
}

func TestIDGenerator(t *testing.T) {
	fixed := time.UnixMilli(1_700_000_000_000)
	clock := fixed
	g := NewIDGenerator(func() time.Time { return clock })

	first := g.Next()
	second := g.Next()
	clock = fixed.Add(-time.Second)
	third := g.Next()
	clock = fixed.Add(time.Minute)
	fourth := g.Next()

	assert.Equal(t, "ORD-1700000000000", first)
	assert.Equal(t, "ORD-1700000000001", second)
	assert.Equal(t, "ORD-1700000000002", third)
	assert.Equal(t, "ORD-1700000060000", fourth)
}

func TestIDGeneratorUnique(t *testing.T) {
	g := NewIDGenerator(nil)
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := g.Next()
		require.True(t, strings.HasPrefix(id, "ORD-"))
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestSummarize(t *testing.T) {
	t.Run("empty ledger", func(t *testing.T) {
		s := Summarize(Ledger{})
		assert.True(t, s.TotalSales.IsZero())
		assert.True(t, s.AvgOrderValue.IsZero())
		assert.Equal(t, 0, s.TotalOrders)
		assert.NotNil(t, s.RecentOrders)
		assert.Empty(t, s.RecentOrders)
	})

	t.Run("mixed ledger", func(t *testing.T) {
		var l Ledger
		for i, total := range []string{"10", "20", "30", "40", "50", "60"} {
			method := domain.PaymentMethodCash
			if i%3 == 0 {
				method = domain.PaymentMethodCard
			}
			l = Append(l, order("ORD-"+total, total, method))
		}

		s := Summarize(l)
		assert.Equal(t, "210", s.TotalSales.String())
		assert.Equal(t, "35", s.AvgOrderValue.String())
		assert.Equal(t, 6, s.TotalOrders)
		assert.Equal(t, 4, s.CashOrders)
		assert.Equal(t, 2, s.CardOrders)
		require.Len(t, s.RecentOrders, 5)
		assert.Equal(t, "ORD-60", s.RecentOrders[0].ID)
		assert.Equal(t, "ORD-20", s.RecentOrders[4].ID)
	})
}
