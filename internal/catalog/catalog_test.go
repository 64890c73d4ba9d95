package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	products := c.Products()
	require.NotEmpty(t, products)
	assert.Equal(t, 1, products[0].ID)
	assert.Equal(t, []string{"All", "Beverages", "Food", "Snacks", "Desserts"}, c.Categories())

	p, ok := c.Lookup(6)
	require.True(t, ok)
	assert.Equal(t, "Margherita Pizza", p.Name)
	assert.Equal(t, "12.5", p.Price.String())

	_, ok = c.Lookup(999)
	assert.False(t, ok)
}

func TestFilter(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	t.Run("empty query and All returns full catalog in order", func(t *testing.T) {
		assert.Equal(t, c.Products(), c.Filter("", AllCategories))
	})

	t.Run("matches name case-insensitively", func(t *testing.T) {
		got := c.Filter("LATTE", AllCategories)
		require.Len(t, got, 1)
		assert.Equal(t, "Iced Latte", got[0].Name)
	})

	t.Run("restricts to category", func(t *testing.T) {
		got := c.Filter("", "Snacks")
		require.Len(t, got, 3)
		for _, p := range got {
			assert.Equal(t, "Snacks", p.Category)
		}
	})

	t.Run("query and category combine", func(t *testing.T) {
		assert.Empty(t, c.Filter("pizza", "Beverages"))
		assert.Len(t, c.Filter("pizza", "Food"), 1)
	})

	t.Run("unknown category yields nothing", func(t *testing.T) {
		assert.Empty(t, c.Filter("", "Hardware"))
	})
}

func TestParse(t *testing.T) {
	t.Run("rejects duplicate ids", func(t *testing.T) {
		_, err := Parse([]byte(`products:
  - {id: 1, name: A, price: "1.00", category: X}
  - {id: 1, name: B, price: "2.00", category: X}
`))
		assert.ErrorIs(t, err, ErrDuplicateProduct)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := Parse([]byte(`products:
  - {id: 1, name: A, price: "-1.00", category: X}
`))
		assert.ErrorIs(t, err, ErrInvalidProduct)
	})

	t.Run("rejects malformed price", func(t *testing.T) {
		_, err := Parse([]byte(`products:
  - {id: 1, name: A, price: "cheap", category: X}
`))
		assert.ErrorIs(t, err, ErrInvalidProduct)
	})

	t.Run("rejects missing name", func(t *testing.T) {
		_, err := Parse([]byte(`products:
  - {id: 1, price: "1.00", category: X}
`))
		assert.ErrorIs(t, err, ErrInvalidProduct)
	})
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`products:
  - {id: 7, name: Tea, price: "2.00", category: Beverages, image: "🍵", stock: 3}
`), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	require.Len(t, c.Products(), 1)
	assert.Equal(t, "Tea", c.Products()[0].Name)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
