package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/khushiag23/POS-System/internal/domain"
)

// AllCategories selects every category in Filter.
const AllCategories = "All"

//go:embed catalog.yaml
var seed []byte

var (
	ErrDuplicateProduct = errors.New("duplicate product id")
	ErrInvalidProduct   = errors.New("invalid product")
)

type seedFile struct {
	Products []seedProduct `yaml:"products"`
}

type seedProduct struct {
	ID       int    `yaml:"id"`
	Name     string `yaml:"name"`
	Price    string `yaml:"price"`
	Category string `yaml:"category"`
	Image    string `yaml:"image"`
	Stock    int    `yaml:"stock"`
}

// Catalog is read-only once loaded.
type Catalog struct {
	products   []domain.Product
	byID       map[int]int
	categories []string
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(seed)
}

// Load reads a YAML catalog from disk. An empty path loads the default one.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	c := &Catalog{
		products: make([]domain.Product, 0, len(file.Products)),
		byID:     make(map[int]int, len(file.Products)),
	}
	seen := make(map[string]bool)

	for _, p := range file.Products {
		product, err := p.toProduct()
		if err != nil {
			return nil, err
		}
		if _, ok := c.byID[product.ID]; ok {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateProduct, product.ID)
		}
		c.byID[product.ID] = len(c.products)
		c.products = append(c.products, product)

		if !seen[product.Category] {
			seen[product.Category] = true
			c.categories = append(c.categories, product.Category)
		}
	}

	return c, nil
}

func (p seedProduct) toProduct() (domain.Product, error) {
	if strings.TrimSpace(p.Name) == "" {
		return domain.Product{}, fmt.Errorf("%w: product %d has no name", ErrInvalidProduct, p.ID)
	}
	if strings.TrimSpace(p.Category) == "" {
		return domain.Product{}, fmt.Errorf("%w: product %d has no category", ErrInvalidProduct, p.ID)
	}
	price, err := decimal.NewFromString(p.Price)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%w: product %d price %q: %v", ErrInvalidProduct, p.ID, p.Price, err)
	}
	if price.IsNegative() {
		return domain.Product{}, fmt.Errorf("%w: product %d has negative price", ErrInvalidProduct, p.ID)
	}

	return domain.Product{
		ID:       p.ID,
		Name:     p.Name,
		Price:    price,
		Category: p.Category,
		Image:    p.Image,
		Stock:    p.Stock,
	}, nil
}

// Products returns a copy of the catalog in seed order.
func (c *Catalog) Products() []domain.Product {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Catalog) Lookup(id int) (domain.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, false
	}
	return c.products[i], true
}

// Categories lists the "All" sentinel followed by every category in the
// order it first appears.
func (c *Catalog) Categories() []string {
	out := make([]string, 0, len(c.categories)+1)
	out = append(out, AllCategories)
	return append(out, c.categories...)
}

func (c *Catalog) Filter(query, category string) []domain.Product {
	return Filter(c.products, query, category)
}

// Filter keeps products whose name contains query, ignoring case, and whose
// category matches. AllCategories or an empty category matches everything.
func Filter(products []domain.Product, query, category string) []domain.Product {
	q := strings.ToLower(query)
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if !strings.Contains(strings.ToLower(p.Name), q) {
			continue
		}
		if category != AllCategories && category != "" && p.Category != category {
			continue
		}
		out = append(out, p)
	}
	return out
}
