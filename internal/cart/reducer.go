// Package cart holds the pure transitions of an in-progress sale.
package cart

import "github.com/khushiag23/POS-System/internal/domain"

// Action is one cart mutation. Reduce applies it.
type Action interface {
	apply(domain.Cart) domain.Cart
}

type addItem struct{ product domain.Product }

type setQuantity struct {
	productID int
	quantity  int
}

type removeItem struct{ productID int }

type clearCart struct{}

// AddItem increments the product's line or appends a new one with quantity 1.
// Stock is not checked.
func AddItem(product domain.Product) Action { return addItem{product: product} }

// SetQuantity sets a line's quantity. A quantity of zero or less removes the
// line. Unknown products are ignored.
func SetQuantity(productID, quantity int) Action {
	return setQuantity{productID: productID, quantity: quantity}
}

func RemoveItem(productID int) Action { return removeItem{productID: productID} }

func Clear() Action { return clearCart{} }

// Reduce returns the cart that results from applying action to c. The input
// cart is never modified.
func Reduce(c domain.Cart, action Action) domain.Cart {
	return action.apply(c)
}

func (a addItem) apply(c domain.Cart) domain.Cart {
	next := c.Clone()
	for i := range next.Lines {
		if next.Lines[i].ID == a.product.ID {
			next.Lines[i].Quantity++
			return next
		}
	}
	next.Lines = append(next.Lines, domain.CartLine{Product: a.product, Quantity: 1})
	return next
}

func (a setQuantity) apply(c domain.Cart) domain.Cart {
	if a.quantity <= 0 {
		return removeItem{productID: a.productID}.apply(c)
	}
	next := c.Clone()
	for i := range next.Lines {
		if next.Lines[i].ID == a.productID {
			next.Lines[i].Quantity = a.quantity
			break
		}
	}
	return next
}

func (a removeItem) apply(c domain.Cart) domain.Cart {
	next := domain.Cart{}
	for _, line := range c.Lines {
		if line.ID != a.productID {
			next.Lines = append(next.Lines, line)
		}
	}
	return next
}

func (clearCart) apply(domain.Cart) domain.Cart {
	return domain.Cart{}
}
