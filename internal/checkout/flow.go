// Package checkout models a single sale from payment selection to a
// finalized order. Every transition is a pure function over Flow.
package checkout

import (
	"errors"
	"time"

	"github.com/khushiag23/POS-System/internal/cart"
	"github.com/khushiag23/POS-System/internal/domain"
	"github.com/khushiag23/POS-System/internal/orders"
)

type State string

const (
	StateIdle            State = "idle"
	StateAwaitingPayment State = "awaiting_payment"
	StateProcessing      State = "processing"
	StateComplete        State = "complete"
)

var (
	ErrNoPaymentMethod      = errors.New("no payment method selected")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrInProgress           = errors.New("payment is already being processed")
	ErrNotProcessing        = errors.New("no payment is being processed")
	ErrAlreadyComplete      = errors.New("sale is already complete")
)

// Flow is the checkout state of one sale. The zero value is Idle.
type Flow struct {
	State         State                `json:"state"`
	PaymentMethod domain.PaymentMethod `json:"payment_method,omitempty"`
	OrderID       string               `json:"order_id,omitempty"`
}

func (f Flow) state() State {
	if f.State == "" {
		return StateIdle
	}
	return f.State
}

func (f Flow) Current() State {
	return f.state()
}

// Busy reports whether a payment is outstanding. Callers must not start
// another confirmation or change the cart while it is.
func (f Flow) Busy() bool {
	return f.state() == StateProcessing
}

// SelectPayment moves Idle to AwaitingPayment. Choosing again while awaiting
// replaces the method.
func SelectPayment(f Flow, method domain.PaymentMethod) (Flow, error) {
	switch f.state() {
	case StateProcessing:
		return f, ErrInProgress
	case StateComplete:
		return f, ErrAlreadyComplete
	}
	if method == "" {
		return f, ErrNoPaymentMethod
	}
	if !method.Valid() {
		return f, ErrInvalidPaymentMethod
	}
	return Flow{State: StateAwaitingPayment, PaymentMethod: method}, nil
}

// Confirm moves AwaitingPayment to Processing. The caller then asks the
// payment collaborator and calls Finalize on success.
func Confirm(f Flow, c domain.Cart) (Flow, error) {
	switch f.state() {
	case StateProcessing:
		return f, ErrInProgress
	case StateComplete:
		return f, ErrAlreadyComplete
	}
	if c.IsEmpty() {
		return f, ErrEmptyCart
	}
	if f.state() == StateIdle || f.PaymentMethod == "" {
		return f, ErrNoPaymentMethod
	}
	return Flow{State: StateProcessing, PaymentMethod: f.PaymentMethod}, nil
}

// Result is everything a finalized sale changes at once.
type Result struct {
	Flow   Flow
	Cart   domain.Cart
	Ledger orders.Ledger
	Order  domain.Order
}

// Finalize snapshots the cart into a new order at the front of the ledger and
// empties the cart.
func Finalize(f Flow, c domain.Cart, l orders.Ledger, id string, at time.Time) (Result, error) {
	if f.state() != StateProcessing {
		return Result{Flow: f, Cart: c, Ledger: l}, ErrNotProcessing
	}

	order := orders.Snapshot(id, c, f.PaymentMethod, at)
	return Result{
		Flow:   Flow{State: StateComplete, PaymentMethod: f.PaymentMethod, OrderID: order.ID},
		Cart:   cart.Reduce(c, cart.Clear()),
		Ledger: orders.Append(l, order),
		Order:  order,
	}, nil
}

// Abort returns a Processing flow to AwaitingPayment with the same method,
// for when the payment collaborator could not be reached.
func Abort(f Flow) Flow {
	if f.state() != StateProcessing {
		return f
	}
	return Flow{State: StateAwaitingPayment, PaymentMethod: f.PaymentMethod}
}

// Reset starts a fresh sale once the previous one completed.
func Reset(f Flow) Flow {
	if f.Busy() {
		return f
	}
	return Flow{}
}

// ShouldRedirectToSale reports whether the checkout screen has nothing to
// show and the client should go back to the sale screen.
func ShouldRedirectToSale(f Flow, c domain.Cart) bool {
	return c.IsEmpty() && f.state() != StateComplete && f.state() != StateProcessing
}

// Notice converts a checkout error into the message shown to the cashier.
func Notice(err error) *domain.Notice {
	switch {
	case errors.Is(err, ErrNoPaymentMethod):
		return domain.ErrorNotice("Please select a payment method")
	case errors.Is(err, ErrInvalidPaymentMethod):
		return domain.ErrorNotice("Payment method must be cash or card")
	case errors.Is(err, ErrInProgress):
		return domain.ErrorNotice("Payment is already being processed")
	case errors.Is(err, ErrEmptyCart):
		return domain.ErrorNotice("Your cart is empty")
	case err == nil:
		return domain.SuccessNotice("Payment successful!")
	}
	return domain.ErrorNotice(err.Error())
}
