package pos

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/khushiag23/POS-System/internal/cart"
	"github.com/khushiag23/POS-System/internal/catalog"
	"github.com/khushiag23/POS-System/internal/checkout"
	"github.com/khushiag23/POS-System/internal/domain"
	"github.com/khushiag23/POS-System/internal/orders"
	"github.com/khushiag23/POS-System/internal/payment"
	"github.com/khushiag23/POS-System/internal/session"
)

var tracer = otel.Tracer("pos")

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrUnknownProduct  = errors.New("unknown product")
	ErrOrderNotFound   = errors.New("order not found")
)

// EventPublisher receives completed orders. A nil publisher disables events.
type EventPublisher interface {
	Publish(ctx context.Context, key string, event any) error
}

type Service struct {
	catalog   *catalog.Catalog
	store     *Store
	payments  payment.Confirmer
	publisher EventPublisher
	ids       *orders.IDGenerator
	now       func() time.Time
	metrics   *instruments
	logger    *slog.Logger
}

type Option func(*Service)

func WithPublisher(p EventPublisher) Option {
	return func(s *Service) { s.publisher = p }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(c *catalog.Catalog, store *Store, payments payment.Confirmer, logger *slog.Logger, opts ...Option) (*Service, error) {
	m, err := newInstruments(otel.Meter("pos"))
	if err != nil {
		return nil, fmt.Errorf("create pos instruments: %w", err)
	}

	s := &Service{
		catalog:  c,
		store:    store,
		payments: payments,
		now:      time.Now,
		metrics:  m,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ids = orders.NewIDGenerator(s.now)

	return s, nil
}

// CartView is the cart as the sale screen shows it. Totals are derived on
// every read.
type CartView struct {
	Lines     []LineView         `json:"lines"`
	ItemCount int                `json:"item_count"`
	Totals    domain.OrderTotals `json:"totals"`
	Checkout  checkout.Flow      `json:"checkout"`
}

type LineView struct {
	domain.CartLine
	LineTotal string `json:"line_total"`
}

// CheckoutView tells the checkout screen what to render, or where to go.
type CheckoutView struct {
	CartView
	Redirect string `json:"redirect,omitempty"`
}

func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

func (s *Service) Login(email, password string) (string, session.Session, error) {
	sess, err := session.Login(email, password)
	if err != nil {
		return "", sess, err
	}
	id := s.store.Create(sess)
	s.logger.Info("cashier signed in", "session_id", id, "display_name", sess.DisplayName)
	return id, sess, nil
}

func (s *Service) Logout(id string) error {
	w, err := s.workspace(id)
	if err != nil {
		return err
	}

	w.mu.Lock()
	w.session = session.Logout(w.session)
	w.mu.Unlock()

	s.store.Delete(id)
	s.logger.Info("cashier signed out", "session_id", id)
	return nil
}

func (s *Service) Session(id string) (session.Session, error) {
	w, err := s.workspace(id)
	if err != nil {
		return session.Session{}, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.session, nil
}

func (s *Service) Cart(id string) (CartView, error) {
	w, err := s.workspace(id)
	if err != nil {
		return CartView{}, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return cartView(w), nil
}

func (s *Service) AddItem(id string, productID int) (CartView, error) {
	product, ok := s.catalog.Lookup(productID)
	if !ok {
		return CartView{}, fmt.Errorf("%w: %d", ErrUnknownProduct, productID)
	}
	return s.mutate(id, cart.AddItem(product))
}

func (s *Service) SetQuantity(id string, productID, quantity int) (CartView, error) {
	return s.mutate(id, cart.SetQuantity(productID, quantity))
}

func (s *Service) RemoveItem(id string, productID int) (CartView, error) {
	return s.mutate(id, cart.RemoveItem(productID))
}

func (s *Service) ClearCart(id string) (CartView, error) {
	return s.mutate(id, cart.Clear())
}

func (s *Service) mutate(id string, action cart.Action) (CartView, error) {
	w, err := s.workspace(id)
	if err != nil {
		return CartView{}, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.flow.Busy() {
		return cartView(w), checkout.ErrInProgress
	}
	w.flow = startNewSale(w.flow)
	w.cart = cart.Reduce(w.cart, action)
	return cartView(w), nil
}

// Checkout reports what the checkout screen should show. An empty cart with
// no finished sale redirects back to the sale screen.
func (s *Service) Checkout(id string) (CheckoutView, error) {
	w, err := s.workspace(id)
	if err != nil {
		return CheckoutView{}, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	view := CheckoutView{CartView: cartView(w)}
	if checkout.ShouldRedirectToSale(w.flow, w.cart) {
		view.Redirect = "/pos"
	}
	return view, nil
}

func (s *Service) SelectPayment(id string, method domain.PaymentMethod) (checkout.Flow, error) {
	w, err := s.workspace(id)
	if err != nil {
		return checkout.Flow{}, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	next, err := checkout.SelectPayment(startNewSale(w.flow), method)
	if err != nil {
		return w.flow, err
	}
	w.flow = next
	return w.flow, nil
}

// ConfirmPayment runs the payment step and finalizes the order. The wait
// happens outside the workspace lock with the flow parked in Processing, and
// it is not cut short when the caller goes away.
func (s *Service) ConfirmPayment(ctx context.Context, id string) (domain.Order, error) {
	w, err := s.workspace(id)
	if err != nil {
		return domain.Order{}, err
	}

	w.mu.Lock()
	next, err := checkout.Confirm(startNewSale(w.flow), w.cart)
	if err != nil {
		w.mu.Unlock()
		s.metrics.checkoutRejected(ctx, rejectReason(err))
		return domain.Order{}, err
	}
	w.flow = next
	cashier := w.session.DisplayName
	w.mu.Unlock()

	ctx, span := tracer.Start(ctx, "checkout.confirm_payment")
	span.SetAttributes(attribute.String("payment_method", string(next.PaymentMethod)))
	defer span.End()

	if err := s.payments.Confirm(context.WithoutCancel(ctx), next.PaymentMethod); err != nil {
		w.mu.Lock()
		w.flow = checkout.Abort(w.flow)
		w.mu.Unlock()

		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Error("payment confirmation failed", "error", err, "session_id", id)
		return domain.Order{}, fmt.Errorf("confirm payment: %w", err)
	}

	w.mu.Lock()
	res, err := checkout.Finalize(w.flow, w.cart, w.ledger, s.ids.Next(), s.now())
	if err != nil {
		w.mu.Unlock()
		return domain.Order{}, err
	}
	w.flow, w.cart, w.ledger = res.Flow, res.Cart, res.Ledger
	w.mu.Unlock()

	order := res.Order
	span.SetAttributes(attribute.String("order_id", order.ID))
	s.metrics.orderCompleted(ctx, order)
	s.logger.Info("order completed",
		"order_id", order.ID,
		"session_id", id,
		"payment_method", order.PaymentMethod,
		"total", order.Total.StringFixed(2),
	)

	if s.publisher != nil {
		event := domain.NewOrderCompletedEvent(order, cashier)
		if err := s.publisher.Publish(ctx, order.ID, event); err != nil {
			s.logger.Error("failed to publish order completed event", "error", err, "order_id", order.ID)
		}
	}

	return order, nil
}

func (s *Service) Orders(id string) ([]domain.Order, error) {
	w, err := s.workspace(id)
	if err != nil {
		return nil, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.ledger.All(), nil
}

func (s *Service) Order(id, orderID string) (domain.Order, error) {
	w, err := s.workspace(id)
	if err != nil {
		return domain.Order{}, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	order, ok := w.ledger.Find(orderID)
	if !ok {
		return domain.Order{}, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}
	return order, nil
}

func (s *Service) Dashboard(id string) (orders.Summary, error) {
	w, err := s.workspace(id)
	if err != nil {
		return orders.Summary{}, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return orders.Summarize(w.ledger), nil
}

func (s *Service) workspace(id string) (*Workspace, error) {
	w, ok := s.store.Get(id)
	if !ok {
		return nil, ErrUnauthenticated
	}
	w.mu.Lock()
	authenticated := !w.session.RequiresLogin()
	w.mu.Unlock()
	if !authenticated {
		return nil, ErrUnauthenticated
	}
	return w, nil
}

// startNewSale leaves a finished sale behind before the next one begins.
func startNewSale(f checkout.Flow) checkout.Flow {
	if f.Current() == checkout.StateComplete {
		return checkout.Reset(f)
	}
	return f
}

func cartView(w *Workspace) CartView {
	lines := make([]LineView, 0, len(w.cart.Lines))
	for _, line := range w.cart.Lines {
		lines = append(lines, LineView{CartLine: line, LineTotal: cart.LineTotal(line).StringFixed(2)})
	}
	return CartView{
		Lines:     lines,
		ItemCount: cart.ItemCount(w.cart),
		Totals:    cart.Totals(w.cart),
		Checkout:  w.flow,
	}
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, checkout.ErrNoPaymentMethod):
		return "no_payment_method"
	case errors.Is(err, checkout.ErrEmptyCart):
		return "empty_cart"
	case errors.Is(err, checkout.ErrInProgress):
		return "in_progress"
	}
	return "other"
}
