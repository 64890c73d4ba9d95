package pos

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/khushiag23/POS-System/internal/catalog"
	"github.com/khushiag23/POS-System/internal/checkout"
	"github.com/khushiag23/POS-System/internal/domain"
	"github.com/khushiag23/POS-System/internal/session"
)

type Handler struct {
	svc    *Service
	logger *slog.Logger
}

func NewHandler(svc *Service, logger *slog.Logger) *Handler {
	return &Handler{
		svc:    svc,
		logger: logger,
	}
}

// Register mounts every route on mux. wrap is applied to each handler, e.g.
// to tag spans with the route.
func (h *Handler) Register(mux *http.ServeMux, wrap func(http.HandlerFunc) http.HandlerFunc) {
	if wrap == nil {
		wrap = func(f http.HandlerFunc) http.HandlerFunc { return f }
	}
	mux.HandleFunc("GET /products", wrap(h.HandleListProducts))
	mux.HandleFunc("GET /categories", wrap(h.HandleListCategories))
	mux.HandleFunc("POST /sessions", wrap(h.HandleLogin))
	mux.HandleFunc("GET /sessions/{sid}", wrap(h.HandleGetSession))
	mux.HandleFunc("DELETE /sessions/{sid}", wrap(h.HandleLogout))
	mux.HandleFunc("GET /sessions/{sid}/cart", wrap(h.HandleGetCart))
	mux.HandleFunc("DELETE /sessions/{sid}/cart", wrap(h.HandleClearCart))
	mux.HandleFunc("POST /sessions/{sid}/cart/items", wrap(h.HandleAddItem))
	mux.HandleFunc("PUT /sessions/{sid}/cart/items/{productId}", wrap(h.HandleSetQuantity))
	mux.HandleFunc("DELETE /sessions/{sid}/cart/items/{productId}", wrap(h.HandleRemoveItem))
	mux.HandleFunc("GET /sessions/{sid}/checkout", wrap(h.HandleGetCheckout))
	mux.HandleFunc("PUT /sessions/{sid}/checkout/payment-method", wrap(h.HandleSelectPayment))
	mux.HandleFunc("POST /sessions/{sid}/checkout", wrap(h.HandleConfirm))
	mux.HandleFunc("GET /sessions/{sid}/orders", wrap(h.HandleListOrders))
	mux.HandleFunc("GET /sessions/{sid}/orders/{orderId}", wrap(h.HandleGetOrder))
	mux.HandleFunc("GET /sessions/{sid}/dashboard", wrap(h.HandleDashboard))
}

type errorResponse struct {
	Error    string         `json:"error"`
	Redirect string         `json:"redirect,omitempty"`
	Notice   *domain.Notice `json:"notice,omitempty"`
}

func (h *Handler) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")
	if category == "" {
		category = catalog.AllCategories
	}

	products := h.svc.Catalog().Filter(query, category)
	h.writeJSON(w, http.StatusOK, products)
}

func (h *Handler) HandleListCategories(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.svc.Catalog().Categories())
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	SessionID string          `json:"session_id"`
	Session   session.Session `json:"session"`
	Notice    *domain.Notice  `json:"notice"`
	Redirect  string          `json:"redirect"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, sess, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		h.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:  err.Error(),
			Notice: session.Notice(err),
		})
		return
	}

	h.writeJSON(w, http.StatusCreated, loginResponse{
		SessionID: id,
		Session:   sess,
		Notice:    session.Notice(nil),
		Redirect:  "/dashboard",
	})
}

func (h *Handler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.svc.Session(r.PathValue("sid"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, sess)
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Logout(r.PathValue("sid")); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleGetCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Cart(r.PathValue("sid"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, view)
}

type addItemRequest struct {
	ProductID int `json:"product_id"`
}

func (h *Handler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.svc.AddItem(r.PathValue("sid"), req.ProductID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, view)
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) HandleSetQuantity(w http.ResponseWriter, r *http.Request) {
	productID, ok := h.productID(w, r)
	if !ok {
		return
	}

	var req setQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.svc.SetQuantity(r.PathValue("sid"), productID, req.Quantity)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, view)
}

func (h *Handler) HandleRemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := h.productID(w, r)
	if !ok {
		return
	}

	view, err := h.svc.RemoveItem(r.PathValue("sid"), productID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, view)
}

func (h *Handler) HandleClearCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.ClearCart(r.PathValue("sid"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, view)
}

func (h *Handler) HandleGetCheckout(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Checkout(r.PathValue("sid"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, view)
}

type selectPaymentRequest struct {
	PaymentMethod domain.PaymentMethod `json:"payment_method"`
}

func (h *Handler) HandleSelectPayment(w http.ResponseWriter, r *http.Request) {
	var req selectPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	flow, err := h.svc.SelectPayment(r.PathValue("sid"), req.PaymentMethod)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, flow)
}

type confirmResponse struct {
	Order  domain.Order   `json:"order"`
	Notice *domain.Notice `json:"notice"`
}

func (h *Handler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	order, err := h.svc.ConfirmPayment(r.Context(), r.PathValue("sid"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.logger.Info("checkout complete", "order_id", order.ID)
	h.writeJSON(w, http.StatusCreated, confirmResponse{
		Order:  order,
		Notice: checkout.Notice(nil),
	})
}

func (h *Handler) HandleListOrders(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.Orders(r.PathValue("sid"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, list)
}

func (h *Handler) HandleGetOrder(w http.ResponseWriter, r *http.Request) {
	sid := r.PathValue("sid")
	order, err := h.svc.Order(sid, r.PathValue("orderId"))
	if errors.Is(err, ErrOrderNotFound) {
		http.Redirect(w, r, "/sessions/"+sid+"/orders", http.StatusSeeOther)
		return
	}
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, order)
}

func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Dashboard(r.PathValue("sid"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) productID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("productId"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid product id")
		return 0, false
	}
	return id, true
}

func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		h.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated", Redirect: "/"})
	case errors.Is(err, ErrUnknownProduct):
		h.writeError(w, http.StatusNotFound, "product not found")
	case errors.Is(err, checkout.ErrEmptyCart):
		h.writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), Redirect: "/pos"})
	case errors.Is(err, checkout.ErrNoPaymentMethod), errors.Is(err, checkout.ErrInvalidPaymentMethod):
		h.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Notice: checkout.Notice(err)})
	case errors.Is(err, checkout.ErrInProgress):
		h.writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), Notice: checkout.Notice(err)})
	default:
		h.logger.Error("request failed", "error", err, "method", r.Method, "path", r.URL.Path)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, errorResponse{Error: message})
}
