package payment

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/khushiag23/POS-System/internal/domain"
)

const statusApproved = "approved"

// Handler is the payment simulator service.
type Handler struct {
	delay  time.Duration
	logger *slog.Logger
}

func NewHandler(delay time.Duration, logger *slog.Logger) *Handler {
	return &Handler{
		delay:  delay,
		logger: logger,
	}
}

type confirmRequest struct {
	PaymentMethod domain.PaymentMethod `json:"payment_method"`
}

type confirmResponse struct {
	Status string `json:"status"`
}

func (h *Handler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !req.PaymentMethod.Valid() {
		h.writeError(w, http.StatusUnprocessableEntity, "payment method must be cash or card")
		return
	}

	if err := wait(r.Context(), h.delay); err != nil {
		h.logger.Info("payment confirmation abandoned", "payment_method", req.PaymentMethod, "error", err)
		return
	}

	h.logger.Info("payment approved", "payment_method", req.PaymentMethod)

	h.writeJSON(w, http.StatusOK, confirmResponse{Status: statusApproved})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
