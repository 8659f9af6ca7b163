package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/nextpizza/storefront/internal/catalog"
	"github.com/nextpizza/storefront/internal/logging"
	"github.com/nextpizza/storefront/internal/services"
)

type orderSuccessResponse struct {
	ID      int64  `json:"id"`
	Sum     string `json:"sum"`
	Message string `json:"message"`
}

// OrderSuccess confirms the payment of an order when the customer returns from checkout.
func (h *Handlers) OrderSuccess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, err := strconv.ParseInt(mux.Vars(r)["orderID"], 10, 64)
	if err != nil || orderID <= 0 {
		h.writeError(w, r, http.StatusNotFound, "order not found")
		return
	}

	ctx = logging.With(ctx, h.logger, "order_id", orderID)
	logger := h.loggerFromContext(ctx)

	query := r.URL.Query()
	cartID, err := strconv.ParseInt(strings.TrimSpace(query.Get("userCartId")), 10, 64)
	paymentIntentID := strings.TrimSpace(query.Get("payment_intent"))
	if err != nil || cartID <= 0 || paymentIntentID == "" {
		h.writeError(w, r, http.StatusNotFound, "order not found")
		return
	}

	order, err := h.checkout.ConfirmPayment(ctx, services.ConfirmPaymentInput{
		CartID:          cartID,
		OrderID:         orderID,
		PaymentIntentID: paymentIntentID,
	})
	if err != nil {
		if errors.Is(err, services.ErrPaymentNotConfirmed) {
			logger.Info("order payment not confirmed", "error", err)
			h.writeError(w, r, http.StatusNotFound, "order not found")
			return
		}
		logger.Error("failed to confirm payment", "error", err)
		h.writeError(w, r, http.StatusInternalServerError, "failed to confirm payment")
		return
	}

	h.writeJSON(w, r, http.StatusOK, orderSuccessResponse{
		ID:      order.ID,
		Sum:     catalog.FormatPrice(order.TotalAmount),
		Message: services.PaymentSuccessMessage(order),
	})
}
