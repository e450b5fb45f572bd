package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/rentkart/rentkart/internal/domain/booking"
	"github.com/rentkart/rentkart/internal/domain/cart"
	"github.com/rentkart/rentkart/internal/domain/catalog"
	"github.com/rentkart/rentkart/internal/domain/coupon"
	"github.com/rentkart/rentkart/internal/domain/order"
	"github.com/rentkart/rentkart/internal/domain/pricing"
)

// envelope is the uniform response shape consumed by the storefront client.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	// Fields carries per-field validation messages for inline display.
	Fields map[string]string `json:"fields,omitempty"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		h.lg.Error("encoding response failed", zap.Error(err))
	}
}

func (h *Handler) ok(w http.ResponseWriter, data any) {
	h.writeJSON(w, http.StatusOK, envelope{Success: true, Data: data})
}

func (h *Handler) created(w http.ResponseWriter, data any) {
	h.writeJSON(w, http.StatusCreated, envelope{Success: true, Data: data})
}

func (h *Handler) fail(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, envelope{Success: false, Message: message})
}

func (h *Handler) badRequest(w http.ResponseWriter, message string) {
	h.fail(w, http.StatusBadRequest, message)
}

// failErr maps domain errors to envelope responses. Unknown errors are
// logged and surfaced as a generic message so internals never leak.
func (h *Handler) failErr(w http.ResponseWriter, err error) {
	var vErr *booking.ValidationError
	if errors.As(err, &vErr) {
		h.writeJSON(w, http.StatusUnprocessableEntity, envelope{
			Success: false,
			Message: "Please fix the highlighted fields",
			Fields:  vErr.Fields,
		})
		return
	}

	var gwErr *order.GatewayError
	if errors.As(err, &gwErr) {
		// The order is saved and retryable; tell the customer that.
		h.writeJSON(w, http.StatusBadGateway, envelope{
			Success: false,
			Message: "Your order is saved, but the payment could not be started. Please retry payment.",
			Data:    map[string]string{"orderId": gwErr.OrderID},
		})
		return
	}

	switch {
	case errors.Is(err, catalog.ErrNotFound):
		h.fail(w, http.StatusNotFound, "Not found")
	case errors.Is(err, cart.ErrItemNotFound):
		h.fail(w, http.StatusNotFound, "Cart item not found")
	case errors.Is(err, order.ErrNotFound):
		h.fail(w, http.StatusNotFound, "Order not found")
	case errors.Is(err, booking.ErrSessionNotFound):
		h.fail(w, http.StatusNotFound, "Booking session not found")
	case errors.Is(err, booking.ErrNotAtReview):
		h.badRequest(w, "Booking is not ready to submit")
	case errors.Is(err, coupon.ErrInvalidCoupon):
		h.fail(w, http.StatusUnprocessableEntity, "Invalid coupon code")
	case errors.Is(err, coupon.ErrCouponExpired):
		h.fail(w, http.StatusUnprocessableEntity, "This coupon has expired")
	case errors.Is(err, coupon.ErrCouponMinAmount):
		h.fail(w, http.StatusUnprocessableEntity, "Your order does not meet this coupon's minimum amount")
	case errors.Is(err, coupon.ErrCouponUsageLimitReached):
		h.fail(w, http.StatusUnprocessableEntity, "This coupon has been fully redeemed")
	case errors.Is(err, order.ErrEmptyCart):
		h.badRequest(w, "Your cart is empty")
	case errors.Is(err, pricing.ErrNothingPayable):
		h.badRequest(w, "Nothing payable on this order")
	case errors.Is(err, order.ErrBadSignature):
		h.fail(w, http.StatusUnprocessableEntity, "Payment verification failed. Please retry payment.")
	default:
		h.lg.Error("request failed", zap.Error(err))
		h.fail(w, http.StatusInternalServerError, "Something went wrong. Please try again.")
	}
}

// decode parses a JSON request body into dst.
func decode(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
