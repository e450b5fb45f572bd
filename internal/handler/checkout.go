package handler

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/shopspring/decimal"

	"github.com/rentkart/rentkart/internal/auth"
	"github.com/rentkart/rentkart/internal/domain/cart"
	"github.com/rentkart/rentkart/internal/domain/order"
	"github.com/rentkart/rentkart/internal/payment"
)

type quoteRequest struct {
	PaymentOption cart.PaymentOption `json:"paymentOption"`
	CouponCode    string             `json:"couponCode"`
}

// Quote prices the current cart under the chosen payment option and coupon
// without placing anything.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	store, ok := h.cartStore(r)
	if !ok {
		h.badRequest(w, "Missing cart identity")
		return
	}
	var req quoteRequest
	if err := decode(r, &req); err != nil {
		h.badRequest(w, "Invalid request body")
		return
	}

	totals, err := store.Totals(r.Context())
	if err != nil {
		h.failErr(w, err)
		return
	}
	cfg := h.settings.Payment(r.Context())
	quote, err := h.composer.Compose(r.Context(), totals.Subtotal, req.PaymentOption, req.CouponCode, cfg)
	if err != nil {
		h.failErr(w, err)
		return
	}
	h.ok(w, quote)
}

type placeOrderRequest struct {
	PaymentOption cart.PaymentOption `json:"paymentOption"`
	CouponCode    string             `json:"couponCode"`
	Customer      order.Customer     `json:"customer"`
}

type placeOrderResponse struct {
	Order        *orderView            `json:"order"`
	GatewayOrder *payment.GatewayOrder `json:"gatewayOrder,omitempty"`
}

// PlaceOrder checks out the authenticated customer's cart.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := auth.UserID(r.Context())
	store, ok := h.cartStore(r)
	if !ok {
		h.badRequest(w, "Missing cart identity")
		return
	}
	var req placeOrderRequest
	if err := decode(r, &req); err != nil {
		h.badRequest(w, "Invalid request body")
		return
	}
	switch req.PaymentOption {
	case cart.PayNow, cart.PayLater, cart.PayAdvance:
	default:
		h.badRequest(w, "Unknown payment option")
		return
	}

	result, err := h.orders.PlaceOrder(r.Context(), store, userID, order.PlaceOrderRequest{
		PaymentOption: req.PaymentOption,
		CouponCode:    req.CouponCode,
		Customer:      req.Customer,
	})
	if err != nil {
		h.failErr(w, err)
		return
	}
	h.created(w, placeOrderResponse{
		Order:        newOrderView(result.Order),
		GatewayOrder: result.GatewayOrder,
	})
}

// ListOrders returns the authenticated customer's order history.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	orders, err := h.orders.ListForUser(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		h.failErr(w, err)
		return
	}
	out := make([]*orderView, 0, len(orders))
	for i := range orders {
		out = append(out, newOrderView(&orders[i]))
	}
	h.ok(w, out)
}

// GetOrder returns a single order, owner-scoped.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	o, err := h.orders.Get(r.Context(), ps.ByName("id"), auth.UserID(r.Context()))
	if err != nil {
		h.failErr(w, err)
		return
	}
	h.ok(w, newOrderView(o))
}

// VerifyPayment settles an order from the gateway's checkout callback. The
// endpoint is deliberately unauthenticated: the proof signature is the
// credential.
func (h *Handler) VerifyPayment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var proof payment.Proof
	if err := decode(r, &proof); err != nil {
		h.badRequest(w, "Invalid request body")
		return
	}
	state, err := h.orders.ConfirmPayment(r.Context(), ps.ByName("id"), proof)
	if err != nil {
		h.failErr(w, err)
		return
	}
	h.ok(w, map[string]string{"paymentState": string(state)})
}

type paymentFailedRequest struct {
	Code payment.ErrorCode `json:"code"`
}

// PaymentFailed records a gateway-reported failure. The order stays pending
// and retryable; the response carries the message to show the customer.
func (h *Handler) PaymentFailed(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req paymentFailedRequest
	if err := decode(r, &req); err != nil {
		h.badRequest(w, "Invalid request body")
		return
	}
	state, err := h.orders.RecordPaymentFailure(r.Context(), ps.ByName("id"), req.Code)
	if err != nil {
		h.failErr(w, err)
		return
	}
	h.ok(w, map[string]string{
		"paymentState": string(state),
		"message":      payment.UserMessage(req.Code),
	})
}

// orderView is the JSON shape of an order in API responses.
type orderView struct {
	ID              string             `json:"id"`
	Items           []cart.Item        `json:"items"`
	Subtotal        decimal.Decimal    `json:"subtotal"`
	PaymentDiscount decimal.Decimal    `json:"paymentDiscount"`
	CouponDiscount  decimal.Decimal    `json:"couponDiscount"`
	Discount        decimal.Decimal    `json:"discount"`
	FinalTotal      decimal.Decimal    `json:"finalTotal"`
	CouponCode      string             `json:"couponCode,omitempty"`
	PaymentOption   cart.PaymentOption `json:"paymentOption"`
	PaymentState    order.PaymentState `json:"paymentState"`
	GatewayOrderID  string             `json:"gatewayOrderId,omitempty"`
	Customer        order.Customer     `json:"customer"`
	CreatedAt       time.Time          `json:"createdAt"`
}

func newOrderView(o *order.Order) *orderView {
	return &orderView{
		ID:              o.ID,
		Items:           o.Items,
		Subtotal:        o.Subtotal,
		PaymentDiscount: o.PaymentDiscount,
		CouponDiscount:  o.CouponDiscount,
		Discount:        o.Discount,
		FinalTotal:      o.FinalTotal,
		CouponCode:      o.CouponCode,
		PaymentOption:   o.PaymentOption,
		PaymentState:    o.PaymentState,
		GatewayOrderID:  o.GatewayOrderID,
		Customer:        o.Customer,
		CreatedAt:       o.CreatedAt,
	}
}
