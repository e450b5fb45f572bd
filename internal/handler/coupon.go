package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/shopspring/decimal"

	"github.com/rentkart/rentkart/internal/domain/coupon"
)

// ListCoupons returns the currently redeemable coupons for display.
func (h *Handler) ListCoupons(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	rules, err := h.coupons.List(r.Context())
	if err != nil {
		h.failErr(w, err)
		return
	}
	out := make([]couponView, 0, len(rules))
	for _, rule := range rules {
		out = append(out, newCouponView(rule))
	}
	h.ok(w, out)
}

type couponView struct {
	Code         string          `json:"code"`
	Title        string          `json:"title"`
	Description  string          `json:"description,omitempty"`
	DiscountType string          `json:"discountType"`
	Value        decimal.Decimal `json:"value"`
	MinAmount    decimal.Decimal `json:"minAmount"`
}

func newCouponView(rule coupon.Rule) couponView {
	return couponView{
		Code:         rule.Code,
		Title:        rule.Title,
		Description:  rule.Description,
		DiscountType: string(rule.DiscountType),
		Value:        rule.Value,
		MinAmount:    rule.MinAmount,
	}
}

type validateCouponRequest struct {
	Code string `json:"code"`
}

type validateCouponResponse struct {
	Code        string          `json:"code"`
	Amount      decimal.Decimal `json:"amount"`
	Title       string          `json:"title,omitempty"`
	Description string          `json:"description,omitempty"`
}

// ValidateCoupon checks a code against the caller's current cart subtotal
// and returns the discount it would grant.
func (h *Handler) ValidateCoupon(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	store, ok := h.cartStore(r)
	if !ok {
		h.badRequest(w, "Missing cart identity")
		return
	}
	var req validateCouponRequest
	if err := decode(r, &req); err != nil {
		h.badRequest(w, "Invalid request body")
		return
	}
	if req.Code == "" {
		h.badRequest(w, "code is required")
		return
	}

	totals, err := store.Totals(r.Context())
	if err != nil {
		h.failErr(w, err)
		return
	}
	d, err := h.validator.Validate(r.Context(), req.Code, totals.Subtotal)
	if err != nil {
		h.failErr(w, err)
		return
	}
	h.ok(w, validateCouponResponse{
		Code:        d.Code,
		Amount:      d.Amount,
		Title:       d.Title,
		Description: d.Description,
	})
}
