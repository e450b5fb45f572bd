// Package pricing composes the checkout-time payment and coupon discounts
// into the final payable total. Configuration
// is injected at call time rather than read from ambient state, with the
// server-configured percentages falling back to named defaults.
package pricing

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/rentkart/rentkart/internal/domain/cart"
	"github.com/rentkart/rentkart/internal/domain/coupon"
	"github.com/rentkart/rentkart/internal/money"
)

// Client-side defaults, used whenever the settings fetch has not completed
// or failed.
var (
	DefaultInstantDiscountPercent = decimal.NewFromInt(10)
	DefaultAdvanceDiscountPercent = decimal.NewFromInt(5)
)

// ErrNothingPayable rejects a quote whose final total is not positive;
// order placement must not proceed from it.
var ErrNothingPayable = errors.New("final total must be positive")

// Config carries the payment-discount percentages for a single composition.
type Config struct {
	InstantPaymentDiscountPercent decimal.Decimal
	AdvancePaymentDiscountPercent decimal.Decimal
	AdvancePaymentAmount          decimal.Decimal
}

// DefaultConfig returns the client-side fallback configuration.
func DefaultConfig() Config {
	return Config{
		InstantPaymentDiscountPercent: DefaultInstantDiscountPercent,
		AdvancePaymentDiscountPercent: DefaultAdvanceDiscountPercent,
	}
}

// Quote is the complete monetary breakdown of a checkout.
type Quote struct {
	Subtotal        decimal.Decimal `json:"subtotal"`
	PaymentDiscount decimal.Decimal `json:"paymentDiscount"`
	CouponDiscount  decimal.Decimal `json:"couponDiscount"`
	Discount        decimal.Decimal `json:"discount"`
	FinalTotal      decimal.Decimal `json:"finalTotal"`
	CouponCode      string          `json:"couponCode,omitempty"`
}

// Composer produces checkout quotes. The coupon validator is consulted only
// when a code is supplied.
type Composer struct {
	coupons coupon.Validator
}

// NewComposer creates a Composer with the given coupon validator.
func NewComposer(coupons coupon.Validator) *Composer {
	return &Composer{coupons: coupons}
}

// Compose computes the quote for a subtotal: payment discount first, then
// coupon discount, both off the subtotal, with the final total clamped at
// zero. Coupon rejection surfaces as an error; the caller decides whether to
// re-quote without the code.
func (c *Composer) Compose(
	ctx context.Context,
	subtotal decimal.Decimal,
	opt cart.PaymentOption,
	couponCode string,
	cfg Config,
) (Quote, error) {
	q := Quote{
		Subtotal:        money.Round(subtotal),
		PaymentDiscount: decimal.Zero,
		CouponDiscount:  decimal.Zero,
	}

	switch opt {
	case cart.PayNow:
		q.PaymentDiscount = money.DiscountAmount(q.Subtotal, cfg.InstantPaymentDiscountPercent)
	case cart.PayAdvance:
		q.PaymentDiscount = money.DiscountAmount(q.Subtotal, cfg.AdvancePaymentDiscountPercent)
	}

	if couponCode != "" {
		d, err := c.coupons.Validate(ctx, couponCode, q.Subtotal)
		if err != nil {
			return Quote{}, err
		}
		q.CouponDiscount = d.Amount
		q.CouponCode = d.Code
	}

	q.Discount = money.Round(q.PaymentDiscount.Add(q.CouponDiscount))
	q.FinalTotal = money.FinalTotal(q.Subtotal, q.PaymentDiscount, q.CouponDiscount)
	return q, nil
}
