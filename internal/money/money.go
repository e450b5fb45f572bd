// Package money provides the rounding and discount arithmetic primitives used
// by the cart and pricing packages. All amounts are decimal.Decimal; chained
// discount computations go through Round so intermediate results never carry
// more than two fractional digits.
package money

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Round rounds to 2 decimal places, half away from zero.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// DiscountAmount returns the rounded discount for the given percentage of
// base. Non-positive percentages yield zero; the result is never negative.
func DiscountAmount(base, percent decimal.Decimal) decimal.Decimal {
	if percent.Sign() <= 0 {
		return decimal.Zero
	}
	amount := base.Mul(percent).Div(hundred)
	if amount.IsNegative() {
		return decimal.Zero
	}
	return Round(amount)
}

// FinalTotal composes the payable total from a subtotal and the two
// checkout-time discounts. Each operand is rounded independently and the
// result is clamped at zero: discounts can never drive the total negative.
func FinalTotal(subtotal, paymentDiscount, couponDiscount decimal.Decimal) decimal.Decimal {
	total := Round(subtotal).Sub(Round(paymentDiscount)).Sub(Round(couponDiscount))
	if total.IsNegative() {
		return decimal.Zero
	}
	return Round(total)
}
