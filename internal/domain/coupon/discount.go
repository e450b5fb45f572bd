package coupon

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/rentkart/rentkart/internal/money"
)

// Apply calculates the discount for the given rule against a checkout
// subtotal. Eligibility is checked before any arithmetic: a subtotal below
// the rule's minimum amount rejects the coupon outright.
func Apply(rule *Rule, subtotal decimal.Decimal) (Discount, error) {
	if rule.MinAmount.Sign() > 0 && subtotal.LessThan(rule.MinAmount) {
		return Discount{}, ErrCouponMinAmount
	}

	var amount decimal.Decimal
	switch rule.DiscountType {
	case DiscountPercentage:
		amount = money.DiscountAmount(subtotal, rule.Value)
	case DiscountFixed:
		// A fixed discount never exceeds what is actually payable.
		amount = money.Round(decimal.Min(rule.Value, subtotal))
		if amount.IsNegative() {
			amount = decimal.Zero
		}
	default:
		return Discount{}, errors.Errorf("unsupported discount type: %q", rule.DiscountType)
	}

	return Discount{
		Code:        rule.Code,
		Amount:      amount,
		Title:       rule.Title,
		Description: rule.Description,
	}, nil
}
