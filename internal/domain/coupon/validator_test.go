package coupon

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	rules     map[string]*Rule
	redeemed  []string
	redeemErr error
}

func (f *fakeRepo) FindByCode(_ context.Context, code string) (*Rule, error) {
	rule, ok := f.rules[code]
	if !ok {
		return nil, ErrInvalidCoupon
	}
	cp := *rule
	return &cp, nil
}

func (f *fakeRepo) List(context.Context) ([]Rule, error) {
	out := make([]Rule, 0, len(f.rules))
	for _, r := range f.rules {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeRepo) IncrementUses(_ context.Context, code string) error {
	if f.redeemErr != nil {
		return f.redeemErr
	}
	f.redeemed = append(f.redeemed, code)
	return nil
}

func newValidatorAt(repo Repository, now time.Time) *RepoValidator {
	v := NewRepoValidator(repo)
	v.now = func() time.Time { return now }
	return v
}

func TestValidate_Percentage(t *testing.T) {
	repo := &fakeRepo{rules: map[string]*Rule{
		"WELCOME10": {Code: "WELCOME10", DiscountType: DiscountPercentage, Value: decimal.NewFromInt(10)},
	}}
	v := newValidatorAt(repo, time.Now())

	d, err := v.Validate(context.Background(), "WELCOME10", decimal.NewFromInt(2300))
	require.NoError(t, err)
	assert.True(t, d.Amount.Equal(decimal.NewFromInt(230)), "got %s", d.Amount)
	assert.Empty(t, repo.redeemed, "validation must not consume a use")
}

func TestValidate_FixedClampsToSubtotal(t *testing.T) {
	repo := &fakeRepo{rules: map[string]*Rule{
		"FLAT3000": {Code: "FLAT3000", DiscountType: DiscountFixed, Value: decimal.NewFromInt(3000)},
	}}
	v := newValidatorAt(repo, time.Now())

	d, err := v.Validate(context.Background(), "FLAT3000", decimal.NewFromInt(2300))
	require.NoError(t, err)
	assert.True(t, d.Amount.Equal(decimal.NewFromInt(2300)),
		"fixed discount never exceeds the subtotal, got %s", d.Amount)
}

func TestValidate_Rejections(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	repo := &fakeRepo{rules: map[string]*Rule{
		"EXPIRED": {Code: "EXPIRED", DiscountType: DiscountPercentage, Value: decimal.NewFromInt(10), ValidUntil: &past},
		"NOTYET":  {Code: "NOTYET", DiscountType: DiscountPercentage, Value: decimal.NewFromInt(10), ValidFrom: &future},
		"MIN5000": {Code: "MIN5000", DiscountType: DiscountPercentage, Value: decimal.NewFromInt(10), MinAmount: decimal.NewFromInt(5000)},
		"USEDUP":  {Code: "USEDUP", DiscountType: DiscountPercentage, Value: decimal.NewFromInt(10), MaxUses: 5, Uses: 5},
	}}
	v := newValidatorAt(repo, now)
	subtotal := decimal.NewFromInt(2300)

	tests := []struct {
		code    string
		wantErr error
	}{
		{"NOSUCH", ErrInvalidCoupon},
		{"EXPIRED", ErrCouponExpired},
		{"NOTYET", ErrCouponExpired},
		{"MIN5000", ErrCouponMinAmount},
		{"USEDUP", ErrCouponUsageLimitReached},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			_, err := v.Validate(context.Background(), tt.code, subtotal)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRedeem(t *testing.T) {
	repo := &fakeRepo{rules: map[string]*Rule{}}
	v := NewRepoValidator(repo)

	require.NoError(t, v.Redeem(context.Background(), "WELCOME10"))
	assert.Equal(t, []string{"WELCOME10"}, repo.redeemed)
}

func TestApply_UnsupportedType(t *testing.T) {
	_, err := Apply(&Rule{Code: "X", DiscountType: "bogo"}, decimal.NewFromInt(100))
	assert.Error(t, err)
}

func TestApply_NegativeFixedValue(t *testing.T) {
	d, err := Apply(&Rule{Code: "X", DiscountType: DiscountFixed, Value: decimal.NewFromInt(-50)}, decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.True(t, d.Amount.IsZero())
}
