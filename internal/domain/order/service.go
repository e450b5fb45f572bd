package order

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rentkart/rentkart/internal/domain/cart"
	"github.com/rentkart/rentkart/internal/domain/coupon"
	"github.com/rentkart/rentkart/internal/domain/pricing"
	"github.com/rentkart/rentkart/internal/domain/settings"
	"github.com/rentkart/rentkart/internal/payment"
)

// Sentinel errors for order placement and settlement.
var (
	ErrEmptyCart    = errors.New("cart is empty")
	ErrBadSignature = errors.New("payment signature verification failed")
)

// GatewayError wraps a payment-gateway failure during placement. The order
// itself is already persisted as pending, so the customer can retry payment.
type GatewayError struct {
	OrderID string
	Err     error
}

func (e *GatewayError) Error() string {
	return "create gateway order for " + e.OrderID + ": " + e.Err.Error()
}

func (e *GatewayError) Unwrap() error { return e.Err }

// PlaceOrderRequest holds the checkout input.
type PlaceOrderRequest struct {
	PaymentOption cart.PaymentOption
	CouponCode    string
	Customer      Customer
}

// PlaceOrderResult holds the placed order and, for prepaid options, the
// gateway order the hosted checkout should be opened with.
type PlaceOrderResult struct {
	Order        *Order
	GatewayOrder *payment.GatewayOrder
}

// Service encapsulates checkout business logic.
type Service struct {
	composer *pricing.Composer
	settings *settings.Service
	gateway  payment.Gateway
	secret   []byte
	orders   Repository
	coupons  coupon.Redeemer
	lg       *zap.Logger
}

// NewService creates an order Service with the required collaborators.
// secret is the gateway signing secret used for callback verification.
func NewService(
	composer *pricing.Composer,
	st *settings.Service,
	gateway payment.Gateway,
	secret []byte,
	orders Repository,
	coupons coupon.Redeemer,
	lg *zap.Logger,
) *Service {
	return &Service{
		composer: composer,
		settings: st,
		gateway:  gateway,
		secret:   secret,
		orders:   orders,
		coupons:  coupons,
		lg:       lg,
	}
}

// PlaceOrder snapshots the customer's cart, composes the payable total,
// persists the order, clears the cart, and for prepaid options creates the
// gateway order. A quote whose final total is not positive rejects the
// placement before anything is sent.
func (s *Service) PlaceOrder(ctx context.Context, store *cart.Store, userID string, req PlaceOrderRequest) (*PlaceOrderResult, error) {
	items, err := store.Items(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "read cart")
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	totals := cart.CalcTotals(items)
	cfg := s.settings.Payment(ctx)

	quote, err := s.composer.Compose(ctx, totals.Subtotal, req.PaymentOption, req.CouponCode, cfg)
	if err != nil {
		return nil, err
	}
	if quote.FinalTotal.Sign() <= 0 {
		return nil, pricing.ErrNothingPayable
	}

	o := &Order{
		ID:              uuid.New().String(),
		UserID:          userID,
		Items:           items,
		Subtotal:        quote.Subtotal,
		PaymentDiscount: quote.PaymentDiscount,
		CouponDiscount:  quote.CouponDiscount,
		Discount:        quote.Discount,
		FinalTotal:      quote.FinalTotal,
		CouponCode:      quote.CouponCode,
		PaymentOption:   req.PaymentOption,
		PaymentState:    PaymentPending,
		Customer:        req.Customer,
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, errors.Wrap(err, "create order")
	}

	if o.CouponCode != "" {
		// Usage accounting is best effort once the order exists.
		if err := s.coupons.Redeem(ctx, o.CouponCode); err != nil {
			s.lg.Warn("recording coupon redemption failed",
				zap.String("order", o.ID),
				zap.String("coupon", o.CouponCode),
				zap.Error(err))
		}
	}

	if err := store.Clear(ctx); err != nil {
		// The order exists; an uncleared cart is recoverable on next load.
		s.lg.Warn("clearing cart after checkout failed",
			zap.String("order", o.ID), zap.Error(err))
	}

	result := &PlaceOrderResult{Order: o}
	if req.PaymentOption == cart.PayNow || req.PaymentOption == cart.PayAdvance {
		amount := quote.FinalTotal
		if req.PaymentOption == cart.PayAdvance && cfg.AdvancePaymentAmount.Sign() > 0 {
			amount = cfg.AdvancePaymentAmount
		}
		gw, err := s.gateway.CreateOrder(ctx, amount, o.ID)
		if err != nil {
			return result, &GatewayError{OrderID: o.ID, Err: err}
		}
		if err := s.orders.SetGatewayOrder(ctx, o.ID, gw.ID); err != nil {
			return result, errors.Wrap(err, "record gateway order")
		}
		o.GatewayOrderID = gw.ID
		result.GatewayOrder = gw
	}

	return result, nil
}

// ConfirmPayment verifies the gateway proof for an order and settles it as
// paid. Settlement is idempotent under at-least-once callback delivery: a
// replayed or late verification observes the already-settled state instead
// of transitioning twice. An invalid signature leaves the order pending so
// payment can be retried.
func (s *Service) ConfirmPayment(ctx context.Context, orderID string, proof payment.Proof) (PaymentState, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return "", err
	}

	if o.PaymentState != PaymentPending {
		return o.PaymentState, nil
	}

	if !payment.VerifyProof(proof, o.GatewayOrderID, s.secret) {
		return PaymentPending, ErrBadSignature
	}

	state, err := s.orders.SettlePayment(ctx, orderID, proof.PaymentID)
	if err != nil {
		return "", errors.Wrap(err, "settle payment")
	}
	return state, nil
}

// RecordPaymentFailure logs a gateway-reported failure. The order stays
// pending on purpose: the customer retries payment instead of losing the
// order.
func (s *Service) RecordPaymentFailure(ctx context.Context, orderID string, code payment.ErrorCode) (PaymentState, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return "", err
	}
	if o.PaymentState == PaymentPending {
		s.lg.Info("payment failed, order retryable",
			zap.String("order", orderID),
			zap.String("code", string(code)),
		)
	}
	return o.PaymentState, nil
}

// Get returns a single order, scoped to its owner.
func (s *Service) Get(ctx context.Context, orderID, userID string) (*Order, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, ErrNotFound
	}
	return o, nil
}

// ListForUser returns the customer's order history, newest first.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]Order, error) {
	return s.orders.ListByUser(ctx, userID)
}
