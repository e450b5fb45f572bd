// Package order implements checkout: snapshotting the cart into an order,
// composing the final price, creating the payment-gateway order, and settling
// payment callbacks idempotently.
package order

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/rentkart/rentkart/internal/domain/cart"
)

// PaymentState tracks settlement of an order's payment.
type PaymentState string

const (
	// PaymentPending means no successful verification has been recorded. A
	// gateway-reported failure keeps the order pending so the customer can
	// retry payment without losing the order.
	PaymentPending PaymentState = "pending"
	PaymentPaid    PaymentState = "paid"
)

// ErrNotFound is returned when no order exists for the given id.
var ErrNotFound = errors.New("order not found")

// Customer is the delivery and contact metadata captured at checkout.
type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address"`
	City    string `json:"city,omitempty"`
	Pincode string `json:"pincode,omitempty"`
}

// Order is the checkout snapshot sent for settlement. Items are frozen copies
// of the cart entries at placement time.
type Order struct {
	ID              string
	UserID          string
	Items           []cart.Item
	Subtotal        decimal.Decimal
	PaymentDiscount decimal.Decimal
	CouponDiscount  decimal.Decimal
	Discount        decimal.Decimal
	FinalTotal      decimal.Decimal
	CouponCode      string
	PaymentOption   cart.PaymentOption
	PaymentState    PaymentState
	GatewayOrderID  string
	PaymentID       string
	Customer        Customer
	CreatedAt       time.Time
}

// Repository defines persistence operations for orders.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	SetGatewayOrder(ctx context.Context, orderID, gatewayOrderID string) error
	// SettlePayment transitions a pending order to paid and returns the
	// state the order ends up in. The transition fires at most once:
	// replays and late callbacks observe the already-settled state.
	SettlePayment(ctx context.Context, orderID, paymentID string) (PaymentState, error)
}
