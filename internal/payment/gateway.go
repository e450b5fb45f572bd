// Package payment integrates the hosted payment gateway: order creation,
// callback signature verification, and mapping of gateway failure codes to
// user-facing messages.
package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"github.com/shopspring/decimal"
)

// GatewayOrder is the gateway-side counterpart of a storefront order. Its id
// is what the hosted checkout is opened with.
type GatewayOrder struct {
	ID       string          `json:"id"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Receipt  string          `json:"receipt"`
}

// Proof is the gateway-issued evidence of a completed payment, forwarded by
// the client for verification.
type Proof struct {
	GatewayOrderID string `json:"razorpay_order_id"`
	PaymentID      string `json:"razorpay_payment_id"`
	Signature      string `json:"razorpay_signature"`
}

// Gateway creates payment orders with the external provider.
type Gateway interface {
	CreateOrder(ctx context.Context, amount decimal.Decimal, receipt string) (*GatewayOrder, error)
}

// Sign computes the callback signature the gateway issues for a captured
// payment: hex HMAC-SHA256 of "<gatewayOrderID>|<paymentID>".
func Sign(gatewayOrderID, paymentID string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(gatewayOrderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyProof checks a payment proof against the expected gateway order id
// using a constant-time comparison.
func VerifyProof(p Proof, expectedGatewayOrderID string, secret []byte) bool {
	if p.GatewayOrderID == "" || p.GatewayOrderID != expectedGatewayOrderID {
		return false
	}
	want := Sign(p.GatewayOrderID, p.PaymentID, secret)
	return hmac.Equal([]byte(want), []byte(p.Signature))
}

// ErrorCode classifies gateway-reported failures.
type ErrorCode string

const (
	ErrCodeBadRequest   ErrorCode = "BAD_REQUEST_ERROR"
	ErrCodeGatewayError ErrorCode = "GATEWAY_ERROR"
	ErrCodeNetworkError ErrorCode = "NETWORK_ERROR"
)

// UserMessage maps a gateway failure code to the string shown to the
// customer. Unknown codes fall back to a generic message.
func UserMessage(code ErrorCode) string {
	switch code {
	case ErrCodeBadRequest:
		return "Payment was declined. Please check your payment details and try again."
	case ErrCodeGatewayError:
		return "The payment provider is having trouble. Please try again in a few minutes."
	case ErrCodeNetworkError:
		return "Network error during payment. If money was deducted, it will be refunded."
	default:
		return "Payment failed. Please try again."
	}
}
