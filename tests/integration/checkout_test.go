//go:build integration

package integration

import (
	"net/http"
	"testing"
)

func TestQuote_PayNow(t *testing.T) {
	cart := asCart("it-quote-paynow")

	resp := doPost(t, "/api/cart/rentals", map[string]any{
		"productId":      "wm-ifb-front-7kg",
		"durationMonths": 3,
	}, cart)
	resp.Body.Close()

	quoteResp := doPost(t, "/api/checkout/quote", map[string]any{
		"paymentOption": "payNow",
	}, cart)
	defer quoteResp.Body.Close()

	q := decodeEnvelope[quoteResponse](t, quoteResp)
	if q.Subtotal != 1300 {
		t.Errorf("subtotal: got %v, want 1300", q.Subtotal)
	}
	if q.PaymentDiscount != 130 {
		t.Errorf("paymentDiscount: got %v, want 130", q.PaymentDiscount)
	}
	if q.FinalTotal != 1170 {
		t.Errorf("finalTotal: got %v, want 1170", q.FinalTotal)
	}
}

func TestQuote_CouponStacks(t *testing.T) {
	cart := asCart("it-quote-coupon")

	resp := doPost(t, "/api/cart/rentals", map[string]any{
		"productId":      "wm-ifb-front-7kg",
		"durationMonths": 3,
	}, cart)
	resp.Body.Close()

	quoteResp := doPost(t, "/api/checkout/quote", map[string]any{
		"paymentOption": "payNow",
		"couponCode":    "WELCOME10",
	}, cart)
	defer quoteResp.Body.Close()

	// Both discounts come off the subtotal: 130 + 130.
	q := decodeEnvelope[quoteResponse](t, quoteResp)
	if q.Discount != 260 {
		t.Errorf("discount: got %v, want 260", q.Discount)
	}
	if q.FinalTotal != 1040 {
		t.Errorf("finalTotal: got %v, want 1040", q.FinalTotal)
	}
}

func TestPlaceOrder_NoAuth(t *testing.T) {
	resp := doPost(t, "/api/checkout/orders", map[string]any{
		"paymentOption": "payLater",
	}, asCart("it-order-noauth"))
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	token := issueToken(t, "it-user-empty")

	resp := doPost(t, "/api/checkout/orders", map[string]any{
		"paymentOption": "payLater",
		"customer":      map[string]any{"name": "Tester", "phone": "9876543210", "address": "14 MG Road"},
	}, asUser(token))
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestPlaceOrder_PayLater(t *testing.T) {
	token := issueToken(t, "it-user-paylater")

	resp := doPost(t, "/api/cart/rentals", map[string]any{
		"productId":      "wm-ifb-front-7kg",
		"durationMonths": 3,
	}, asUser(token))
	resp.Body.Close()

	orderResp := doPost(t, "/api/checkout/orders", map[string]any{
		"paymentOption": "payLater",
		"customer":      map[string]any{"name": "Tester", "phone": "9876543210", "address": "14 MG Road"},
	}, asUser(token))
	defer orderResp.Body.Close()

	if orderResp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", orderResp.StatusCode)
	}

	placed := decodeEnvelope[placeOrderResponse](t, orderResp)
	if placed.Order == nil {
		t.Fatal("order missing from response")
	}
	if placed.Order.PaymentState != "pending" {
		t.Errorf("paymentState: got %q, want pending", placed.Order.PaymentState)
	}
	if placed.Order.FinalTotal != 1300 {
		t.Errorf("finalTotal: got %v, want 1300", placed.Order.FinalTotal)
	}
	if placed.GatewayOrder != nil {
		t.Error("postpaid order should not open a gateway order")
	}

	// Checkout empties the cart.
	cartResp := doGet(t, "/api/cart", asUser(token))
	defer cartResp.Body.Close()
	if items := decodeEnvelope[[]cartItemResponse](t, cartResp); len(items) != 0 {
		t.Errorf("expected cleared cart, got %d items", len(items))
	}

	// And the order shows up in the history.
	listResp := doGet(t, "/api/orders", asUser(token))
	defer listResp.Body.Close()
	orders := decodeEnvelope[[]orderResponse](t, listResp)
	if len(orders) != 1 || orders[0].ID != placed.Order.ID {
		t.Errorf("order history: got %v", orders)
	}
}

func TestGetOrder_OtherUser(t *testing.T) {
	owner := issueToken(t, "it-user-owner")

	resp := doPost(t, "/api/cart/rentals", map[string]any{
		"productId": "wm-ifb-front-7kg",
	}, asUser(owner))
	resp.Body.Close()

	orderResp := doPost(t, "/api/checkout/orders", map[string]any{
		"paymentOption": "payLater",
		"customer":      map[string]any{"name": "Tester", "phone": "9876543210", "address": "14 MG Road"},
	}, asUser(owner))
	placed := decodeEnvelope[placeOrderResponse](t, orderResp)
	orderResp.Body.Close()

	stranger := issueToken(t, "it-user-stranger")
	getResp := doGet(t, "/api/orders/"+placed.Order.ID, asUser(stranger))
	defer getResp.Body.Close()

	if getResp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for another user's order, got %d", getResp.StatusCode)
	}
}
