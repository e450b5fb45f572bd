package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rentkart/rentkart/internal/auth"
	"github.com/rentkart/rentkart/internal/domain/booking"
	"github.com/rentkart/rentkart/internal/domain/cart"
	"github.com/rentkart/rentkart/internal/domain/catalog"
	"github.com/rentkart/rentkart/internal/domain/coupon"
	"github.com/rentkart/rentkart/internal/domain/order"
	"github.com/rentkart/rentkart/internal/domain/pricing"
	"github.com/rentkart/rentkart/internal/domain/settings"
	"github.com/rentkart/rentkart/internal/payment"
	"github.com/rentkart/rentkart/internal/storage/memory"
)

type fakeCatalog struct {
	products map[string]catalog.Product
}

func (f *fakeCatalog) List(ctx context.Context, category string) ([]catalog.Product, error) {
	var out []catalog.Product
	for _, p := range f.products {
		if category == "" || p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeCatalog) GetByID(ctx context.Context, id string) (*catalog.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return &p, nil
}

type fakeServices struct {
	services map[string]catalog.Service
}

func (f *fakeServices) List(ctx context.Context) ([]catalog.Service, error) {
	var out []catalog.Service
	for _, s := range f.services {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeServices) GetByID(ctx context.Context, id string) (*catalog.Service, error) {
	s, ok := f.services[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return &s, nil
}

type fakeCouponRepo struct {
	rules map[string]coupon.Rule
}

func (f *fakeCouponRepo) FindByCode(ctx context.Context, code string) (*coupon.Rule, error) {
	rule, ok := f.rules[code]
	if !ok {
		return nil, coupon.ErrInvalidCoupon
	}
	return &rule, nil
}

func (f *fakeCouponRepo) List(ctx context.Context) ([]coupon.Rule, error) {
	var out []coupon.Rule
	for _, rule := range f.rules {
		out = append(out, rule)
	}
	return out, nil
}

func (f *fakeCouponRepo) IncrementUses(ctx context.Context, code string) error { return nil }

type fakeSettingsRepo struct{}

func (fakeSettingsRepo) GetPayment(ctx context.Context) (*pricing.Config, error) {
	return &pricing.Config{
		InstantPaymentDiscountPercent: decimal.NewFromInt(10),
		AdvancePaymentDiscountPercent: decimal.NewFromInt(5),
		AdvancePaymentAmount:          decimal.NewFromInt(500),
	}, nil
}

type fakeOrderRepo struct {
	orders map[string]*order.Order
}

func (r *fakeOrderRepo) Create(ctx context.Context, o *order.Order) error {
	cp := *o
	cp.CreatedAt = time.Now()
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id string) (*order.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) ListByUser(ctx context.Context, userID string) ([]order.Order, error) {
	var out []order.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) SetGatewayOrder(ctx context.Context, orderID, gatewayOrderID string) error {
	r.orders[orderID].GatewayOrderID = gatewayOrderID
	return nil
}

func (r *fakeOrderRepo) SettlePayment(ctx context.Context, orderID, paymentID string) (order.PaymentState, error) {
	o, ok := r.orders[orderID]
	if !ok {
		return "", order.ErrNotFound
	}
	if o.PaymentState == order.PaymentPending {
		o.PaymentState = order.PaymentPaid
		o.PaymentID = paymentID
	}
	return o.PaymentState, nil
}

type fakeGateway struct{}

func (fakeGateway) CreateOrder(ctx context.Context, amount decimal.Decimal, receipt string) (*payment.GatewayOrder, error) {
	return &payment.GatewayOrder{ID: "gw-" + receipt, Amount: amount, Currency: "INR", Receipt: receipt}, nil
}

const testSecret = "test-signing-secret"

// testEnvelope mirrors the response envelope with the payload left raw so
// each test decodes it into the shape it expects.
type testEnvelope struct {
	Success bool              `json:"success"`
	Data    json.RawMessage   `json:"data"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

type harness struct {
	srv      *httptest.Server
	verifier *auth.Verifier
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	lg := zap.NewNop()

	products := &fakeCatalog{products: map[string]catalog.Product{
		"ac-lg-split": {
			ID:       "ac-lg-split",
			Brand:    "LG",
			Model:    "RS-Q14",
			Category: "AC",
			Tariff: map[int]decimal.Decimal{
				3:  decimal.NewFromInt(2000),
				12: decimal.NewFromInt(1500),
			},
			InstallationCharge: decimal.NewFromInt(1500),
		},
		"wm-ifb-front": {
			ID:       "wm-ifb-front",
			Brand:    "IFB",
			Category: "WM",
			Tariff:   map[int]decimal.Decimal{3: decimal.NewFromInt(1000)},
		},
	}}
	services := &fakeServices{services: map[string]catalog.Service{
		"svc-ac-service": {ID: "svc-ac-service", Title: "AC Service", Price: decimal.NewFromInt(599)},
	}}
	coupons := &fakeCouponRepo{rules: map[string]coupon.Rule{
		"WELCOME10": {
			Code:         "WELCOME10",
			DiscountType: coupon.DiscountPercentage,
			Value:        decimal.NewFromInt(10),
			Title:        "10% off your first order",
		},
	}}

	validator := coupon.NewRepoValidator(coupons)
	composer := pricing.NewComposer(validator)
	settingsSvc := settings.NewService(fakeSettingsRepo{}, lg)
	orderRepo := &fakeOrderRepo{orders: make(map[string]*order.Order)}
	orderSvc := order.NewService(composer, settingsSvc, fakeGateway{}, []byte(testSecret), orderRepo, validator, lg)
	verifier := auth.NewVerifier([]byte(testSecret))

	h := New(products, services, coupons, validator, verifier, composer, settingsSvc, orderSvc, memory.NewCartStorage(), lg)
	srv := httptest.NewServer(h.Router())
	t.Cleanup(srv.Close)
	return &harness{srv: srv, verifier: verifier}
}

type reqOpt func(*http.Request)

func withCartID(id string) reqOpt {
	return func(r *http.Request) { r.Header.Set("X-Cart-Id", id) }
}

func withToken(tok string) reqOpt {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+tok) }
}

func (h *harness) do(t *testing.T, method, path string, body any, opts ...reqOpt) (int, testEnvelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, h.srv.URL+path, &buf)
	require.NoError(t, err)
	for _, opt := range opts {
		opt(req)
	}
	resp, err := h.srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env testEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env), "every response carries the envelope")
	return resp.StatusCode, env
}

func decodeData[T any](t *testing.T, env testEnvelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func (h *harness) token(t *testing.T, userID string) string {
	t.Helper()
	tok, err := h.verifier.Issue(userID, "Asha", "9876543210", time.Hour)
	require.NoError(t, err)
	return tok
}

func TestListProducts(t *testing.T) {
	h := newHarness(t)

	status, env := h.do(t, http.MethodGet, "/api/products", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)
	assert.Len(t, decodeData[[]catalog.Product](t, env), 2)

	status, env = h.do(t, http.MethodGet, "/api/products?category=AC", nil)
	assert.Equal(t, http.StatusOK, status)
	products := decodeData[[]catalog.Product](t, env)
	require.Len(t, products, 1)
	assert.Equal(t, "ac-lg-split", products[0].ID)
}

func TestGetProduct_NotFound(t *testing.T) {
	h := newHarness(t)

	status, env := h.do(t, http.MethodGet, "/api/products/nope", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.False(t, env.Success)
	assert.Equal(t, "Not found", env.Message)
}

func TestCart_RequiresIdentity(t *testing.T) {
	h := newHarness(t)

	status, env := h.do(t, http.MethodGet, "/api/cart", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Missing cart identity", env.Message)
}

func TestCart_RentalLifecycle(t *testing.T) {
	h := newHarness(t)
	id := withCartID("anon-1")

	status, env := h.do(t, http.MethodGet, "/api/cart", nil, id)
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, decodeData[[]cart.Item](t, env))

	status, env = h.do(t, http.MethodPost, "/api/cart/rentals", map[string]any{
		"productId":      "ac-lg-split",
		"durationMonths": 3,
	}, id)
	require.Equal(t, http.StatusCreated, status)
	it := decodeData[cart.Item](t, env)
	assert.Equal(t, cart.KindRental, it.Kind)
	assert.Equal(t, 3, it.SelectedDurationMonths)

	// Re-adding the same product replaces the entry.
	status, _ = h.do(t, http.MethodPost, "/api/cart/rentals", map[string]any{
		"productId":      "ac-lg-split",
		"durationMonths": 12,
	}, id)
	require.Equal(t, http.StatusCreated, status)

	status, env = h.do(t, http.MethodGet, "/api/cart", nil, id)
	require.Equal(t, http.StatusOK, status)
	items := decodeData[[]cart.Item](t, env)
	require.Len(t, items, 1)
	assert.Equal(t, 12, items[0].SelectedDurationMonths)

	// Tariff 1500 for 12 months plus the AC installation charge.
	status, env = h.do(t, http.MethodGet, "/api/cart/totals", nil, id)
	require.Equal(t, http.StatusOK, status)
	totals := decodeData[cart.Totals](t, env)
	assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(3000)))

	status, env = h.do(t, http.MethodPut, "/api/cart/items/"+it.ID+"/quantity", map[string]any{
		"quantity": 0,
	}, id)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, decodeData[[]cart.Item](t, env), "zero quantity removes the entry")
}

func TestCart_ClearReturnsEmptyList(t *testing.T) {
	h := newHarness(t)
	id := withCartID("anon-2")

	status, _ := h.do(t, http.MethodPost, "/api/cart/rentals", map[string]any{
		"productId": "wm-ifb-front",
	}, id)
	require.Equal(t, http.StatusCreated, status)

	status, env := h.do(t, http.MethodDelete, "/api/cart", nil, id)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestCart_TokenIdentity(t *testing.T) {
	h := newHarness(t)
	tok := withToken(h.token(t, "user-7"))

	// A bearer token alone identifies the cart, no X-Cart-Id needed.
	status, _ := h.do(t, http.MethodPost, "/api/cart/rentals", map[string]any{
		"productId":      "wm-ifb-front",
		"durationMonths": 3,
	}, tok)
	require.Equal(t, http.StatusCreated, status)

	status, env := h.do(t, http.MethodGet, "/api/cart", nil, tok)
	require.Equal(t, http.StatusOK, status)
	items := decodeData[[]cart.Item](t, env)
	require.Len(t, items, 1)
	assert.Equal(t, "wm-ifb-front", items[0].ProductID)

	// Another customer's token resolves a different cart.
	status, env = h.do(t, http.MethodGet, "/api/cart", nil, withToken(h.token(t, "user-8")))
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, decodeData[[]cart.Item](t, env))

	// A garbage token carries no identity and no header means no cart.
	status, env = h.do(t, http.MethodGet, "/api/cart", nil, withToken("not-a-jwt"))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Missing cart identity", env.Message)
}

func TestCart_IsolatedPerCustomer(t *testing.T) {
	h := newHarness(t)

	status, _ := h.do(t, http.MethodPost, "/api/cart/rentals", map[string]any{
		"productId": "wm-ifb-front",
	}, withCartID("anon-a"))
	require.Equal(t, http.StatusCreated, status)

	status, env := h.do(t, http.MethodGet, "/api/cart", nil, withCartID("anon-b"))
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, decodeData[[]cart.Item](t, env))
}

func TestValidateCoupon(t *testing.T) {
	h := newHarness(t)
	id := withCartID("anon-3")

	status, _ := h.do(t, http.MethodPost, "/api/cart/rentals", map[string]any{
		"productId":      "wm-ifb-front",
		"durationMonths": 3,
	}, id)
	require.Equal(t, http.StatusCreated, status)

	status, env := h.do(t, http.MethodPost, "/api/coupons/validate", map[string]any{
		"code": "WELCOME10",
	}, id)
	require.Equal(t, http.StatusOK, status)
	got := decodeData[validateCouponResponse](t, env)
	assert.Equal(t, "WELCOME10", got.Code)
	assert.True(t, got.Amount.Equal(decimal.NewFromInt(100)))

	status, env = h.do(t, http.MethodPost, "/api/coupons/validate", map[string]any{
		"code": "NOSUCH",
	}, id)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "Invalid coupon code", env.Message)
}

func TestQuote_PayNow(t *testing.T) {
	h := newHarness(t)
	id := withCartID("anon-4")

	status, _ := h.do(t, http.MethodPost, "/api/cart/rentals", map[string]any{
		"productId":      "wm-ifb-front",
		"durationMonths": 3,
	}, id)
	require.Equal(t, http.StatusCreated, status)

	status, env := h.do(t, http.MethodPost, "/api/checkout/quote", map[string]any{
		"paymentOption": "payNow",
	}, id)
	require.Equal(t, http.StatusOK, status)
	quote := decodeData[pricing.Quote](t, env)
	assert.True(t, quote.Subtotal.Equal(decimal.NewFromInt(1000)))
	assert.True(t, quote.PaymentDiscount.Equal(decimal.NewFromInt(100)))
	assert.True(t, quote.FinalTotal.Equal(decimal.NewFromInt(900)))
}

func TestPlaceOrder_RequiresAuth(t *testing.T) {
	h := newHarness(t)

	status, env := h.do(t, http.MethodPost, "/api/checkout/orders", map[string]any{
		"paymentOption": "payLater",
	}, withCartID("anon-5"))
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.False(t, env.Success)
	assert.Equal(t, "Unauthorized", env.Message)
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	h := newHarness(t)
	tok := h.token(t, "user-1")

	status, env := h.do(t, http.MethodPost, "/api/checkout/orders", map[string]any{
		"paymentOption": "payLater",
		"customer":      map[string]any{"name": "Asha", "phone": "9876543210", "address": "14 MG Road"},
	}, withToken(tok))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Your cart is empty", env.Message)
}

func placeTestOrder(t *testing.T, h *harness, tok string, option string) placeOrderResponse {
	t.Helper()
	status, _ := h.do(t, http.MethodPost, "/api/cart/rentals", map[string]any{
		"productId":      "wm-ifb-front",
		"durationMonths": 3,
	}, withToken(tok))
	require.Equal(t, http.StatusCreated, status)

	status, env := h.do(t, http.MethodPost, "/api/checkout/orders", map[string]any{
		"paymentOption": option,
		"customer":      map[string]any{"name": "Asha", "phone": "9876543210", "address": "14 MG Road"},
	}, withToken(tok))
	require.Equal(t, http.StatusCreated, status)
	return decodeData[placeOrderResponse](t, env)
}

func TestPlaceOrder_PayNow(t *testing.T) {
	h := newHarness(t)
	tok := h.token(t, "user-1")

	placed := placeTestOrder(t, h, tok, "payNow")
	require.NotNil(t, placed.Order)
	assert.Equal(t, order.PaymentPending, placed.Order.PaymentState)
	assert.True(t, placed.Order.FinalTotal.Equal(decimal.NewFromInt(900)))
	require.NotNil(t, placed.GatewayOrder)
	assert.Equal(t, "gw-"+placed.Order.ID, placed.GatewayOrder.ID)

	// The authenticated cart is cleared by checkout.
	status, env := h.do(t, http.MethodGet, "/api/cart", nil, withToken(tok))
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, decodeData[[]cart.Item](t, env))

	status, env = h.do(t, http.MethodGet, "/api/orders", nil, withToken(tok))
	require.Equal(t, http.StatusOK, status)
	orders := decodeData[[]orderView](t, env)
	require.Len(t, orders, 1)
	assert.Equal(t, placed.Order.ID, orders[0].ID)
}

func TestGetOrder_ScopedToOwner(t *testing.T) {
	h := newHarness(t)
	tok := h.token(t, "user-1")
	placed := placeTestOrder(t, h, tok, "payLater")

	status, _ := h.do(t, http.MethodGet, "/api/orders/"+placed.Order.ID, nil, withToken(tok))
	assert.Equal(t, http.StatusOK, status)

	other := h.token(t, "user-2")
	status, env := h.do(t, http.MethodGet, "/api/orders/"+placed.Order.ID, nil, withToken(other))
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Order not found", env.Message)
}

func TestVerifyPayment(t *testing.T) {
	h := newHarness(t)
	tok := h.token(t, "user-1")
	placed := placeTestOrder(t, h, tok, "payNow")

	gwID := placed.GatewayOrder.ID
	proof := map[string]any{
		"razorpay_order_id":   gwID,
		"razorpay_payment_id": "pay-1",
		"razorpay_signature":  payment.Sign(gwID, "pay-1", []byte(testSecret)),
	}
	status, env := h.do(t, http.MethodPost, "/api/orders/"+placed.Order.ID+"/payment/verify", proof)
	require.Equal(t, http.StatusOK, status)
	got := decodeData[map[string]string](t, env)
	assert.Equal(t, "paid", got["paymentState"])
}

func TestVerifyPayment_BadSignature(t *testing.T) {
	h := newHarness(t)
	tok := h.token(t, "user-1")
	placed := placeTestOrder(t, h, tok, "payNow")

	proof := map[string]any{
		"razorpay_order_id":   placed.GatewayOrder.ID,
		"razorpay_payment_id": "pay-1",
		"razorpay_signature":  "forged",
	}
	status, env := h.do(t, http.MethodPost, "/api/orders/"+placed.Order.ID+"/payment/verify", proof)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.False(t, env.Success)
}

func TestPaymentFailed_KeepsOrderRetryable(t *testing.T) {
	h := newHarness(t)
	tok := h.token(t, "user-1")
	placed := placeTestOrder(t, h, tok, "payNow")

	status, env := h.do(t, http.MethodPost, "/api/orders/"+placed.Order.ID+"/payment/failed", map[string]any{
		"code": "NETWORK_ERROR",
	})
	require.Equal(t, http.StatusOK, status)
	got := decodeData[map[string]string](t, env)
	assert.Equal(t, "pending", got["paymentState"])
	assert.Contains(t, got["message"], "refunded")
}

func TestBookingWizard_FullFlow(t *testing.T) {
	h := newHarness(t)
	id := withCartID("anon-6")

	status, env := h.do(t, http.MethodPost, "/api/bookings", map[string]any{
		"serviceId": "svc-ac-service",
	}, id)
	require.Equal(t, http.StatusCreated, status)
	wz := decodeData[wizardView](t, env)
	require.NotEmpty(t, wz.ID)
	assert.Equal(t, booking.StepDateTime, wz.Step)

	// Advancing from an empty first step surfaces field errors.
	status, env = h.do(t, http.MethodPost, "/api/bookings/"+wz.ID+"/next", nil, id)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "Please select a date", env.Fields["date"])

	status, _ = h.do(t, http.MethodPatch, "/api/bookings/"+wz.ID, map[string]any{
		"date": "2026-09-05",
		"time": "10:00-12:00",
	}, id)
	require.Equal(t, http.StatusOK, status)
	status, _ = h.do(t, http.MethodPost, "/api/bookings/"+wz.ID+"/next", nil, id)
	require.Equal(t, http.StatusOK, status)

	// A short phone number blocks the address step.
	status, _ = h.do(t, http.MethodPatch, "/api/bookings/"+wz.ID, map[string]any{
		"address":      "14 MG Road",
		"contactName":  "Asha",
		"contactPhone": "12345",
	}, id)
	require.Equal(t, http.StatusOK, status)
	status, env = h.do(t, http.MethodPost, "/api/bookings/"+wz.ID+"/next", nil, id)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "Enter a valid 10-digit mobile number", env.Fields["contactPhone"])

	status, _ = h.do(t, http.MethodPatch, "/api/bookings/"+wz.ID, map[string]any{
		"contactPhone": "+91 98765 43210",
	}, id)
	require.Equal(t, http.StatusOK, status)
	status, _ = h.do(t, http.MethodPost, "/api/bookings/"+wz.ID+"/next", nil, id)
	require.Equal(t, http.StatusOK, status)

	status, _ = h.do(t, http.MethodPatch, "/api/bookings/"+wz.ID, map[string]any{
		"paymentOption": "payNow",
	}, id)
	require.Equal(t, http.StatusOK, status)
	status, env = h.do(t, http.MethodPost, "/api/bookings/"+wz.ID+"/next", nil, id)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, booking.StepReview, decodeData[wizardView](t, env).Step)

	status, env = h.do(t, http.MethodPost, "/api/bookings/"+wz.ID+"/submit", nil, id)
	require.Equal(t, http.StatusOK, status)
	submitted := decodeData[submitBookingResponse](t, env)
	assert.Equal(t, booking.StatusConfirmed, submitted.Status)
	assert.Equal(t, "svc-ac-service", submitted.Item.ServiceID)
	require.NotNil(t, submitted.Item.Booking)
	assert.Equal(t, "9876543210", submitted.Item.Booking.ContactPhone)

	// The session is gone and the booking landed in the cart.
	status, _ = h.do(t, http.MethodGet, "/api/bookings/"+wz.ID, nil, id)
	assert.Equal(t, http.StatusNotFound, status)

	status, env = h.do(t, http.MethodGet, "/api/cart", nil, id)
	require.Equal(t, http.StatusOK, status)
	items := decodeData[[]cart.Item](t, env)
	require.Len(t, items, 1)
	assert.Equal(t, cart.KindService, items[0].Kind)
}

func TestSubmitBooking_BeforeReview(t *testing.T) {
	h := newHarness(t)
	id := withCartID("anon-7")

	status, env := h.do(t, http.MethodPost, "/api/bookings", map[string]any{
		"serviceId": "svc-ac-service",
	}, id)
	require.Equal(t, http.StatusCreated, status)
	wz := decodeData[wizardView](t, env)

	status, env = h.do(t, http.MethodPost, "/api/bookings/"+wz.ID+"/submit", nil, id)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Booking is not ready to submit", env.Message)
}
