// Package handler exposes the storefront REST surface. Every response uses
// the uniform envelope {success, data?, message?}; HTTP-level failures are
// translated into it rather than thrown.
package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"

	"github.com/rentkart/rentkart/internal/auth"
	"github.com/rentkart/rentkart/internal/domain/booking"
	"github.com/rentkart/rentkart/internal/domain/cart"
	"github.com/rentkart/rentkart/internal/domain/catalog"
	"github.com/rentkart/rentkart/internal/domain/coupon"
	"github.com/rentkart/rentkart/internal/domain/order"
	"github.com/rentkart/rentkart/internal/domain/pricing"
	"github.com/rentkart/rentkart/internal/domain/settings"
)

// cartIDHeader carries the anonymous cart key for customers who have not
// signed in yet. Authenticated requests use the token subject instead.
const cartIDHeader = "X-Cart-Id"

// Handler wires the domain services to the REST routes.
type Handler struct {
	products  catalog.ProductRepository
	services  catalog.ServiceRepository
	coupons   coupon.Repository
	validator coupon.Validator
	verifier  *auth.Verifier
	composer  *pricing.Composer
	settings  *settings.Service
	orders    *order.Service
	storage   cart.Storage
	sessions  *booking.Sessions
	lg        *zap.Logger
}

// New constructs a Handler with the required collaborators.
func New(
	products catalog.ProductRepository,
	services catalog.ServiceRepository,
	coupons coupon.Repository,
	validator coupon.Validator,
	verifier *auth.Verifier,
	composer *pricing.Composer,
	st *settings.Service,
	orders *order.Service,
	storage cart.Storage,
	lg *zap.Logger,
) *Handler {
	return &Handler{
		products:  products,
		services:  services,
		coupons:   coupons,
		validator: validator,
		verifier:  verifier,
		composer:  composer,
		settings:  st,
		orders:    orders,
		storage:   storage,
		sessions:  booking.NewSessions(),
		lg:        lg,
	}
}

// Router builds the API route table.
func (h *Handler) Router() *httprouter.Router {
	r := httprouter.New()

	r.GET("/api/products", h.ListProducts)
	r.GET("/api/products/:id", h.GetProduct)
	r.GET("/api/services", h.ListServices)
	r.GET("/api/services/:id", h.GetService)

	r.GET("/api/cart", h.GetCart)
	r.GET("/api/cart/totals", h.GetCartTotals)
	r.GET("/api/cart/payment-benefits", h.GetPaymentBenefits)
	r.POST("/api/cart/rentals", h.AddRental)
	r.POST("/api/cart/services", h.AddService)
	r.PATCH("/api/cart/items/:id", h.UpdateCartItem)
	r.PATCH("/api/cart/items/:id/booking", h.UpdateServiceBooking)
	r.PUT("/api/cart/items/:id/quantity", h.UpdateQuantity)
	r.DELETE("/api/cart/items/:id", h.RemoveCartItem)
	r.DELETE("/api/cart", h.ClearCart)

	r.GET("/api/coupons", h.ListCoupons)
	r.POST("/api/coupons/validate", h.ValidateCoupon)

	r.POST("/api/checkout/quote", h.Quote)
	r.POST("/api/checkout/orders", h.verifier.Authenticate(h.PlaceOrder))
	r.GET("/api/orders", h.verifier.Authenticate(h.ListOrders))
	r.GET("/api/orders/:id", h.verifier.Authenticate(h.GetOrder))
	r.POST("/api/orders/:id/payment/verify", h.VerifyPayment)
	r.POST("/api/orders/:id/payment/failed", h.PaymentFailed)

	r.POST("/api/bookings", h.StartBooking)
	r.GET("/api/bookings/:id", h.GetBooking)
	r.PATCH("/api/bookings/:id", h.UpdateBooking)
	r.POST("/api/bookings/:id/next", h.BookingNext)
	r.POST("/api/bookings/:id/back", h.BookingBack)
	r.POST("/api/bookings/:id/edit", h.BookingEdit)
	r.POST("/api/bookings/:id/submit", h.SubmitBooking)

	return r
}

// cartStore resolves the per-customer cart handle for a request: the token
// subject when one is present and valid, else the client-supplied cart id
// header. Cart routes are not behind Authenticate, so the bearer token is
// parsed here directly when the context carries no identity.
func (h *Handler) cartStore(r *http.Request) (*cart.Store, bool) {
	key := auth.UserID(r.Context())
	if key == "" {
		key = h.verifier.SubjectFromRequest(r)
	}
	if key == "" {
		key = r.Header.Get(cartIDHeader)
	}
	if key == "" {
		return nil, false
	}
	return cart.NewStore(h.storage, key, h.lg), true
}
