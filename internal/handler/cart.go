package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/rentkart/rentkart/internal/domain/cart"
)

// GetCart returns the normalized cart contents for the resolved customer.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	store, ok := h.cartStore(r)
	if !ok {
		h.badRequest(w, "Missing cart identity")
		return
	}
	items, err := store.Items(r.Context())
	if err != nil {
		h.failErr(w, err)
		return
	}
	if items == nil {
		items = []cart.Item{}
	}
	h.ok(w, items)
}

// GetCartTotals returns the subtotal breakdown of the current cart.
func (h *Handler) GetCartTotals(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	store, ok := h.cartStore(r)
	if !ok {
		h.badRequest(w, "Missing cart identity")
		return
	}
	totals, err := store.Totals(r.Context())
	if err != nil {
		h.failErr(w, err)
		return
	}
	h.ok(w, totals)
}

// GetPaymentBenefits returns the benefit copy per payment option with the
// currently configured discount percentages.
func (h *Handler) GetPaymentBenefits(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	cfg := h.settings.Payment(r.Context())
	h.ok(w, cart.PaymentBenefits(
		cfg.InstantPaymentDiscountPercent,
		cfg.AdvancePaymentDiscountPercent,
	))
}

type addRentalRequest struct {
	ProductID        string `json:"productId"`
	DurationMonths   int    `json:"durationMonths"`
	IsMonthlyPayment bool   `json:"isMonthlyPayment"`
}

// AddRental places a rental product in the cart, replacing any existing
// entry for the same product.
func (h *Handler) AddRental(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	store, ok := h.cartStore(r)
	if !ok {
		h.badRequest(w, "Missing cart identity")
		return
	}
	var req addRentalRequest
	if err := decode(r, &req); err != nil {
		h.badRequest(w, "Invalid request body")
		return
	}
	if req.ProductID == "" {
		h.badRequest(w, "productId is required")
		return
	}

	p, err := h.products.GetByID(r.Context(), req.ProductID)
	if err != nil {
		h.failErr(w, err)
		return
	}
	it, err := store.AddRental(r.Context(), p, cart.RentalOptions{
		DurationMonths:   req.DurationMonths,
		IsMonthlyPayment: req.IsMonthlyPayment,
	})
	if err != nil {
		h.failErr(w, err)
		return
	}
	h.created(w, it)
}

type addServiceRequest struct {
	ServiceID string              `json:"serviceId"`
	Booking   cart.BookingDetails `json:"booking"`
}

// AddService appends a service booking to the cart.
func (h *Handler) AddService(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	store, ok := h.cartStore(r)
	if !ok {
		h.badRequest(w, "Missing cart identity")
		return
	}
	var req addServiceRequest
	if err := decode(r, &req); err != nil {
		h.badRequest(w, "Invalid request body")
		return
	}
	if req.ServiceID == "" {
		h.badRequest(w, "serviceId is required")
		return
	}

	svc, err := h.services.GetByID(r.Context(), req.ServiceID)
	if err != nil {
		h.failErr(w, err)
		return
	}
	it, err := store.AddService(r.Context(), svc, req.Booking)
	if err != nil {
		h.failErr(w, err)
		return
	}
	h.created(w, it)
}

type updateItemRequest struct {
	SelectedDurationMonths *int                `json:"selectedDurationMonths"`
	PaymentOption          *cart.PaymentOption `json:"paymentOption"`
	IsMonthlyPayment       *bool               `json:"isMonthlyPayment"`
}

// UpdateCartItem merges rental field changes into a cart entry.
func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	store, ok := h.cartStore(r)
	if !ok {
		h.badRequest(w, "Missing cart identity")
		return
	}
	var req updateItemRequest
	if err := decode(r, &req); err != nil {
		h.badRequest(w, "Invalid request body")
		return
	}
	err := store.UpdateItem(r.Context(), ps.ByName("id"), cart.ItemPatch{
		SelectedDurationMonths: req.SelectedDurationMonths,
		PaymentOption:          req.PaymentOption,
		IsMonthlyPayment:       req.IsMonthlyPayment,
	})
	if err != nil {
		h.failErr(w, err)
		return
	}
	h.cartOK(w, r, store)
}

type updateBookingRequest struct {
	Date          *string             `json:"date"`
	Time          *string             `json:"time"`
	Address       *string             `json:"address"`
	AddressType   *cart.AddressType   `json:"addressType"`
	ContactName   *string             `json:"contactName"`
	ContactPhone  *string             `json:"contactPhone"`
	PaymentOption *cart.PaymentOption `json:"paymentOption"`
}

// UpdateServiceBooking merges booking detail changes into a service entry.
func (h *Handler) UpdateServiceBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	store, ok := h.cartStore(r)
	if !ok {
		h.badRequest(w, "Missing cart identity")
		return
	}
	var req updateBookingRequest
	if err := decode(r, &req); err != nil {
		h.badRequest(w, "Invalid request body")
		return
	}
	err := store.UpdateServiceBooking(r.Context(), ps.ByName("id"), cart.BookingPatch{
		Date:          req.Date,
		Time:          req.Time,
		Address:       req.Address,
		AddressType:   req.AddressType,
		ContactName:   req.ContactName,
		ContactPhone:  req.ContactPhone,
		PaymentOption: req.PaymentOption,
	})
	if err != nil {
		h.failErr(w, err)
		return
	}
	h.cartOK(w, r, store)
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateQuantity sets an entry's quantity; zero or less removes it.
func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	store, ok := h.cartStore(r)
	if !ok {
		h.badRequest(w, "Missing cart identity")
		return
	}
	var req updateQuantityRequest
	if err := decode(r, &req); err != nil {
		h.badRequest(w, "Invalid request body")
		return
	}
	if err := store.UpdateQuantity(r.Context(), ps.ByName("id"), req.Quantity); err != nil {
		h.failErr(w, err)
		return
	}
	h.cartOK(w, r, store)
}

// RemoveCartItem deletes a single entry from the cart.
func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	store, ok := h.cartStore(r)
	if !ok {
		h.badRequest(w, "Missing cart identity")
		return
	}
	if err := store.Remove(r.Context(), ps.ByName("id")); err != nil {
		h.failErr(w, err)
		return
	}
	h.cartOK(w, r, store)
}

// ClearCart empties the cart.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	store, ok := h.cartStore(r)
	if !ok {
		h.badRequest(w, "Missing cart identity")
		return
	}
	if err := store.Clear(r.Context()); err != nil {
		h.failErr(w, err)
		return
	}
	h.ok(w, []cart.Item{})
}

// cartOK responds with the full cart after a mutation, so the client can
// replace its local copy wholesale.
func (h *Handler) cartOK(w http.ResponseWriter, r *http.Request, store *cart.Store) {
	items, err := store.Items(r.Context())
	if err != nil {
		h.failErr(w, err)
		return
	}
	if items == nil {
		items = []cart.Item{}
	}
	h.ok(w, items)
}
