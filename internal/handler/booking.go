package handler

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/rentkart/rentkart/internal/domain/booking"
	"github.com/rentkart/rentkart/internal/domain/cart"
)

// wizardView is the JSON shape of a booking session.
type wizardView struct {
	ID        string              `json:"id"`
	ServiceID string              `json:"serviceId"`
	Step      booking.Step        `json:"step"`
	Details   cart.BookingDetails `json:"details"`
}

func newWizardView(wz *booking.Wizard) wizardView {
	return wizardView{
		ID:        wz.ID,
		ServiceID: wz.ServiceID,
		Step:      wz.Step,
		Details:   wz.Details,
	}
}

type startBookingRequest struct {
	ServiceID string `json:"serviceId"`
}

// StartBooking opens a wizard session for a service.
func (h *Handler) StartBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req startBookingRequest
	if err := decode(r, &req); err != nil {
		h.badRequest(w, "Invalid request body")
		return
	}
	if req.ServiceID == "" {
		h.badRequest(w, "serviceId is required")
		return
	}
	if _, err := h.services.GetByID(r.Context(), req.ServiceID); err != nil {
		h.failErr(w, err)
		return
	}
	h.created(w, newWizardView(h.sessions.Start(req.ServiceID)))
}

// GetBooking returns the current state of a wizard session.
func (h *Handler) GetBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	wz, err := h.sessions.Get(ps.ByName("id"))
	if err != nil {
		h.failErr(w, err)
		return
	}
	h.ok(w, newWizardView(wz))
}

type updateWizardRequest struct {
	Date          *string             `json:"date"`
	Time          *string             `json:"time"`
	Address       *string             `json:"address"`
	AddressType   *cart.AddressType   `json:"addressType"`
	ContactName   *string             `json:"contactName"`
	ContactPhone  *string             `json:"contactPhone"`
	PaymentOption *cart.PaymentOption `json:"paymentOption"`
}

// UpdateBooking merges form fields into a wizard session without advancing.
func (h *Handler) UpdateBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	wz, err := h.sessions.Get(ps.ByName("id"))
	if err != nil {
		h.failErr(w, err)
		return
	}
	var req updateWizardRequest
	if err := decode(r, &req); err != nil {
		h.badRequest(w, "Invalid request body")
		return
	}
	wz.Update(booking.DetailsPatch{
		Date:          req.Date,
		Time:          req.Time,
		Address:       req.Address,
		AddressType:   req.AddressType,
		ContactName:   req.ContactName,
		ContactPhone:  req.ContactPhone,
		PaymentOption: req.PaymentOption,
	})
	h.ok(w, newWizardView(wz))
}

// BookingNext validates the current step and advances the wizard.
func (h *Handler) BookingNext(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	wz, err := h.sessions.Get(ps.ByName("id"))
	if err != nil {
		h.failErr(w, err)
		return
	}
	if err := wz.Next(); err != nil {
		h.failErr(w, err)
		return
	}
	h.ok(w, newWizardView(wz))
}

// BookingBack steps the wizard backwards without validation.
func (h *Handler) BookingBack(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	wz, err := h.sessions.Get(ps.ByName("id"))
	if err != nil {
		h.failErr(w, err)
		return
	}
	wz.Back()
	h.ok(w, newWizardView(wz))
}

// BookingEdit drops the wizard from review back to the first step.
func (h *Handler) BookingEdit(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	wz, err := h.sessions.Get(ps.ByName("id"))
	if err != nil {
		h.failErr(w, err)
		return
	}
	wz.Edit()
	h.ok(w, newWizardView(wz))
}

type submitBookingResponse struct {
	Status booking.SubmitStatus `json:"status"`
	Item   cart.Item            `json:"item"`
}

// SubmitBooking finalizes a wizard session into a cart entry. Pay-later
// bookings come back accepted immediately; pay-now bookings wait for the
// cart write because payment collection follows.
func (h *Handler) SubmitBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	store, ok := h.cartStore(r)
	if !ok {
		h.badRequest(w, "Missing cart identity")
		return
	}
	wz, err := h.sessions.Get(ps.ByName("id"))
	if err != nil {
		h.failErr(w, err)
		return
	}

	confirm := func(ctx context.Context, serviceID string, details cart.BookingDetails) (cart.Item, error) {
		svc, err := h.services.GetByID(ctx, serviceID)
		if err != nil {
			return cart.Item{}, err
		}
		return store.AddService(ctx, svc, details)
	}

	result, err := wz.Submit(r.Context(), confirm, h.lg)
	if err != nil {
		h.failErr(w, err)
		return
	}
	h.sessions.Remove(wz.ID)
	h.ok(w, submitBookingResponse{Status: result.Status, Item: result.Item})
}
