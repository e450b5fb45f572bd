//go:build integration

package integration

import (
	"net/http"
	"testing"
)

func advance(t *testing.T, cart reqOption, wizardID string) *http.Response {
	t.Helper()
	return doPost(t, "/api/bookings/"+wizardID+"/next", nil, cart)
}

func patchBooking(t *testing.T, cart reqOption, wizardID string, fields map[string]any) {
	t.Helper()
	resp := doRequest(t, http.MethodPatch, "/api/bookings/"+wizardID, fields, cart)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("patch booking: expected 200, got %d", resp.StatusCode)
	}
}

func TestBooking_FullWizard(t *testing.T) {
	cart := asCart("it-booking-full")

	startResp := doPost(t, "/api/bookings", map[string]any{"serviceId": "svc-ac-service"}, cart)
	if startResp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", startResp.StatusCode)
	}
	wz := decodeEnvelope[wizardResponse](t, startResp)
	startResp.Body.Close()
	if wz.Step != 1 {
		t.Fatalf("step: got %d, want 1", wz.Step)
	}

	// Empty first step blocks with field errors.
	nextResp := advance(t, cart, wz.ID)
	if nextResp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", nextResp.StatusCode)
	}
	env := decodeJSON[envelope](t, nextResp)
	nextResp.Body.Close()
	if env.Fields["date"] == "" {
		t.Error("expected a date field error")
	}

	patchBooking(t, cart, wz.ID, map[string]any{"date": "2026-09-05", "time": "10:00-12:00"})
	nextResp = advance(t, cart, wz.ID)
	nextResp.Body.Close()

	// A 5-digit phone number blocks the address step.
	patchBooking(t, cart, wz.ID, map[string]any{
		"address":      "14 MG Road, Bengaluru",
		"contactName":  "Tester",
		"contactPhone": "12345",
	})
	nextResp = advance(t, cart, wz.ID)
	if nextResp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for short phone, got %d", nextResp.StatusCode)
	}
	env = decodeJSON[envelope](t, nextResp)
	nextResp.Body.Close()
	if env.Fields["contactPhone"] == "" {
		t.Error("expected a contactPhone field error")
	}

	patchBooking(t, cart, wz.ID, map[string]any{"contactPhone": "+91 98765 43210"})
	nextResp = advance(t, cart, wz.ID)
	nextResp.Body.Close()

	patchBooking(t, cart, wz.ID, map[string]any{"paymentOption": "payNow"})
	nextResp = advance(t, cart, wz.ID)
	state := decodeEnvelope[wizardResponse](t, nextResp)
	nextResp.Body.Close()
	if state.Step != 4 {
		t.Fatalf("step: got %d, want 4 (review)", state.Step)
	}

	submitResp := doPost(t, "/api/bookings/"+wz.ID+"/submit", nil, cart)
	defer submitResp.Body.Close()
	if submitResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", submitResp.StatusCode)
	}
	submitted := decodeEnvelope[submitBookingResponse](t, submitResp)
	if submitted.Status != "confirmed" {
		t.Errorf("status: got %q, want confirmed (payNow blocks on the cart write)", submitted.Status)
	}
	if submitted.Item.ServiceID != "svc-ac-service" {
		t.Errorf("serviceId: got %q", submitted.Item.ServiceID)
	}
	if submitted.Item.Booking == nil || submitted.Item.Booking.ContactPhone != "9876543210" {
		t.Errorf("booking phone not normalized: %+v", submitted.Item.Booking)
	}

	// The booking landed in the cart, the session is gone.
	cartResp := doGet(t, "/api/cart", cart)
	defer cartResp.Body.Close()
	items := decodeEnvelope[[]cartItemResponse](t, cartResp)
	if len(items) != 1 || items[0].Kind != "service" {
		t.Fatalf("expected 1 service item, got %+v", items)
	}

	getResp := doGet(t, "/api/bookings/"+wz.ID, cart)
	defer getResp.Body.Close()
	if getResp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for finished session, got %d", getResp.StatusCode)
	}
}

func TestBooking_PayLaterAcceptedLocally(t *testing.T) {
	cart := asCart("it-booking-paylater")

	startResp := doPost(t, "/api/bookings", map[string]any{"serviceId": "svc-fridge-repair"}, cart)
	wz := decodeEnvelope[wizardResponse](t, startResp)
	startResp.Body.Close()

	patchBooking(t, cart, wz.ID, map[string]any{
		"date":          "2026-09-06",
		"time":          "14:00-16:00",
		"address":       "14 MG Road, Bengaluru",
		"contactName":   "Tester",
		"contactPhone":  "9876543210",
		"paymentOption": "payLater",
	})
	for n := 0; n < 3; n++ {
		resp := advance(t, cart, wz.ID)
		resp.Body.Close()
	}

	submitResp := doPost(t, "/api/bookings/"+wz.ID+"/submit", nil, cart)
	defer submitResp.Body.Close()
	submitted := decodeEnvelope[submitBookingResponse](t, submitResp)
	if submitted.Status != "acceptedLocally" {
		t.Fatalf("status: got %q, want acceptedLocally", submitted.Status)
	}
}

func TestBooking_UnknownService(t *testing.T) {
	resp := doPost(t, "/api/bookings", map[string]any{"serviceId": "no-such-service"}, asCart("it-booking-404"))
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
