// Package booking implements the 4-step service-booking wizard: per-step
// field validation, linear step transitions, and a two-phase submit whose
// result distinguishes "accepted locally" from "confirmed by the server".
package booking

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rentkart/rentkart/internal/domain/cart"
	"github.com/rentkart/rentkart/internal/phone"
)

// Step identifies a wizard step. Transitions are strictly linear: Next
// requires the current step to validate, Back is always allowed, and the
// review step may jump back to the start for edits.
type Step int

const (
	StepDateTime Step = 1
	StepAddress  Step = 2
	StepPayment  Step = 3
	StepReview   Step = 4
)

// FieldErrors maps field names to human-readable validation messages.
type FieldErrors map[string]string

// ValidationError carries per-field errors across the handler boundary.
type ValidationError struct {
	Step   Step
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("step %d validation failed (%d fields)", e.Step, len(e.Fields))
}

// ErrNotAtReview is returned when Submit is called before the review step.
var ErrNotAtReview = fmt.Errorf("wizard is not at the review step")

// Wizard is the state of one in-progress service booking.
type Wizard struct {
	ID        string
	ServiceID string
	Step      Step
	Details   cart.BookingDetails
}

// New starts a wizard for the given service at the first step.
func New(serviceID string) *Wizard {
	return &Wizard{
		ID:        uuid.New().String(),
		ServiceID: serviceID,
		Step:      StepDateTime,
		Details: cart.BookingDetails{
			AddressType: cart.AddressMyself,
		},
	}
}

// Validate runs the field rules for the given step.
func (w *Wizard) Validate(step Step) FieldErrors {
	errs := FieldErrors{}
	switch step {
	case StepDateTime:
		if w.Details.Date == "" {
			errs["date"] = "Please select a date"
		}
		if w.Details.Time == "" {
			errs["time"] = "Please select a time slot"
		}
	case StepAddress:
		if w.Details.Address == "" {
			errs["address"] = "Address is required"
		}
		if w.Details.ContactName == "" {
			errs["contactName"] = "Contact name is required"
		}
		if w.Details.ContactPhone == "" {
			errs["contactPhone"] = "Contact phone is required"
		} else if !phone.Valid(w.Details.ContactPhone) {
			errs["contactPhone"] = "Enter a valid 10-digit mobile number"
		}
	case StepPayment:
		if w.Details.PaymentOption != cart.PayNow && w.Details.PaymentOption != cart.PayLater {
			errs["paymentOption"] = "Please choose a payment option"
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Next advances to the following step if the current one validates.
func (w *Wizard) Next() error {
	if w.Step >= StepReview {
		return nil
	}
	if errs := w.Validate(w.Step); errs != nil {
		return &ValidationError{Step: w.Step, Fields: errs}
	}
	w.Step++
	return nil
}

// Back returns to the previous step. Always permitted, no validation.
func (w *Wizard) Back() {
	if w.Step > StepDateTime {
		w.Step--
	}
}

// Edit jumps from the review step back to the start.
func (w *Wizard) Edit() {
	if w.Step == StepReview {
		w.Step = StepDateTime
	}
}

// DetailsPatch merges form fields into the wizard. Phone numbers are
// normalized on the way in.
type DetailsPatch struct {
	Date          *string
	Time          *string
	Address       *string
	AddressType   *cart.AddressType
	ContactName   *string
	ContactPhone  *string
	PaymentOption *cart.PaymentOption
}

// Update applies the patch to the wizard's details.
func (w *Wizard) Update(p DetailsPatch) {
	if p.Date != nil {
		w.Details.Date = *p.Date
	}
	if p.Time != nil {
		w.Details.Time = *p.Time
	}
	if p.Address != nil {
		w.Details.Address = *p.Address
	}
	if p.AddressType != nil {
		w.Details.AddressType = *p.AddressType
	}
	if p.ContactName != nil {
		w.Details.ContactName = *p.ContactName
	}
	if p.ContactPhone != nil {
		w.Details.ContactPhone = phone.Normalize(*p.ContactPhone)
	}
	if p.PaymentOption != nil {
		w.Details.PaymentOption = *p.PaymentOption
	}
}

// SubmitStatus discriminates the two success shapes of a submit, so callers
// cannot mistake an optimistic local acceptance for a server confirmation.
type SubmitStatus string

const (
	// StatusAcceptedLocally means the booking passed validation and the
	// server confirmation continues in the background; its failure is
	// reconciled out of band.
	StatusAcceptedLocally SubmitStatus = "acceptedLocally"
	// StatusConfirmed means the server acknowledged the booking.
	StatusConfirmed SubmitStatus = "confirmed"
)

// SubmitResult is the outcome of a successful Submit call.
type SubmitResult struct {
	Status SubmitStatus
	Item   cart.Item
}

// ConfirmFunc hands the validated booking to its consumer (the cart store's
// AddService) and reports the created entry.
type ConfirmFunc func(ctx context.Context, serviceID string, details cart.BookingDetails) (cart.Item, error)

// Submit finalizes the wizard from the review step. The payment step is
// re-validated defensively. For payLater bookings the result is returned
// immediately with StatusAcceptedLocally while confirmation continues in the
// background; a background failure is logged and reconciled server-side.
// For payNow the call blocks until confirmation resolves,
// because it gates payment collection.
func (w *Wizard) Submit(ctx context.Context, confirm ConfirmFunc, lg *zap.Logger) (SubmitResult, error) {
	if w.Step != StepReview {
		return SubmitResult{}, ErrNotAtReview
	}
	if errs := w.Validate(StepPayment); errs != nil {
		return SubmitResult{}, &ValidationError{Step: StepPayment, Fields: errs}
	}

	if w.Details.PaymentOption == cart.PayLater {
		go func() {
			// Detached from the request context on purpose: the caller has
			// already been told the booking is accepted.
			if _, err := confirm(context.WithoutCancel(ctx), w.ServiceID, w.Details); err != nil {
				lg.Warn("background booking confirmation failed",
					zap.String("wizard", w.ID),
					zap.String("service", w.ServiceID),
					zap.Error(err),
				)
			}
		}()
		return SubmitResult{Status: StatusAcceptedLocally}, nil
	}

	item, err := confirm(ctx, w.ServiceID, w.Details)
	if err != nil {
		return SubmitResult{}, err
	}
	return SubmitResult{Status: StatusConfirmed, Item: item}, nil
}
