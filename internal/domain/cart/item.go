// Package cart implements the customer shopping cart: the canonical item
// shapes, migration of legacy persisted records, and the per-customer store
// with derived totals.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/rentkart/rentkart/internal/money"
)

// Kind discriminates the two cart entry variants.
type Kind string

const (
	KindRental  Kind = "rental"
	KindService Kind = "service"
)

// PaymentOption is the customer's payment timing choice.
type PaymentOption string

const (
	PayNow     PaymentOption = "payNow"
	PayLater   PaymentOption = "payLater"
	PayAdvance PaymentOption = "payAdvance"
)

// AddressType distinguishes who the service booking is for.
type AddressType string

const (
	AddressMyself      AddressType = "myself"
	AddressSomeoneElse AddressType = "someoneElse"
)

// CategoryAC is the one product category whose installation charge
// contributes to totals.
const CategoryAC = "AC"

// DefaultDurationMonths is the tenure assigned when a rental carries no
// recognized duration.
const DefaultDurationMonths = 3

// durations is the set of recognized lease tenures, in months.
var durations = map[int]bool{3: true, 6: true, 9: true, 11: true, 12: true, 24: true}

// ValidDuration reports whether months is a recognized lease tenure.
func ValidDuration(months int) bool {
	return durations[months]
}

// Tariff maps lease duration in months to the price for that tenure.
// A sparse map is allowed; lookups fall back to the 3-month tariff, then zero.
type Tariff map[int]decimal.Decimal

// PriceFor returns the price for the given tenure, falling back to the
// default tenure and finally to zero when the map is sparse.
func (t Tariff) PriceFor(months int) decimal.Decimal {
	if p, ok := t[months]; ok {
		return p
	}
	if p, ok := t[DefaultDurationMonths]; ok {
		return p
	}
	return decimal.Zero
}

// BookingDetails holds the scheduling and contact data for a service entry.
type BookingDetails struct {
	Date          string        `json:"date"`
	Time          string        `json:"time"`
	Address       string        `json:"address"`
	AddressType   AddressType   `json:"addressType"`
	ContactName   string        `json:"contactName"`
	ContactPhone  string        `json:"contactPhone"`
	PaymentOption PaymentOption `json:"paymentOption"`
}

// Item is a single cart entry, either a rental or a service booking.
// Quantity is always 1 in practice: re-adding a rental replaces the existing
// entry and re-adding a service appends an independent booking.
type Item struct {
	ID       string `json:"id"`
	Kind     Kind   `json:"kind"`
	Quantity int    `json:"quantity"`

	// Rental fields.
	ProductID              string          `json:"productId,omitempty"`
	Brand                  string          `json:"brand,omitempty"`
	Model                  string          `json:"model,omitempty"`
	Capacity               string          `json:"capacity,omitempty"`
	ProductType            string          `json:"productType,omitempty"`
	Category               string          `json:"category,omitempty"`
	Tariff                 Tariff          `json:"tariff,omitempty"`
	SelectedDurationMonths int             `json:"selectedDurationMonths,omitempty"`
	InstallationCharge     decimal.Decimal `json:"installationCharge,omitzero"`
	DiscountPercent        decimal.Decimal `json:"discountPercent,omitzero"`
	PaymentOption          PaymentOption   `json:"paymentOption,omitempty"`
	IsMonthlyPayment       bool            `json:"isMonthlyPayment,omitempty"`
	MonthlyPrice           decimal.Decimal `json:"monthlyPrice,omitzero"`
	MonthlyTenureMonths    int             `json:"monthlyTenureMonths,omitempty"`
	SecurityDeposit        decimal.Decimal `json:"securityDeposit,omitzero"`

	// Service fields.
	ServiceID          string          `json:"serviceId,omitempty"`
	ServiceTitle       string          `json:"serviceTitle,omitempty"`
	ServicePrice       decimal.Decimal `json:"servicePrice,omitzero"`
	ServiceDescription string          `json:"serviceDescription,omitempty"`
	ServiceImage       string          `json:"serviceImage,omitempty"`
	Booking            *BookingDetails `json:"bookingDetails,omitempty"`
}

// LinePrice returns the amount this entry contributes to the cart subtotal.
//
// Rentals on a monthly plan charge one month plus the security deposit, not
// the full-tenure total. Prepaid rentals charge the tariff for the selected
// tenure net of the product-level discount. An AC's installation charge is
// added on top, undiscounted. Services charge their flat price.
func (it *Item) LinePrice() decimal.Decimal {
	if it.Kind == KindService {
		return money.Round(it.ServicePrice)
	}

	var base decimal.Decimal
	if it.IsMonthlyPayment {
		base = it.MonthlyPrice.Add(it.SecurityDeposit)
	} else {
		base = it.Tariff.PriceFor(it.SelectedDurationMonths)
	}
	base = base.Sub(money.DiscountAmount(base, it.DiscountPercent))

	if it.Category == CategoryAC && it.InstallationCharge.Sign() > 0 {
		base = base.Add(it.InstallationCharge)
	}
	return money.Round(base)
}

// Totals is the derived monetary summary of a cart.
type Totals struct {
	RentalTotal  decimal.Decimal `json:"rentalTotal"`
	ServiceTotal decimal.Decimal `json:"serviceTotal"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	ItemCount    int             `json:"itemCount"`
}

// CalcTotals computes the subtotal breakdown for a list of items.
func CalcTotals(items []Item) Totals {
	t := Totals{
		RentalTotal:  decimal.Zero,
		ServiceTotal: decimal.Zero,
		ItemCount:    len(items),
	}
	for i := range items {
		if items[i].Kind == KindService {
			t.ServiceTotal = t.ServiceTotal.Add(items[i].LinePrice())
		} else {
			t.RentalTotal = t.RentalTotal.Add(items[i].LinePrice())
		}
	}
	t.Subtotal = money.Round(t.RentalTotal.Add(t.ServiceTotal))
	return t
}
