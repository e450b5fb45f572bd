package cart

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strconv"

	"github.com/shopspring/decimal"
)

// record mirrors every field ever written to the cart storage record, across
// schema generations. Field types are deliberately lenient: legacy carts
// stored the duration slider value as a string and occasionally carried
// malformed prices, which must coerce to zero rather than fail the load.
type record struct {
	ID       string  `json:"id"`
	Kind     string  `json:"kind"`
	Type     string  `json:"type"` // legacy product subtype, not an entry tag
	Quantity flexInt `json:"quantity"`

	ProductID              string      `json:"productId"`
	Brand                  string      `json:"brand"`
	Model                  string      `json:"model"`
	Name                   string      `json:"name"`
	Capacity               string      `json:"capacity"`
	ProductType            string      `json:"productType"`
	Category               string      `json:"category"`
	Tariff                 Tariff      `json:"tariff"`
	SelectedDurationMonths flexInt     `json:"selectedDurationMonths"`
	InstallationCharge     flexDecimal `json:"installationCharge"`
	DiscountPercent        flexDecimal `json:"discountPercent"`
	Price                  flexDecimal `json:"price"` // legacy flat price
	PaymentOption          string      `json:"paymentOption"`
	IsMonthlyPayment       bool        `json:"isMonthlyPayment"`
	MonthlyPrice           flexDecimal `json:"monthlyPrice"`
	MonthlyTenureMonths    flexInt     `json:"monthlyTenureMonths"`
	SecurityDeposit        flexDecimal `json:"securityDeposit"`

	ServiceID          string          `json:"serviceId"`
	ServiceTitle       string          `json:"serviceTitle"`
	ServicePrice       flexDecimal     `json:"servicePrice"`
	ServiceDescription string          `json:"serviceDescription"`
	ServiceImage       string          `json:"serviceImage"`
	Booking            *BookingDetails `json:"bookingDetails"`
}

func (r *record) hasServiceFields() bool {
	return r.ServiceID != "" || r.ServiceTitle != "" || r.ServicePrice.present
}

func (r *record) hasRentalFields() bool {
	return r.Brand != "" || r.Model != "" || r.ProductID != "" || r.Name != "" || r.Price.present
}

// Normalize converts a raw persisted record into the canonical Item shape.
//
// Classification is strict-first: a record already tagged with a valid kind
// keeps it (the duration is still re-coerced). Untagged records fall through
// prioritized heuristics: service fields win over rental fields, and a record
// matching neither defaults to a rental. Normalize is idempotent: canonical
// input round-trips unchanged.
func Normalize(raw json.RawMessage) (Item, error) {
	var r record
	if err := json.Unmarshal(raw, &r); err != nil {
		return Item{}, err
	}

	kind := Kind(r.Kind)
	if kind != KindRental && kind != KindService {
		switch {
		case r.hasServiceFields():
			kind = KindService
		case r.hasRentalFields():
			kind = KindRental
		default:
			// Matches neither shape: permissive rental fallback.
			kind = KindRental
		}
	}

	if kind == KindService {
		return r.toService(), nil
	}
	return r.toRental(), nil
}

func (r *record) toService() Item {
	it := Item{
		ID:                 r.ID,
		Kind:               KindService,
		Quantity:           normQuantity(int(r.Quantity)),
		ServiceID:          r.ServiceID,
		ServiceTitle:       r.ServiceTitle,
		ServicePrice:       r.ServicePrice.value,
		ServiceDescription: r.ServiceDescription,
		ServiceImage:       r.ServiceImage,
		Booking:            r.Booking,
	}
	if it.ID == "" {
		it.ID = r.ServiceID
	}
	return it
}

func (r *record) toRental() Item {
	it := Item{
		ID:                     r.ID,
		Kind:                   KindRental,
		Quantity:               normQuantity(int(r.Quantity)),
		ProductID:              r.ProductID,
		Brand:                  r.Brand,
		Model:                  r.Model,
		Capacity:               r.Capacity,
		ProductType:            r.ProductType,
		Category:               r.Category,
		Tariff:                 r.Tariff,
		SelectedDurationMonths: normDuration(int(r.SelectedDurationMonths)),
		InstallationCharge:     r.InstallationCharge.value,
		DiscountPercent:        r.DiscountPercent.value,
		PaymentOption:          PaymentOption(r.PaymentOption),
		IsMonthlyPayment:       r.IsMonthlyPayment,
		MonthlyPrice:           r.MonthlyPrice.value,
		MonthlyTenureMonths:    int(r.MonthlyTenureMonths),
		SecurityDeposit:        r.SecurityDeposit.value,
	}
	if it.Model == "" {
		it.Model = r.Name
	}
	if it.ProductType == "" {
		// Pre-tagged-union carts used "type" for the physical subtype.
		it.ProductType = r.Type
	}
	if it.ID == "" {
		it.ID = r.ProductID
	}
	if it.ProductID == "" {
		it.ProductID = it.ID
	}
	if len(it.Tariff) == 0 && r.Price.present {
		// Legacy flat price becomes the default-tenure tariff so price
		// lookup keeps resolving through the same fallback chain.
		it.Tariff = Tariff{DefaultDurationMonths: r.Price.value}
	}
	return it
}

// NormalizeList migrates a raw persisted list: entries missing every id field
// are dropped, the remainder run through Normalize. The returned flag reports
// whether the canonical form differs from the input, so callers can skip
// re-persisting unchanged data.
func NormalizeList(raws []json.RawMessage) ([]Item, bool) {
	items := make([]Item, 0, len(raws))
	for _, raw := range raws {
		it, err := Normalize(raw)
		if err != nil {
			continue
		}
		if it.ID == "" && it.ProductID == "" && it.ServiceID == "" {
			continue
		}
		items = append(items, it)
	}
	return items, listChanged(raws, items)
}

// listChanged compares the raw and canonical lists as generic JSON values, so
// key order and whitespace do not count as differences.
func listChanged(raws []json.RawMessage, items []Item) bool {
	if len(raws) != len(items) {
		return true
	}
	canonical, err := json.Marshal(items)
	if err != nil {
		return true
	}
	original, err := json.Marshal(raws)
	if err != nil {
		return true
	}

	var a, b any
	if err := json.Unmarshal(original, &a); err != nil {
		return true
	}
	if err := json.Unmarshal(canonical, &b); err != nil {
		return true
	}
	return !reflect.DeepEqual(a, b)
}

func normQuantity(q int) int {
	if q < 1 {
		return 1
	}
	return q
}

func normDuration(months int) int {
	if !ValidDuration(months) {
		return DefaultDurationMonths
	}
	return months
}

// flexInt accepts JSON numbers, numeric strings, and null. Anything else
// coerces to zero.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(bytes.TrimSpace(b), `"`)
	if len(b) == 0 || string(b) == "null" {
		*f = 0
		return nil
	}
	if n, err := strconv.Atoi(string(b)); err == nil {
		*f = flexInt(n)
		return nil
	}
	if v, err := strconv.ParseFloat(string(b), 64); err == nil {
		*f = flexInt(int(v))
		return nil
	}
	*f = 0
	return nil
}

func (f flexInt) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(int(f))), nil
}

// flexDecimal accepts JSON numbers, numeric strings, and null; non-numeric
// input coerces to zero. present records whether the field appeared at all,
// which the classification heuristics need.
type flexDecimal struct {
	value   decimal.Decimal
	present bool
}

func (f *flexDecimal) UnmarshalJSON(b []byte) error {
	if string(bytes.TrimSpace(b)) == "null" {
		return nil
	}
	f.present = true
	d, err := decimal.NewFromString(string(bytes.Trim(bytes.TrimSpace(b), `"`)))
	if err != nil {
		f.value = decimal.Zero
		return nil
	}
	f.value = d
	return nil
}

// UnmarshalJSON tolerates malformed tariff entries: unparseable keys are
// dropped and unparseable prices coerce to zero.
func (t *Tariff) UnmarshalJSON(b []byte) error {
	var m map[string]flexDecimal
	if err := json.Unmarshal(b, &m); err != nil {
		*t = nil
		return nil
	}
	out := make(Tariff, len(m))
	for k, v := range m {
		months, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		out[months] = v.value
	}
	*t = out
	return nil
}
