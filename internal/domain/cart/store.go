package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rentkart/rentkart/internal/domain/catalog"
)

// ErrNotFound is returned by Storage.Read when no record exists under the key.
var ErrNotFound = errors.New("cart record not found")

// ErrItemNotFound is returned by item mutations when the id matches no entry.
var ErrItemNotFound = errors.New("cart item not found")

// Storage persists the serialized cart record under a well-known per-customer
// key and notifies observers when another writer changes it. Writers are not
// coordinated: concurrent mutation is read-modify-write, last-write-wins.
type Storage interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, data []byte) error
	// Watch delivers a signal whenever the record under key is rewritten.
	// The channel closes when ctx is cancelled.
	Watch(ctx context.Context, key string) (<-chan struct{}, error)
}

// Store is the per-customer cart handle: a canonical in-memory list lazily
// hydrated from Storage on first access and re-persisted after every
// mutation. A corrupt or unavailable record degrades to an empty cart; the
// store never fabricates contents.
type Store struct {
	storage Storage
	key     string
	lg      *zap.Logger
	now     func() time.Time

	mu     sync.Mutex
	items  []Item
	loaded bool
}

// NewStore creates a Store for the given customer.
func NewStore(storage Storage, customerID string, lg *zap.Logger) *Store {
	return &Store{
		storage: storage,
		key:     customerID,
		lg:      lg.With(zap.String("cart", customerID)),
		now:     time.Now,
	}
}

// Load reads the persisted record, drops entries missing every id field,
// migrates the remainder to the canonical shape, and replaces the in-memory
// state. When migration actually changed the serialized form the canonical
// list is written back so other readers converge on it.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *Store) load(ctx context.Context) error {
	s.loaded = true
	s.items = nil

	data, err := s.storage.Read(ctx, s.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.lg.Warn("cart read failed, starting empty", zap.Error(err))
		}
		return nil
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		s.lg.Warn("cart record corrupt, starting empty", zap.Error(err))
		return nil
	}

	items, changed := NormalizeList(raws)
	s.items = items
	if changed {
		if err := s.persist(ctx); err != nil {
			s.lg.Warn("persisting migrated cart failed", zap.Error(err))
		}
	}
	return nil
}

func (s *Store) ensure(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	return s.load(ctx)
}

func (s *Store) persist(ctx context.Context) error {
	items := s.items
	if items == nil {
		items = []Item{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return errors.Wrap(err, "marshal cart")
	}
	if err := s.storage.Write(ctx, s.key, data); err != nil {
		s.lg.Error("cart write failed", zap.Error(err))
		return errors.Wrap(err, "write cart")
	}
	return nil
}

// RentalOptions carries the customer's tenure and payment-plan choice for
// AddRental.
type RentalOptions struct {
	DurationMonths   int
	IsMonthlyPayment bool
}

// AddRental builds a canonical rental entry from a catalog product. An
// existing entry for the same product is replaced wholesale, never merged:
// re-adding always reflects the latest duration and plan choice.
func (s *Store) AddRental(ctx context.Context, p *catalog.Product, opts RentalOptions) (Item, error) {
	months := opts.DurationMonths
	if !ValidDuration(months) {
		months = DefaultDurationMonths
	}

	it := Item{
		ID:                     p.ID,
		Kind:                   KindRental,
		Quantity:               1,
		ProductID:              p.ID,
		Brand:                  p.Brand,
		Model:                  p.Model,
		Capacity:               p.Capacity,
		ProductType:            p.ProductType,
		Category:               p.Category,
		Tariff:                 Tariff(p.Tariff),
		SelectedDurationMonths: months,
		InstallationCharge:     p.InstallationCharge,
		DiscountPercent:        p.DiscountPercent,
	}
	if opts.IsMonthlyPayment && p.MonthlyPlan != nil {
		it.IsMonthlyPayment = true
		it.MonthlyPrice = p.MonthlyPlan.Price
		it.MonthlyTenureMonths = p.MonthlyPlan.TenureMonths
		it.SecurityDeposit = p.MonthlyPlan.SecurityDeposit
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensure(ctx); err != nil {
		return Item{}, err
	}

	replaced := false
	for i := range s.items {
		if s.items[i].Kind == KindRental && s.items[i].ProductID == p.ID {
			s.items[i] = it
			replaced = true
			break
		}
	}
	if !replaced {
		s.items = append(s.items, it)
	}
	return it, s.persist(ctx)
}

// AddService appends a new service booking under a synthetic id, so multiple
// bookings of the same service coexist independently. Missing booking fields
// get their defaults.
func (s *Store) AddService(ctx context.Context, svc *catalog.Service, details BookingDetails) (Item, error) {
	if details.AddressType == "" {
		details.AddressType = AddressMyself
	}
	if details.PaymentOption == "" {
		details.PaymentOption = PayLater
	}

	it := Item{
		Kind:               KindService,
		Quantity:           1,
		ServiceID:          svc.ID,
		ServiceTitle:       svc.Title,
		ServicePrice:       svc.Price,
		ServiceDescription: svc.Description,
		ServiceImage:       svc.Image,
		Booking:            &details,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensure(ctx); err != nil {
		return Item{}, err
	}

	// Millisecond ids can collide when bookings land in the same tick.
	base := s.now().UnixMilli()
	it.ID = fmt.Sprintf("%s-%d", svc.ID, base)
	for n := int64(1); s.find(it.ID) != nil; n++ {
		it.ID = fmt.Sprintf("%s-%d", svc.ID, base+n)
	}

	s.items = append(s.items, it)
	return it, s.persist(ctx)
}

// find returns a pointer into s.items for the entry with the given id, or
// nil. Callers hold s.mu and must not retain the pointer past persist.
func (s *Store) find(itemID string) *Item {
	for i := range s.items {
		if s.items[i].ID == itemID {
			return &s.items[i]
		}
	}
	return nil
}

// ItemPatch holds the mutable rental fields for UpdateItem. Nil fields are
// left untouched.
type ItemPatch struct {
	SelectedDurationMonths *int
	PaymentOption          *PaymentOption
	IsMonthlyPayment       *bool
}

// UpdateItem shallow-merges the patch into the entry with the given id.
func (s *Store) UpdateItem(ctx context.Context, itemID string, patch ItemPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensure(ctx); err != nil {
		return err
	}

	it := s.find(itemID)
	if it == nil {
		return ErrItemNotFound
	}
	if patch.SelectedDurationMonths != nil {
		months := *patch.SelectedDurationMonths
		if !ValidDuration(months) {
			months = DefaultDurationMonths
		}
		it.SelectedDurationMonths = months
	}
	if patch.PaymentOption != nil {
		it.PaymentOption = *patch.PaymentOption
	}
	if patch.IsMonthlyPayment != nil {
		it.IsMonthlyPayment = *patch.IsMonthlyPayment
	}
	return s.persist(ctx)
}

// BookingPatch holds the mutable booking fields for UpdateServiceBooking.
type BookingPatch struct {
	Date          *string
	Time          *string
	Address       *string
	AddressType   *AddressType
	ContactName   *string
	ContactPhone  *string
	PaymentOption *PaymentOption
}

// UpdateServiceBooking shallow-merges the patch into the booking details of
// the matching service entry. Rental entries are not eligible.
func (s *Store) UpdateServiceBooking(ctx context.Context, itemID string, patch BookingPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensure(ctx); err != nil {
		return err
	}

	it := s.find(itemID)
	if it == nil || it.Kind != KindService {
		return ErrItemNotFound
	}
	if it.Booking == nil {
		it.Booking = &BookingDetails{AddressType: AddressMyself, PaymentOption: PayLater}
	}
	b := it.Booking
	if patch.Date != nil {
		b.Date = *patch.Date
	}
	if patch.Time != nil {
		b.Time = *patch.Time
	}
	if patch.Address != nil {
		b.Address = *patch.Address
	}
	if patch.AddressType != nil {
		b.AddressType = *patch.AddressType
	}
	if patch.ContactName != nil {
		b.ContactName = *patch.ContactName
	}
	if patch.ContactPhone != nil {
		b.ContactPhone = *patch.ContactPhone
	}
	if patch.PaymentOption != nil {
		b.PaymentOption = *patch.PaymentOption
	}
	return s.persist(ctx)
}

// Remove filters the entry with the given id out of the cart.
func (s *Store) Remove(ctx context.Context, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensure(ctx); err != nil {
		return err
	}

	kept := s.items[:0]
	found := false
	for _, it := range s.items {
		if it.ID == itemID {
			found = true
			continue
		}
		kept = append(kept, it)
	}
	if !found {
		return ErrItemNotFound
	}
	s.items = kept
	return s.persist(ctx)
}

// UpdateQuantity sets the quantity of the matching entry, removing it when
// qty drops below 1. The storefront never offers quantities above 1, but the
// operation honors them anyway.
func (s *Store) UpdateQuantity(ctx context.Context, itemID string, qty int) error {
	if qty < 1 {
		return s.Remove(ctx, itemID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensure(ctx); err != nil {
		return err
	}

	it := s.find(itemID)
	if it == nil {
		return ErrItemNotFound
	}
	it.Quantity = qty
	return s.persist(ctx)
}

// Clear empties the cart. Called after successful order placement.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = true
	s.items = nil
	return s.persist(ctx)
}

// Items returns a snapshot of the current cart contents.
func (s *Store) Items(ctx context.Context) ([]Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensure(ctx); err != nil {
		return nil, err
	}
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out, nil
}

// Totals computes the derived subtotal breakdown over the current contents.
func (s *Store) Totals(ctx context.Context) (Totals, error) {
	items, err := s.Items(ctx)
	if err != nil {
		return Totals{}, err
	}
	return CalcTotals(items), nil
}

// Watch surfaces storage-level change notifications for this customer's
// record, letting other open sessions converge after a concurrent write.
func (s *Store) Watch(ctx context.Context) (<-chan struct{}, error) {
	return s.storage.Watch(ctx, s.key)
}

// PaymentBenefit describes one payment option for display at checkout.
type PaymentBenefit struct {
	Option          PaymentOption   `json:"option"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	Benefits        []string        `json:"benefits"`
}

// PaymentBenefits returns the static benefit lists per payment option with
// the currently configured discount percentages filled in. Informational
// only, no state.
func PaymentBenefits(instantPercent, advancePercent decimal.Decimal) []PaymentBenefit {
	return []PaymentBenefit{
		{
			Option:          PayNow,
			DiscountPercent: instantPercent,
			Benefits: []string{
				"Instant payment discount on your first invoice",
				"Priority delivery and installation slots",
				"No pending dues at handover",
			},
		},
		{
			Option:          PayAdvance,
			DiscountPercent: advancePercent,
			Benefits: []string{
				"Advance payment discount on your first invoice",
				"Reserve your unit before delivery",
			},
		},
		{
			Option:          PayLater,
			DiscountPercent: decimal.Zero,
			Benefits: []string{
				"Pay at delivery, nothing due today",
				"Inspect the appliance before paying",
			},
		},
	}
}
