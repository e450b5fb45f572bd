// Package catalog defines the rental products and repair services available
// in the storefront, and the read-side repository contracts for them.
package catalog

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested product or service does not exist.
var ErrNotFound = errors.New("catalog entry not found")

// Product is a rentable appliance priced by tenure.
type Product struct {
	ID                 string                  `json:"id"`
	Brand              string                  `json:"brand"`
	Model              string                  `json:"model"`
	Capacity           string                  `json:"capacity,omitempty"`
	ProductType        string                  `json:"productType,omitempty"` // physical subtype, e.g. "Split" or "Window"
	Category           string                  `json:"category"`              // AC, Refrigerator, Washing Machine
	Tariff             map[int]decimal.Decimal `json:"tariff"`
	InstallationCharge decimal.Decimal         `json:"installationCharge"`
	DiscountPercent    decimal.Decimal         `json:"discountPercent"`
	MonthlyPlan        *MonthlyPlan            `json:"monthlyPlan,omitempty"`
	Image              string                  `json:"image,omitempty"`
}

// MonthlyPlan describes the pay-monthly alternative to prepaying a tenure.
type MonthlyPlan struct {
	Price           decimal.Decimal `json:"price"`
	TenureMonths    int             `json:"tenureMonths"`
	SecurityDeposit decimal.Decimal `json:"securityDeposit"`
}

// Service is a scheduled at-home repair or maintenance offering.
type Service struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description,omitempty"`
	Image       string          `json:"image,omitempty"`
}

// ProductRepository defines read operations for the rental catalog.
type ProductRepository interface {
	List(ctx context.Context, category string) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
}

// ServiceRepository defines read operations for the service catalog.
type ServiceRepository interface {
	List(ctx context.Context) ([]Service, error)
	GetByID(ctx context.Context, id string) (*Service, error)
}
