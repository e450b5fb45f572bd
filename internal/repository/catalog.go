package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/rentkart/rentkart/internal/domain/catalog"
)

const (
	listProductsSQL = `SELECT id, brand, model, capacity, product_type, category, tariff,
		installation_charge, discount_percent, monthly_price, monthly_tenure_months,
		security_deposit, image
		FROM products ORDER BY category, brand, model`

	listProductsByCategorySQL = `SELECT id, brand, model, capacity, product_type, category, tariff,
		installation_charge, discount_percent, monthly_price, monthly_tenure_months,
		security_deposit, image
		FROM products WHERE category = $1 ORDER BY brand, model`

	getProductSQL = `SELECT id, brand, model, capacity, product_type, category, tariff,
		installation_charge, discount_percent, monthly_price, monthly_tenure_months,
		security_deposit, image
		FROM products WHERE id = $1`

	listServicesSQL = `SELECT id, title, price, description, image FROM services ORDER BY title`
	getServiceSQL   = `SELECT id, title, price, description, image FROM services WHERE id = $1`

	upsertProductSQL = `INSERT INTO products (id, brand, model, capacity, product_type, category,
		tariff, installation_charge, discount_percent, monthly_price, monthly_tenure_months,
		security_deposit, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			brand = EXCLUDED.brand,
			model = EXCLUDED.model,
			capacity = EXCLUDED.capacity,
			product_type = EXCLUDED.product_type,
			category = EXCLUDED.category,
			tariff = EXCLUDED.tariff,
			installation_charge = EXCLUDED.installation_charge,
			discount_percent = EXCLUDED.discount_percent,
			monthly_price = EXCLUDED.monthly_price,
			monthly_tenure_months = EXCLUDED.monthly_tenure_months,
			security_deposit = EXCLUDED.security_deposit,
			image = EXCLUDED.image`

	upsertServiceSQL = `INSERT INTO services (id, title, price, description, image)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			price = EXCLUDED.price,
			description = EXCLUDED.description,
			image = EXCLUDED.image`
)

var (
	_ catalog.ProductRepository = (*CatalogRepository)(nil)
	_ catalog.ServiceRepository = serviceRepo{}
)

// CatalogRepository implements the catalog read repositories backed by
// PostgreSQL.
type CatalogRepository struct {
	pool *pgxpool.Pool
}

// NewCatalogRepository returns a CatalogRepository that uses the given pool.
func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

// List returns rental products, optionally filtered by category.
func (r *CatalogRepository) List(ctx context.Context, category string) ([]catalog.Product, error) {
	var rows pgx.Rows
	var err error
	if category == "" {
		rows, err = r.pool.Query(ctx, listProductsSQL)
	} else {
		rows, err = r.pool.Query(ctx, listProductsByCategorySQL, category)
	}
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}

	products, err := pgx.CollectRows(rows, scanProduct)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	return products, nil
}

// GetByID returns a single product, or catalog.ErrNotFound.
func (r *CatalogRepository) GetByID(ctx context.Context, id string) (*catalog.Product, error) {
	rows, err := r.pool.Query(ctx, getProductSQL, id)
	if err != nil {
		return nil, fmt.Errorf("getting product %q: %w", id, err)
	}

	p, err := pgx.CollectExactlyOneRow(rows, scanProduct)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrNotFound
		}
		return nil, fmt.Errorf("getting product %q: %w", id, err)
	}
	return &p, nil
}

// ListServices returns every repair/maintenance service.
func (r *CatalogRepository) ListServices(ctx context.Context) ([]catalog.Service, error) {
	rows, err := r.pool.Query(ctx, listServicesSQL)
	if err != nil {
		return nil, fmt.Errorf("listing services: %w", err)
	}

	services, err := pgx.CollectRows(rows, scanService)
	if err != nil {
		return nil, fmt.Errorf("listing services: %w", err)
	}
	return services, nil
}

// GetServiceByID returns a single service, or catalog.ErrNotFound.
func (r *CatalogRepository) GetServiceByID(ctx context.Context, id string) (*catalog.Service, error) {
	rows, err := r.pool.Query(ctx, getServiceSQL, id)
	if err != nil {
		return nil, fmt.Errorf("getting service %q: %w", id, err)
	}

	s, err := pgx.CollectExactlyOneRow(rows, scanService)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrNotFound
		}
		return nil, fmt.Errorf("getting service %q: %w", id, err)
	}
	return &s, nil
}

// serviceRepo adapts CatalogRepository to the catalog.ServiceRepository
// method names.
func (r *CatalogRepository) Services() catalog.ServiceRepository {
	return serviceRepo{r}
}

type serviceRepo struct{ r *CatalogRepository }

func (s serviceRepo) List(ctx context.Context) ([]catalog.Service, error) {
	return s.r.ListServices(ctx)
}

func (s serviceRepo) GetByID(ctx context.Context, id string) (*catalog.Service, error) {
	return s.r.GetServiceByID(ctx, id)
}

// UpsertProduct inserts or refreshes a catalog product.
func (r *CatalogRepository) UpsertProduct(ctx context.Context, p catalog.Product) error {
	tariffJSON, err := json.Marshal(p.Tariff)
	if err != nil {
		return fmt.Errorf("encoding tariff for %q: %w", p.ID, err)
	}

	var (
		monthlyPrice *decimal.Decimal
		tenureMonths *int32
		deposit      *decimal.Decimal
	)
	if p.MonthlyPlan != nil {
		monthlyPrice = &p.MonthlyPlan.Price
		months := int32(p.MonthlyPlan.TenureMonths)
		tenureMonths = &months
		deposit = &p.MonthlyPlan.SecurityDeposit
	}

	_, err = r.pool.Exec(ctx, upsertProductSQL,
		p.ID, p.Brand, p.Model, p.Capacity, p.ProductType, p.Category,
		tariffJSON, p.InstallationCharge, p.DiscountPercent,
		monthlyPrice, tenureMonths, deposit, p.Image,
	)
	if err != nil {
		return fmt.Errorf("upserting product %q: %w", p.ID, err)
	}
	return nil
}

// UpsertService inserts or refreshes a service offering.
func (r *CatalogRepository) UpsertService(ctx context.Context, s catalog.Service) error {
	_, err := r.pool.Exec(ctx, upsertServiceSQL, s.ID, s.Title, s.Price, s.Description, s.Image)
	if err != nil {
		return fmt.Errorf("upserting service %q: %w", s.ID, err)
	}
	return nil
}

func scanProduct(row pgx.CollectableRow) (catalog.Product, error) {
	var (
		p            catalog.Product
		tariffJSON   []byte
		monthlyPrice *decimal.Decimal
		tenureMonths *int32
		deposit      *decimal.Decimal
	)
	err := row.Scan(
		&p.ID, &p.Brand, &p.Model, &p.Capacity, &p.ProductType, &p.Category,
		&tariffJSON, &p.InstallationCharge, &p.DiscountPercent,
		&monthlyPrice, &tenureMonths, &deposit, &p.Image,
	)
	if err != nil {
		return catalog.Product{}, err
	}

	if err := json.Unmarshal(tariffJSON, &p.Tariff); err != nil {
		return catalog.Product{}, fmt.Errorf("decoding tariff for %q: %w", p.ID, err)
	}
	if monthlyPrice != nil && tenureMonths != nil {
		plan := &catalog.MonthlyPlan{
			Price:        *monthlyPrice,
			TenureMonths: int(*tenureMonths),
		}
		if deposit != nil {
			plan.SecurityDeposit = *deposit
		}
		p.MonthlyPlan = plan
	}
	return p, nil
}

func scanService(row pgx.CollectableRow) (catalog.Service, error) {
	var s catalog.Service
	err := row.Scan(&s.ID, &s.Title, &s.Price, &s.Description, &s.Image)
	return s, err
}
