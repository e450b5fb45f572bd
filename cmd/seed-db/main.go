// Command seed-db populates the catalog, starter coupons, and payment
// settings from a JSON fixture. Safe to rerun: everything is upserted.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/rentkart/rentkart/internal/domain/catalog"
	"github.com/rentkart/rentkart/internal/domain/coupon"
	"github.com/rentkart/rentkart/internal/repository"
)

type seedFile struct {
	Products []catalog.Product          `json:"products"`
	Services []catalog.Service          `json:"services"`
	Coupons  []seedCoupon               `json:"coupons"`
	Settings map[string]decimal.Decimal `json:"settings"`
}

type seedCoupon struct {
	Code         string          `json:"code"`
	DiscountType string          `json:"discountType"`
	Value        decimal.Decimal `json:"value"`
	MinAmount    decimal.Decimal `json:"minAmount"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	MaxUses      int             `json:"maxUses"`
}

func main() {
	var (
		databaseURL string
		catalogFile string
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&catalogFile, "catalog-file", "db/seed/catalog.json", "path to catalog JSON file")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL, catalogFile); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL, catalogFile string) error {
	slog.Info("reading catalog file", slog.String("path", catalogFile))

	data, err := os.ReadFile(catalogFile)
	if err != nil {
		return errors.Wrap(err, "read catalog file")
	}

	var seed seedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		return errors.Wrap(err, "parse catalog JSON")
	}

	slog.Info("connecting to database")

	pool, err := repository.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	slog.Info("running migrations")

	if err := repository.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	catalogRepo := repository.NewCatalogRepository(pool)
	couponRepo := repository.NewCouponRepository(pool)
	settingsRepo := repository.NewSettingsRepository(pool)

	for _, p := range seed.Products {
		if err := catalogRepo.UpsertProduct(ctx, p); err != nil {
			return errors.Wrap(err, "seed products")
		}
	}
	slog.Info("products seeded", slog.Int("count", len(seed.Products)))

	for _, s := range seed.Services {
		if err := catalogRepo.UpsertService(ctx, s); err != nil {
			return errors.Wrap(err, "seed services")
		}
	}
	slog.Info("services seeded", slog.Int("count", len(seed.Services)))

	for _, c := range seed.Coupons {
		rule := coupon.Rule{
			Code:         c.Code,
			DiscountType: coupon.DiscountType(c.DiscountType),
			Value:        c.Value,
			MinAmount:    c.MinAmount,
			Title:        c.Title,
			Description:  c.Description,
			MaxUses:      c.MaxUses,
		}
		if err := couponRepo.Upsert(ctx, rule); err != nil {
			return errors.Wrap(err, "seed coupons")
		}
	}
	slog.Info("coupons seeded", slog.Int("count", len(seed.Coupons)))

	for key, value := range seed.Settings {
		if err := settingsRepo.Set(ctx, key, value); err != nil {
			return errors.Wrap(err, "seed settings")
		}
	}
	slog.Info("settings seeded", slog.Int("count", len(seed.Settings)))

	return nil
}
