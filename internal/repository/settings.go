package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/rentkart/rentkart/internal/domain/pricing"
	"github.com/rentkart/rentkart/internal/domain/settings"
)

const (
	getPaymentSettingsSQL = `SELECT key, value FROM settings WHERE key = ANY($1)`

	setSettingSQL = `INSERT INTO settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`
)

var settingKeys = []string{
	"instant_payment_discount_percent",
	"advance_payment_discount_percent",
	"advance_payment_amount",
}

var _ settings.Repository = (*SettingsRepository)(nil)

// SettingsRepository reads the payment settings rows from PostgreSQL.
type SettingsRepository struct {
	pool *pgxpool.Pool
}

// NewSettingsRepository returns a SettingsRepository that uses the given pool.
func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{pool: pool}
}

// GetPayment assembles the payment configuration. Missing rows keep their
// client-side defaults.
func (r *SettingsRepository) GetPayment(ctx context.Context) (*pricing.Config, error) {
	rows, err := r.pool.Query(ctx, getPaymentSettingsSQL, settingKeys)
	if err != nil {
		return nil, fmt.Errorf("reading payment settings: %w", err)
	}
	defer rows.Close()

	cfg := pricing.DefaultConfig()
	for rows.Next() {
		var (
			key   string
			value decimal.Decimal
		)
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scanning payment setting: %w", err)
		}
		switch key {
		case "instant_payment_discount_percent":
			cfg.InstantPaymentDiscountPercent = value
		case "advance_payment_discount_percent":
			cfg.AdvancePaymentDiscountPercent = value
		case "advance_payment_amount":
			cfg.AdvancePaymentAmount = value
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading payment settings: %w", err)
	}
	return &cfg, nil
}

// Set writes a single setting value.
func (r *SettingsRepository) Set(ctx context.Context, key string, value decimal.Decimal) error {
	if _, err := r.pool.Exec(ctx, setSettingSQL, key, value); err != nil {
		return fmt.Errorf("setting %q: %w", key, err)
	}
	return nil
}
