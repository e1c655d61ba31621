package config

import (
	"errors"
	"fmt"

	"github.com/piresc/lume/internal/pkg/models"
	"github.com/shopspring/decimal"
)

// Validate checks the settings the payment service cannot run without
func Validate(cfg *models.Config) error {
	if cfg.Ledger.APIKey == "" {
		return errors.New("PI_API_KEY is required")
	}
	if cfg.Ledger.BaseURL == "" {
		return errors.New("PI_API_URL is required")
	}
	if cfg.Ledger.Timeout <= 0 {
		return fmt.Errorf("LEDGER_TIMEOUT must be positive, got %d", cfg.Ledger.Timeout)
	}

	price, err := decimal.NewFromString(cfg.Product.Price)
	if err != nil {
		return fmt.Errorf("invalid PRODUCT_PRICE %q: %w", cfg.Product.Price, err)
	}
	if !price.IsPositive() {
		return fmt.Errorf("PRODUCT_PRICE must be positive, got %s", cfg.Product.Price)
	}

	switch cfg.Store.Driver {
	case "memory", "redis", "postgres":
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", cfg.Store.Driver)
	}

	return nil
}
