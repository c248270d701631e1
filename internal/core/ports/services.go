package ports

import (
	"context"
	"time"

	"currency-management/internal/core/domain"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=services.go -destination=mocks/mock_services.go -package=mocks

// RateLimitStore tracks per-key request counts in fixed windows.
type RateLimitStore interface {
	// Allow counts one request against key and reports whether it fits in limit for the current window.
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (*RateLimitResult, error)
}

// RateLimitResult holds the outcome of a rate limit check.
type RateLimitResult struct {
	Allowed   bool
	Limit     int64
	Remaining int64
	ResetAt   int64 // Unix timestamp
}

// --- Service Ports (Business Logic) ---

// CurrencyService defines the currency management use cases.
type CurrencyService interface {
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
	ListCurrenciesPage(ctx context.Context, req domain.PageRequest) (*domain.Page[domain.Currency], error)
	GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)
	GetCurrencyByID(ctx context.Context, id int64) (*domain.Currency, error)
	CreateCurrency(ctx context.Context, in CurrencyInput) (*domain.Currency, error)
	UpdateCurrency(ctx context.Context, id int64, in CurrencyInput) (*domain.Currency, error)
	DeleteCurrency(ctx context.Context, id int64) error
}

// CurrencyInput carries the client-supplied fields of a create or update.
type CurrencyInput struct {
	Code         string
	Name         string
	Symbol       string
	ExchangeRate decimal.Decimal
}
