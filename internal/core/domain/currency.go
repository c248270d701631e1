package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// BaseCurrencyCode is the currency every exchange rate is quoted against.
const BaseCurrencyCode = "USD"

// Exchange rates are stored as NUMERIC(10,4).
const (
	ExchangeRateScale         = 4
	ExchangeRateIntegerDigits = 6
)

// Field length limits, counted in characters.
const (
	CurrencyCodeLength   = 3
	CurrencyNameMaxLen   = 100
	CurrencySymbolMaxLen = 10
)

// Storage-level failures the service translates into API errors.
var (
	ErrCurrencyNotFound       = errors.New("currency not found")
	ErrCurrencyCodeTaken      = errors.New("currency code already taken")
	ErrExchangeRateOutOfRange = errors.New("exchange rate out of range")
	ErrInvalidSortField       = errors.New("invalid sort field")
)

// Currency is a unit of money with its rate against BaseCurrencyCode.
type Currency struct {
	ID           int64
	Code         string
	Name         string
	Symbol       string
	ExchangeRate decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NormalizeCode returns the canonical (uppercase) form of a currency code.
func NormalizeCode(code string) string {
	return strings.ToUpper(code)
}

// integerDigits is the position of the leading digit relative to the decimal
// point: 2 for 12.5, 0 for 0.5, -2 for 0.005. It reads only the coefficient
// and exponent, so it never rescales.
func integerDigits(rate decimal.Decimal) int {
	return rate.NumDigits() + int(rate.Exponent())
}

// ExchangeRateFits reports whether rate has no more integer digits than the
// store keeps. Rounding may still carry 999999.99995 over the limit.
func ExchangeRateFits(rate decimal.Decimal) bool {
	return rate.IsZero() || integerDigits(rate) <= ExchangeRateIntegerDigits
}

// NormalizeRate rounds an exchange rate to the stored precision. Rates under
// 0.00001 collapse to zero without rescaling.
func NormalizeRate(rate decimal.Decimal) decimal.Decimal {
	if rate.IsZero() || integerDigits(rate) < -ExchangeRateScale {
		return decimal.Zero
	}
	return rate.Round(ExchangeRateScale)
}

// NewCurrency builds an unsaved currency. Both timestamps are set to now.
func NewCurrency(code, name, symbol string, rate decimal.Decimal, now time.Time) *Currency {
	return &Currency{
		Code:         NormalizeCode(code),
		Name:         name,
		Symbol:       symbol,
		ExchangeRate: NormalizeRate(rate),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Replace overwrites the mutable fields. ID and CreatedAt are kept and
// UpdatedAt never moves before CreatedAt.
func (c *Currency) Replace(code, name, symbol string, rate decimal.Decimal, now time.Time) {
	c.Code = NormalizeCode(code)
	c.Name = name
	c.Symbol = symbol
	c.ExchangeRate = NormalizeRate(rate)
	if now.Before(c.CreatedAt) {
		now = c.CreatedAt
	}
	c.UpdatedAt = now
}

// IsPersisted reports whether the store has assigned an id.
func (c *Currency) IsPersisted() bool {
	return c.ID != 0
}
