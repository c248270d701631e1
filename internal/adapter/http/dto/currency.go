package dto

import (
	"encoding/json"
	"time"

	"currency-management/internal/core/domain"
	"currency-management/internal/core/ports"

	"github.com/shopspring/decimal"
)

// LocalDateTimeLayout renders timestamps as ISO-8601 local date-time without
// an offset; trailing zero fractions are dropped.
const LocalDateTimeLayout = "2006-01-02T15:04:05.999999"

// CurrencyRequest is the request body for creating or replacing a currency.
type CurrencyRequest struct {
	Code         string           `json:"code" binding:"notblank,len=3"`
	Name         string           `json:"name" binding:"notblank,max=100"`
	Symbol       string           `json:"symbol" binding:"notblank,max=10"`
	ExchangeRate *decimal.Decimal `json:"exchangeRate" binding:"required"`
}

// ToInput converts a validated request into service input.
func (r CurrencyRequest) ToInput() ports.CurrencyInput {
	in := ports.CurrencyInput{
		Code:   r.Code,
		Name:   r.Name,
		Symbol: r.Symbol,
	}
	if r.ExchangeRate != nil {
		in.ExchangeRate = *r.ExchangeRate
	}
	return in
}

// CurrencyResponse is the JSON form of a stored currency.
type CurrencyResponse struct {
	ID           int64       `json:"id"`
	Code         string      `json:"code"`
	Name         string      `json:"name"`
	Symbol       string      `json:"symbol"`
	ExchangeRate json.Number `json:"exchangeRate"`
	CreatedAt    string      `json:"createdAt"`
	UpdatedAt    string      `json:"updatedAt"`
}

// ToCurrencyResponse maps a domain currency to its JSON form. The rate is a
// JSON number carrying every stored fractional digit.
func ToCurrencyResponse(c *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		ID:           c.ID,
		Code:         c.Code,
		Name:         c.Name,
		Symbol:       c.Symbol,
		ExchangeRate: json.Number(c.ExchangeRate.StringFixed(domain.ExchangeRateScale)),
		CreatedAt:    FormatLocalDateTime(c.CreatedAt),
		UpdatedAt:    FormatLocalDateTime(c.UpdatedAt),
	}
}

// ToCurrencyResponses maps a list, returning an empty (non-nil) slice for no input.
func ToCurrencyResponses(cs []domain.Currency) []CurrencyResponse {
	out := make([]CurrencyResponse, 0, len(cs))
	for i := range cs {
		out = append(out, ToCurrencyResponse(&cs[i]))
	}
	return out
}

// FormatLocalDateTime renders t in the server's local zone.
func FormatLocalDateTime(t time.Time) string {
	return t.In(time.Local).Format(LocalDateTimeLayout)
}
