package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"currency-management/internal/core/domain"
	"currency-management/internal/core/ports"
	"currency-management/pkg/apperror"

	"github.com/rs/zerolog"
)

type currencyService struct {
	repo ports.CurrencyRepository
	log  zerolog.Logger
	now  func() time.Time
}

// NewCurrencyService creates the currency management service.
func NewCurrencyService(repo ports.CurrencyRepository, log zerolog.Logger) ports.CurrencyService {
	return &currencyService{
		repo: repo,
		log:  log,
		now:  storeClock,
	}
}

// storeClock truncates to microseconds, the precision PostgreSQL keeps.
func storeClock() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if currencies == nil {
		currencies = []domain.Currency{}
	}
	return currencies, nil
}

func (s *currencyService) ListCurrenciesPage(ctx context.Context, req domain.PageRequest) (*domain.Page[domain.Currency], error) {
	if req.Page < 0 {
		return nil, apperror.ValidationFields(apperror.FieldError{Field: "page", Message: "must not be negative"})
	}
	if req.Size < 1 {
		return nil, apperror.ValidationFields(apperror.FieldError{Field: "size", Message: "must be at least 1"})
	}
	if req.Size > domain.MaxPageSize {
		return nil, apperror.ValidationFields(apperror.FieldError{
			Field:   "size",
			Message: fmt.Sprintf("must be at most %d", domain.MaxPageSize),
		})
	}
	if !domain.IsCurrencySortField(req.SortBy) {
		return nil, apperror.ErrInvalidSortField(req.SortBy)
	}

	items, total, err := s.repo.ListPage(ctx, req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSortField) {
			return nil, apperror.ErrInvalidSortField(req.SortBy)
		}
		return nil, apperror.ErrDatabaseError(err)
	}
	return domain.NewPage(items, req, total), nil
}

func (s *currencyService) GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	c, err := s.repo.FindByCode(ctx, domain.NormalizeCode(code))
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if c == nil {
		return nil, apperror.ErrCurrencyNotFound()
	}
	return c, nil
}

func (s *currencyService) GetCurrencyByID(ctx context.Context, id int64) (*domain.Currency, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if c == nil {
		return nil, apperror.ErrCurrencyNotFound()
	}
	return c, nil
}

// CreateCurrency rejects a code that is already stored before building the
// new record. Concurrent creates that slip past the check are caught by the
// table's unique constraint and reported the same way.
func (s *currencyService) CreateCurrency(ctx context.Context, in ports.CurrencyInput) (*domain.Currency, error) {
	if !domain.ExchangeRateFits(in.ExchangeRate) {
		return nil, rateOutOfRange()
	}
	code := domain.NormalizeCode(in.Code)

	exists, err := s.repo.ExistsByCode(ctx, code)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if exists {
		return nil, apperror.ErrCurrencyCodeExists(code)
	}

	currency := domain.NewCurrency(code, in.Name, in.Symbol, in.ExchangeRate, s.now())

	saved, err := s.repo.Save(ctx, currency)
	if err != nil {
		return nil, saveError(code, err)
	}

	s.log.Info().
		Int64("currency_id", saved.ID).
		Str("code", saved.Code).
		Str("exchange_rate", saved.ExchangeRate.String()).
		Msg("currency created")

	return saved, nil
}

func (s *currencyService) UpdateCurrency(ctx context.Context, id int64, in ports.CurrencyInput) (*domain.Currency, error) {
	if !domain.ExchangeRateFits(in.ExchangeRate) {
		return nil, rateOutOfRange()
	}
	currency, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if currency == nil {
		return nil, apperror.ErrCurrencyNotFound()
	}

	previousCode := currency.Code
	currency.Replace(in.Code, in.Name, in.Symbol, in.ExchangeRate, s.now())

	saved, err := s.repo.Save(ctx, currency)
	if err != nil {
		return nil, saveError(currency.Code, err)
	}

	s.log.Info().
		Int64("currency_id", saved.ID).
		Str("code", saved.Code).
		Str("previous_code", previousCode).
		Str("exchange_rate", saved.ExchangeRate.String()).
		Msg("currency updated")

	return saved, nil
}

// DeleteCurrency succeeds whether or not the id exists.
func (s *currencyService) DeleteCurrency(ctx context.Context, id int64) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return apperror.ErrDatabaseError(err)
	}
	s.log.Info().Int64("currency_id", id).Msg("currency deleted")
	return nil
}

func saveError(code string, err error) error {
	switch {
	case errors.Is(err, domain.ErrCurrencyCodeTaken):
		return apperror.ErrCurrencyCodeExists(code)
	case errors.Is(err, domain.ErrExchangeRateOutOfRange):
		return rateOutOfRange()
	case errors.Is(err, domain.ErrCurrencyNotFound):
		return apperror.ErrCurrencyNotFound()
	}
	return apperror.ErrDatabaseError(err)
}

func rateOutOfRange() error {
	return apperror.ValidationFields(apperror.FieldError{
		Field:   "exchangeRate",
		Message: fmt.Sprintf("must have at most %d integer digits", domain.ExchangeRateIntegerDigits),
	})
}
