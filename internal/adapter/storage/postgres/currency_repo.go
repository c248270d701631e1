package postgres

import (
	"context"
	"errors"
	"fmt"

	"currency-management/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

const currencyColumns = `id, code, name, symbol, exchange_rate, created_at, updated_at`

// SQLSTATE codes the repository translates into domain errors.
const (
	pgUniqueViolation = "23505"
	pgNumericOverflow = "22003"
)

// currencySortColumns maps sortable entity fields to table columns.
var currencySortColumns = map[string]string{
	"id":           "id",
	"code":         "code",
	"name":         "name",
	"symbol":       "symbol",
	"exchangeRate": "exchange_rate",
	"createdAt":    "created_at",
	"updatedAt":    "updated_at",
}

// CurrencyRepo implements ports.CurrencyRepository.
type CurrencyRepo struct {
	pool Pool
}

// NewCurrencyRepo creates a new CurrencyRepo.
func NewCurrencyRepo(pool Pool) *CurrencyRepo {
	return &CurrencyRepo{pool: pool}
}

// ListAll returns every currency ordered by id.
func (r *CurrencyRepo) ListAll(ctx context.Context) ([]domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list currencies: %w", err)
	}
	defer rows.Close()

	return collectCurrencies(rows)
}

// ListPage returns one page of currencies and the total row count.
// Rows with equal sort keys are ordered by id so pages never overlap.
func (r *CurrencyRepo) ListPage(ctx context.Context, req domain.PageRequest) ([]domain.Currency, int64, error) {
	column, ok := currencySortColumns[req.SortBy]
	if !ok {
		return nil, 0, fmt.Errorf("sort by %q: %w", req.SortBy, domain.ErrInvalidSortField)
	}
	dir := "ASC"
	if req.SortDir == domain.SortDesc {
		dir = "DESC"
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM currencies`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count currencies: %w", err)
	}

	orderBy := column + " " + dir
	if column != "id" {
		orderBy += ", id " + dir
	}
	query := fmt.Sprintf(`SELECT %s FROM currencies ORDER BY %s LIMIT $1 OFFSET $2`, currencyColumns, orderBy)

	rows, err := r.pool.Query(ctx, query, req.Size, req.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list currency page: %w", err)
	}
	defer rows.Close()

	currencies, err := collectCurrencies(rows)
	if err != nil {
		return nil, 0, err
	}
	return currencies, total, nil
}

// FindByCode fetches a currency by its exact code.
func (r *CurrencyRepo) FindByCode(ctx context.Context, code string) (*domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies WHERE code = $1`

	c, err := scanCurrency(r.pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get currency by code: %w", err)
	}
	return c, nil
}

// ExistsByCode reports whether a currency with the exact code is stored.
func (r *CurrencyRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM currencies WHERE code = $1)`, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check currency code: %w", err)
	}
	return exists, nil
}

// FindByID fetches a currency by id.
func (r *CurrencyRepo) FindByID(ctx context.Context, id int64) (*domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies WHERE id = $1`

	c, err := scanCurrency(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get currency by id: %w", err)
	}
	return c, nil
}

// Save inserts c when it has no id, otherwise replaces the stored row. The
// returned currency is the row as persisted. Rates travel as text to keep
// their exact decimal value.
func (r *CurrencyRepo) Save(ctx context.Context, c *domain.Currency) (*domain.Currency, error) {
	if !c.IsPersisted() {
		return r.insert(ctx, c)
	}
	return r.update(ctx, c)
}

func (r *CurrencyRepo) insert(ctx context.Context, c *domain.Currency) (*domain.Currency, error) {
	query := `INSERT INTO currencies (code, name, symbol, exchange_rate, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + currencyColumns

	saved, err := scanCurrency(r.pool.QueryRow(ctx, query,
		c.Code, c.Name, c.Symbol, c.ExchangeRate.String(), c.CreatedAt, c.UpdatedAt,
	))
	if err != nil {
		return nil, fmt.Errorf("insert currency: %w", translateWriteError(err))
	}
	return saved, nil
}

func (r *CurrencyRepo) update(ctx context.Context, c *domain.Currency) (*domain.Currency, error) {
	query := `UPDATE currencies
		SET code=$1, name=$2, symbol=$3, exchange_rate=$4, created_at=$5, updated_at=$6
		WHERE id=$7
		RETURNING ` + currencyColumns

	saved, err := scanCurrency(r.pool.QueryRow(ctx, query,
		c.Code, c.Name, c.Symbol, c.ExchangeRate.String(), c.CreatedAt, c.UpdatedAt, c.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("update currency %d: %w", c.ID, domain.ErrCurrencyNotFound)
		}
		return nil, fmt.Errorf("update currency: %w", translateWriteError(err))
	}
	return saved, nil
}

// DeleteByID removes the currency with the given id. Missing ids are not an error.
func (r *CurrencyRepo) DeleteByID(ctx context.Context, id int64) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM currencies WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete currency: %w", err)
	}
	return nil
}

func collectCurrencies(rows pgx.Rows) ([]domain.Currency, error) {
	currencies := []domain.Currency{}
	for rows.Next() {
		c, err := scanCurrency(rows)
		if err != nil {
			return nil, fmt.Errorf("scan currency: %w", err)
		}
		currencies = append(currencies, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate currencies: %w", err)
	}
	return currencies, nil
}

// scanCurrency reads one row in currencyColumns order. NUMERIC is read as
// text so no precision is lost on the way to decimal.Decimal.
func scanCurrency(row pgx.Row) (*domain.Currency, error) {
	c := &domain.Currency{}
	var rate string
	if err := row.Scan(&c.ID, &c.Code, &c.Name, &c.Symbol, &rate, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	d, err := decimal.NewFromString(rate)
	if err != nil {
		return nil, fmt.Errorf("parse exchange_rate %q: %w", rate, err)
	}
	c.ExchangeRate = d
	return c, nil
}

func translateWriteError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		return fmt.Errorf("%w: %s", domain.ErrCurrencyCodeTaken, pgErr.ConstraintName)
	case pgNumericOverflow:
		return domain.ErrExchangeRateOutOfRange
	}
	return err
}
