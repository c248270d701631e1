package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"currency-management/internal/core/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func currencyColumnNames() []string {
	return []string{"id", "code", "name", "symbol", "exchange_rate", "created_at", "updated_at"}
}

func newTestCurrency() *domain.Currency {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.Currency{
		ID:           1,
		Code:         "EUR",
		Name:         "Euro",
		Symbol:       "€",
		ExchangeRate: decimal.RequireFromString("0.8500"),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func currencyRows(cs ...*domain.Currency) *pgxmock.Rows {
	rows := pgxmock.NewRows(currencyColumnNames())
	for _, c := range cs {
		rows.AddRow(c.ID, c.Code, c.Name, c.Symbol, c.ExchangeRate.StringFixed(4), c.CreatedAt, c.UpdatedAt)
	}
	return rows
}

func TestCurrencyRepo_ListAll(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCurrencyRepo(mock)
	eur := newTestCurrency()
	jpy := newTestCurrency()
	jpy.ID, jpy.Code, jpy.Name, jpy.Symbol = 2, "JPY", "Japanese Yen", "¥"
	jpy.ExchangeRate = decimal.RequireFromString("149.5")

	mock.ExpectQuery("SELECT .+ FROM currencies ORDER BY id").
		WillReturnRows(currencyRows(eur, jpy))

	result, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "EUR", result[0].Code)
	assert.Equal(t, "JPY", result[1].Code)
	assert.Equal(t, "149.5000", result[1].ExchangeRate.StringFixed(4))
	assert.True(t, result[1].ExchangeRate.Equal(decimal.RequireFromString("149.5")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCurrencyRepo_ListAll_Empty(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCurrencyRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM currencies").
		WillReturnRows(pgxmock.NewRows(currencyColumnNames()))

	result, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCurrencyRepo_ListAll_QueryError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCurrencyRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM currencies").
		WillReturnError(errors.New("connection reset"))

	_, err = repo.ListAll(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "list currencies")
}

func TestCurrencyRepo_ListPage(t *testing.T) {
	tests := []struct {
		name    string
		req     domain.PageRequest
		orderBy string
		offset  int
	}{
		{
			name:    "code ascending",
			req:     domain.PageRequest{Page: 0, Size: 10, SortBy: "code", SortDir: domain.SortAsc},
			orderBy: "ORDER BY code ASC, id ASC",
			offset:  0,
		},
		{
			name:    "exchange rate descending",
			req:     domain.PageRequest{Page: 2, Size: 5, SortBy: "exchangeRate", SortDir: domain.SortDesc},
			orderBy: "ORDER BY exchange_rate DESC, id DESC",
			offset:  10,
		},
		{
			name:    "id needs no tie breaker",
			req:     domain.PageRequest{Page: 1, Size: 3, SortBy: "id", SortDir: domain.SortAsc},
			orderBy: "ORDER BY id ASC LIMIT",
			offset:  3,
		},
		{
			name:    "created at",
			req:     domain.PageRequest{Page: 0, Size: 1, SortBy: "createdAt", SortDir: domain.SortAsc},
			orderBy: "ORDER BY created_at ASC, id ASC",
			offset:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			repo := NewCurrencyRepo(mock)
			c := newTestCurrency()

			mock.ExpectQuery(`SELECT COUNT\(\*\) FROM currencies`).
				WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(42)))
			mock.ExpectQuery("SELECT .+ FROM currencies " + tt.orderBy).
				WithArgs(tt.req.Size, tt.offset).
				WillReturnRows(currencyRows(c))

			items, total, err := repo.ListPage(context.Background(), tt.req)
			require.NoError(t, err)
			assert.Equal(t, int64(42), total)
			require.Len(t, items, 1)
			assert.Equal(t, c.Code, items[0].Code)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCurrencyRepo_ListPage_RejectsUnknownSortField(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCurrencyRepo(mock)

	_, _, err = repo.ListPage(context.Background(), domain.PageRequest{Page: 0, Size: 10, SortBy: "code; DROP TABLE currencies"})
	assert.ErrorIs(t, err, domain.ErrInvalidSortField)
	assert.NoError(t, mock.ExpectationsWereMet(), "no query may run for an unknown sort field")
}

func TestCurrencyRepo_ListPage_CountError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCurrencyRepo(mock)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM currencies`).
		WillReturnError(errors.New("timeout"))

	_, _, err = repo.ListPage(context.Background(), domain.PageRequest{Page: 0, Size: 10, SortBy: "code"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "count currencies")
}

func TestCurrencyRepo_FindByCode(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCurrencyRepo(mock)
	c := newTestCurrency()

	mock.ExpectQuery("SELECT .+ FROM currencies WHERE code").
		WithArgs("EUR").
		WillReturnRows(currencyRows(c))

	result, err := repo.FindByCode(context.Background(), "EUR")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, c.ID, result.ID)
	assert.Equal(t, c.Name, result.Name)
	assert.Equal(t, c.Symbol, result.Symbol)
	assert.True(t, c.ExchangeRate.Equal(result.ExchangeRate))
	assert.Equal(t, c.CreatedAt, result.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCurrencyRepo_FindByCode_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCurrencyRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM currencies WHERE code").
		WithArgs("XXX").
		WillReturnRows(pgxmock.NewRows(currencyColumnNames()))

	result, err := repo.FindByCode(context.Background(), "XXX")
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCurrencyRepo_ExistsByCode(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCurrencyRepo(mock)

	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM currencies WHERE code`).
		WithArgs("USD").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM currencies WHERE code`).
		WithArgs("ABC").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	exists, err := repo.ExistsByCode(context.Background(), "USD")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByCode(context.Background(), "ABC")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCurrencyRepo_FindByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCurrencyRepo(mock)
	c := newTestCurrency()

	mock.ExpectQuery("SELECT .+ FROM currencies WHERE id").
		WithArgs(int64(1)).
		WillReturnRows(currencyRows(c))
	mock.ExpectQuery("SELECT .+ FROM currencies WHERE id").
		WithArgs(int64(99)).
		WillReturnRows(pgxmock.NewRows(currencyColumnNames()))

	result, err := repo.FindByID(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "EUR", result.Code)

	missing, err := repo.FindByID(context.Background(), 99)
	assert.NoError(t, err)
	assert.Nil(t, missing)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCurrencyRepo_Save_Insert(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCurrencyRepo(mock)
	c := newTestCurrency()
	c.ID = 0

	stored := *c
	stored.ID = 17

	mock.ExpectQuery("(?s)INSERT INTO currencies .+ RETURNING").
		WithArgs("EUR", "Euro", "€", "0.85", c.CreatedAt, c.UpdatedAt).
		WillReturnRows(currencyRows(&stored))

	saved, err := repo.Save(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, int64(17), saved.ID)
	assert.Equal(t, "EUR", saved.Code)
	assert.Equal(t, c.CreatedAt, saved.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCurrencyRepo_Save_InsertDuplicateCode(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCurrencyRepo(mock)
	c := newTestCurrency()
	c.ID = 0

	mock.ExpectQuery("INSERT INTO currencies").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "currencies_code_key"})

	_, err = repo.Save(context.Background(), c)
	assert.ErrorIs(t, err, domain.ErrCurrencyCodeTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCurrencyRepo_Save_RateOverflow(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCurrencyRepo(mock)
	c := newTestCurrency()
	c.ID = 0
	c.ExchangeRate = decimal.RequireFromString("12345678")

	mock.ExpectQuery("INSERT INTO currencies").
		WillReturnError(&pgconn.PgError{Code: "22003", Message: "numeric field overflow"})

	_, err = repo.Save(context.Background(), c)
	assert.ErrorIs(t, err, domain.ErrExchangeRateOutOfRange)
}

func TestCurrencyRepo_Save_Update(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCurrencyRepo(mock)
	c := newTestCurrency()
	c.Name = "Euro (EU)"
	c.UpdatedAt = c.CreatedAt.Add(time.Minute)

	mock.ExpectQuery("(?s)UPDATE currencies.+SET .+ WHERE id=.+RETURNING").
		WithArgs("EUR", "Euro (EU)", "€", "0.85", c.CreatedAt, c.UpdatedAt, int64(1)).
		WillReturnRows(currencyRows(c))

	saved, err := repo.Save(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.ID)
	assert.Equal(t, "Euro (EU)", saved.Name)
	assert.Equal(t, c.UpdatedAt, saved.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCurrencyRepo_Save_UpdateVanishedRow(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCurrencyRepo(mock)
	c := newTestCurrency()

	mock.ExpectQuery("UPDATE currencies").
		WillReturnRows(pgxmock.NewRows(currencyColumnNames()))

	_, err = repo.Save(context.Background(), c)
	assert.ErrorIs(t, err, domain.ErrCurrencyNotFound)
}

func TestCurrencyRepo_Save_UpdateCodeCollision(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCurrencyRepo(mock)
	c := newTestCurrency()

	mock.ExpectQuery("UPDATE currencies").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err = repo.Save(context.Background(), c)
	assert.ErrorIs(t, err, domain.ErrCurrencyCodeTaken)
}

func TestCurrencyRepo_DeleteByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCurrencyRepo(mock)

	mock.ExpectExec("DELETE FROM currencies WHERE id").
		WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec("DELETE FROM currencies WHERE id").
		WithArgs(int64(404)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.NoError(t, repo.DeleteByID(context.Background(), 5))
	assert.NoError(t, repo.DeleteByID(context.Background(), 404), "deleting a missing id succeeds")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCurrencyRepo_DeleteByID_Error(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCurrencyRepo(mock)

	mock.ExpectExec("DELETE FROM currencies").
		WillReturnError(errors.New("connection lost"))

	err = repo.DeleteByID(context.Background(), 5)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "delete currency")
}
