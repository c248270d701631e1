package ports

import (
	"context"

	"currency-management/internal/core/domain"
)

//go:generate mockgen -source=repositories.go -destination=mocks/mock_repositories.go -package=mocks

// CurrencyRepository defines persistence operations for currencies.
// Lookups return (nil, nil) when no row matches.
type CurrencyRepository interface {
	ListAll(ctx context.Context) ([]domain.Currency, error)
	ListPage(ctx context.Context, req domain.PageRequest) ([]domain.Currency, int64, error)
	FindByCode(ctx context.Context, code string) (*domain.Currency, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	FindByID(ctx context.Context, id int64) (*domain.Currency, error)
	// Save inserts a currency without an id, or replaces the row with the same id.
	Save(ctx context.Context, currency *domain.Currency) (*domain.Currency, error)
	// DeleteByID succeeds when no row has the id.
	DeleteByID(ctx context.Context, id int64) error
}
