package handler_test

import (
	"cmp"
	"context"
	"fmt"
	"sort"
	"sync"

	"currency-management/internal/core/domain"
)

// inMemoryCurrencyRepo is a ports.CurrencyRepository backed by a map. It
// enforces code uniqueness under its lock the way the table constraint does.
type inMemoryCurrencyRepo struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64]domain.Currency
}

func newInMemoryCurrencyRepo() *inMemoryCurrencyRepo {
	return &inMemoryCurrencyRepo{rows: make(map[int64]domain.Currency)}
}

func (r *inMemoryCurrencyRepo) ListAll(ctx context.Context) ([]domain.Currency, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := r.snapshot()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *inMemoryCurrencyRepo) ListPage(ctx context.Context, req domain.PageRequest) ([]domain.Currency, int64, error) {
	less, ok := currencyOrder[req.SortBy]
	if !ok {
		return nil, 0, fmt.Errorf("%w: %q", domain.ErrInvalidSortField, req.SortBy)
	}

	r.mu.RLock()
	rows := r.snapshot()
	r.mu.RUnlock()

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if req.SortDir == domain.SortDesc {
			a, b = b, a
		}
		if c := less(a, b); c != 0 {
			return c < 0
		}
		return a.ID < b.ID
	})

	total := int64(len(rows))
	start := req.Offset()
	if start > len(rows) {
		start = len(rows)
	}
	end := start + req.Size
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end], total, nil
}

func (r *inMemoryCurrencyRepo) FindByCode(ctx context.Context, code string) (*domain.Currency, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.rows {
		if c.Code == code {
			found := c
			return &found, nil
		}
	}
	return nil, nil
}

func (r *inMemoryCurrencyRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	c, err := r.FindByCode(ctx, code)
	return c != nil, err
}

func (r *inMemoryCurrencyRepo) FindByID(ctx context.Context, id int64) (*domain.Currency, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *inMemoryCurrencyRepo) Save(ctx context.Context, currency *domain.Currency) (*domain.Currency, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, c := range r.rows {
		if c.Code == currency.Code && id != currency.ID {
			return nil, domain.ErrCurrencyCodeTaken
		}
	}

	saved := *currency
	if !saved.IsPersisted() {
		r.nextID++
		saved.ID = r.nextID
	} else if _, ok := r.rows[saved.ID]; !ok {
		return nil, domain.ErrCurrencyNotFound
	}
	r.rows[saved.ID] = saved
	return &saved, nil
}

func (r *inMemoryCurrencyRepo) DeleteByID(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, id)
	return nil
}

// snapshot copies the rows; callers hold the lock.
func (r *inMemoryCurrencyRepo) snapshot() []domain.Currency {
	out := make([]domain.Currency, 0, len(r.rows))
	for _, c := range r.rows {
		out = append(out, c)
	}
	return out
}

var currencyOrder = map[string]func(a, b domain.Currency) int{
	"id":           func(a, b domain.Currency) int { return cmp.Compare(a.ID, b.ID) },
	"code":         func(a, b domain.Currency) int { return cmp.Compare(a.Code, b.Code) },
	"name":         func(a, b domain.Currency) int { return cmp.Compare(a.Name, b.Name) },
	"symbol":       func(a, b domain.Currency) int { return cmp.Compare(a.Symbol, b.Symbol) },
	"exchangeRate": func(a, b domain.Currency) int { return a.ExchangeRate.Cmp(b.ExchangeRate) },
	"createdAt":    func(a, b domain.Currency) int { return a.CreatedAt.Compare(b.CreatedAt) },
	"updatedAt":    func(a, b domain.Currency) int { return a.UpdatedAt.Compare(b.UpdatedAt) },
}
