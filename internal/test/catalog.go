package test

import (
	"context"

	"github.com/tabledash/tabledash/internal/adapter/catalog"
)

// CatalogClientStub serves dish lookups from an in-memory map.
type CatalogClientStub struct {
	Dishes  map[int64]*catalog.Dish
	FetchFn func(context.Context, int64) (*catalog.Dish, error)
}

// Fetch returns the configured dish or reports it missing.
func (s CatalogClientStub) Fetch(ctx context.Context, dishID int64) (*catalog.Dish, error) {
	if s.FetchFn != nil {
		return s.FetchFn(ctx, dishID)
	}
	if dish, ok := s.Dishes[dishID]; ok {
		return dish, nil
	}
	return nil, catalog.ErrDishNotFound
}

var _ catalog.Client = CatalogClientStub{}
