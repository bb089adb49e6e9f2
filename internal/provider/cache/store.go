package cache

import (
	"context"

	"portfolioquotes/internal/quote"
)

// Store is the keyed storage behind a Cache. Keys are upper-cased symbols.
// Load returns (nil, nil) when no entry exists.
//
//go:generate mockgen -package=cache_test -destination=mock_store_test.go -source=store.go Store
type Store interface {
	Load(ctx context.Context, symbol string) (*quote.Quote, error)
	Save(ctx context.Context, q quote.Quote) error
	Delete(ctx context.Context, symbol string) error
	DeleteAll(ctx context.Context) error
}
