// Package persistence defines the storage contracts. Implementations live
// in subpackages; callers depend only on these interfaces.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/asymlab/tamscan/internal/domain"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// CompanyRepo stores company records keyed by ticker. Records and scores
// are persisted as opaque JSON blobs: scores are a cache of the last
// computation, never the source of truth once inputs change.
type CompanyRepo interface {
	Upsert(ctx context.Context, record *domain.CompanyRecord) error
	Get(ctx context.Context, ticker string) (*domain.CompanyRecord, error)
	List(ctx context.Context) ([]domain.CompanyRecord, error)
	Delete(ctx context.Context, ticker string) error
}

// Watchlist is a named set of tickers a user tracks.
type Watchlist struct {
	Name      string    `json:"name" db:"name"`
	Tickers   []string  `json:"tickers"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// WatchlistRepo stores named watchlists.
type WatchlistRepo interface {
	Add(ctx context.Context, name, ticker string) error
	Remove(ctx context.Context, name, ticker string) error
	Get(ctx context.Context, name string) (*Watchlist, error)
	Names(ctx context.Context) ([]string, error)
}
