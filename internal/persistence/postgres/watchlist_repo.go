package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/asymlab/tamscan/internal/persistence"
)

// watchlistRepo implements persistence.WatchlistRepo for PostgreSQL.
type watchlistRepo struct {
	db      *sqlx.DB
	timeout time.Duration
}

// NewWatchlistRepo creates a PostgreSQL watchlist repository.
func NewWatchlistRepo(db *sqlx.DB, timeout time.Duration) persistence.WatchlistRepo {
	return &watchlistRepo{db: db, timeout: timeout}
}

// Add inserts a ticker into the named watchlist. Adding a ticker twice is
// not an error.
func (r *watchlistRepo) Add(ctx context.Context, name, ticker string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	name = strings.TrimSpace(name)
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if name == "" || ticker == "" {
		return fmt.Errorf("watchlist add: name and ticker are required")
	}

	query := `INSERT INTO watchlist_entries (name, ticker) VALUES ($1, $2)`
	if _, err := r.db.ExecContext(ctx, query, name, ticker); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil // already present
		}
		return fmt.Errorf("failed to add %s to watchlist %s: %w", ticker, name, err)
	}
	return nil
}

// Remove drops a ticker from the named watchlist.
func (r *watchlistRepo) Remove(ctx context.Context, name, ticker string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `DELETE FROM watchlist_entries WHERE name = $1 AND ticker = $2`
	res, err := r.db.ExecContext(ctx, query, strings.TrimSpace(name), strings.ToUpper(strings.TrimSpace(ticker)))
	if err != nil {
		return fmt.Errorf("failed to remove %s from watchlist %s: %w", ticker, name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("watchlist %s entry %s: %w", name, ticker, persistence.ErrNotFound)
	}
	return nil
}

// Get returns the named watchlist with tickers in lexicographic order.
func (r *watchlistRepo) Get(ctx context.Context, name string) (*persistence.Watchlist, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		SELECT ticker, created_at
		FROM watchlist_entries
		WHERE name = $1
		ORDER BY ticker`

	rows, err := r.db.QueryxContext(ctx, query, strings.TrimSpace(name))
	if err != nil {
		return nil, fmt.Errorf("failed to get watchlist %s: %w", name, err)
	}
	defer rows.Close()

	wl := &persistence.Watchlist{Name: strings.TrimSpace(name)}
	for rows.Next() {
		var ticker string
		var createdAt time.Time
		if err := rows.Scan(&ticker, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan watchlist row: %w", err)
		}
		wl.Tickers = append(wl.Tickers, ticker)
		if createdAt.After(wl.UpdatedAt) {
			wl.UpdatedAt = createdAt
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating watchlist rows: %w", err)
	}
	if len(wl.Tickers) == 0 {
		return nil, fmt.Errorf("watchlist %s: %w", name, persistence.ErrNotFound)
	}
	return wl, nil
}

// Names returns every distinct watchlist name.
func (r *watchlistRepo) Names(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `SELECT DISTINCT name FROM watchlist_entries ORDER BY name`

	var names []string
	if err := r.db.SelectContext(ctx, &names, query); err != nil {
		return nil, fmt.Errorf("failed to list watchlist names: %w", err)
	}
	return names, nil
}
