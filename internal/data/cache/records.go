package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/asymlab/tamscan/internal/domain"
)

// ErrCacheMiss is returned when no record is cached for a ticker.
var ErrCacheMiss = errors.New("cache miss")

const recordKeyPrefix = "tamscan:record:"

// RecordCache is the redis-backed CompanyRecord cache. Records are stored
// as JSON with a TTL; the cache is a staleness buffer in front of the
// providers, never the source of truth.
type RecordCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRecordCache creates a cache with the given default TTL.
func NewRecordCache(client redis.Cmdable, ttl time.Duration) *RecordCache {
	return &RecordCache{client: client, ttl: ttl}
}

func recordKey(ticker string) string {
	return recordKeyPrefix + strings.ToUpper(ticker)
}

// Get returns the cached record for ticker, or ErrCacheMiss.
func (c *RecordCache) Get(ctx context.Context, ticker string) (*domain.CompanyRecord, error) {
	payload, err := c.client.Get(ctx, recordKey(ticker)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("record %s: %w", ticker, ErrCacheMiss)
	}
	if err != nil {
		return nil, fmt.Errorf("record cache get %s: %w", ticker, err)
	}

	var record domain.CompanyRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, fmt.Errorf("record cache decode %s: %w", ticker, err)
	}
	return &record, nil
}

// Set stores a record under its ticker with the default TTL.
func (c *RecordCache) Set(ctx context.Context, record *domain.CompanyRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("record cache encode %s: %w", record.Ticker, err)
	}
	if err := c.client.Set(ctx, recordKey(record.Ticker), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("record cache set %s: %w", record.Ticker, err)
	}
	return nil
}

// Delete removes the cached record for ticker.
func (c *RecordCache) Delete(ctx context.Context, ticker string) error {
	if err := c.client.Del(ctx, recordKey(ticker)).Err(); err != nil {
		return fmt.Errorf("record cache delete %s: %w", ticker, err)
	}
	return nil
}
