package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/asymlab/tamscan/internal/domain"
	"github.com/asymlab/tamscan/internal/persistence"
)

// companyRepo implements persistence.CompanyRepo for PostgreSQL.
type companyRepo struct {
	db      *sqlx.DB
	timeout time.Duration
}

// NewCompanyRepo creates a PostgreSQL company repository.
func NewCompanyRepo(db *sqlx.DB, timeout time.Duration) persistence.CompanyRepo {
	return &companyRepo{db: db, timeout: timeout}
}

// Upsert writes the record and its score blob under the ticker key.
func (r *companyRepo) Upsert(ctx context.Context, record *domain.CompanyRecord) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if record.Ticker == "" {
		return fmt.Errorf("upsert company: empty ticker")
	}
	if !record.FutureCategory.Valid() {
		return fmt.Errorf("upsert company %s: %w: %q", record.Ticker, domain.ErrInvalidCategory, record.FutureCategory)
	}

	recordJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record %s: %w", record.Ticker, err)
	}

	var scoresJSON []byte
	if record.Scores != nil {
		scoresJSON, err = json.Marshal(record.Scores)
		if err != nil {
			return fmt.Errorf("failed to marshal scores %s: %w", record.Ticker, err)
		}
	}

	query := `
		INSERT INTO companies (ticker, name, future_category, data_quality, record, scores, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (ticker) DO UPDATE SET
			name = EXCLUDED.name,
			future_category = EXCLUDED.future_category,
			data_quality = EXCLUDED.data_quality,
			record = EXCLUDED.record,
			scores = EXCLUDED.scores,
			last_updated = EXCLUDED.last_updated`

	lastUpdated := record.LastUpdated
	if lastUpdated.IsZero() {
		lastUpdated = time.Now().UTC()
	}

	_, err = r.db.ExecContext(ctx, query,
		strings.ToUpper(record.Ticker), record.Name, string(record.FutureCategory),
		record.DataQuality, recordJSON, scoresJSON, lastUpdated)
	if err != nil {
		return fmt.Errorf("failed to upsert company %s: %w", record.Ticker, err)
	}
	return nil
}

// Get returns the record for ticker, or persistence.ErrNotFound.
func (r *companyRepo) Get(ctx context.Context, ticker string) (*domain.CompanyRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `SELECT record, scores FROM companies WHERE ticker = $1`

	var recordJSON, scoresJSON []byte
	err := r.db.QueryRowxContext(ctx, query, strings.ToUpper(ticker)).Scan(&recordJSON, &scoresJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("company %s: %w", ticker, persistence.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get company %s: %w", ticker, err)
	}

	return unmarshalCompany(recordJSON, scoresJSON)
}

// List returns every stored record ordered by ticker for stable output.
func (r *companyRepo) List(ctx context.Context) ([]domain.CompanyRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `SELECT record, scores FROM companies ORDER BY ticker`

	rows, err := r.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	var records []domain.CompanyRecord
	for rows.Next() {
		var recordJSON, scoresJSON []byte
		if err := rows.Scan(&recordJSON, &scoresJSON); err != nil {
			return nil, fmt.Errorf("failed to scan company row: %w", err)
		}
		record, err := unmarshalCompany(recordJSON, scoresJSON)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating company rows: %w", err)
	}
	return records, nil
}

// Delete removes the record for ticker.
func (r *companyRepo) Delete(ctx context.Context, ticker string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM companies WHERE ticker = $1`, strings.ToUpper(ticker))
	if err != nil {
		return fmt.Errorf("failed to delete company %s: %w", ticker, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("company %s: %w", ticker, persistence.ErrNotFound)
	}
	return nil
}

func unmarshalCompany(recordJSON, scoresJSON []byte) (*domain.CompanyRecord, error) {
	var record domain.CompanyRecord
	if err := json.Unmarshal(recordJSON, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}
	if len(scoresJSON) > 0 {
		var scores domain.AsymmetryScore
		if err := json.Unmarshal(scoresJSON, &scores); err != nil {
			return nil, fmt.Errorf("failed to unmarshal scores: %w", err)
		}
		record.Scores = &scores
	}
	return &record, nil
}
