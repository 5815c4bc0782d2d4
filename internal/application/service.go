package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/asymlab/tamscan/internal/data/cache"
	"github.com/asymlab/tamscan/internal/domain"
	"github.com/asymlab/tamscan/internal/domain/screen"
	"github.com/asymlab/tamscan/internal/domain/scoring"
	"github.com/asymlab/tamscan/internal/infrastructure/providers"
	"github.com/asymlab/tamscan/internal/persistence"
)

// Notifier receives score-update events. The HTTP layer implements it with
// a websocket hub; the CLI runs without one.
type Notifier interface {
	ScoresUpdated(records []domain.CompanyRecord)
}

// Instrumentation receives service-level events for metrics export. The
// HTTP metrics registry implements it; a nil instrumentation is a no-op.
type Instrumentation interface {
	RecordCacheHit(cacheType string)
	RecordCacheMiss(cacheType string)
	RefreshCompleted()
}

// Service is the application facade: it owns the pipeline and screener and
// coordinates the storage and provider collaborators. The scoring core
// stays pure; everything stateful lives here.
type Service struct {
	repo     persistence.CompanyRepo
	records  *cache.RecordCache
	agg      *providers.Aggregator
	pipeline *Pipeline
	screener *screen.Screener
	criteria domain.ScreeningCriteria
	notifier Notifier
	instr    Instrumentation
}

// SetInstrumentation installs the metrics sink. Call before serving.
func (s *Service) SetInstrumentation(m Instrumentation) {
	s.instr = m
}

// NewService wires the application facade. records, agg, and notifier are
// optional; repo is required.
func NewService(
	repo persistence.CompanyRepo,
	records *cache.RecordCache,
	agg *providers.Aggregator,
	cfg ScreenerConfig,
	notifier Notifier,
) *Service {
	return &Service{
		repo:     repo,
		records:  records,
		agg:      agg,
		pipeline: NewPipeline(cfg.Weights, cfg.Workers),
		screener: screen.NewScreener(cfg.Weights),
		criteria: cfg.Criteria,
		notifier: notifier,
	}
}

// DefaultCriteria returns the configured screening defaults.
func (s *Service) DefaultCriteria() domain.ScreeningCriteria {
	return s.criteria
}

// Candidates loads the stored universe, scores it, and returns the ranked
// list passing the given criteria.
func (s *Service) Candidates(ctx context.Context, criteria domain.ScreeningCriteria) ([]domain.CompanyRecord, error) {
	universe, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("candidates: %w", err)
	}
	ranked, err := s.screener.Screen(universe, criteria)
	if err != nil {
		return nil, fmt.Errorf("candidates: %w", err)
	}
	return ranked, nil
}

// Company returns one record with a fresh score attached, preferring the
// cache and falling back to storage.
func (s *Service) Company(ctx context.Context, ticker string) (*domain.CompanyRecord, error) {
	var record *domain.CompanyRecord
	if s.records != nil {
		cached, err := s.records.Get(ctx, ticker)
		switch {
		case err == nil:
			record = cached
			if s.instr != nil {
				s.instr.RecordCacheHit("record")
			}
		case errors.Is(err, cache.ErrCacheMiss):
			if s.instr != nil {
				s.instr.RecordCacheMiss("record")
			}
		default:
			log.Warn().Err(err).Str("ticker", ticker).Msg("Record cache read failed, falling back to storage")
		}
	}
	if record == nil {
		stored, err := s.repo.Get(ctx, ticker)
		if err != nil {
			return nil, err
		}
		record = stored
	}

	score, err := scoring.Score(record, s.pipeline.weights)
	if err != nil {
		return nil, fmt.Errorf("company %s: %w", ticker, err)
	}
	record.Scores = score
	return record, nil
}

// Refresh runs the full update flow for the curated universe: enrich from
// providers, batch-score, cache, persist, notify. Returns the scored
// records in input order.
func (s *Service) Refresh(ctx context.Context, thesis []domain.CompanyRecord) ([]domain.CompanyRecord, error) {
	start := time.Now()

	universe := thesis
	if s.agg != nil {
		universe = s.agg.EnrichAll(ctx, thesis)
	}

	scored, err := s.pipeline.ScoreAll(ctx, universe)
	if err != nil {
		return nil, fmt.Errorf("refresh: %w", err)
	}

	for i := range scored {
		record := &scored[i]
		if s.records != nil {
			if err := s.records.Set(ctx, record); err != nil {
				log.Warn().Err(err).Str("ticker", record.Ticker).Msg("Record cache write failed")
			}
		}
		if err := s.repo.Upsert(ctx, record); err != nil {
			return nil, fmt.Errorf("refresh: %w", err)
		}
	}

	if s.notifier != nil {
		s.notifier.ScoresUpdated(scored)
	}
	if s.instr != nil {
		s.instr.RefreshCompleted()
	}

	log.Info().
		Int("records", len(scored)).
		Dur("elapsed", time.Since(start)).
		Msg("Universe refreshed")
	return scored, nil
}
