package application

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asymlab/tamscan/internal/domain"
	"github.com/asymlab/tamscan/internal/domain/scoring"
	"github.com/asymlab/tamscan/internal/persistence"
)

type fakeRepo struct {
	records map[string]domain.CompanyRecord
	upserts int
}

func newFakeRepo(records ...domain.CompanyRecord) *fakeRepo {
	repo := &fakeRepo{records: make(map[string]domain.CompanyRecord)}
	for _, r := range records {
		repo.records[r.Ticker] = r
	}
	return repo
}

func (f *fakeRepo) Upsert(_ context.Context, record *domain.CompanyRecord) error {
	f.upserts++
	f.records[record.Ticker] = *record
	return nil
}

func (f *fakeRepo) Get(_ context.Context, ticker string) (*domain.CompanyRecord, error) {
	r, ok := f.records[strings.ToUpper(ticker)]
	if !ok {
		return nil, fmt.Errorf("company %s: %w", ticker, persistence.ErrNotFound)
	}
	return &r, nil
}

func (f *fakeRepo) List(_ context.Context) ([]domain.CompanyRecord, error) {
	out := make([]domain.CompanyRecord, 0, len(f.records))
	for _, r := range f.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ticker < out[j].Ticker })
	return out, nil
}

func (f *fakeRepo) Delete(_ context.Context, ticker string) error {
	delete(f.records, ticker)
	return nil
}

type fakeNotifier struct {
	events [][]domain.CompanyRecord
}

func (f *fakeNotifier) ScoresUpdated(records []domain.CompanyRecord) {
	f.events = append(f.events, records)
}

func serviceRecord(ticker string) domain.CompanyRecord {
	return domain.CompanyRecord{
		Ticker:           ticker,
		Name:             ticker + " Corp",
		FutureCategory:   domain.CategoryIntelligenceInfra,
		MarketCap:        domain.Float64(400_000_000),
		InsiderOwnership: domain.Float64(25),
		InsiderBuying90d: domain.Float64(1_500_000),
		FounderActive:    true,
		CurrentTAM:       domain.Float64(800_000_000),
		FutureTAM:        domain.Float64(90_000_000_000),
		CashPosition:     domain.Float64(120_000_000),
		DebtToEquity:     domain.Float64(0.1),
		GrossMargin:      domain.Float64(0.7),
		RevenueGrowth:    domain.Float64(0.6),
	}
}

func testScreenerConfig() ScreenerConfig {
	return ScreenerConfig{
		Weights:  scoring.DefaultWeights(),
		Criteria: domain.DefaultCriteria(),
		Workers:  2,
	}
}

func TestServiceCandidates(t *testing.T) {
	repo := newFakeRepo(
		serviceRecord("AAA"),
		serviceRecord("BBB"),
		domain.CompanyRecord{Ticker: "WEAK", FutureCategory: domain.CategoryOther},
	)
	svc := NewService(repo, nil, nil, testScreenerConfig(), nil)

	ranked, err := svc.Candidates(context.Background(), svc.DefaultCriteria())
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, "AAA", ranked[0].Ticker)
	assert.Equal(t, "BBB", ranked[1].Ticker)
}

func TestServiceCompanyAttachesScore(t *testing.T) {
	repo := newFakeRepo(serviceRecord("AAA"))
	svc := NewService(repo, nil, nil, testScreenerConfig(), nil)

	record, err := svc.Company(context.Background(), "aaa")
	require.NoError(t, err)
	require.NotNil(t, record.Scores)
	assert.Greater(t, record.Scores.Total, 0.0)
}

func TestServiceCompanyNotFound(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, nil, testScreenerConfig(), nil)

	_, err := svc.Company(context.Background(), "NOPE")
	assert.ErrorIs(t, err, persistence.ErrNotFound)
}

func TestServiceRefreshPersistsAndNotifies(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	svc := NewService(repo, nil, nil, testScreenerConfig(), notifier)

	thesis := []domain.CompanyRecord{serviceRecord("AAA"), serviceRecord("BBB")}
	scored, err := svc.Refresh(context.Background(), thesis)
	require.NoError(t, err)

	require.Len(t, scored, 2)
	assert.Equal(t, 2, repo.upserts)
	for _, r := range scored {
		require.NotNil(t, r.Scores)
		assert.Greater(t, r.DataQuality, 0.0)
	}

	require.Len(t, notifier.events, 1)
	assert.Len(t, notifier.events[0], 2)

	stored, err := repo.Get(context.Background(), "AAA")
	require.NoError(t, err)
	require.NotNil(t, stored.Scores)
}

func TestServiceRefreshFailsOnInvalidCategory(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil, nil, testScreenerConfig(), nil)

	bad := serviceRecord("BAD")
	bad.FutureCategory = "meme-stocks"

	_, err := svc.Refresh(context.Background(), []domain.CompanyRecord{bad})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)
	assert.Zero(t, repo.upserts, "nothing persisted on failure")
}
