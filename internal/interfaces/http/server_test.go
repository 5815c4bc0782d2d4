package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asymlab/tamscan/internal/application"
	"github.com/asymlab/tamscan/internal/domain"
	"github.com/asymlab/tamscan/internal/domain/scoring"
	"github.com/asymlab/tamscan/internal/persistence"
)

type memRepo struct {
	records map[string]domain.CompanyRecord
}

func newMemRepo(records ...domain.CompanyRecord) *memRepo {
	repo := &memRepo{records: make(map[string]domain.CompanyRecord)}
	for _, r := range records {
		repo.records[r.Ticker] = r
	}
	return repo
}

func (m *memRepo) Upsert(_ context.Context, record *domain.CompanyRecord) error {
	m.records[record.Ticker] = *record
	return nil
}

func (m *memRepo) Get(_ context.Context, ticker string) (*domain.CompanyRecord, error) {
	r, ok := m.records[strings.ToUpper(ticker)]
	if !ok {
		return nil, fmt.Errorf("company %s: %w", ticker, persistence.ErrNotFound)
	}
	return &r, nil
}

func (m *memRepo) List(_ context.Context) ([]domain.CompanyRecord, error) {
	out := make([]domain.CompanyRecord, 0, len(m.records))
	for _, r := range m.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ticker < out[j].Ticker })
	return out, nil
}

func (m *memRepo) Delete(_ context.Context, ticker string) error {
	delete(m.records, ticker)
	return nil
}

func seedRecord(ticker string, cat domain.FutureCategory) domain.CompanyRecord {
	return domain.CompanyRecord{
		Ticker:           ticker,
		Name:             ticker + " Corp",
		FutureCategory:   cat,
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

func newTestServer(records ...domain.CompanyRecord) *Server {
	svc := application.NewService(newMemRepo(records...), nil, nil, application.ScreenerConfig{
		Weights:  scoring.DefaultWeights(),
		Criteria: domain.DefaultCriteria(),
		Workers:  1,
	}, nil)
	return NewServer(ServerConfig{Host: "127.0.0.1", Port: 0}, svc)
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestCandidatesEndpoint(t *testing.T) {
	srv := newTestServer(
		seedRecord("AAA", domain.CategoryIntelligenceInfra),
		seedRecord("BBB", domain.CategoryRobotics),
		domain.CompanyRecord{Ticker: "WEAK", FutureCategory: domain.CategoryOther},
	)

	req := httptest.NewRequest(http.MethodGet, "/candidates", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body candidatesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 2, body.Count)
	for _, c := range body.Candidates {
		require.NotNil(t, c.Scores)
		assert.GreaterOrEqual(t, c.Scores.Total, body.Criteria.MinAsymmetryScore)
	}
}

func TestCandidatesQueryOverrides(t *testing.T) {
	srv := newTestServer(
		seedRecord("INFR", domain.CategoryIntelligenceInfra),
		seedRecord("ROBO", domain.CategoryRobotics),
	)

	req := httptest.NewRequest(http.MethodGet, "/candidates?categories=robotics-autonomous&min_asymmetry_score=1", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body candidatesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 1, body.Count)
	assert.Equal(t, "ROBO", body.Candidates[0].Ticker)
	assert.Equal(t, float64(1), body.Criteria.MinAsymmetryScore)
}

func TestCandidatesRejectsBadParams(t *testing.T) {
	srv := newTestServer()

	for _, target := range []string{
		"/candidates?max_market_cap=abc",
		"/candidates?categories=meme-stocks",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestCompanyEndpoint(t *testing.T) {
	srv := newTestServer(seedRecord("AAA", domain.CategoryIntelligenceInfra))

	req := httptest.NewRequest(http.MethodGet, "/companies/aaa", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var record domain.CompanyRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &record))
	assert.Equal(t, "AAA", record.Ticker)
	require.NotNil(t, record.Scores, "lookup attaches a fresh score")
}

func TestCompanyNotFound(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/companies/NOPE", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCategoriesEndpoint(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Categories []domain.FutureCategory `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Categories, 7)
}

func TestUnknownRouteReturns404(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(seedRecord("AAA", domain.CategoryIntelligenceInfra))

	// One screen run so the histogram has a sample.
	req := httptest.NewRequest(http.MethodGet, "/candidates", nil)
	srv.Router().ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "tamscan_screen_duration_seconds")
	assert.Contains(t, rec.Body.String(), "tamscan_http_requests_total")
}

func TestStreamBroadcast(t *testing.T) {
	srv := newTestServer()
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		return srv.Hub().ClientCount() == 1
	}, time.Second, 10*time.Millisecond)

	record := seedRecord("AAA", domain.CategoryIntelligenceInfra)
	record.Scores = &domain.AsymmetryScore{Total: 8.3}
	srv.Hub().ScoresUpdated([]domain.CompanyRecord{record})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var event scoresEvent
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, "scores_updated", event.Type)
	require.Len(t, event.Updates, 1)
	assert.Equal(t, "AAA", event.Updates[0].Ticker)
	assert.Equal(t, 8.3, event.Updates[0].Total)
}

func TestStreamHubCloseDisconnectsClients(t *testing.T) {
	srv := newTestServer()
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		return srv.Hub().ClientCount() == 1
	}, time.Second, 10*time.Millisecond)

	srv.Hub().Close()

	assert.Eventually(t, func() bool {
		return srv.Hub().ClientCount() == 0
	}, time.Second, 10*time.Millisecond)
}
