package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/asymlab/tamscan/internal/application"
	"github.com/asymlab/tamscan/internal/domain"
	"github.com/asymlab/tamscan/internal/persistence"
)

// Handlers serves the read-only JSON API over the application service.
type Handlers struct {
	svc     *application.Service
	metrics *MetricsRegistry
}

// NewHandlers creates the handler set.
func NewHandlers(svc *application.Service, metrics *MetricsRegistry) *Handlers {
	return &Handlers{svc: svc, metrics: metrics}
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

type candidatesResponse struct {
	Criteria   domain.ScreeningCriteria `json:"criteria"`
	Count      int                      `json:"count"`
	Candidates []domain.CompanyRecord   `json:"candidates"`
	Timestamp  time.Time                `json:"timestamp"`
}

// Health reports liveness.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Candidates runs the screen with criteria from query parameters layered
// over the configured defaults and returns the ranked list.
func (h *Handlers) Candidates(w http.ResponseWriter, r *http.Request) {
	criteria, err := h.criteriaFromQuery(r)
	if err != nil {
		h.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	start := time.Now()
	ranked, err := h.svc.Candidates(r.Context(), criteria)
	if err != nil {
		h.metrics.ObserveScreen("error", time.Since(start))
		h.writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	h.metrics.ObserveScreen("success", time.Since(start))

	writeJSON(w, http.StatusOK, candidatesResponse{
		Criteria:   criteria,
		Count:      len(ranked),
		Candidates: ranked,
		Timestamp:  time.Now().UTC(),
	})
}

// Company returns a single record with a fresh score.
func (h *Handlers) Company(w http.ResponseWriter, r *http.Request) {
	ticker := mux.Vars(r)["ticker"]
	record, err := h.svc.Company(r.Context(), ticker)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			h.writeError(w, r, http.StatusNotFound, err)
			return
		}
		h.writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// Categories lists the valid future-category values.
func (h *Handlers) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"categories": domain.AllCategories(),
	})
}

// NotFound is the fallback for unmatched routes.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, http.StatusNotFound, errorResponse{Error: "endpoint not found"})
}

// criteriaFromQuery overlays query parameters onto the default criteria.
// Unset parameters keep their defaults; categories= and exclude= accept
// comma-separated lists, and categories=all clears the allow-list.
func (h *Handlers) criteriaFromQuery(r *http.Request) (domain.ScreeningCriteria, error) {
	criteria := h.svc.DefaultCriteria()
	q := r.URL.Query()

	numeric := map[string]*float64{
		"max_market_cap":        &criteria.MaxMarketCap,
		"min_insider_ownership": &criteria.MinInsiderOwnership,
		"min_tam_multiple":      &criteria.MinTAMMultiple,
		"min_asymmetry_score":   &criteria.MinAsymmetryScore,
	}
	for param, target := range numeric {
		raw := q.Get(param)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return criteria, &paramError{param: param, value: raw}
		}
		*target = v
	}

	if raw := q.Get("categories"); raw != "" {
		if strings.EqualFold(raw, "all") {
			criteria.Categories = nil
		} else {
			var cats []domain.FutureCategory
			for _, part := range strings.Split(raw, ",") {
				cat, err := domain.ParseFutureCategory(strings.TrimSpace(part))
				if err != nil {
					return criteria, &paramError{param: "categories", value: part}
				}
				cats = append(cats, cat)
			}
			criteria.Categories = cats
		}
	}

	if raw := q.Get("exclude"); raw != "" {
		var tickers []string
		for _, part := range strings.Split(raw, ",") {
			if t := strings.ToUpper(strings.TrimSpace(part)); t != "" {
				tickers = append(tickers, t)
			}
		}
		criteria.ExcludeTickers = tickers
	}

	return criteria, nil
}

type paramError struct {
	param string
	value string
}

func (e *paramError) Error() string {
	return "invalid value " + strconv.Quote(e.value) + " for parameter " + e.param
}

func (h *Handlers) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	requestID, _ := r.Context().Value(requestIDKey).(string)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("request_id", requestID).Str("path", r.URL.Path).Msg("Request failed")
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), RequestID: requestID})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}
