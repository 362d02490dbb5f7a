package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bluefin-labs/seastate/internal/domain"
)

// statsResponse reports per-parameter statistics over the current window.
type statsResponse struct {
	Observations int                                           `json:"observations"`
	Parameters   map[domain.ParameterKey]domain.ParameterStats `json:"parameters"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	snapshot := s.store.Snapshot()

	keys := domain.Parameters
	if p := r.URL.Query().Get("parameter"); p != "" {
		key := domain.ParameterKey(p)
		if !domain.KnownParameter(key) {
			writeError(w, http.StatusBadRequest, "unknown parameter "+p)
			return
		}
		keys = []domain.ParameterKey{key}
	}

	resp := statsResponse{
		Observations: len(snapshot),
		Parameters:   make(map[domain.ParameterKey]domain.ParameterStats, len(keys)),
	}
	for _, key := range keys {
		resp.Parameters[key] = domain.ComputeStats(snapshot, key)
	}

	s.metrics.Evaluations.WithLabelValues("stats").Inc()
	writeJSON(w, http.StatusOK, resp)
}

// trendPoint renders a smoothed sample; Value is null where the trailing
// window held no samples at all.
type trendPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Value     *float64  `json:"value"`
}

type trendResponse struct {
	Parameter domain.ParameterKey `json:"parameter"`
	Window    int                 `json:"window"`
	Points    []trendPoint        `json:"points"`
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	key := domain.ParamSeaSurfaceTemp
	if p := r.URL.Query().Get("parameter"); p != "" {
		key = domain.ParameterKey(p)
		if !domain.KnownParameter(key) {
			writeError(w, http.StatusBadRequest, "unknown parameter "+p)
			return
		}
	}

	window := domain.DefaultSmoothingWindow
	if v := r.URL.Query().Get("window"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "window must be a positive integer")
			return
		}
		window = n
	}

	smoothed := domain.MovingAverage(s.store.Snapshot(), key, window)
	points := make([]trendPoint, len(smoothed))
	for i, pt := range smoothed {
		points[i] = trendPoint{Timestamp: pt.Timestamp}
		if pt.Valid {
			v := pt.Value
			points[i].Value = &v
		}
	}

	s.metrics.Evaluations.WithLabelValues("trend").Inc()
	writeJSON(w, http.StatusOK, trendResponse{Parameter: key, Window: window, Points: points})
}

func (s *Server) handleConditions(w http.ResponseWriter, r *http.Request) {
	cond, ok := s.store.Conditions()
	if !ok {
		writeError(w, http.StatusNotFound, "no current conditions available yet")
		return
	}
	writeJSON(w, http.StatusOK, cond)
}

func (s *Server) handleSpecies(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"species": s.species})
}

type suitabilityResponse struct {
	SpeciesID  string            `json:"species_id"`
	Name       string            `json:"name"`
	Suitable   bool              `json:"suitable"`
	Reason     string            `json:"reason,omitempty"`
	Conditions domain.Conditions `json:"conditions"`
}

func (s *Server) handleSuitability(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var species *domain.SpeciesRecord
	for i := range s.species {
		if s.species[i].ID == id {
			species = &s.species[i]
			break
		}
	}
	if species == nil {
		writeError(w, http.StatusNotFound, "unknown species "+id)
		return
	}

	cond, ok := s.store.Conditions()
	if !ok {
		writeError(w, http.StatusNotFound, "no current conditions available yet")
		return
	}

	result := domain.EvaluateSuitability(*species, cond, domain.CurrentMonth())

	s.metrics.Evaluations.WithLabelValues("suitability").Inc()
	writeJSON(w, http.StatusOK, suitabilityResponse{
		SpeciesID:  species.ID,
		Name:       species.Name,
		Suitable:   result.Suitable,
		Reason:     result.Reason,
		Conditions: cond,
	})
}

type sustainabilityResponse struct {
	Score        int               `json:"score"`
	SpeciesCount int               `json:"species_count"`
	Conditions   domain.Conditions `json:"conditions"`
}

func (s *Server) handleSustainability(w http.ResponseWriter, r *http.Request) {
	cond, ok := s.store.Conditions()
	if !ok {
		writeError(w, http.StatusNotFound, "no current conditions available yet")
		return
	}

	s.metrics.Evaluations.WithLabelValues("sustainability").Inc()
	writeJSON(w, http.StatusOK, sustainabilityResponse{
		Score:        domain.SustainabilityScore(s.species, cond),
		SpeciesCount: len(s.species),
		Conditions:   cond,
	})
}

func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	cond, ok := s.store.Conditions()
	if !ok {
		writeError(w, http.StatusNotFound, "no current conditions available yet")
		return
	}

	score := domain.SustainabilityScore(s.species, cond)
	alerts := domain.GenerateAlerts(s.species, score, cond)
	if alerts == nil {
		alerts = []domain.Alert{}
	}

	s.metrics.Evaluations.WithLabelValues("alerts").Inc()
	writeJSON(w, http.StatusOK, map[string]any{"alerts": alerts})
}

func (s *Server) handleRisk(w http.ResponseWriter, r *http.Request) {
	sst, ok := domain.LatestValue(s.store.Snapshot(), domain.ParamSeaSurfaceTemp)
	if !ok {
		writeError(w, http.StatusNotFound, "no sea surface temperature observations yet")
		return
	}

	region := s.region
	if v := r.URL.Query().Get("region"); v != "" {
		region = v
	}

	assessment := domain.ScoreRisk(domain.FilterStocksByRegion(s.stocks, region), sst)

	s.metrics.Evaluations.WithLabelValues("risk").Inc()
	writeJSON(w, http.StatusOK, assessment)
}
