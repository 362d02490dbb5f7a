package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bluefin-labs/seastate/internal/domain"
	"github.com/bluefin-labs/seastate/internal/feed"
	"github.com/bluefin-labs/seastate/internal/observability"
)

type readiness struct {
	err error
}

func (r readiness) CheckReadiness(_ context.Context) error { return r.err }

func testSpecies() []domain.SpeciesRecord {
	return []domain.SpeciesRecord{
		{
			ID:            "yellowfin-tuna",
			Name:          "Yellowfin Tuna",
			TempRange:     domain.TempRange{Low: 20, High: 28},
			MaxWaveHeight: 2.5,
			SeasonMonths:  []time.Month{time.March, time.April, time.May},
			LegalStatus:   domain.StatusOpen,
			StockHealth:   80,
			Trend:         domain.TrendStable,
		},
		{
			ID:            "green-turtle",
			Name:          "Green Turtle",
			TempRange:     domain.TempRange{Low: 18, High: 30},
			MaxWaveHeight: 2.0,
			SeasonMonths:  []time.Month{time.March},
			LegalStatus:   domain.StatusProtected,
			StockHealth:   35,
			Trend:         domain.TrendCritical,
		},
	}
}

func testStocks() []domain.StockRecord {
	return []domain.StockRecord{
		{
			ID:                 "gn-tuna",
			Region:             "gulf-north",
			Species:            "Yellowfin Tuna",
			StockHealthPercent: 80,
			Trend:              domain.TrendStable,
			MSYTonnes:          1000,
			CurrentCatchTonnes: 1000,
		},
	}
}

func newTestServer(t *testing.T, populate bool) *Server {
	t.Helper()

	store := feed.NewStore(100)
	if populate {
		base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		for i := 0; i < 5; i++ {
			store.Append(domain.Observation{
				Timestamp: base.Add(time.Duration(i) * time.Hour),
				Values: map[domain.ParameterKey]float64{
					domain.ParamSeaSurfaceTemp: 24.0 + float64(i)*0.5,
					domain.ParamWaveHeight:     1.0,
					domain.ParamWindSpeed:      12.0,
				},
			})
		}
	}

	return NewServer(":0", store, testSpecies(), testStocks(), "gulf-north",
		readiness{}, slog.Default(), observability.NewMetricsForTesting())
}

func doGet(t *testing.T, s *Server, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	var body map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestServer_Health(t *testing.T) {
	s := newTestServer(t, false)

	rec, body := doGet(t, s, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body["status"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestServer_Ready(t *testing.T) {
	s := newTestServer(t, false)

	rec, body := doGet(t, s, "/readyz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ready", body["status"])
}

func TestServer_NotReady(t *testing.T) {
	store := feed.NewStore(100)
	s := NewServer(":0", store, nil, nil, "",
		readiness{err: errors.New("still warming up")}, slog.Default(), observability.NewMetricsForTesting())

	rec, body := doGet(t, s, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "not ready", body["status"])
	assert.Contains(t, body["error"], "warming up")
}

func TestServer_Metrics(t *testing.T) {
	s := newTestServer(t, false)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_Stats(t *testing.T) {
	s := newTestServer(t, true)

	rec, body := doGet(t, s, "/api/v1/stats")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(5), body["observations"])

	params, ok := body["parameters"].(map[string]any)
	require.True(t, ok)
	require.Contains(t, params, "sea_surface_temperature")

	sst := params["sea_surface_temperature"].(map[string]any)
	assert.Equal(t, float64(5), sst["sample_count"])
	assert.Equal(t, 25.0, sst["mean"])

	// Air pressure was never observed; its stats are the zero report.
	pressure := params["air_pressure"].(map[string]any)
	assert.Equal(t, float64(0), pressure["sample_count"])
}

func TestServer_Stats_SingleParameter(t *testing.T) {
	s := newTestServer(t, true)

	rec, body := doGet(t, s, "/api/v1/stats?parameter=wave_height")
	require.Equal(t, http.StatusOK, rec.Code)

	params := body["parameters"].(map[string]any)
	assert.Len(t, params, 1)
	assert.Contains(t, params, "wave_height")
}

func TestServer_Stats_UnknownParameter(t *testing.T) {
	s := newTestServer(t, true)

	rec, body := doGet(t, s, "/api/v1/stats?parameter=salinity")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body["error"], "salinity")
}

func TestServer_Trend(t *testing.T) {
	s := newTestServer(t, true)

	rec, body := doGet(t, s, "/api/v1/trend?parameter=sea_surface_temperature&window=2")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), body["window"])

	points, ok := body["points"].([]any)
	require.True(t, ok)
	require.Len(t, points, 5)

	first := points[0].(map[string]any)
	assert.Equal(t, 24.0, first["value"])
	second := points[1].(map[string]any)
	assert.Equal(t, 24.25, second["value"])
}

func TestServer_Trend_DefaultWindow(t *testing.T) {
	s := newTestServer(t, true)

	rec, body := doGet(t, s, "/api/v1/trend")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(domain.DefaultSmoothingWindow), body["window"])
	assert.Equal(t, "sea_surface_temperature", body["parameter"])
}

func TestServer_Trend_BadWindow(t *testing.T) {
	s := newTestServer(t, true)

	for _, q := range []string{"window=0", "window=-3", "window=wide"} {
		rec, body := doGet(t, s, "/api/v1/trend?"+q)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, body["error"], "window")
	}
}

func TestServer_Conditions(t *testing.T) {
	s := newTestServer(t, true)

	rec, body := doGet(t, s, "/api/v1/conditions")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 26.0, body["sea_surface_temperature"])
	assert.Equal(t, 1.0, body["wave_height"])
}

func TestServer_Conditions_EmptyStore(t *testing.T) {
	s := newTestServer(t, false)

	rec, body := doGet(t, s, "/api/v1/conditions")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, body["error"], "no current conditions")
}

func TestServer_Species(t *testing.T) {
	s := newTestServer(t, false)

	rec, body := doGet(t, s, "/api/v1/species")
	require.Equal(t, http.StatusOK, rec.Code)

	species, ok := body["species"].([]any)
	require.True(t, ok)
	assert.Len(t, species, 2)
}

func TestServer_Suitability(t *testing.T) {
	fakeClock := clockwork.NewFakeClockAt(time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC))
	domain.SetClock(fakeClock)
	t.Cleanup(func() {
		domain.SetClock(nil)
	})

	s := newTestServer(t, true)

	rec, body := doGet(t, s, "/api/v1/species/yellowfin-tuna/suitability")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["suitable"])
	assert.Equal(t, "Yellowfin Tuna", body["name"])

	// Protected species are blocked regardless of conditions.
	rec, body = doGet(t, s, "/api/v1/species/green-turtle/suitability")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["suitable"])
	assert.Contains(t, body["reason"], "protected")
}

func TestServer_Suitability_UnknownSpecies(t *testing.T) {
	s := newTestServer(t, true)

	rec, body := doGet(t, s, "/api/v1/species/kraken/suitability")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, body["error"], "kraken")
}

func TestServer_Sustainability(t *testing.T) {
	s := newTestServer(t, true)

	rec, body := doGet(t, s, "/api/v1/sustainability")
	require.Equal(t, http.StatusOK, rec.Code)

	// Health avg 57.5, both species in temp range, both wave-safe:
	// 57.5*0.4 + 100*0.4 + 100*0.2 = 83.
	assert.Equal(t, float64(83), body["score"])
	assert.Equal(t, float64(2), body["species_count"])
}

func TestServer_Alerts(t *testing.T) {
	s := newTestServer(t, true)

	rec, body := doGet(t, s, "/api/v1/alerts")
	require.Equal(t, http.StatusOK, rec.Code)

	alerts, ok := body["alerts"].([]any)
	require.True(t, ok)
	require.Len(t, alerts, 2)

	first := alerts[0].(map[string]any)
	assert.Equal(t, "warning", first["type"])
	assert.Contains(t, first["message"], "Green Turtle")

	second := alerts[1].(map[string]any)
	assert.Equal(t, "info", second["type"])
	assert.Contains(t, second["message"], "protected")
}

func TestServer_Risk(t *testing.T) {
	s := newTestServer(t, true)

	rec, body := doGet(t, s, "/api/v1/risk")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), body["count"])

	scores, ok := body["scores"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(80), scores["avg_stock_health"])
	assert.Equal(t, float64(100), scores["msy_pressure"])
	// Latest SST is 26.0, the top of the first climate band.
	assert.Equal(t, float64(20), scores["climate_stress"])
}

func TestServer_Risk_UnknownRegionYieldsEmptyAssessment(t *testing.T) {
	s := newTestServer(t, true)

	rec, body := doGet(t, s, "/api/v1/risk?region=baltic")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), body["count"])
	assert.NotContains(t, body, "scores")
}

func TestServer_Risk_NoObservations(t *testing.T) {
	s := newTestServer(t, false)

	rec, body := doGet(t, s, "/api/v1/risk")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, body["error"], "sea surface temperature")
}
