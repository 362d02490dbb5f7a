// Package meteo pulls hourly ocean and weather observations from the
// Open-Meteo APIs. Marine and weather parameters live on separate endpoints;
// the client fetches both and merges them into one series.
package meteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/bluefin-labs/seastate/internal/domain"
	"github.com/bluefin-labs/seastate/internal/ingest"
	"github.com/bluefin-labs/seastate/internal/observability"
)

const (
	defaultMarineBaseURL  = "https://marine-api.open-meteo.com/v1/marine"
	defaultWeatherBaseURL = "https://api.open-meteo.com/v1/forecast"

	// Open-Meteo hourly time axis format.
	hourlyTimeLayout = "2006-01-02T15:04"
)

// Provider parameter names mapped to the engine's parameter keys.
var (
	marineParams = map[string]domain.ParameterKey{
		"wave_height":             domain.ParamWaveHeight,
		"sea_surface_temperature": domain.ParamSeaSurfaceTemp,
	}
	weatherParams = map[string]domain.ParameterKey{
		"wind_speed_10m":   domain.ParamWindSpeed,
		"surface_pressure": domain.ParamAirPressure,
	}
)

// Client fetches hourly observations from Open-Meteo. It implements
// feed.Source.
type Client struct {
	httpClient     *http.Client
	marineBaseURL  string
	weatherBaseURL string
	logger         *slog.Logger
	metrics        *observability.Metrics
}

// NewClient creates an Open-Meteo client with the given request timeout.
func NewClient(timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		marineBaseURL:  defaultMarineBaseURL,
		weatherBaseURL: defaultWeatherBaseURL,
		logger:         logger,
		metrics:        metrics,
	}
}

// FetchHourly fetches the marine and weather hourly blocks for a location
// and merges them into one series. Null samples stay missing.
func (c *Client) FetchHourly(ctx context.Context, lat, lon float64) (domain.Series, error) {
	marine, err := c.fetchBlock(ctx, c.marineBaseURL, "marine", lat, lon, marineParams)
	if err != nil {
		return nil, err
	}
	weather, err := c.fetchBlock(ctx, c.weatherBaseURL, "weather", lat, lon, weatherParams)
	if err != nil {
		return nil, err
	}
	return ingest.MergeHourly(marine, weather)
}

func (c *Client) fetchBlock(ctx context.Context, baseURL, endpoint string, lat, lon float64, params map[string]domain.ParameterKey) (ingest.HourlyBlock, error) {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	query := url.Values{
		"latitude":   {fmt.Sprintf("%.4f", lat)},
		"longitude":  {fmt.Sprintf("%.4f", lon)},
		"hourly":     {strings.Join(names, ",")},
		"timezone":   {"UTC"},
		"timeformat": {"iso8601"},
	}

	start := time.Now()
	resp, err := c.doRequest(ctx, baseURL+"?"+query.Encode(), endpoint)
	c.metrics.MeteoAPIDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.MeteoRequests.WithLabelValues(endpoint, "error").Inc()
		return ingest.HourlyBlock{}, err
	}
	c.metrics.MeteoRequests.WithLabelValues(endpoint, "success").Inc()

	return mapResponse(resp, params)
}

func (c *Client) doRequest(ctx context.Context, fullURL, endpoint string) (*hourlyResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("meteo API error: status %d: %s", resp.StatusCode, body)
	}

	var decoded hourlyResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &decoded, nil
}

// mapResponse converts a provider response into an HourlyBlock, translating
// provider parameter names to engine keys.
func mapResponse(resp *hourlyResponse, params map[string]domain.ParameterKey) (ingest.HourlyBlock, error) {
	times := make([]time.Time, len(resp.Hourly.Time))
	for i, raw := range resp.Hourly.Time {
		ts, err := time.Parse(hourlyTimeLayout, raw)
		if err != nil {
			return ingest.HourlyBlock{}, fmt.Errorf("parse hourly time %q: %w", raw, err)
		}
		times[i] = ts.UTC()
	}

	block := ingest.HourlyBlock{
		Times:  times,
		Values: make(map[domain.ParameterKey][]*float64, len(params)),
	}
	for name, key := range params {
		values, ok := resp.Hourly.Values[name]
		if !ok {
			continue
		}
		block.Values[key] = values
	}
	return block, nil
}

// Open-Meteo hourly response. The time axis is fixed; every other hourly
// field is a parallel array of nullable samples.
type hourlyResponse struct {
	Hourly hourlyBlock `json:"hourly"`
}

type hourlyBlock struct {
	Time   []string
	Values map[string][]*float64
}

// UnmarshalJSON splits the "time" axis from the parameter arrays without
// naming each provider parameter in a struct.
func (h *hourlyBlock) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if ts, ok := raw["time"]; ok {
		if err := json.Unmarshal(ts, &h.Time); err != nil {
			return fmt.Errorf("hourly time axis: %w", err)
		}
	}

	h.Values = make(map[string][]*float64, len(raw))
	for name, msg := range raw {
		if name == "time" {
			continue
		}
		var values []*float64
		if err := json.Unmarshal(msg, &values); err != nil {
			// Non-numeric hourly fields (units metadata) are skipped.
			continue
		}
		h.Values[name] = values
	}
	return nil
}
