// Package weather caches METAR reports fetched from the aviation
// weather API. Stations that keep returning nothing are blacklisted
// with an exponential back-off so the cache does not hammer the API
// for fields that never report.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"
)

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://aviationweather.gov/cgi-bin/data"

const metarTimeLayout = "2006-01-02 15:04:05"

// MetarTime parses the API's space-separated timestamp format.
type MetarTime struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *MetarTime) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return err
	}
	parsed, err := time.Parse(metarTimeLayout, s)
	if err != nil {
		return fmt.Errorf("invalid metar time %q: %w", s, err)
	}
	t.Time = parsed
	return nil
}

// WindDir is a wind direction in degrees. The API reports "VRB" for
// variable winds, which decodes as no direction at all.
type WindDir struct {
	Degrees *int
}

// UnmarshalJSON implements json.Unmarshaler.
func (w *WindDir) UnmarshalJSON(raw []byte) error {
	if string(raw) == "null" {
		return nil
	}
	var deg int
	if err := json.Unmarshal(raw, &deg); err == nil {
		w.Degrees = &deg
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return fmt.Errorf("invalid wind direction %s", raw)
	}
	// "VRB" and friends carry no usable direction
	return nil
}

// Metar is one row of the API response.
type Metar struct {
	MetarID     int64     `json:"metar_id"`
	IcaoID      string    `json:"icaoId"`
	ReceiptTime MetarTime `json:"receiptTime"`
	ReportTime  MetarTime `json:"reportTime"`
	Temp        *float64  `json:"temp"`
	Dewp        *float64  `json:"dewp"`
	Wdir        WindDir   `json:"wdir"`
	Wspd        *int      `json:"wspd"`
	Wgst        *int      `json:"wgst"`
	RawOb       string    `json:"rawOb"`
}

// Info is the digest attached to airports.
type Info struct {
	Temperature   *float64  `json:"temperature,omitempty"`
	DewPoint      *float64  `json:"dew_point,omitempty"`
	WindSpeed     *int      `json:"wind_speed,omitempty"`
	WindGust      *int      `json:"wind_gust,omitempty"`
	WindDirection *int      `json:"wind_direction,omitempty"`
	Raw           string    `json:"raw"`
	TS            time.Time `json:"ts"`
}

func (m *Metar) info() *Info {
	return &Info{
		Temperature:   m.Temp,
		DewPoint:      m.Dewp,
		WindSpeed:     m.Wspd,
		WindGust:      m.Wgst,
		WindDirection: m.Wdir.Degrees,
		Raw:           m.RawOb,
		TS:            m.ReceiptTime.Time,
	}
}

// API is a thin client for the METAR endpoint.
type API struct {
	http     *http.Client
	baseURL  string
	requests atomic.Uint64
}

// NewAPI returns an API client. An empty baseURL selects the
// production endpoint.
func NewAPI(baseURL string, timeout time.Duration) *API {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &API{
		http:    &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// RequestCount returns how many API calls have been made.
func (a *API) RequestCount() uint64 {
	return a.requests.Load()
}

// FetchMetars requests reports for the given stations in one call.
// Stations the API does not know are simply absent from the result.
func (a *API) FetchMetars(ctx context.Context, icaos []string) ([]Metar, error) {
	if len(icaos) == 0 {
		return nil, nil
	}
	a.requests.Add(1)

	query := url.Values{}
	query.Set("ids", strings.Join(icaos, ","))
	query.Set("format", "json")
	endpoint := fmt.Sprintf("%s/metar.php?%s", a.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build metar request: %w", err)
	}
	resp, err := a.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch metars: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("fetch metars: unexpected status %s", resp.Status)
	}
	var out []Metar
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode metars: %w", err)
	}
	return out, nil
}
