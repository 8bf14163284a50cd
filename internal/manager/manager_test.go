package manager

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viert/simwatch/internal/config"
	"github.com/viert/simwatch/internal/fixed"
	"github.com/viert/simwatch/internal/geo"
	"github.com/viert/simwatch/internal/metrics"
	"github.com/viert/simwatch/internal/track"
	"github.com/viert/simwatch/internal/vatsim"
	"github.com/viert/simwatch/internal/weather"
)

const boundariesSample = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"id": "EGTT", "oceanic": "0", "region": "EMEA", "division": "GBR"},
      "geometry": {"type": "MultiPolygon", "coordinates": [[[[-1,50],[1,50],[1,52],[-1,52],[-1,50]]]]}
    },
    {
      "type": "Feature",
      "properties": {"id": "KZLA", "oceanic": "0", "region": "AMAS", "division": "USA"},
      "geometry": {"type": "MultiPolygon", "coordinates": [[[[-120,32],[-116,32],[-116,36],[-120,36],[-120,32]]]]}
    }
  ]
}`

const vatspySample = `[Countries]
United Kingdom|EG|Control
United States|K|Centre

[Airports]
EGLL|London Heathrow|51.4706|-0.461941|LHR|EGTT|0
KLAX|Los Angeles Intl|33.9425|-118.408|LAX|KZLA|0

[FIRs]
EGTT|London|EGTT|EGTT
KZLA|Los Angeles|ZLA|KZLA
`

const runwaysSample = `"id","airport_ref","airport_ident","length_ft","width_ft","surface","lighted","closed","le_ident","le_latitude_deg","le_longitude_deg","le_elevation_ft","le_heading_degT","le_displaced_threshold_ft","he_ident","he_latitude_deg","he_longitude_deg","he_elevation_ft","he_heading_degT","he_displaced_threshold_ft"
239398,2434,EGLL,12001,148,ASP,1,0,09R,51.4649,-0.48677,75,90,1013,27L,51.465,-0.43407,77,270,
`

const geoCountriesSample = "GB\tGBR\t826\tUK\tUnited Kingdom\tLondon\t244820\t66488991\tEU\t.uk\tGBP\tPound\t44\t\t\ten-GB\t2635167\tIE\t\n" +
	"US\tUSA\t840\tUS\tUnited States\tWashington\t9629091\t327167434\tNA\t.us\tUSD\tDollar\t1\t\t\ten-US\t6252001\tCA,MX\t\n"

const shapesSample = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"geoNameId": "2635167"},
      "geometry": {"type": "Polygon", "coordinates": [[[-8,49],[2,49],[2,61],[-8,61],[-8,49]]]}
    },
    {
      "type": "Feature",
      "properties": {"geoNameId": "6252001"},
      "geometry": {"type": "MultiPolygon", "coordinates": [[[[-125,24],[-66,24],[-66,49],[-125,49],[-125,24]]]]}
    }
  ]
}`

type feedPilot struct {
	callsign string
	cid      int
	lat, lng float64
	alt      int32
}

type feedController struct {
	callsign string
	facility int8
	textAtis string
}

// feedServer serves a mutable snapshot in the network feed format.
type feedServer struct {
	srv  *httptest.Server
	mu   sync.Mutex
	body []byte
}

func newFeedServer(t *testing.T) *feedServer {
	t.Helper()
	fs := &feedServer{}
	fs.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fs.mu.Lock()
		defer fs.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.Write(fs.body)
	}))
	t.Cleanup(fs.srv.Close)
	return fs
}

func (fs *feedServer) set(t *testing.T, ts time.Time, pilots []feedPilot, controllers []feedController) {
	t.Helper()
	// logon time is fixed per connection: a real feed keeps it constant
	// across snapshots, and track files are keyed by it
	logon := time.Date(2024, 3, 1, 11, 0, 0, 0, time.UTC)
	rawPilots := make([]map[string]any, 0, len(pilots))
	for _, p := range pilots {
		rawPilots = append(rawPilots, map[string]any{
			"cid":          p.cid,
			"callsign":     p.callsign,
			"name":         "Test Pilot",
			"latitude":     p.lat,
			"longitude":    p.lng,
			"altitude":     p.alt,
			"groundspeed":  450,
			"heading":      90,
			"logon_time":   logon.Format(time.RFC3339),
			"last_updated": ts.Format(time.RFC3339),
		})
	}
	rawControllers := make([]map[string]any, 0, len(controllers))
	for _, c := range controllers {
		rawControllers = append(rawControllers, map[string]any{
			"cid":          100,
			"callsign":     c.callsign,
			"name":         "Test Controller",
			"frequency":    "118.500",
			"facility":     c.facility,
			"text_atis":    []string{c.textAtis},
			"logon_time":   logon.Format(time.RFC3339),
			"last_updated": ts.Format(time.RFC3339),
		})
	}
	body, err := json.Marshal(map[string]any{
		"general":     map[string]any{"update_timestamp": ts},
		"pilots":      rawPilots,
		"controllers": rawControllers,
	})
	require.NoError(t, err)

	fs.mu.Lock()
	fs.body = body
	fs.mu.Unlock()
}

func newMetarServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rows := []string{}
		for _, icao := range strings.Split(r.URL.Query().Get("ids"), ",") {
			rows = append(rows, fmt.Sprintf(
				`{"metar_id":1,"icaoId":%q,"receiptTime":"2024-03-01 12:00:00","reportTime":"2024-03-01 12:00:00","temp":15,"wdir":270,"wspd":8,"rawOb":"%s 011200Z 27008KT 15/10 Q1013"}`,
				icao, icao))
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, "[%s]", strings.Join(rows, ","))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestManager(t *testing.T) (*Manager, *feedServer) {
	t.Helper()
	data, err := fixed.Parse(
		[]byte(boundariesSample), []byte(vatspySample), []byte(runwaysSample),
		[]byte(geoCountriesSample), []byte(shapesSample))
	require.NoError(t, err)

	feed := newFeedServer(t)
	metar := newMetarServer(t)

	cfg := config.Default()
	cfg.API.URL = feed.srv.URL
	cfg.Track.Folder = t.TempDir()

	api := weather.NewAPI(metar.URL, time.Second)
	m := New(
		cfg,
		vatsim.NewClient(feed.srv.URL, time.Second),
		weather.NewService(api, weather.DefaultTTL),
		track.NewStore(cfg.Track.Folder),
		metrics.New(api.RequestCount),
	)
	m.SetData(data)
	return m, feed
}

func TestIngestPilots(t *testing.T) {
	m, feed := newTestManager(t)
	ctx := context.Background()
	t1 := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	feed.set(t, t1, []feedPilot{
		{callsign: "ANZ1", cid: 1000001, lat: 5, lng: 178, alt: 35000},
		{callsign: "UAL456", cid: 1000002, lat: 5, lng: -178, alt: 36000},
		{callsign: "BAW9", cid: 1000003, lat: 51, lng: 0, alt: 12000},
	}, nil)
	m.Poll(ctx)

	assert.Len(t, m.GetAllPilots(nil), 3)
	require.NotNil(t, m.GetPilotByCallsign("ANZ1"))
	assert.Nil(t, m.GetPilotByCallsign("NOPE"))

	points, err := m.GetPilotTrack("ANZ1")
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.EqualValues(t, 35000, points[0].Alt)

	// a viewport crossing the antimeridian catches both oceanic
	// pilots and nothing else
	wrap := geo.Rect{
		SouthWest: geo.Point{Lat: 0, Lng: 170},
		NorthEast: geo.Point{Lat: 10, Lng: -170},
	}
	inView := m.GetPilots(wrap, nil, nil)
	require.Len(t, inView, 2)

	// subscriptions override the viewport
	elsewhere := geo.Rect{
		SouthWest: geo.Point{Lat: 40, Lng: 10},
		NorthEast: geo.Point{Lat: 50, Lng: 20},
	}
	assert.Empty(t, m.GetPilots(elsewhere, nil, nil))
	subscribed := m.GetPilots(elsewhere, nil, map[string]bool{"BAW9": true})
	require.Len(t, subscribed, 1)
	assert.Equal(t, "BAW9", subscribed[0].Callsign)

	// a stale snapshot timestamp leaves the state untouched
	feed.set(t, t1, []feedPilot{
		{callsign: "ANZ1", cid: 1000001, lat: 6, lng: 178, alt: 35000},
	}, nil)
	m.Poll(ctx)
	assert.Len(t, m.GetAllPilots(nil), 3)

	// a fresh one drops the vanished pilots and extends the track
	t2 := t1.Add(15 * time.Second)
	feed.set(t, t2, []feedPilot{
		{callsign: "ANZ1", cid: 1000001, lat: 6, lng: 178, alt: 35200},
	}, nil)
	m.Poll(ctx)
	assert.Len(t, m.GetAllPilots(nil), 1)
	assert.Nil(t, m.GetPilotByCallsign("BAW9"))

	points, err = m.GetPilotTrack("ANZ1")
	require.NoError(t, err)
	assert.Len(t, points, 2)
}

func TestGetAllPilotsFiltered(t *testing.T) {
	m, feed := newTestManager(t)
	t1 := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	feed.set(t, t1, []feedPilot{
		{callsign: "BAW12", cid: 1, lat: 51, lng: 0, alt: 37000},
		{callsign: "BAW34", cid: 2, lat: 52, lng: 0, alt: 9000},
		{callsign: "DLH5", cid: 3, lat: 50, lng: 8, alt: 37000},
	}, nil)
	m.Poll(context.Background())

	filter, err := vatsim.CompilePilotFilter(`callsign =~ "BAW" and alt > 10000`)
	require.NoError(t, err)
	out := m.GetAllPilots(filter)
	require.Len(t, out, 1)
	assert.Equal(t, "BAW12", out[0].Callsign)
}

func TestIngestControllers(t *testing.T) {
	m, feed := newTestManager(t)
	ctx := context.Background()
	t1 := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	feed.set(t, t1, nil, []feedController{
		{callsign: "KLAX_TWR", facility: int8(vatsim.FacilityTower)},
		{callsign: "EGTT_CTR", facility: int8(vatsim.FacilityRadar)},
	})
	m.Poll(ctx)

	airports := m.GetAllAirports(false)
	require.Len(t, airports, 1)
	klax := airports[0]
	assert.Equal(t, "KLAX", klax.ICAO)
	require.NotNil(t, klax.Controllers.Tower)
	assert.Equal(t, "Los Angeles Intl Tower", klax.Controllers.Tower.HumanReadable)

	// the staffed airport got a weather report in the same pass
	require.NotNil(t, klax.Weather)
	assert.Contains(t, klax.Weather.Raw, "KLAX")

	firs := m.GetAllFIRs()
	require.Len(t, firs, 1)
	assert.Equal(t, "EGTT", firs[0].ICAO)

	ukView := geo.Rect{
		SouthWest: geo.Point{Lat: 49, Lng: -2},
		NorthEast: geo.Point{Lat: 53, Lng: 2},
	}
	assert.Len(t, m.GetFIRs(ukView), 1)
	usView := geo.Rect{
		SouthWest: geo.Point{Lat: 32, Lng: -120},
		NorthEast: geo.Point{Lat: 36, Lng: -116},
	}
	assert.Empty(t, m.GetFIRs(usView))
	assert.Len(t, m.GetAirports(usView, false), 1)

	// everybody logs off; held snapshots stay intact
	t2 := t1.Add(15 * time.Second)
	feed.set(t, t2, nil, nil)
	m.Poll(ctx)

	assert.Empty(t, m.GetAllAirports(false))
	assert.Empty(t, m.GetAllFIRs())
	assert.NotNil(t, klax.Controllers.Tower)
}

func TestGetAllAirportsShowWx(t *testing.T) {
	m, feed := newTestManager(t)
	ctx := context.Background()
	t1 := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	feed.set(t, t1, nil, []feedController{
		{callsign: "KLAX_TWR", facility: int8(vatsim.FacilityTower)},
	})
	m.Poll(ctx)

	// KLAX keeps its weather after the tower closes, so it stays
	// visible in weather mode only
	t2 := t1.Add(15 * time.Second)
	feed.set(t, t2, nil, nil)
	m.Poll(ctx)

	assert.Empty(t, m.GetAllAirports(false))
	withWx := m.GetAllAirports(true)
	require.Len(t, withWx, 1)
	assert.Equal(t, "KLAX", withWx[0].ICAO)
}

func TestFindAirportCopies(t *testing.T) {
	m, _ := newTestManager(t)

	a := m.FindAirport("LHR")
	require.NotNil(t, a)
	assert.Equal(t, "EGLL", a.ICAO)

	a.Name = "scribbled over"
	assert.Equal(t, "London Heathrow", m.FindAirport("LHR").Name)
}
