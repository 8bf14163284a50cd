package vatsim

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feedSample = `{
  "general": {
    "version": 3,
    "update_timestamp": "2024-03-01T12:00:00Z",
    "connected_clients": 2,
    "unique_users": 2
  },
  "pilots": [
    {
      "cid": 1234567,
      "name": "John Doe",
      "callsign": "BAW123",
      "server": "UK",
      "pilot_rating": 1,
      "latitude": 51.47,
      "longitude": -0.45,
      "altitude": 37000,
      "groundspeed": 451,
      "transponder": "2200",
      "heading": 270,
      "qnh_i_hg": 29.921,
      "qnh_mb": 1013,
      "flight_plan": {
        "flight_rules": "I",
        "aircraft": "B738/M-SDE3/LB1",
        "departure": "EGLL",
        "arrival": "KJFK",
        "alternate": "KBOS",
        "cruise_tas": "450",
        "altitude": "37000",
        "deptime": "1200",
        "enroute_time": "0700",
        "fuel_time": "0830",
        "remarks": "/v/",
        "route": "CPT L9 KENET"
      },
      "logon_time": "2024-03-01T09:00:00Z",
      "last_updated": "2024-03-01T12:00:00Z"
    }
  ],
  "controllers": [
    {
      "cid": 7654321,
      "callsign": "EGLL_TWR",
      "name": "Jane Roe",
      "frequency": "118.500",
      "facility": 4,
      "rating": 5,
      "server": "UK",
      "visual_range": 50,
      "atis_code": null,
      "text_atis": null,
      "logon_time": "2024-03-01T10:00:00Z",
      "last_updated": "broken"
    }
  ],
  "atis": [
    {
      "cid": 1111111,
      "callsign": "EGLL_ATIS",
      "name": "auto",
      "frequency": "136.075",
      "facility": 4,
      "rating": 1,
      "server": "UK",
      "visual_range": 0,
      "atis_code": "K",
      "text_atis": ["EGLL INFORMATION K", "LANDING RUNWAY 27L"],
      "logon_time": "2024-03-01T08:00:00Z",
      "last_updated": "2024-03-01T12:00:00Z"
    }
  ]
}`

func fetchSample(t *testing.T) *Snapshot {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(feedSample))
	}))
	t.Cleanup(srv.Close)

	snap, err := NewClient(srv.URL, time.Second).Fetch(context.Background())
	require.NoError(t, err)
	return snap
}

func TestFetchConvertsPilots(t *testing.T) {
	snap := fetchSample(t)
	require.Len(t, snap.Pilots, 1)

	p := snap.Pilots[0]
	assert.Equal(t, "BAW123", p.Callsign)
	assert.Equal(t, 1234567, p.CID)
	assert.EqualValues(t, 37000, p.Position.Alt)
	assert.EqualValues(t, 270, p.Position.Hdg)
	// inches of mercury scale to hundredths
	assert.EqualValues(t, 2992, p.QnhIHg)

	require.NotNil(t, p.FlightPlan)
	assert.EqualValues(t, 450, p.FlightPlan.CruiseTAS)
	assert.EqualValues(t, 37000, p.FlightPlan.Altitude)

	require.NotNil(t, p.AircraftType)
	assert.Equal(t, "B738", p.AircraftType.Designator)
}

func TestFetchConvertsControllers(t *testing.T) {
	snap := fetchSample(t)
	require.Len(t, snap.Controllers, 2)

	twr := snap.Controllers[0]
	assert.Equal(t, "EGLL_TWR", twr.Callsign)
	assert.EqualValues(t, 118500, twr.Frequency)
	assert.Equal(t, FacilityTower, twr.Facility)
	// broken timestamp falls back to now
	assert.WithinDuration(t, time.Now(), twr.LastUpdated, time.Minute)

	atis := snap.Controllers[1]
	assert.Equal(t, FacilityATIS, atis.Facility)
	assert.Equal(t, "K", atis.AtisCode)
	assert.Equal(t, "EGLL INFORMATION K\nLANDING RUNWAY 27L", atis.TextAtis)
}

func TestFetchRejectsBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).Fetch(context.Background())
	assert.Error(t, err)
}

func TestFacilityFromFeed(t *testing.T) {
	assert.Equal(t, FacilityATIS, FacilityFromFeed(1))
	assert.Equal(t, FacilityRadar, FacilityFromFeed(6))
	assert.Equal(t, FacilityReject, FacilityFromFeed(0))
	assert.Equal(t, FacilityReject, FacilityFromFeed(7))
	assert.Equal(t, FacilityReject, FacilityFromFeed(-1))
}

func TestFacilityLabel(t *testing.T) {
	assert.Equal(t, "ATIS", FacilityATIS.Label())
	assert.Equal(t, "Tower", FacilityTower.Label())
	assert.Equal(t, "Approach", FacilityApproach.Label())
}

func TestControllerSameIgnoresLastUpdated(t *testing.T) {
	a := &Controller{CID: 1, Callsign: "EGLL_TWR", LastUpdated: time.Unix(100, 0)}
	b := &Controller{CID: 1, Callsign: "EGLL_TWR", LastUpdated: time.Unix(200, 0)}
	assert.True(t, a.Same(b))

	b.Frequency = 118500
	assert.False(t, a.Same(b))
}
