package vatsim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// General is the snapshot metadata block.
type General struct {
	Version          int       `json:"version"`
	Reload           int       `json:"reload"`
	Update           string    `json:"update"`
	UpdateTimestamp  time.Time `json:"update_timestamp"`
	ConnectedClients int       `json:"connected_clients"`
	UniqueUsers      int       `json:"unique_users"`
}

type rawFlightPlan struct {
	FlightRules string `json:"flight_rules"`
	Aircraft    string `json:"aircraft"`
	Departure   string `json:"departure"`
	Arrival     string `json:"arrival"`
	Alternate   string `json:"alternate"`
	CruiseTAS   string `json:"cruise_tas"`
	Altitude    string `json:"altitude"`
	Deptime     string `json:"deptime"`
	EnrouteTime string `json:"enroute_time"`
	FuelTime    string `json:"fuel_time"`
	Remarks     string `json:"remarks"`
	Route       string `json:"route"`
}

type rawPilot struct {
	CID         int            `json:"cid"`
	Name        string         `json:"name"`
	Callsign    string         `json:"callsign"`
	Server      string         `json:"server"`
	PilotRating int            `json:"pilot_rating"`
	Latitude    float64        `json:"latitude"`
	Longitude   float64        `json:"longitude"`
	Altitude    int32          `json:"altitude"`
	Groundspeed int32          `json:"groundspeed"`
	Transponder string         `json:"transponder"`
	Heading     int16          `json:"heading"`
	QnhIHg      float64        `json:"qnh_i_hg"`
	QnhMb       int16          `json:"qnh_mb"`
	FlightPlan  *rawFlightPlan `json:"flight_plan"`
	LogonTime   string         `json:"logon_time"`
	LastUpdated string         `json:"last_updated"`
}

type rawController struct {
	CID         int      `json:"cid"`
	Callsign    string   `json:"callsign"`
	Name        string   `json:"name"`
	Frequency   string   `json:"frequency"`
	Facility    int8     `json:"facility"`
	Rating      int      `json:"rating"`
	Server      string   `json:"server"`
	VisualRange int      `json:"visual_range"`
	AtisCode    *string  `json:"atis_code"`
	TextAtis    []string `json:"text_atis"`
	LogonTime   string   `json:"logon_time"`
	LastUpdated string   `json:"last_updated"`
}

type rawSnapshot struct {
	General     General         `json:"general"`
	Pilots      []rawPilot      `json:"pilots"`
	Controllers []rawController `json:"controllers"`
	Atis        []rawController `json:"atis"`
}

// Snapshot is a converted network data snapshot. ATIS stations are
// folded into Controllers with their facility forced to ATIS.
type Snapshot struct {
	General     General
	Pilots      []*Pilot
	Controllers []*Controller
}

// parseFeedTime parses the feed's RFC3339 timestamps, falling back to
// the current time on garbage.
func parseFeedTime(raw string) time.Time {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Now()
	}
	return t
}

func parseUint16(raw string) uint16 {
	v, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 16)
	if err != nil {
		return 0
	}
	return uint16(v)
}

func (r *rawPilot) convert() *Pilot {
	p := &Pilot{
		CID:         r.CID,
		Name:        r.Name,
		Callsign:    r.Callsign,
		Server:      r.Server,
		PilotRating: r.PilotRating,
		Position: Position{
			Lat: r.Latitude,
			Lng: r.Longitude,
			Alt: r.Altitude,
			Hdg: r.Heading,
			GS:  r.Groundspeed,
		},
		Transponder: r.Transponder,
		QnhIHg:      uint16(math.Round(r.QnhIHg * 100)),
		QnhMb:       r.QnhMb,
		LogonTime:   parseFeedTime(r.LogonTime),
		LastUpdated: parseFeedTime(r.LastUpdated),
	}
	if r.FlightPlan != nil {
		p.FlightPlan = &FlightPlan{
			FlightRules: r.FlightPlan.FlightRules,
			Aircraft:    r.FlightPlan.Aircraft,
			Departure:   r.FlightPlan.Departure,
			Arrival:     r.FlightPlan.Arrival,
			Alternate:   r.FlightPlan.Alternate,
			CruiseTAS:   parseUint16(r.FlightPlan.CruiseTAS),
			Altitude:    parseUint16(r.FlightPlan.Altitude),
			Deptime:     r.FlightPlan.Deptime,
			EnrouteTime: r.FlightPlan.EnrouteTime,
			FuelTime:    r.FlightPlan.FuelTime,
			Remarks:     r.FlightPlan.Remarks,
			Route:       r.FlightPlan.Route,
		}
		p.AircraftType = GuessAircraftType(r.FlightPlan.Aircraft)
	}
	return p
}

func (r *rawController) convert(forceAtis bool) *Controller {
	c := &Controller{
		CID:         r.CID,
		Callsign:    r.Callsign,
		Name:        r.Name,
		Facility:    FacilityFromFeed(r.Facility),
		Rating:      r.Rating,
		Server:      r.Server,
		VisualRange: r.VisualRange,
		TextAtis:    strings.Join(r.TextAtis, "\n"),
		LogonTime:   parseFeedTime(r.LogonTime),
		LastUpdated: parseFeedTime(r.LastUpdated),
	}
	if freq, err := strconv.ParseFloat(r.Frequency, 64); err == nil {
		c.Frequency = uint32(freq * 1000)
	}
	if r.AtisCode != nil {
		c.AtisCode = *r.AtisCode
	}
	if forceAtis {
		c.Facility = FacilityATIS
	}
	return c
}

func (r *rawSnapshot) convert() *Snapshot {
	s := &Snapshot{
		General:     r.General,
		Pilots:      make([]*Pilot, 0, len(r.Pilots)),
		Controllers: make([]*Controller, 0, len(r.Controllers)+len(r.Atis)),
	}
	for i := range r.Pilots {
		s.Pilots = append(s.Pilots, r.Pilots[i].convert())
	}
	for i := range r.Controllers {
		s.Controllers = append(s.Controllers, r.Controllers[i].convert(false))
	}
	for i := range r.Atis {
		s.Controllers = append(s.Controllers, r.Atis[i].convert(true))
	}
	return s
}

// Client fetches network data snapshots.
type Client struct {
	http *http.Client
	url  string
}

// NewClient returns a feed client with a bounded request timeout.
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		http: &http.Client{Timeout: timeout},
		url:  url,
	}
}

// Fetch downloads and converts one snapshot.
func (c *Client) Fetch(ctx context.Context) (*Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("fetch feed: unexpected status %s", resp.Status)
	}
	var raw rawSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}
	snap := raw.convert()
	logrus.Debugf("[Feed] snapshot at %s: %d pilots, %d controllers",
		snap.General.UpdateTimestamp.Format(time.RFC3339),
		len(snap.Pilots), len(snap.Controllers))
	return snap, nil
}
