// Package vatsim models the live network data feed: the raw snapshot
// JSON, the domain types the rest of the service works with, and the
// conversions between them.
package vatsim

import (
	"strings"
	"time"

	"github.com/viert/simwatch/internal/geo"
)

// Facility classifies a controller position.
type Facility int8

const (
	FacilityReject Facility = iota
	FacilityATIS
	FacilityDelivery
	FacilityGround
	FacilityTower
	FacilityApproach
	FacilityRadar
)

// FacilityFromFeed maps the numeric facility field of the feed onto a
// Facility. Anything outside the known range is rejected.
func FacilityFromFeed(v int8) Facility {
	if v >= 1 && v <= 6 {
		return Facility(v)
	}
	return FacilityReject
}

var facilityNames = map[Facility]string{
	FacilityReject:   "reject",
	FacilityATIS:     "atis",
	FacilityDelivery: "delivery",
	FacilityGround:   "ground",
	FacilityTower:    "tower",
	FacilityApproach: "approach",
	FacilityRadar:    "radar",
}

func (f Facility) String() string {
	if name, ok := facilityNames[f]; ok {
		return name
	}
	return "reject"
}

// Label returns the capitalised form used in human-readable
// controller descriptions.
func (f Facility) Label() string {
	if f == FacilityATIS {
		return "ATIS"
	}
	name := f.String()
	return strings.ToUpper(name[:1]) + name[1:]
}

// MarshalText implements encoding.TextMarshaler so facilities render
// as their lowercase names in JSON.
func (f Facility) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// Position is a pilot's reported state vector.
type Position struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
	Alt int32   `json:"alt"`
	Hdg int16   `json:"hdg"`
	GS  int32   `json:"gs"`
}

// FlightPlan is the filed plan attached to a pilot, if any.
type FlightPlan struct {
	FlightRules string `json:"flight_rules"`
	Aircraft    string `json:"aircraft"`
	Departure   string `json:"departure"`
	Arrival     string `json:"arrival"`
	Alternate   string `json:"alternate"`
	CruiseTAS   uint16 `json:"cruise_tas"`
	Altitude    uint16 `json:"altitude"`
	Deptime     string `json:"deptime"`
	EnrouteTime string `json:"enroute_time"`
	FuelTime    string `json:"fuel_time"`
	Remarks     string `json:"remarks"`
	Route       string `json:"route"`
}

// Pilot is a connected pilot with a converted state vector.
type Pilot struct {
	CID          int         `json:"cid"`
	Name         string      `json:"name"`
	Callsign     string      `json:"callsign"`
	Server       string      `json:"server"`
	PilotRating  int         `json:"pilot_rating"`
	Position     Position    `json:"position"`
	Transponder  string      `json:"transponder"`
	QnhIHg       uint16      `json:"qnh_i_hg"`
	QnhMb        int16       `json:"qnh_mb"`
	FlightPlan   *FlightPlan `json:"flight_plan,omitempty"`
	AircraftType *Aircraft   `json:"aircraft_type,omitempty"`
	LogonTime    time.Time   `json:"logon_time"`
	LastUpdated  time.Time   `json:"last_updated"`
}

// Point returns the pilot's map position.
func (p *Pilot) Point() geo.Point {
	return geo.Point{Lat: p.Position.Lat, Lng: p.Position.Lng}
}

// Same reports whether two states of a pilot carry identical data
// apart from the feed's last_updated stamp.
func (p *Pilot) Same(o *Pilot) bool {
	if p == nil || o == nil {
		return p == o
	}
	return p.CID == o.CID &&
		p.Name == o.Name &&
		p.Callsign == o.Callsign &&
		p.Server == o.Server &&
		p.PilotRating == o.PilotRating &&
		p.Position == o.Position &&
		p.Transponder == o.Transponder &&
		p.QnhIHg == o.QnhIHg &&
		p.QnhMb == o.QnhMb &&
		!p.HasFlightPlanChanged(o) &&
		p.LogonTime.Equal(o.LogonTime)
}

// HasFlightPlanChanged reports whether the filed plan differs between
// two states of the same pilot.
func (p *Pilot) HasFlightPlanChanged(o *Pilot) bool {
	if (p.FlightPlan == nil) != (o.FlightPlan == nil) {
		return true
	}
	if p.FlightPlan == nil {
		return false
	}
	return *p.FlightPlan != *o.FlightPlan
}

// Controller is a connected controller or ATIS station.
type Controller struct {
	CID           int       `json:"cid"`
	Callsign      string    `json:"callsign"`
	Name          string    `json:"name"`
	Frequency     uint32    `json:"frequency"`
	Facility      Facility  `json:"facility"`
	Rating        int       `json:"rating"`
	Server        string    `json:"server"`
	VisualRange   int       `json:"visual_range"`
	AtisCode      string    `json:"atis_code,omitempty"`
	TextAtis      string    `json:"text_atis,omitempty"`
	HumanReadable string    `json:"human_readable,omitempty"`
	LogonTime     time.Time `json:"logon_time"`
	LastUpdated   time.Time `json:"last_updated"`
}

// Same reports whether two controller states are identical apart from
// the feed's last_updated stamp. Diffing on Same keeps idle
// controllers from being re-sent every snapshot.
func (c *Controller) Same(o *Controller) bool {
	if c == nil || o == nil {
		return c == o
	}
	return c.CID == o.CID &&
		c.Callsign == o.Callsign &&
		c.Name == o.Name &&
		c.Frequency == o.Frequency &&
		c.Facility == o.Facility &&
		c.Rating == o.Rating &&
		c.Server == o.Server &&
		c.VisualRange == o.VisualRange &&
		c.AtisCode == o.AtisCode &&
		c.TextAtis == o.TextAtis &&
		c.HumanReadable == o.HumanReadable &&
		c.LogonTime.Equal(o.LogonTime)
}
