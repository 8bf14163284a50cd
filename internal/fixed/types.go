// Package fixed loads and indexes the reference data the service
// enriches live traffic with: country prefixes, airports, FIR and UIR
// definitions, FIR boundary polygons, runway layouts and geonames
// country shapes.
package fixed

import (
	"fmt"

	"github.com/viert/simwatch/internal/geo"
	"github.com/viert/simwatch/internal/vatsim"
	"github.com/viert/simwatch/internal/weather"
)

// Country is a row of the [Countries] section: a two-letter ICAO
// prefix with the name radar positions go by.
type Country struct {
	Name        string `json:"name"`
	Prefix      string `json:"prefix"`
	ControlName string `json:"control_name,omitempty"`
}

// Runway is one end of a physical runway.
type Runway struct {
	Ident     string    `json:"ident"`
	Length    int       `json:"length"`
	Width     int       `json:"width"`
	Surface   string    `json:"surface"`
	Lighted   bool      `json:"lighted"`
	Closed    bool      `json:"closed"`
	Position  geo.Point `json:"position"`
	Elevation int       `json:"elevation"`
	Heading   uint16    `json:"heading"`
	ActiveTO  bool      `json:"active_to"`
	ActiveLnd bool      `json:"active_lnd"`
}

// ControllerSet holds the positions currently staffed at an airport.
type ControllerSet struct {
	ATIS     *vatsim.Controller `json:"atis,omitempty"`
	Delivery *vatsim.Controller `json:"delivery,omitempty"`
	Ground   *vatsim.Controller `json:"ground,omitempty"`
	Tower    *vatsim.Controller `json:"tower,omitempty"`
	Approach *vatsim.Controller `json:"approach,omitempty"`
}

// Empty reports whether no position is staffed.
func (s *ControllerSet) Empty() bool {
	return s.ATIS == nil && s.Delivery == nil && s.Ground == nil &&
		s.Tower == nil && s.Approach == nil
}

// Same compares two sets position by position, ignoring the feed's
// last_updated stamps.
func (s *ControllerSet) Same(o *ControllerSet) bool {
	return s.ATIS.Same(o.ATIS) &&
		s.Delivery.Same(o.Delivery) &&
		s.Ground.Same(o.Ground) &&
		s.Tower.Same(o.Tower) &&
		s.Approach.Same(o.Approach)
}

// Airport is an [Airports] row enriched with runways, staffed
// positions and weather.
type Airport struct {
	ICAO        string             `json:"icao"`
	Name        string             `json:"name"`
	Position    geo.Point          `json:"position"`
	IATA        string             `json:"iata,omitempty"`
	FIRID       string             `json:"fir_id,omitempty"`
	IsPseudo    bool               `json:"is_pseudo"`
	Runways     map[string]*Runway `json:"runways,omitempty"`
	Controllers ControllerSet      `json:"controllers"`
	Weather     *weather.Info      `json:"weather,omitempty"`
}

// CompoundID keys the airport in the spatial index. ICAO codes alone
// are not unique across the dataset.
func (a *Airport) CompoundID() string {
	return fmt.Sprintf("%s:%s", a.ICAO, a.IATA)
}

// SetActiveRunways marks the given runway idents active for the
// given role, clearing the role from every other runway first.
func (a *Airport) SetActiveRunways(arrival, departure []string) {
	for _, rwy := range a.Runways {
		rwy.ActiveLnd = false
		rwy.ActiveTO = false
	}
	for _, ident := range arrival {
		if rwy, ok := a.Runways[ident]; ok {
			rwy.ActiveLnd = true
		}
	}
	for _, ident := range departure {
		if rwy, ok := a.Runways[ident]; ok {
			rwy.ActiveTO = true
		}
	}
}

// ResetActiveRunways clears every active flag; called when the ATIS
// station disconnects.
func (a *Airport) ResetActiveRunways() {
	for _, rwy := range a.Runways {
		rwy.ActiveLnd = false
		rwy.ActiveTO = false
	}
}

// Same reports whether two snapshots of the airport would render
// identically on a map client.
func (a *Airport) Same(o *Airport) bool {
	if a.ICAO != o.ICAO || a.IATA != o.IATA {
		return false
	}
	if !a.Controllers.Same(&o.Controllers) {
		return false
	}
	if (a.Weather == nil) != (o.Weather == nil) {
		return false
	}
	if a.Weather != nil && (a.Weather.Raw != o.Weather.Raw || !a.Weather.TS.Equal(o.Weather.TS)) {
		return false
	}
	if len(a.Runways) != len(o.Runways) {
		return false
	}
	for ident, rwy := range a.Runways {
		other, ok := o.Runways[ident]
		if !ok || rwy.ActiveLnd != other.ActiveLnd || rwy.ActiveTO != other.ActiveTO {
			return false
		}
	}
	return true
}

// FIR is a control area with its boundary polygon and the radar
// controllers currently covering it.
type FIR struct {
	ICAO        string                        `json:"icao"`
	Name        string                        `json:"name"`
	Prefix      string                        `json:"prefix,omitempty"`
	Boundary    *Boundary                     `json:"boundary,omitempty"`
	Controllers map[string]*vatsim.Controller `json:"controllers,omitempty"`
}

// Same reports whether two snapshots of the FIR would render
// identically, comparing controllers through Controller.Same.
func (f *FIR) Same(o *FIR) bool {
	if f.ICAO != o.ICAO || len(f.Controllers) != len(o.Controllers) {
		return false
	}
	for callsign, ctrl := range f.Controllers {
		other, ok := o.Controllers[callsign]
		if !ok || !ctrl.Same(other) {
			return false
		}
	}
	return true
}

// UIR is a group of FIRs addressable by a single callsign prefix.
type UIR struct {
	ICAO   string   `json:"icao"`
	Name   string   `json:"name"`
	FIRIDs []string `json:"fir_ids"`
}
