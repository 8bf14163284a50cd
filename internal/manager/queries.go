package manager

import (
	"github.com/mohae/deepcopy"

	"github.com/viert/simwatch/internal/expr"
	"github.com/viert/simwatch/internal/fixed"
	"github.com/viert/simwatch/internal/geo"
	"github.com/viert/simwatch/internal/track"
	"github.com/viert/simwatch/internal/vatsim"
)

// PilotFilter narrows pilot query results. A nil filter passes
// everything.
type PilotFilter = expr.Compiled[*vatsim.Pilot]

// GetAllPilots returns every pilot online, optionally filtered.
func (m *Manager) GetAllPilots(filter *PilotFilter) []*vatsim.Pilot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*vatsim.Pilot, 0, len(m.pilots))
	for _, p := range m.pilots {
		if filter != nil && !filter.Evaluate(p) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// GetPilots returns the pilots inside rect matching filter. Pilots
// whose callsigns appear in subscribed are always included, no matter
// where they are or whether the filter matches.
func (m *Manager) GetPilots(rect geo.Rect, filter *PilotFilter, subscribed map[string]bool) []*vatsim.Pilot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []*vatsim.Pilot{}
	m.pilotsIdx.search(rect, func(callsign string) {
		if subscribed[callsign] {
			return
		}
		p, ok := m.pilots[callsign]
		if !ok {
			return
		}
		if filter != nil && !filter.Evaluate(p) {
			return
		}
		out = append(out, p)
	})
	for callsign := range subscribed {
		if p, ok := m.pilots[callsign]; ok {
			out = append(out, p)
		}
	}
	return out
}

// GetAllAirports returns a snapshot of every airport worth showing:
// staffed ones, plus weather-carrying ones when showWx is set.
func (m *Manager) GetAllAirports(showWx bool) []*fixed.Airport {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.data == nil {
		return nil
	}
	out := []*fixed.Airport{}
	for _, a := range m.data.Airports() {
		if airportVisible(a, showWx) {
			out = append(out, copyAirport(a))
		}
	}
	return out
}

// GetAirports returns a snapshot of the visible airports inside rect.
func (m *Manager) GetAirports(rect geo.Rect, showWx bool) []*fixed.Airport {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.data == nil {
		return nil
	}
	out := []*fixed.Airport{}
	m.airportsIdx.search(rect, func(compoundID string) {
		a := m.data.AirportByCompoundID(compoundID)
		if a != nil && airportVisible(a, showWx) {
			out = append(out, copyAirport(a))
		}
	})
	return out
}

// GetAllFIRs returns a snapshot of every staffed FIR.
func (m *Manager) GetAllFIRs() []*fixed.FIR {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.data == nil {
		return nil
	}
	out := []*fixed.FIR{}
	for _, f := range m.data.FIRs() {
		if len(f.Controllers) > 0 {
			out = append(out, copyFIR(f))
		}
	}
	return out
}

// GetFIRs returns a snapshot of the staffed FIRs whose boundary boxes
// intersect rect.
func (m *Manager) GetFIRs(rect geo.Rect) []*fixed.FIR {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.data == nil {
		return nil
	}
	out := []*fixed.FIR{}
	m.firsIdx.search(rect, func(icao string) {
		f := m.data.FIRByICAO(icao)
		if f != nil && len(f.Controllers) > 0 {
			out = append(out, copyFIR(f))
		}
	})
	return out
}

// FindAirport looks an airport up by ICAO or IATA code.
func (m *Manager) FindAirport(code string) *fixed.Airport {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.data == nil {
		return nil
	}
	a := m.data.FindAirport(code)
	if a == nil {
		return nil
	}
	return copyAirport(a)
}

// Ready reports whether the reference dataset has been loaded.
func (m *Manager) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data != nil
}

// GetPilotByCallsign returns the pilot flying under callsign, if any.
func (m *Manager) GetPilotByCallsign(callsign string) *vatsim.Pilot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pilots[callsign]
}

// GetPilotTrack returns the stored track of the pilot currently
// flying under callsign.
func (m *Manager) GetPilotTrack(callsign string) ([]track.Point, error) {
	m.mu.RLock()
	p := m.pilots[callsign]
	m.mu.RUnlock()
	if p == nil {
		return nil, nil
	}
	return m.store.Track(p.CID, p.Callsign, p.LogonTime)
}

func airportVisible(a *fixed.Airport, showWx bool) bool {
	return !a.Controllers.Empty() || (showWx && a.Weather != nil)
}

// copyAirport detaches a query result from the live record, which the
// ingest loop keeps mutating in place.
func copyAirport(a *fixed.Airport) *fixed.Airport {
	return deepcopy.Copy(a).(*fixed.Airport)
}

// copyFIR detaches the controller set while sharing the boundary,
// which never changes after load.
func copyFIR(f *fixed.FIR) *fixed.FIR {
	c := *f
	c.Controllers = make(map[string]*vatsim.Controller, len(f.Controllers))
	for k, v := range f.Controllers {
		c.Controllers[k] = v
	}
	return &c
}
