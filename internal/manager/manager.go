package manager

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/viert/simwatch/internal/config"
	"github.com/viert/simwatch/internal/fixed"
	"github.com/viert/simwatch/internal/metrics"
	"github.com/viert/simwatch/internal/track"
	"github.com/viert/simwatch/internal/vatsim"
	"github.com/viert/simwatch/internal/weather"
)

// cleanupEveryNIterations spaces track retention passes out between
// ingest iterations. The first pass runs at boot.
const cleanupEveryNIterations = 5

// Manager is the single owner of the live world state. One RWMutex
// guards the whole of it: the ingest loop takes the write side once
// per snapshot, every query takes the read side.
type Manager struct {
	cfg     *config.Config
	feed    *vatsim.Client
	weather *weather.Service
	store   *track.Store
	metrics *metrics.Metrics

	mu           sync.RWMutex
	data         *fixed.Data
	dataLoadedAt time.Time
	pilots       map[string]*vatsim.Pilot
	controllers  map[string]*vatsim.Controller
	pilotsIdx    *pointIndex
	airportsIdx  *pointIndex
	firsIdx      *rectIndex
	lastUpdate   time.Time

	cleanupCountdown int
}

// New wires a manager from its dependencies.
func New(cfg *config.Config, feed *vatsim.Client, wx *weather.Service, store *track.Store, m *metrics.Metrics) *Manager {
	return &Manager{
		cfg:         cfg,
		feed:        feed,
		weather:     wx,
		store:       store,
		metrics:     m,
		pilots:      map[string]*vatsim.Pilot{},
		controllers: map[string]*vatsim.Controller{},
		pilotsIdx:   newPointIndex(),
		airportsIdx: newPointIndex(),
		firsIdx:     newRectIndex(),
	}
}

// Run drives the ingest loop until the context is cancelled. The
// first iteration starts immediately.
func (m *Manager) Run(ctx context.Context) {
	ticker := time.NewTicker(m.cfg.API.PollPeriod.Std())
	defer ticker.Stop()
	for {
		m.Poll(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Poll runs one ingest iteration: fetch a snapshot, apply it to the
// world state, refresh weather and housekeeping.
func (m *Manager) Poll(ctx context.Context) {
	if err := m.ensureData(ctx); err != nil {
		logrus.Errorf("[Manager] reference data unavailable: %s", err)
		return
	}

	t0 := time.Now()
	snap, err := m.feed.Fetch(ctx)
	m.metrics.ObserveDataLoadTime(time.Since(t0))
	if err != nil {
		logrus.Errorf("[Manager] snapshot fetch failed: %s", err)
		return
	}

	m.mu.Lock()
	if !snap.General.UpdateTimestamp.After(m.lastUpdate) {
		m.mu.Unlock()
		logrus.Debugf("[Manager] snapshot unchanged at %s, skipped",
			snap.General.UpdateTimestamp)
		return
	}
	m.lastUpdate = snap.General.UpdateTimestamp
	m.metrics.SetDataTimestamp(snap.General.UpdateTimestamp)
	m.metrics.ResetObjectsOnline()

	m.processPilots(snap.Pilots)
	controlled := m.processControllers(snap.Controllers)
	m.mu.Unlock()

	m.refreshWeather(ctx, controlled)
	m.updateStoreMetrics()

	if m.cleanupCountdown <= 0 {
		t0 = time.Now()
		removed := m.store.Cleanup(m.cfg.Track.MaxAge.Std())
		m.metrics.ObserveCleanupTime(time.Since(t0))
		if removed > 0 {
			logrus.Infof("[Manager] removed %d expired tracks", removed)
		}
		m.cleanupCountdown = cleanupEveryNIterations
	}
	m.cleanupCountdown--
}

// ensureData loads or reloads the reference dataset. An expired
// dataset keeps serving until its replacement arrives.
func (m *Manager) ensureData(ctx context.Context) error {
	m.mu.RLock()
	current := m.data
	age := time.Since(m.dataLoadedAt)
	m.mu.RUnlock()

	if current != nil && age < m.cfg.Data.ReloadPeriod.Std() {
		return nil
	}

	data, err := fixed.Load(ctx, &m.cfg.Data, m.cfg.API.Timeout.Std())
	if err != nil {
		if current != nil {
			logrus.Errorf("[Manager] reference data reload failed, keeping previous: %s", err)
			return nil
		}
		return err
	}

	m.SetData(data)
	return nil
}

// SetData replaces the reference dataset and rebuilds the static
// spatial indexes.
func (m *Manager) SetData(data *fixed.Data) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = data
	m.dataLoadedAt = time.Now()
	m.airportsIdx = newPointIndex()
	for _, a := range data.Airports() {
		m.airportsIdx.upsert(a.CompoundID(), a.Position)
	}
	m.firsIdx = newRectIndex()
	for _, f := range data.FIRs() {
		m.firsIdx.insert(f.ICAO, f.Boundary.Rect())
	}
	// controllers re-attach to the fresh dataset on the next pass
	m.controllers = map[string]*vatsim.Controller{}
}

// processPilots replaces the pilot set with the snapshot's, keeps the
// spatial index in step and appends track points. Called with the
// write lock held.
func (m *Manager) processPilots(incoming []*vatsim.Pilot) {
	t0 := time.Now()
	seen := make(map[string]bool, len(incoming))
	for _, p := range incoming {
		seen[p.Callsign] = true
		m.pilotsIdx.upsert(p.Callsign, p.Point())
		m.pilots[p.Callsign] = p

		if err := m.store.Append(p.CID, p.Callsign, p.LogonTime, track.Point{
			Lat: p.Position.Lat,
			Lng: p.Position.Lng,
			Alt: p.Position.Alt,
			Hdg: p.Position.Hdg,
			GS:  p.Position.GS,
			TS:  p.LastUpdated.UnixMilli(),
		}); err != nil {
			logrus.Errorf("[Manager] can't store track point for %s: %s", p.Callsign, err)
		}

		countryCode, continentCode := "", ""
		if country := m.data.CountryAt(p.Point()); country != nil {
			countryCode, continentCode = country.ISO, country.Continent
		}
		m.metrics.CountPilotOnline(countryCode, continentCode)
	}
	for callsign := range m.pilots {
		if !seen[callsign] {
			m.pilotsIdx.remove(callsign)
			delete(m.pilots, callsign)
		}
	}
	m.metrics.ObserveProcessingTime("pilot", time.Since(t0))
	logrus.Debugf("[Manager] processed %d pilots, %d indexed", len(incoming), m.pilotsIdx.len())
}

// processControllers reassigns the controller set to airports and
// FIRs and returns the ICAO codes of every airport with at least one
// staffed position. Called with the write lock held.
func (m *Manager) processControllers(incoming []*vatsim.Controller) []string {
	t0 := time.Now()
	controlled := map[string]bool{}
	seen := make(map[string]bool, len(incoming))

	for _, c := range incoming {
		if c.Facility == vatsim.FacilityReject {
			continue
		}
		seen[c.Callsign] = true
		m.controllers[c.Callsign] = c

		if c.Facility == vatsim.FacilityRadar {
			m.data.AssignFIRController(c)
			m.metrics.CountControllerOnline("", "", c.Facility.String())
			continue
		}
		airport := m.data.AssignAirportController(c)
		if airport == nil {
			logrus.Debugf("[Manager] no airport for controller %s", c.Callsign)
			continue
		}
		controlled[airport.ICAO] = true

		countryCode, continentCode := "", ""
		if country := m.data.CountryAt(airport.Position); country != nil {
			countryCode, continentCode = country.ISO, country.Continent
		}
		m.metrics.CountControllerOnline(countryCode, continentCode, c.Facility.String())
	}

	for callsign, c := range m.controllers {
		if seen[callsign] {
			continue
		}
		if c.Facility == vatsim.FacilityRadar {
			m.data.RemoveFIRController(c)
		} else {
			m.data.RemoveAirportController(c)
		}
		delete(m.controllers, callsign)
	}

	m.metrics.ObserveProcessingTime("controller", time.Since(t0))
	logrus.Debugf("[Manager] processed %d controllers", len(incoming))

	out := make([]string, 0, len(controlled))
	for icao := range controlled {
		out = append(out, icao)
	}
	return out
}

// refreshWeather preloads reports for every controlled airport in one
// batch and attaches them.
func (m *Manager) refreshWeather(ctx context.Context, controlled []string) {
	if len(controlled) == 0 {
		return
	}
	if err := m.weather.Preload(ctx, controlled); err != nil {
		logrus.Errorf("[Manager] weather preload failed: %s", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, icao := range controlled {
		airport := m.data.FindAirport(icao)
		if airport == nil {
			continue
		}
		info, err := m.weather.Get(ctx, icao)
		if err != nil {
			logrus.Errorf("[Manager] weather fetch for %s failed: %s", icao, err)
			continue
		}
		airport.Weather = info
	}
}

func (m *Manager) updateStoreMetrics() {
	t0 := time.Now()
	tracks, points := m.store.Counters()
	m.metrics.SetDBCounts(tracks, points, time.Since(t0))
}
