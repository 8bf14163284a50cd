package weather

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultTTL is how long a cached report stays fresh.
	DefaultTTL = 30 * time.Minute
	// initialBlacklistPeriod is the first back-off of a station
	// that returned no report. It doubles on every further miss.
	initialBlacklistPeriod = time.Hour
)

type blacklistEntry struct {
	setAt    time.Time
	duration time.Duration
}

func (e *blacklistEntry) expired() bool {
	return time.Now().After(e.setAt.Add(e.duration))
}

func (e *blacklistEntry) double() {
	e.setAt = time.Now()
	e.duration *= 2
}

// Service is the METAR cache. All methods are safe for concurrent
// use; the cache and the blacklist carry their own locks so a slow
// preload never blocks reads.
type Service struct {
	api *API
	ttl time.Duration

	cacheMu sync.RWMutex
	cache   map[string]*Info

	blMu      sync.RWMutex
	blacklist map[string]*blacklistEntry
}

// NewService returns a cache on top of the given API client. A zero
// ttl selects DefaultTTL.
func NewService(api *API, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		api:       api,
		ttl:       ttl,
		cache:     map[string]*Info{},
		blacklist: map[string]*blacklistEntry{},
	}
}

func (s *Service) fresh(info *Info) bool {
	return time.Since(info.TS) < s.ttl
}

func (s *Service) cached(icao string) *Info {
	s.cacheMu.RLock()
	defer s.cacheMu.RUnlock()
	if info, ok := s.cache[icao]; ok && s.fresh(info) {
		return info
	}
	return nil
}

func (s *Service) blacklisted(icao string) bool {
	s.blMu.RLock()
	defer s.blMu.RUnlock()
	entry, ok := s.blacklist[icao]
	return ok && !entry.expired()
}

// penalize records a station that returned no report, doubling its
// back-off if it is already known.
func (s *Service) penalize(icao string) {
	s.blMu.Lock()
	defer s.blMu.Unlock()
	if entry, ok := s.blacklist[icao]; ok {
		entry.double()
		return
	}
	s.blacklist[icao] = &blacklistEntry{
		setAt:    time.Now(),
		duration: initialBlacklistPeriod,
	}
}

func (s *Service) store(metars []Metar) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	for i := range metars {
		s.cache[metars[i].IcaoID] = metars[i].info()
	}
}

// Get returns the report for one station, from the cache when fresh.
// A station with no report comes back nil without an error and gets
// blacklisted.
func (s *Service) Get(ctx context.Context, icao string) (*Info, error) {
	if info := s.cached(icao); info != nil {
		return info, nil
	}
	if s.blacklisted(icao) {
		return nil, nil
	}
	metars, err := s.api.FetchMetars(ctx, []string{icao})
	if err != nil {
		return nil, err
	}
	if len(metars) == 0 {
		s.penalize(icao)
		return nil, nil
	}
	s.store(metars)
	return metars[0].info(), nil
}

// Preload fetches reports for every station that is neither fresh in
// the cache nor blacklisted, in a single batched call. Stations
// missing from a batch response are not penalised: a batch gives no
// per-station signal.
func (s *Service) Preload(ctx context.Context, icaos []string) error {
	var missing []string
	for _, icao := range icaos {
		if s.cached(icao) != nil || s.blacklisted(icao) {
			continue
		}
		missing = append(missing, icao)
	}
	if len(missing) == 0 {
		return nil
	}
	metars, err := s.api.FetchMetars(ctx, missing)
	if err != nil {
		return err
	}
	s.store(metars)
	logrus.Debugf("[Weather] preloaded %d of %d stations", len(metars), len(missing))
	return nil
}

// expiredKeys returns the stations whose cached reports are stale.
func (s *Service) expiredKeys() []string {
	s.cacheMu.RLock()
	defer s.cacheMu.RUnlock()
	var keys []string
	for icao, info := range s.cache {
		if !s.fresh(info) {
			keys = append(keys, icao)
		}
	}
	return keys
}

// Run refreshes stale cache entries every period until the context is
// cancelled.
func (s *Service) Run(ctx context.Context, period time.Duration) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stale := s.expiredKeys()
			if len(stale) == 0 {
				continue
			}
			if err := s.Preload(ctx, stale); err != nil {
				logrus.Errorf("[Weather] refresh failed: %s", err)
			}
		}
	}
}

// RequestCount reports how many API calls the service has issued.
func (s *Service) RequestCount() uint64 {
	return s.api.RequestCount()
}
