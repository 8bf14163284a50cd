package track

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultMaxAge is how long a track file outlives its last update
// before cleanup removes it.
const DefaultMaxAge = 48 * time.Hour

// Store keeps pilot track files under a root directory, sharded by
// member id so no single directory grows unbounded:
//
//	<root>/<cid/10000>/<cid>/<cid>.<callsign>.<logon_unix>.bin
type Store struct {
	root string
}

// NewStore returns a store rooted at the given directory. The
// directory tree is created lazily on first write.
func NewStore(root string) *Store {
	return &Store{root: root}
}

func (s *Store) trackDir(cid int) string {
	return filepath.Join(s.root, fmt.Sprintf("%d", cid/10000), fmt.Sprintf("%d", cid))
}

func (s *Store) trackPath(cid int, callsign string, logon time.Time) string {
	name := fmt.Sprintf("%d.%s.%d.bin", cid, callsign, logon.Unix())
	return filepath.Join(s.trackDir(cid), name)
}

// flightsDir holds telemetry recordings, separate from the sharded
// pilot track tree.
const flightsDir = "flights"

// Flight opens the telemetry file of a flight, creating it on first
// use.
func (s *Store) Flight(id string) (*File[TelemetryPoint], error) {
	dir := filepath.Join(s.root, flightsDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create flights dir: %w", err)
	}
	return OpenFlight(filepath.Join(dir, id+".bin"), id)
}

// Append opens the track file identified by the pilot's connection
// and appends the given points.
func (s *Store) Append(cid int, callsign string, logon time.Time, points ...Point) error {
	if err := os.MkdirAll(s.trackDir(cid), 0o755); err != nil {
		return fmt.Errorf("create track dir: %w", err)
	}
	tf, err := OpenPilot(s.trackPath(cid, callsign, logon))
	if err != nil {
		return err
	}
	defer tf.Close()
	for _, p := range points {
		if err := tf.Append(p); err != nil {
			return err
		}
	}
	return nil
}

// Track returns the stored points of one pilot connection. A missing
// file yields an empty track.
func (s *Store) Track(cid int, callsign string, logon time.Time) ([]Point, error) {
	path := s.trackPath(cid, callsign, logon)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	tf, err := OpenPilot(path)
	if err != nil {
		return nil, err
	}
	defer tf.Close()
	return tf.ReadAll()
}

// Counters walks the store and returns the number of track files and
// the total number of points they hold. Unreadable files are logged
// and skipped.
func (s *Store) Counters() (tracks, points uint64) {
	s.walk(func(path string, tf *File[Point]) {
		tracks++
		points += tf.Count()
	})
	return tracks, points
}

// Cleanup removes track files whose last update is older than maxAge
// and returns how many were removed.
func (s *Store) Cleanup(maxAge time.Duration) int {
	deadline := time.Now().Add(-maxAge)
	removed := 0
	s.walk(func(path string, tf *File[Point]) {
		if tf.ModTime().Before(deadline) {
			if err := os.Remove(path); err != nil {
				logrus.Errorf("[TrackStore] can't remove expired track %s: %s", path, err)
				return
			}
			removed++
		}
	})
	return removed
}

// walk visits every readable track file under the root. Per-file and
// per-directory errors never abort the walk.
func (s *Store) walk(visit func(path string, tf *File[Point])) {
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logrus.Debugf("[TrackStore] walk error at %s: %s", path, err)
			return nil
		}
		if d.IsDir() {
			if d.Name() == flightsDir {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".bin") {
			return nil
		}
		tf, err := OpenPilot(path)
		if err != nil {
			logrus.Errorf("[TrackStore] can't open track %s: %s", path, err)
			return nil
		}
		visit(path, tf)
		tf.Close()
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		logrus.Errorf("[TrackStore] walk failed: %s", err)
	}
}
