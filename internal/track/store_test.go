package track

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreLayout(t *testing.T) {
	root := t.TempDir()
	s := NewStore(root)

	logon := time.Unix(1700000000, 0)
	require.NoError(t, s.Append(1234567, "BAW123", logon, pt(1, 2, 3, 4)))

	want := filepath.Join(root, "123", "1234567", "1234567.BAW123.1700000000.bin")
	_, err := os.Stat(want)
	assert.NoError(t, err)
}

func TestStoreRoundTrip(t *testing.T) {
	s := NewStore(t.TempDir())
	logon := time.Unix(1700000000, 0)

	points := []Point{pt(1, 2, 100, 1), pt(1.1, 2, 200, 2)}
	require.NoError(t, s.Append(42, "DLH9K", logon, points...))

	got, err := s.Track(42, "DLH9K", logon)
	require.NoError(t, err)
	assert.Equal(t, points, got)

	// unknown connection yields an empty track
	got, err = s.Track(42, "DLH9K", logon.Add(time.Hour))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStoreCounters(t *testing.T) {
	s := NewStore(t.TempDir())
	logon := time.Unix(1700000000, 0)

	require.NoError(t, s.Append(1, "A", logon, pt(1, 1, 0, 1), pt(2, 2, 0, 2)))
	require.NoError(t, s.Append(20001, "B", logon, pt(3, 3, 0, 3)))

	tracks, points := s.Counters()
	assert.EqualValues(t, 2, tracks)
	assert.EqualValues(t, 3, points)
}

func TestStoreCleanup(t *testing.T) {
	s := NewStore(t.TempDir())
	logon := time.Unix(1700000000, 0)
	require.NoError(t, s.Append(1, "OLD", logon, pt(1, 1, 0, 1)))
	require.NoError(t, s.Append(2, "NEW", logon, pt(2, 2, 0, 2)))

	// nothing is stale yet
	assert.Equal(t, 0, s.Cleanup(DefaultMaxAge))

	// everything written just now is older than a zero retention
	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, 2, s.Cleanup(0))

	tracks, _ := s.Counters()
	assert.EqualValues(t, 0, tracks)
}
