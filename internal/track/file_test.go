package track

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pt(lat, lng float64, alt int32, ts int64) Point {
	return Point{Lat: lat, Lng: lng, Alt: alt, Hdg: 90, GS: 420, TS: ts}
}

func TestOpenCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "track.bin")
	tf, err := OpenPilot(path)
	require.NoError(t, err)
	assert.EqualValues(t, 0, tf.Count())
	require.NoError(t, tf.Close())

	// reopen must pass the integrity check
	tf, err = OpenPilot(path)
	require.NoError(t, err)
	assert.EqualValues(t, 0, tf.Count())
	tf.Close()
}

func TestAppendAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "track.bin")
	tf, err := OpenPilot(path)
	require.NoError(t, err)
	defer tf.Close()

	points := []Point{
		pt(51.47, -0.45, 80, 1000),
		pt(51.48, -0.44, 1200, 2000),
		pt(51.49, -0.43, 2400, 3000),
	}
	for _, p := range points {
		require.NoError(t, tf.Append(p))
	}
	assert.EqualValues(t, 3, tf.Count())

	got, err := tf.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, points, got)

	one, err := tf.ReadAt(1)
	require.NoError(t, err)
	assert.Equal(t, points[1], one)

	_, err = tf.ReadAt(3)
	require.ErrorIs(t, err, ErrIndex)
}

func TestAppendPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "track.bin")
	tf, err := OpenPilot(path)
	require.NoError(t, err)
	require.NoError(t, tf.Append(pt(10, 20, 3000, 1)))
	require.NoError(t, tf.Close())

	tf, err = OpenPilot(path)
	require.NoError(t, err)
	defer tf.Close()
	assert.EqualValues(t, 1, tf.Count())
	got, err := tf.ReadAt(0)
	require.NoError(t, err)
	assert.Equal(t, pt(10, 20, 3000, 1), got)
}

func TestAppendCompactsStationarySamples(t *testing.T) {
	path := filepath.Join(t.TempDir(), "track.bin")
	tf, err := OpenPilot(path)
	require.NoError(t, err)
	defer tf.Close()

	// same state at three timestamps: the third append overwrites
	// the second entry instead of growing the file
	require.NoError(t, tf.Append(pt(10, 20, 0, 1000)))
	require.NoError(t, tf.Append(pt(10, 20, 0, 2000)))
	require.NoError(t, tf.Append(pt(10, 20, 0, 3000)))

	assert.EqualValues(t, 2, tf.Count())
	got, err := tf.ReadAll()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.EqualValues(t, 1000, got[0].TS)
	assert.EqualValues(t, 3000, got[1].TS)

	// movement resumes appending
	require.NoError(t, tf.Append(pt(10.1, 20, 0, 4000)))
	assert.EqualValues(t, 3, tf.Count())
}

func TestAppendNoCompactionWithoutTwoEqualPredecessors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "track.bin")
	tf, err := OpenPilot(path)
	require.NoError(t, err)
	defer tf.Close()

	require.NoError(t, tf.Append(pt(10, 20, 0, 1000)))
	require.NoError(t, tf.Append(pt(11, 20, 0, 2000)))
	require.NoError(t, tf.Append(pt(11, 20, 0, 3000)))
	assert.EqualValues(t, 3, tf.Count())
}

func TestReadMultipleAtClipsRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "track.bin")
	tf, err := OpenPilot(path)
	require.NoError(t, err)
	defer tf.Close()

	for i := int64(0); i < 5; i++ {
		require.NoError(t, tf.Append(pt(float64(i), 0, int32(i), i)))
	}

	got, err := tf.ReadMultipleAt(3, 10)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = tf.ReadMultipleAt(5, 1)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestOpenRejectsTruncatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "track.bin")
	tf, err := OpenPilot(path)
	require.NoError(t, err)
	require.NoError(t, tf.Append(pt(1, 2, 3, 4)))
	require.NoError(t, tf.Close())

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.NoError(t, os.Truncate(path, info.Size()-4))

	_, err = OpenPilot(path)
	require.ErrorIs(t, err, ErrIntegrity)
}

func TestOpenRejectsForeignMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "track.bin")
	tf, err := OpenFlight(path, "")
	require.NoError(t, err)
	require.NoError(t, tf.Close())

	_, err = OpenPilot(path)
	require.ErrorIs(t, err, ErrIntegrity)
}

func TestFlightFileUUID(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "default.bin")
	tf, err := OpenFlight(path, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultFlightUUID, tf.UUID())
	require.NoError(t, tf.Close())

	id := "9b2f6f1a-0a64-4c8e-97be-2f83c52f0f11"
	path = filepath.Join(dir, "flight.bin")
	tf, err = OpenFlight(path, id)
	require.NoError(t, err)
	require.NoError(t, tf.Append(TelemetryPoint{Lat: 1, Lng: 2, TS: 1}))
	require.NoError(t, tf.Close())

	tf, err = OpenFlight(path, id)
	require.NoError(t, err)
	defer tf.Close()
	assert.Equal(t, id, tf.UUID())
	assert.EqualValues(t, 1, tf.Count())
}

func TestDestroy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "track.bin")
	tf, err := OpenPilot(path)
	require.NoError(t, err)
	require.NoError(t, tf.Destroy())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
