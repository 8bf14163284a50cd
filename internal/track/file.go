package track

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

const (
	pilotMagic  uint64 = 0x119F3E5F006A42C8
	flightMagic uint64 = 0xAA99AA881011889C

	formatVersion uint64 = 1

	// DefaultFlightUUID marks telemetry files created before the
	// client supplied a flight identifier.
	DefaultFlightUUID = "47cb897f-ada4-4a94-b9c3-ad8e4dd1f73f"

	uuidLen = 36
)

var (
	// ErrIntegrity is returned when a file's magic number or its
	// length does not match the header.
	ErrIntegrity = errors.New("track file integrity check failed")
	// ErrIndex is returned when a read addresses an entry past the
	// end of the file.
	ErrIndex = errors.New("track entry index out of range")
)

// fileHeader is the on-disk header common to all track files.
// Telemetry files append a 36-byte flight UUID right after it.
type fileHeader struct {
	Magic   uint64
	Version uint64
	TS      uint64
	Count   uint64
}

// File is an append-oriented track file holding entries of type E.
// Appends of an entry equal to the last two stored ones overwrite the
// last entry in place instead of growing the file, so a parked
// aircraft occupies two points however long it sits.
type File[E interface{ Same(E) bool }] struct {
	f          *os.File
	path       string
	hdr        fileHeader
	uuid       string
	headerSize int64
	entrySize  int64
}

// OpenPilot opens or creates a pilot track file.
func OpenPilot(path string) (*File[Point], error) {
	return open[Point](path, pilotMagic, "")
}

// OpenFlight opens or creates a flight telemetry file. The uuid is
// stored in the header on creation; pass an empty string to use
// DefaultFlightUUID.
func OpenFlight(path, uuid string) (*File[TelemetryPoint], error) {
	if uuid == "" {
		uuid = DefaultFlightUUID
	}
	if len(uuid) != uuidLen {
		return nil, fmt.Errorf("flight uuid must be %d characters, got %d", uuidLen, len(uuid))
	}
	return open[TelemetryPoint](path, flightMagic, uuid)
}

func open[E interface{ Same(E) bool }](path string, magic uint64, uuid string) (*File[E], error) {
	var zero E
	tf := &File[E]{
		path:      path,
		uuid:      uuid,
		entrySize: int64(binary.Size(zero)),
	}
	tf.headerSize = int64(binary.Size(fileHeader{}))
	if uuid != "" {
		tf.headerSize += uuidLen
	}

	f, err := os.OpenFile(path, os.O_RDWR, 0o644)
	if errors.Is(err, os.ErrNotExist) {
		return tf.create(magic)
	}
	if err != nil {
		return nil, fmt.Errorf("open track file: %w", err)
	}
	tf.f = f

	if err := binary.Read(f, binary.NativeEndian, &tf.hdr); err != nil {
		f.Close()
		return nil, fmt.Errorf("read track header: %w", err)
	}
	if uuid != "" {
		var raw [uuidLen]byte
		if _, err := io.ReadFull(f, raw[:]); err != nil {
			f.Close()
			return nil, fmt.Errorf("read track uuid: %w", err)
		}
		tf.uuid = string(raw[:])
	}
	if tf.hdr.Magic != magic {
		f.Close()
		return nil, fmt.Errorf("%w: bad magic %#x in %s", ErrIntegrity, tf.hdr.Magic, path)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat track file: %w", err)
	}
	want := tf.headerSize + int64(tf.hdr.Count)*tf.entrySize
	if info.Size() != want {
		f.Close()
		return nil, fmt.Errorf("%w: %s is %d bytes, header promises %d",
			ErrIntegrity, path, info.Size(), want)
	}
	return tf, nil
}

func (tf *File[E]) create(magic uint64) (*File[E], error) {
	f, err := os.OpenFile(tf.path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create track file: %w", err)
	}
	tf.f = f
	tf.hdr = fileHeader{
		Magic:   magic,
		Version: formatVersion,
		TS:      uint64(time.Now().UnixMilli()),
	}
	if err := tf.writeHeader(); err != nil {
		f.Close()
		return nil, err
	}
	return tf, nil
}

func (tf *File[E]) writeHeader() error {
	if _, err := tf.f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("seek track header: %w", err)
	}
	if err := binary.Write(tf.f, binary.NativeEndian, &tf.hdr); err != nil {
		return fmt.Errorf("write track header: %w", err)
	}
	if tf.uuid != "" {
		if _, err := tf.f.Write([]byte(tf.uuid)); err != nil {
			return fmt.Errorf("write track uuid: %w", err)
		}
	}
	return nil
}

// Count returns the number of stored entries.
func (tf *File[E]) Count() uint64 { return tf.hdr.Count }

// UUID returns the flight identifier of a telemetry file, empty for
// pilot files.
func (tf *File[E]) UUID() string { return tf.uuid }

// ModTime returns the last-update timestamp from the header.
func (tf *File[E]) ModTime() time.Time {
	return time.UnixMilli(int64(tf.hdr.TS))
}

// Path returns the location of the file on disk.
func (tf *File[E]) Path() string { return tf.path }

// Append stores an entry. When the entry repeats the last two stored
// entries it overwrites the final one in place and the entry count
// stays unchanged; the header timestamp is refreshed either way.
func (tf *File[E]) Append(e E) error {
	overwrite := false
	if tf.hdr.Count >= 2 {
		tail, err := tf.ReadMultipleAt(tf.hdr.Count-2, 2)
		if err != nil {
			return err
		}
		overwrite = tail[1].Same(tail[0]) && tail[1].Same(e)
	}

	offset := tf.headerSize + int64(tf.hdr.Count)*tf.entrySize
	if overwrite {
		offset -= tf.entrySize
	}
	if _, err := tf.f.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("seek track entry: %w", err)
	}
	if err := binary.Write(tf.f, binary.NativeEndian, &e); err != nil {
		return fmt.Errorf("write track entry: %w", err)
	}
	if !overwrite {
		tf.hdr.Count++
	}
	tf.hdr.TS = uint64(time.Now().UnixMilli())
	return tf.writeHeader()
}

// ReadAt returns the entry at the given index.
func (tf *File[E]) ReadAt(idx uint64) (E, error) {
	var e E
	if idx >= tf.hdr.Count {
		return e, fmt.Errorf("%w: %d of %d", ErrIndex, idx, tf.hdr.Count)
	}
	offset := tf.headerSize + int64(idx)*tf.entrySize
	if _, err := tf.f.Seek(offset, io.SeekStart); err != nil {
		return e, fmt.Errorf("seek track entry: %w", err)
	}
	if err := binary.Read(tf.f, binary.NativeEndian, &e); err != nil {
		return e, fmt.Errorf("read track entry: %w", err)
	}
	return e, nil
}

// ReadMultipleAt returns up to count entries starting at idx. The
// range is clipped to the end of the file; a fully out-of-range start
// yields an empty slice.
func (tf *File[E]) ReadMultipleAt(idx, count uint64) ([]E, error) {
	if idx >= tf.hdr.Count {
		return nil, nil
	}
	if idx+count > tf.hdr.Count {
		count = tf.hdr.Count - idx
	}
	offset := tf.headerSize + int64(idx)*tf.entrySize
	if _, err := tf.f.Seek(offset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek track entries: %w", err)
	}
	out := make([]E, count)
	if err := binary.Read(tf.f, binary.NativeEndian, out); err != nil {
		return nil, fmt.Errorf("read track entries: %w", err)
	}
	return out, nil
}

// ReadAll returns every stored entry.
func (tf *File[E]) ReadAll() ([]E, error) {
	return tf.ReadMultipleAt(0, tf.hdr.Count)
}

// Destroy closes and removes the file.
func (tf *File[E]) Destroy() error {
	tf.f.Close()
	return os.Remove(tf.path)
}

// Close releases the underlying file handle.
func (tf *File[E]) Close() error {
	return tf.f.Close()
}
