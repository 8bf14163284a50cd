// Package track persists per-flight position history in flat binary
// files: a fixed-size header followed by fixed-size entries, encoded
// in native byte order. A Store lays pilot track files out on disk in
// a sharded directory tree and handles retention.
package track

// Point is a single pilot track sample.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
	Alt int32   `json:"alt"`
	Hdg int16   `json:"hdg"`
	GS  int32   `json:"gs"`
	TS  int64   `json:"ts"`
}

// Same reports whether two points describe the same state, ignoring
// the sample timestamp. Consecutive identical samples are compacted
// on write.
func (p Point) Same(o Point) bool {
	return p.Lat == o.Lat && p.Lng == o.Lng && p.Alt == o.Alt && p.Hdg == o.Hdg && p.GS == o.GS
}

// TelemetryPoint is a single sample of the high-rate flight
// telemetry stream.
type TelemetryPoint struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	AltAmsl float64 `json:"alt_amsl"`
	AltAgl  float64 `json:"alt_agl"`
	Hdg     float64 `json:"hdg"`
	GS      float64 `json:"gs"`
	IAS     float64 `json:"ias"`
	VS      float64 `json:"vs"`
	TS      int64   `json:"ts"`
}

// Same reports whether two telemetry samples are identical apart from
// their timestamps.
func (p TelemetryPoint) Same(o TelemetryPoint) bool {
	return p.Lat == o.Lat && p.Lng == o.Lng &&
		p.AltAmsl == o.AltAmsl && p.AltAgl == o.AltAgl &&
		p.Hdg == o.Hdg && p.GS == o.GS && p.IAS == o.IAS && p.VS == o.VS
}
