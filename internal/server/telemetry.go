package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/viert/simwatch/internal/track"
)

type telemetryFrame struct {
	Type     string                 `json:"type"`
	FlightID string                 `json:"flight_id,omitempty"`
	Seq      uint64                 `json:"seq,omitempty"`
	Points   []track.TelemetryPoint `json:"points,omitempty"`
	ClientTS int64                  `json:"client_ts,omitempty"`
	ServerTS int64                  `json:"server_ts,omitempty"`
	Message  string                 `json:"message,omitempty"`
}

// handleTelemetry ingests a high-rate telemetry stream from a single
// flight. The client opens a flight by its id, then sends batches of
// points; every batch is acknowledged by sequence number so the
// client can drop its retry buffer. Echo frames measure round trips.
func (s *Server) handleTelemetry(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.Errorf("[Server] websocket upgrade failed: %s", err)
		return
	}
	defer conn.Close()

	var flight *track.File[track.TelemetryPoint]
	defer func() {
		if flight != nil {
			flight.Close()
		}
	}()

	reply := func(frame telemetryFrame) bool {
		if err := conn.WriteJSON(frame); err != nil {
			logrus.Debugf("[Server] telemetry write failed: %s", err)
			return false
		}
		return true
	}

	for {
		var frame telemetryFrame
		if err := conn.ReadJSON(&frame); err != nil {
			return
		}

		switch frame.Type {
		case "open":
			if _, err := uuid.Parse(frame.FlightID); err != nil {
				if !reply(telemetryFrame{Type: "error", Message: "invalid flight id"}) {
					return
				}
				continue
			}
			if flight != nil {
				flight.Close()
				flight = nil
			}
			opened, err := s.store.Flight(frame.FlightID)
			if err != nil {
				logrus.Errorf("[Server] can't open flight %s: %s", frame.FlightID, err)
				if !reply(telemetryFrame{Type: "error", Message: "can't open flight"}) {
					return
				}
				continue
			}
			flight = opened
			if !reply(telemetryFrame{Type: "opened", FlightID: frame.FlightID}) {
				return
			}

		case "points":
			if flight == nil {
				if !reply(telemetryFrame{Type: "error", Message: "no flight opened"}) {
					return
				}
				continue
			}
			failed := false
			for _, p := range frame.Points {
				if err := flight.Append(p); err != nil {
					logrus.Errorf("[Server] telemetry append to %s failed: %s", flight.Path(), err)
					failed = true
					break
				}
			}
			if failed {
				if !reply(telemetryFrame{Type: "error", Seq: frame.Seq, Message: "append failed"}) {
					return
				}
				continue
			}
			if !reply(telemetryFrame{Type: "ack", Seq: frame.Seq}) {
				return
			}

		case "echo":
			if !reply(telemetryFrame{
				Type:     "echo",
				ClientTS: frame.ClientTS,
				ServerTS: time.Now().UnixMilli(),
			}) {
				return
			}

		default:
			if !reply(telemetryFrame{Type: "error", Message: "unknown message type " + frame.Type}) {
				return
			}
		}
	}
}
