package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/viert/simwatch/internal/manager"
	"github.com/viert/simwatch/internal/vatsim"
)

// UpdateType classifies a subscription event.
const (
	UpdateOnline     = "online"
	UpdateFlightplan = "flightplan"
	UpdateOffline    = "offline"
)

type subscribeFrame struct {
	Type  string `json:"type"`
	ID    string `json:"id,omitempty"`
	Query string `json:"query,omitempty"`
}

type subscriptionUpdate struct {
	Type       string        `json:"type"`
	ID         string        `json:"id"`
	UpdateType string        `json:"update_type"`
	Pilot      *vatsim.Pilot `json:"pilot"`
	Message    string        `json:"message,omitempty"`
}

// subscriptionSession pushes per-pilot lifecycle events to clients
// watching query matches rather than a viewport.
type subscriptionSession struct {
	conn    *websocket.Conn
	manager *manager.Manager

	queries map[string]*manager.PilotFilter
	prev    map[string]*vatsim.Pilot

	nextEmit time.Time
}

func (s *Server) handleSubscriptions(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.Errorf("[Server] websocket upgrade failed: %s", err)
		return
	}
	defer conn.Close()

	sess := &subscriptionSession{
		conn:    conn,
		manager: s.manager,
		queries: map[string]*manager.PilotFilter{},
		prev:    map[string]*vatsim.Pilot{},
	}
	sess.run(r.Context())
}

func (sess *subscriptionSession) run(ctx context.Context) {
	frames := make(chan subscribeFrame, 16)
	go func() {
		defer close(frames)
		for {
			var frame subscribeFrame
			if err := sess.conn.ReadJSON(&frame); err != nil {
				return
			}
			frames <- frame
		}
	}()

	ticker := time.NewTicker(sessionTick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case frame, ok := <-frames:
			if !ok {
				return
			}
			sess.handle(frame)
			sess.nextEmit = time.Now()
		case now := <-ticker.C:
			if len(sess.queries) == 0 || now.Before(sess.nextEmit) {
				continue
			}
			if err := sess.emit(); err != nil {
				logrus.Debugf("[Server] subscription session ended: %s", err)
				return
			}
			sess.nextEmit = now.Add(emitLag)
		}
	}
}

func (sess *subscriptionSession) handle(frame subscribeFrame) {
	switch frame.Type {
	case "subscribe":
		if _, busy := sess.queries[frame.ID]; busy {
			sess.sendError(frame.ID, "subscription id is already in use")
			return
		}
		compiled, err := vatsim.CompilePilotFilter(frame.Query)
		if err != nil {
			sess.sendError(frame.ID, err.Error())
			return
		}
		sess.queries[frame.ID] = compiled
	case "unsubscribe":
		delete(sess.queries, frame.ID)
	default:
		sess.sendError(frame.ID, "unknown message type "+frame.Type)
	}
}

func (sess *subscriptionSession) sendError(id, msg string) {
	err := sess.conn.WriteJSON(subscriptionUpdate{Type: "error", ID: id, Message: msg})
	if err != nil {
		logrus.Debugf("[Server] subscription error write failed: %s", err)
	}
}

// emit diffs the full pilot population against the previous tick and
// pushes one update per event per matching subscription. Offline
// events are matched against the pilot's last known state.
func (sess *subscriptionSession) emit() error {
	pilots := sess.manager.GetAllPilots(nil)

	next := make(map[string]*vatsim.Pilot, len(pilots))
	for _, p := range pilots {
		next[p.Callsign] = p

		prev, known := sess.prev[p.Callsign]
		switch {
		case !known:
			if err := sess.push(p, UpdateOnline); err != nil {
				return err
			}
		case prev.HasFlightPlanChanged(p):
			if err := sess.push(p, UpdateFlightplan); err != nil {
				return err
			}
		}
	}
	for callsign, prev := range sess.prev {
		if _, ok := next[callsign]; !ok {
			if err := sess.push(prev, UpdateOffline); err != nil {
				return err
			}
		}
	}
	sess.prev = next
	return nil
}

func (sess *subscriptionSession) push(p *vatsim.Pilot, updateType string) error {
	for id, query := range sess.queries {
		if !query.Evaluate(p) {
			continue
		}
		err := sess.conn.WriteJSON(subscriptionUpdate{
			Type:       "update",
			ID:         id,
			UpdateType: updateType,
			Pilot:      p,
		})
		if err != nil {
			return err
		}
	}
	return nil
}
