package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/viert/simwatch/internal/fixed"
	"github.com/viert/simwatch/internal/geo"
	"github.com/viert/simwatch/internal/manager"
	"github.com/viert/simwatch/internal/vatsim"
)

const (
	// sessionTick is the reaction latency of a session loop, emitLag
	// the pause between consecutive map updates to one client.
	sessionTick = 50 * time.Millisecond
	emitLag     = 5 * time.Second

	// below minZoom the whole world is sent instead of the viewport
	minZoom = 3.0
)

type viewport struct {
	SouthWest geo.Point `json:"sw"`
	NorthEast geo.Point `json:"ne"`
	Zoom      float64   `json:"zoom"`
}

type clientFrame struct {
	Type     string    `json:"type"`
	Filter   string    `json:"filter,omitempty"`
	Bounds   *viewport `json:"bounds,omitempty"`
	ShowWx   bool      `json:"show_wx,omitempty"`
	Callsign string    `json:"callsign,omitempty"`
}

type serverFrame struct {
	Type     string           `json:"type"`
	Pilots   []*vatsim.Pilot  `json:"pilots,omitempty"`
	Airports []*fixed.Airport `json:"airports,omitempty"`
	FIRs     []*fixed.FIR     `json:"firs,omitempty"`
	IDs      []string         `json:"ids,omitempty"`
	Message  string           `json:"message,omitempty"`
}

// readFrames pumps client messages into a channel until the
// connection dies. Closing the channel is the termination signal for
// the session loop.
func readFrames(conn *websocket.Conn) <-chan clientFrame {
	frames := make(chan clientFrame, 16)
	go func() {
		defer close(frames)
		for {
			var frame clientFrame
			if err := conn.ReadJSON(&frame); err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					logrus.Debugf("[Server] websocket read ended: %s", err)
				}
				return
			}
			frames <- frame
		}
	}()
	return frames
}

// updatesSession streams viewport deltas to one map client.
type updatesSession struct {
	conn       *websocket.Conn
	manager    *manager.Manager
	multiplier float64

	filter     *manager.PilotFilter
	bounds     *viewport
	showWx     bool
	subscribed map[string]bool

	prevPilots   map[string]*vatsim.Pilot
	prevAirports map[string]*fixed.Airport
	prevFIRs     map[string]*fixed.FIR

	nextEmit time.Time
}

func (s *Server) handleUpdates(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.Errorf("[Server] websocket upgrade failed: %s", err)
		return
	}
	defer conn.Close()

	sess := &updatesSession{
		conn:         conn,
		manager:      s.manager,
		multiplier:   s.cfg.Map.WinMultiplier,
		subscribed:   map[string]bool{},
		prevPilots:   map[string]*vatsim.Pilot{},
		prevAirports: map[string]*fixed.Airport{},
		prevFIRs:     map[string]*fixed.FIR{},
	}
	sess.run(r.Context())
}

func (sess *updatesSession) run(ctx context.Context) {
	frames := readFrames(sess.conn)
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
			// client interaction bypasses the emit lag
			sess.nextEmit = time.Now()
		case now := <-ticker.C:
			if sess.bounds == nil || now.Before(sess.nextEmit) {
				continue
			}
			if err := sess.emit(); err != nil {
				logrus.Debugf("[Server] update session ended: %s", err)
				return
			}
			sess.nextEmit = now.Add(emitLag)
		}
	}
}

func (sess *updatesSession) handle(frame clientFrame) {
	switch frame.Type {
	case "filter":
		sess.filter = nil
		if frame.Filter == "" {
			return
		}
		compiled, err := vatsim.CompilePilotFilter(frame.Filter)
		if err != nil {
			sess.send(serverFrame{Type: "error", Message: err.Error()})
			return
		}
		sess.filter = compiled
	case "bounds":
		sess.bounds = frame.Bounds
	case "show_wx":
		sess.showWx = frame.ShowWx
	case "subscribe":
		sess.subscribed[frame.Callsign] = true
	case "unsubscribe":
		delete(sess.subscribed, frame.Callsign)
	default:
		sess.send(serverFrame{Type: "error", Message: "unknown message type " + frame.Type})
	}
}

func (sess *updatesSession) send(frame serverFrame) error {
	return sess.conn.WriteJSON(frame)
}

// view fetches the objects the session currently looks at.
func (sess *updatesSession) view() ([]*vatsim.Pilot, []*fixed.Airport, []*fixed.FIR) {
	if sess.bounds.Zoom < minZoom {
		pilots := sess.manager.GetAllPilots(sess.filter)
		if len(sess.subscribed) > 0 {
			present := make(map[string]bool, len(pilots))
			for _, p := range pilots {
				present[p.Callsign] = true
			}
			for callsign := range sess.subscribed {
				if !present[callsign] {
					if p := sess.manager.GetPilotByCallsign(callsign); p != nil {
						pilots = append(pilots, p)
					}
				}
			}
		}
		return pilots, sess.manager.GetAllAirports(sess.showWx), sess.manager.GetAllFIRs()
	}

	rect := geo.Rect{
		SouthWest: sess.bounds.SouthWest.Clamped(),
		NorthEast: sess.bounds.NorthEast.Clamped(),
	}.Scaled(sess.multiplier)
	return sess.manager.GetPilots(rect, sess.filter, sess.subscribed),
		sess.manager.GetAirports(rect, sess.showWx),
		sess.manager.GetFIRs(rect)
}

// emit sends the difference between the current view and what the
// client already has: set batches for new and changed objects, delete
// batches for the vanished ones.
func (sess *updatesSession) emit() error {
	pilots, airports, firs := sess.view()

	setPilots := []*vatsim.Pilot{}
	nextPilots := make(map[string]*vatsim.Pilot, len(pilots))
	for _, p := range pilots {
		nextPilots[p.Callsign] = p
		if prev, ok := sess.prevPilots[p.Callsign]; !ok || !prev.Same(p) {
			setPilots = append(setPilots, p)
		}
	}
	delPilots := vanishedKeys(sess.prevPilots, nextPilots)
	sess.prevPilots = nextPilots

	setAirports := []*fixed.Airport{}
	nextAirports := make(map[string]*fixed.Airport, len(airports))
	for _, a := range airports {
		id := a.CompoundID()
		nextAirports[id] = a
		if prev, ok := sess.prevAirports[id]; !ok || !prev.Same(a) {
			setAirports = append(setAirports, a)
		}
	}
	delAirports := vanishedKeys(sess.prevAirports, nextAirports)
	sess.prevAirports = nextAirports

	setFIRs := []*fixed.FIR{}
	nextFIRs := make(map[string]*fixed.FIR, len(firs))
	for _, f := range firs {
		nextFIRs[f.ICAO] = f
		if prev, ok := sess.prevFIRs[f.ICAO]; !ok || !prev.Same(f) {
			setFIRs = append(setFIRs, f)
		}
	}
	delFIRs := vanishedKeys(sess.prevFIRs, nextFIRs)
	sess.prevFIRs = nextFIRs

	batches := []serverFrame{
		{Type: "set_pilots", Pilots: setPilots},
		{Type: "delete_pilots", IDs: delPilots},
		{Type: "set_airports", Airports: setAirports},
		{Type: "delete_airports", IDs: delAirports},
		{Type: "set_firs", FIRs: setFIRs},
		{Type: "delete_firs", IDs: delFIRs},
	}
	for _, frame := range batches {
		if len(frame.Pilots) == 0 && len(frame.Airports) == 0 &&
			len(frame.FIRs) == 0 && len(frame.IDs) == 0 {
			continue
		}
		if err := sess.send(frame); err != nil {
			return err
		}
	}
	return nil
}

func vanishedKeys[V any](prev, next map[string]V) []string {
	out := []string{}
	for key := range prev {
		if _, ok := next[key]; !ok {
			out = append(out, key)
		}
	}
	return out
}
