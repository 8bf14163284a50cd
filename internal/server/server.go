// Package server exposes the REST and websocket surface: pilot and
// airport lookups, live map update streams, pilot subscriptions and
// flight telemetry ingestion.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/viert/simwatch/internal/config"
	"github.com/viert/simwatch/internal/manager"
	"github.com/viert/simwatch/internal/metrics"
	"github.com/viert/simwatch/internal/track"
	"github.com/viert/simwatch/internal/vatsim"
)

// BuildInfo identifies the running binary.
type BuildInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Server carries the HTTP surface state.
type Server struct {
	cfg      *config.Config
	manager  *manager.Manager
	store    *track.Store
	metrics  *metrics.Metrics
	info     BuildInfo
	upgrader websocket.Upgrader
}

// New wires a server.
func New(cfg *config.Config, m *manager.Manager, store *track.Store, mtr *metrics.Metrics, info BuildInfo) *Server {
	return &Server{
		cfg:     cfg,
		manager: m,
		store:   store,
		metrics: mtr,
		info:    info,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// the map client is served from anywhere
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Router builds the route table.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/updates", s.handleUpdates)
		r.Get("/subscriptions", s.handleSubscriptions)
		r.Get("/telemetry", s.handleTelemetry)
		r.Get("/pilots", s.handlePilotList)
		r.Get("/pilots/{callsign}", s.handlePilot)
		r.Get("/airports/{code}", s.handleAirport)
		r.Get("/check_query", s.handleCheckQuery)
		r.Get("/build_info", s.handleBuildInfo)
		r.Get("/metrics", s.handleMetricsText)
	})
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	return r
}

// Run serves until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.ListenAddr(),
		Handler: s.Router(),
	}
	errCh := make(chan error, 1)
	go func() {
		logrus.Infof("[Server] listening on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.Errorf("[Server] response write failed: %s", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) handlePilotList(w http.ResponseWriter, r *http.Request) {
	var filter *manager.PilotFilter
	if query := r.URL.Query().Get("query"); query != "" {
		compiled, err := vatsim.CompilePilotFilter(query)
		if err != nil {
			writeError(w, http.StatusPreconditionFailed, err.Error())
			return
		}
		filter = compiled
	}
	writeJSON(w, http.StatusOK, s.manager.GetAllPilots(filter))
}

type pilotResponse struct {
	*vatsim.Pilot
	TrackPoints []track.Point `json:"track_points"`
}

func (s *Server) handlePilot(w http.ResponseWriter, r *http.Request) {
	if !s.manager.Ready() {
		writeError(w, http.StatusServiceUnavailable, "data is not loaded yet")
		return
	}
	callsign := chi.URLParam(r, "callsign")
	pilot := s.manager.GetPilotByCallsign(callsign)
	if pilot == nil {
		writeError(w, http.StatusNotFound, "pilot not found")
		return
	}
	points, err := s.manager.GetPilotTrack(callsign)
	if err != nil {
		logrus.Errorf("[Server] track read for %s failed: %s", callsign, err)
		writeError(w, http.StatusServiceUnavailable, "track storage unavailable")
		return
	}
	writeJSON(w, http.StatusOK, pilotResponse{Pilot: pilot, TrackPoints: points})
}

func (s *Server) handleAirport(w http.ResponseWriter, r *http.Request) {
	if !s.manager.Ready() {
		writeError(w, http.StatusServiceUnavailable, "data is not loaded yet")
		return
	}
	airport := s.manager.FindAirport(chi.URLParam(r, "code"))
	if airport == nil {
		writeError(w, http.StatusNotFound, "airport not found")
		return
	}
	writeJSON(w, http.StatusOK, airport)
}

type checkQueryResponse struct {
	Valid        bool   `json:"valid"`
	ErrorMessage string `json:"error_message,omitempty"`
}

func (s *Server) handleCheckQuery(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	resp := checkQueryResponse{Valid: true}
	if _, err := vatsim.CompilePilotFilter(query); err != nil {
		resp.Valid = false
		resp.ErrorMessage = err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleBuildInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.info)
}

// handleMetricsText serves the pre-rendered text exposition for
// clients that can't scrape /metrics directly.
func (s *Server) handleMetricsText(w http.ResponseWriter, r *http.Request) {
	text, err := s.metrics.RenderText()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(text)); err != nil {
		logrus.Errorf("[Server] response write failed: %s", err)
	}
}
