package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/socmirror/socmirror/internal/engine"
	"github.com/socmirror/socmirror/internal/types"
	"github.com/socmirror/socmirror/internal/ui"
)

// Server exposes local status endpoints for the running mirror: health,
// engine state, captured logs, and view switching.
type Server struct {
	engine    *engine.Engine
	logger    zerolog.Logger
	port      string
	logBuffer *ui.LogBuffer
	startTime time.Time

	versionMu sync.RWMutex
	version   string
	commit    string
	buildDate string
}

// NewServer creates a new status server
func NewServer(eng *engine.Engine, logger zerolog.Logger, port string) *Server {
	return &Server{
		engine:    eng,
		logger:    logger.With().Str("component", "api").Logger(),
		port:      port,
		startTime: time.Now(),
	}
}

// SetLogBuffer sets the log buffer served by /api/logs
func (s *Server) SetLogBuffer(lb *ui.LogBuffer) {
	s.logBuffer = lb
}

// SetVersion sets the version information
func (s *Server) SetVersion(version, commit, buildDate string) {
	s.versionMu.Lock()
	defer s.versionMu.Unlock()
	s.version = version
	s.commit = commit
	s.buildDate = buildDate
}

// Start starts the HTTP server
func (s *Server) Start() error {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/status", s.handleStatus)
	mux.HandleFunc("/api/logs", s.handleLogs)
	mux.HandleFunc("/api/view", s.handleView)

	addr := ":" + s.port
	s.logger.Info().
		Str("address", addr).
		Msg("Starting status server")

	return http.ListenAndServe(addr, mux)
}

// handleHealth returns service health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// handleStatus returns the engine's synchronization state
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.versionMu.RLock()
	version := s.version
	commit := s.commit
	buildDate := s.buildDate
	s.versionMu.RUnlock()

	health := s.engine.ConnHealth()
	dashRefresh, chartCount, dashErr := s.engine.Dashboard().Stats()
	alertReload, alertRows, alertErr := s.engine.Alerts().Stats()
	caseReload, caseRows, caseErr := s.engine.Cases().Stats()

	resp := map[string]interface{}{
		"uptime_seconds": int(time.Since(s.startTime).Seconds()),
		"version":        version,
		"commit":         commit,
		"build_date":     buildDate,
		"view":           s.engine.CurrentView(),
		"connection": map[string]interface{}{
			"state":           s.engine.ConnState(),
			"connected_since": health.ConnectedSince,
			"last_frame":      health.LastFrame,
			"frames":          health.FrameCount,
			"malformed":       health.MalformedCount,
			"reconnects":      health.ReconnectCount,
			"last_error":      health.LastError,
		},
		"dashboard": map[string]interface{}{
			"last_refresh": dashRefresh,
			"charts":       chartCount,
			"last_error":   dashErr,
		},
		"alerts": map[string]interface{}{
			"last_reload": alertReload,
			"rows":        alertRows,
			"last_error":  alertErr,
		},
		"cases": map[string]interface{}{
			"last_reload": caseReload,
			"rows":        caseRows,
			"last_error":  caseErr,
		},
		"toasts": s.engine.Toasts().Active(),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// handleLogs returns recent captured log entries
func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	if s.logBuffer == nil {
		http.Error(w, "log buffer not configured", http.StatusServiceUnavailable)
		return
	}

	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.logBuffer.GetRecentEntries(limit))
}

// handleView reports or switches the engine's active view. Switching
// drives the router's conditional list reloads on subsequent events.
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]types.View{"view": s.engine.CurrentView()})

	case http.MethodPost:
		var body struct {
			View types.View `json:"view"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid body", http.StatusBadRequest)
			return
		}
		switch body.View {
		case types.ViewDashboard, types.ViewAlerts, types.ViewCases, types.ViewCaseDetail, types.ViewOther:
		default:
			http.Error(w, "unknown view", http.StatusBadRequest)
			return
		}
		s.engine.SetView(body.View)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]types.View{"view": body.View})

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}
