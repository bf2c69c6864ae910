// Package dashboard keeps the chart widgets and stat tiles synchronized
// with the backend's dashboard aggregate. Charts are lazily initialized
// on the first snapshot and mutated in place afterwards, so rendering
// contexts are never destroyed and recreated on a tick.
package dashboard

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/socmirror/socmirror/internal/gateway"
	"github.com/socmirror/socmirror/internal/types"
)

// ChartKind identifies one widget slot. Each slot holds at most one
// live chart handle at any time.
type ChartKind string

const (
	ChartTimeline  ChartKind = "timeline"
	ChartSeverity  ChartKind = "severity"
	ChartIncidents ChartKind = "incidents"
	ChartThreat    ChartKind = "threat"
)

// ChartData is the label/series payload handed to a chart on every
// refresh. Points is only populated for the threat scatter.
type ChartData struct {
	Labels []string
	Values []float64
	Points []types.ThreatPoint
}

// Chart is one live chart-library handle. Update replaces its label and
// data arrays in place and requests a redraw.
type Chart interface {
	Update(d ChartData)
}

// Factory is supplied by the view layer. HasTarget reports whether the
// current page contains the dashboard's root render target; NewChart
// constructs the live handle for a widget bound to its first data.
type Factory interface {
	HasTarget() bool
	NewChart(kind ChartKind, d ChartData) Chart
}

// TileView renders the scalar stat tiles above the charts.
type TileView interface {
	SetTiles(totalAlerts, lastScanSecondsAgo int64, severityPercent map[types.Severity]float64)
}

// State owns the set of live chart handles and drives their refresh
// cycle. Concurrent refreshes (periodic timer vs push-triggered) are
// unordered; whichever snapshot applies last wins, and staleness is
// bounded by the next periodic tick.
type State struct {
	gw      *gateway.Gateway
	factory Factory
	tiles   TileView
	logger  zerolog.Logger

	mu          sync.Mutex
	charts      map[ChartKind]Chart
	lastRefresh time.Time
	lastError   string
}

// NewState creates the dashboard state
func NewState(gw *gateway.Gateway, factory Factory, tiles TileView, logger zerolog.Logger) *State {
	return &State{
		gw:      gw,
		factory: factory,
		tiles:   tiles,
		logger:  logger.With().Str("component", "dashboard").Logger(),
		charts:  make(map[ChartKind]Chart),
	}
}

// Refresh pulls one snapshot and applies it to every widget. When the
// page has no dashboard render target this is a no-op, so shared code
// paths may call it unconditionally. A failed pull leaves the already
// rendered charts intact.
func (s *State) Refresh(ctx context.Context) error {
	if s.factory == nil || !s.factory.HasTarget() {
		return nil
	}

	var snap types.DashboardSnapshot
	if err := s.gw.GetJSON(ctx, "/api/dashboard/", nil, &snap); err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.mu.Unlock()
		s.logger.Warn().Err(err).Msg("Dashboard refresh failed, keeping previous state")
		return err
	}

	s.apply(&snap)
	return nil
}

// Run performs an initial refresh and then refreshes on a fixed timer
// until ctx is cancelled. Push events are a latency optimization on top
// of this loop, not the sole source of truth.
func (s *State) Run(ctx context.Context, interval time.Duration) {
	// Errors are already logged and surfaced via Stats; the loop itself
	// never stops on a failed pull.
	_ = s.Refresh(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = s.Refresh(ctx)
		}
	}
}

// Stats reports refresh bookkeeping for the status endpoint
func (s *State) Stats() (lastRefresh time.Time, chartCount int, lastError string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRefresh, len(s.charts), s.lastError
}

// apply pushes one snapshot into the tiles and all four widget slots.
// Values pass through verbatim; the snapshot is authoritative and no
// client-side aggregation or rounding occurs.
func (s *State) apply(snap *types.DashboardSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tiles != nil {
		s.tiles.SetTiles(snap.TotalAlertsToday, snap.LastScanSecondsAgo, snap.SeverityPercent)
	}

	hours := make([]string, 0, len(snap.TimelineHourly))
	cases := make([]float64, 0, len(snap.TimelineHourly))
	for _, b := range snap.TimelineHourly {
		hours = append(hours, strconv.Itoa(b.Hour))
		cases = append(cases, float64(b.Cases))
	}
	s.upsert(ChartTimeline, ChartData{Labels: hours, Values: cases})

	sevLabels := make([]string, 0, len(types.SeverityOrder))
	for _, sev := range types.SeverityOrder {
		sevLabels = append(sevLabels, string(sev))
	}
	s.upsert(ChartSeverity, ChartData{Labels: sevLabels, Values: snap.SeverityValues()})

	incLabels := make([]string, 0, len(snap.IncidentsToday))
	incVals := make([]float64, 0, len(snap.IncidentsToday))
	for _, inc := range snap.IncidentsToday {
		incLabels = append(incLabels, string(inc.IncidentType))
		incVals = append(incVals, float64(inc.Count))
	}
	s.upsert(ChartIncidents, ChartData{Labels: incLabels, Values: incVals})

	s.upsert(ChartThreat, ChartData{Points: snap.ThreatMapPoints})

	s.lastRefresh = time.Now()
	s.lastError = ""
}

// upsert either initializes a widget slot on first sight of data or
// updates the existing handle in place. Exactly one of the two happens.
func (s *State) upsert(kind ChartKind, d ChartData) {
	if c, ok := s.charts[kind]; ok {
		c.Update(d)
		return
	}
	c := s.factory.NewChart(kind, d)
	if c == nil {
		return
	}
	s.charts[kind] = c
	s.logger.Debug().Str("chart", string(kind)).Msg("Chart initialized")
}
