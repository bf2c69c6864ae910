package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socmirror/socmirror/internal/gateway"
	"github.com/socmirror/socmirror/internal/types"
)

type fakeChart struct {
	kind    ChartKind
	updates []ChartData
}

func (c *fakeChart) Update(d ChartData) {
	c.updates = append(c.updates, d)
}

type fakeFactory struct {
	hasTarget bool
	created   map[ChartKind]*fakeChart
	inits     int
}

func newFakeFactory(hasTarget bool) *fakeFactory {
	return &fakeFactory{hasTarget: hasTarget, created: make(map[ChartKind]*fakeChart)}
}

func (f *fakeFactory) HasTarget() bool { return f.hasTarget }

func (f *fakeFactory) NewChart(kind ChartKind, d ChartData) Chart {
	f.inits++
	c := &fakeChart{kind: kind, updates: []ChartData{d}}
	f.created[kind] = c
	return c
}

type fakeTiles struct {
	mu       sync.Mutex
	total    int64
	lastScan int64
	percent  map[types.Severity]float64
	calls    int
}

func (f *fakeTiles) SetTiles(total, lastScan int64, percent map[types.Severity]float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.total = total
	f.lastScan = lastScan
	f.percent = percent
	f.calls++
}

func snapshotHandler(t *testing.T, snap types.DashboardSnapshot) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/dashboard/", r.URL.Path)
		json.NewEncoder(w).Encode(snap)
	}
}

func testSnapshot() types.DashboardSnapshot {
	return types.DashboardSnapshot{
		TotalAlertsToday:   12,
		LastScanSecondsAgo: 8,
		SeverityPercent: map[types.Severity]float64{
			types.SeverityCritical: 25,
			types.SeverityHigh:     25,
			types.SeverityMedium:   33.3,
			types.SeverityLow:      16.7,
		},
		TimelineHourly: []types.TimelineBucket{
			{Hour: 0, Cases: 1}, {Hour: 1, Cases: 0}, {Hour: 2, Cases: 4},
		},
		IncidentsToday: []types.IncidentCount{
			{IncidentType: types.IncidentBruteForce, Count: 5},
			{IncidentType: types.IncidentXSS, Count: 2},
		},
		ThreatMapPoints: []types.ThreatPoint{{X: 1, Y: 2}, {X: 3, Y: 4}},
	}
}

func newTestState(t *testing.T, handler http.HandlerFunc, factory Factory, tiles TileView) *State {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	gw := gateway.NewGateway(srv.URL, time.Second, zerolog.Nop())
	return NewState(gw, factory, tiles, zerolog.Nop())
}

func TestRefresh_InitializesEachChartOnce(t *testing.T) {
	factory := newFakeFactory(true)
	tiles := &fakeTiles{}
	s := newTestState(t, snapshotHandler(t, testSnapshot()), factory, tiles)

	require.NoError(t, s.Refresh(context.Background()))

	assert.Equal(t, 4, factory.inits)
	for _, kind := range []ChartKind{ChartTimeline, ChartSeverity, ChartIncidents, ChartThreat} {
		require.Contains(t, factory.created, kind)
		assert.Len(t, factory.created[kind].updates, 1, "first refresh binds initial data only")
	}
}

func TestRefresh_SubsequentRefreshesMutateInPlace(t *testing.T) {
	factory := newFakeFactory(true)
	s := newTestState(t, snapshotHandler(t, testSnapshot()), factory, &fakeTiles{})

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Refresh(context.Background()))
	}

	assert.Equal(t, 4, factory.inits, "no additional handles after the first refresh")
	for _, c := range factory.created {
		assert.Len(t, c.updates, 5, "every refresh updates the existing handle")
	}
}

func TestRefresh_NoDashboardTargetIsNoOp(t *testing.T) {
	requests := 0
	factory := newFakeFactory(false)
	s := newTestState(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
	}, factory, &fakeTiles{})

	require.NoError(t, s.Refresh(context.Background()))

	assert.Zero(t, requests, "no pull when the render target is absent")
	assert.Zero(t, factory.inits)
}

func TestRefresh_SeverityChartUsesCanonicalOrder(t *testing.T) {
	factory := newFakeFactory(true)
	s := newTestState(t, snapshotHandler(t, testSnapshot()), factory, &fakeTiles{})

	require.NoError(t, s.Refresh(context.Background()))

	sev := factory.created[ChartSeverity].updates[0]
	assert.Equal(t, []string{"CRITICAL", "HIGH", "MEDIUM", "LOW"}, sev.Labels)
	assert.Equal(t, []float64{25, 25, 33.3, 16.7}, sev.Values)
}

func TestRefresh_PassesValuesThroughVerbatim(t *testing.T) {
	snap := testSnapshot()
	// A snapshot that does not sum to 100 is still applied untouched.
	snap.SeverityPercent = map[types.Severity]float64{
		types.SeverityCritical: 90,
		types.SeverityHigh:     90,
	}
	factory := newFakeFactory(true)
	tiles := &fakeTiles{}
	s := newTestState(t, snapshotHandler(t, snap), factory, tiles)

	require.NoError(t, s.Refresh(context.Background()))

	assert.Equal(t, []float64{90, 90, 0, 0}, factory.created[ChartSeverity].updates[0].Values)
	assert.Equal(t, int64(12), tiles.total)
	assert.Equal(t, int64(8), tiles.lastScan)
}

func TestRefresh_FailurePreservesExistingCharts(t *testing.T) {
	fail := false
	snap := testSnapshot()
	factory := newFakeFactory(true)
	s := newTestState(t, func(w http.ResponseWriter, r *http.Request) {
		if fail {
			http.Error(w, "backend down", http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(snap)
	}, factory, &fakeTiles{})

	require.NoError(t, s.Refresh(context.Background()))
	fail = true
	require.Error(t, s.Refresh(context.Background()))

	assert.Equal(t, 4, factory.inits)
	for _, c := range factory.created {
		assert.Len(t, c.updates, 1, "failed refresh must not touch rendered charts")
	}

	_, count, lastErr := s.Stats()
	assert.Equal(t, 4, count)
	assert.NotEmpty(t, lastErr)
}

func TestRefresh_ThreatChartCarriesPoints(t *testing.T) {
	factory := newFakeFactory(true)
	s := newTestState(t, snapshotHandler(t, testSnapshot()), factory, &fakeTiles{})

	require.NoError(t, s.Refresh(context.Background()))

	threat := factory.created[ChartThreat].updates[0]
	assert.Equal(t, []types.ThreatPoint{{X: 1, Y: 2}, {X: 3, Y: 4}}, threat.Points)
	assert.Empty(t, threat.Labels)
}

func TestRun_RefreshesOnTimer(t *testing.T) {
	var mu sync.Mutex
	requests := 0
	factory := newFakeFactory(true)
	snap := testSnapshot()
	s := newTestState(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requests++
		mu.Unlock()
		json.NewEncoder(w).Encode(snap)
	}, factory, &fakeTiles{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx, 20*time.Millisecond)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return requests >= 3
	}, time.Second, 5*time.Millisecond)
}
