// Package ui is the shipped view layer: a terminal renderer that
// satisfies the capabilities the engine expects to be injected, plus
// the log ring buffer served by the status API. The synchronization
// core itself never constructs output; it only calls these sinks.
package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/socmirror/socmirror/internal/dashboard"
	"github.com/socmirror/socmirror/internal/types"
)

// Renderer writes a plain-text rendition of the mirrored dashboard to
// one writer. It is safe for use from the engine's goroutines.
type Renderer struct {
	mu  sync.Mutex
	out io.Writer

	connState types.ConnState
	toasts    map[string]types.Toast
}

// NewRenderer creates a terminal renderer
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{
		out:       out,
		connState: types.ConnOffline,
		toasts:    make(map[string]types.Toast),
	}
}

// SetConnState updates the connectivity badge
func (r *Renderer) SetConnState(state types.ConnState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.connState = state
	fmt.Fprintf(r.out, "[status] push channel %s\n", state)
}

// ConnState returns the last rendered connectivity state
func (r *Renderer) ConnState() types.ConnState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.connState
}

// SetTiles renders the scalar stat tiles
func (r *Renderer) SetTiles(totalAlerts, lastScanSecondsAgo int64, severityPercent map[types.Severity]float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, "[tiles] alerts today: %d | last scan: %ds ago |", totalAlerts, lastScanSecondsAgo)
	for _, sev := range types.SeverityOrder {
		fmt.Fprintf(r.out, " %s %.1f%%", sev, severityPercent[sev])
	}
	fmt.Fprintln(r.out)
}

// HasTarget implements dashboard.Factory. The terminal always has a
// dashboard target.
func (r *Renderer) HasTarget() bool {
	return true
}

// NewChart implements dashboard.Factory
func (r *Renderer) NewChart(kind dashboard.ChartKind, d dashboard.ChartData) dashboard.Chart {
	c := &textChart{renderer: r, kind: kind}
	c.Update(d)
	return c
}

// Show implements notify.Sink
func (r *Renderer) Show(t types.Toast) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts[t.ID] = t
	fmt.Fprintf(r.out, "[toast:%s] %s: %s\n", t.Variant, t.Title, t.Body)
}

// Remove implements notify.Sink. Printed toasts simply scroll away, so
// removal only drops the bookkeeping entry.
func (r *Renderer) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.toasts, id)
}

// VisibleToasts returns how many toasts are currently on display
func (r *Renderer) VisibleToasts() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.toasts)
}

// textChart is one live chart slot rendered as a summary line
type textChart struct {
	renderer *Renderer
	kind     dashboard.ChartKind
}

// Update replaces the chart's data and redraws its summary line
func (c *textChart) Update(d dashboard.ChartData) {
	c.renderer.mu.Lock()
	defer c.renderer.mu.Unlock()
	out := c.renderer.out

	switch c.kind {
	case dashboard.ChartThreat:
		fmt.Fprintf(out, "[chart:%s] %d signal points\n", c.kind, len(d.Points))
	default:
		fmt.Fprintf(out, "[chart:%s]", c.kind)
		for i, label := range d.Labels {
			if i < len(d.Values) {
				fmt.Fprintf(out, " %s=%g", label, d.Values[i])
			}
		}
		fmt.Fprintln(out)
	}
}
