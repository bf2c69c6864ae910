// Package listview drives the filtered reload cycle of one table. The
// controller only knows how to build a query, pull rows and hand the
// full replacement set to a sink; rendering belongs to the view layer.
package listview

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/socmirror/socmirror/internal/gateway"
	"github.com/socmirror/socmirror/internal/query"
	"github.com/socmirror/socmirror/internal/types"
)

// RowSink receives the complete row set on every reload. Each call is a
// full replace, never an append.
type RowSink[Row any] interface {
	ReplaceRows(rows []Row)
}

// ParamSource supplies one side of the filter query: the filter form's
// current field values, or the page-level navigational parameters.
type ParamSource func() url.Values

// Controller reloads one list endpoint. Reload may be called repeatedly
// (form submission, push events) without accumulating duplicate rows.
type Controller[Row any] struct {
	gw     *gateway.Gateway
	path   string
	form   ParamSource
	nav    ParamSource
	sink   RowSink[Row]
	logger zerolog.Logger

	mu         sync.Mutex
	lastReload time.Time
	lastCount  int
	lastError  string
}

// NewController creates a list controller for the given endpoint path
func NewController[Row any](gw *gateway.Gateway, path string, form, nav ParamSource, sink RowSink[Row], logger zerolog.Logger) *Controller[Row] {
	return &Controller[Row]{
		gw:     gw,
		path:   path,
		form:   form,
		nav:    nav,
		sink:   sink,
		logger: logger.With().Str("component", "listview").Str("path", path).Logger(),
	}
}

// NewAlerts creates the alert list controller
func NewAlerts(gw *gateway.Gateway, form, nav ParamSource, sink RowSink[types.AlertRow], logger zerolog.Logger) *Controller[types.AlertRow] {
	return NewController[types.AlertRow](gw, "/api/alerts/", form, nav, sink, logger)
}

// NewCases creates the case list controller
func NewCases(gw *gateway.Gateway, form, nav ParamSource, sink RowSink[types.CaseRow], logger zerolog.Logger) *Controller[types.CaseRow] {
	return NewController[types.CaseRow](gw, "/api/cases/", form, nav, sink, logger)
}

// Reload builds the canonical filter query, pulls the row set and
// replaces the visible rows wholesale. A failed pull leaves the
// previously rendered rows intact.
func (c *Controller[Row]) Reload(ctx context.Context) error {
	var form, nav url.Values
	if c.form != nil {
		form = c.form()
	}
	if c.nav != nil {
		nav = c.nav()
	}
	q := query.Merge(form, nav)

	var rows []Row
	if err := c.gw.GetJSON(ctx, c.path, q, &rows); err != nil {
		c.mu.Lock()
		c.lastError = err.Error()
		c.mu.Unlock()
		c.logger.Warn().Err(err).Msg("Reload failed, keeping previous rows")
		return err
	}
	if rows == nil {
		rows = []Row{}
	}

	if c.sink != nil {
		c.sink.ReplaceRows(rows)
	}

	c.mu.Lock()
	c.lastReload = time.Now()
	c.lastCount = len(rows)
	c.lastError = ""
	c.mu.Unlock()

	c.logger.Debug().Int("rows", len(rows)).Msg("List reloaded")
	return nil
}

// Stats reports reload bookkeeping for the status endpoint
func (c *Controller[Row]) Stats() (lastReload time.Time, rowCount int, lastError string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastReload, c.lastCount, c.lastError
}
