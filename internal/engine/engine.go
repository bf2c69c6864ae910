// Package engine assembles the synchronization core: one explicit
// instance per process owns the push channel, the chart state, both
// list controllers, the case editor and the notification center.
package engine

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/socmirror/socmirror/internal/casedetail"
	"github.com/socmirror/socmirror/internal/config"
	"github.com/socmirror/socmirror/internal/conn"
	"github.com/socmirror/socmirror/internal/dashboard"
	"github.com/socmirror/socmirror/internal/gateway"
	"github.com/socmirror/socmirror/internal/listview"
	"github.com/socmirror/socmirror/internal/notify"
	"github.com/socmirror/socmirror/internal/router"
	"github.com/socmirror/socmirror/internal/types"
)

// StatusSink presents the passive connectivity indicator. Connectivity
// loss is reported only here, never as an interrupting notification.
type StatusSink interface {
	SetConnState(state types.ConnState)
}

// Views bundles every capability the view layer injects. Nil members
// degrade the matching feature to a no-op, so a page that lacks a
// widget simply skips it.
type Views struct {
	ChartFactory dashboard.Factory
	Tiles        dashboard.TileView
	AlertRows    listview.RowSink[types.AlertRow]
	CaseRows     listview.RowSink[types.CaseRow]
	Toasts       notify.Sink
	Status       StatusSink

	AlertForm listview.ParamSource
	AlertNav  listview.ParamSource
	CaseForm  listview.ParamSource
	CaseNav   listview.ParamSource

	ReloadDetail casedetail.ReloadFunc
}

// Engine is the client synchronization engine
type Engine struct {
	cfg    *config.Config
	logger zerolog.Logger

	gw     *gateway.Gateway
	conn   *conn.Manager
	dash   *dashboard.State
	alerts *listview.Controller[types.AlertRow]
	cases  *listview.Controller[types.CaseRow]
	toasts *notify.Center
	detail *casedetail.Controller

	dispatch     router.Dispatcher
	reloadDetail casedetail.ReloadFunc

	mu   sync.RWMutex
	view types.View
	ctx  context.Context
}

// New wires the engine from config and the injected view layer. The
// initial view is Other until SetView is called.
func New(cfg *config.Config, views Views, logger zerolog.Logger) *Engine {
	e := &Engine{
		cfg:    cfg,
		logger: logger.With().Str("component", "engine").Logger(),
		view:   types.ViewOther,
		ctx:    context.Background(),
	}

	e.gw = gateway.NewGateway(cfg.Server.BaseURL, cfg.Server.RequestTimeout.Std(), logger)
	e.toasts = notify.NewCenter(views.Toasts, cfg.Sync.ToastTTL.Std(), logger)
	e.dash = dashboard.NewState(e.gw, views.ChartFactory, views.Tiles, logger)
	e.alerts = listview.NewAlerts(e.gw, views.AlertForm, views.AlertNav, views.AlertRows, logger)
	e.cases = listview.NewCases(e.gw, views.CaseForm, views.CaseNav, views.CaseRows, logger)
	e.reloadDetail = views.ReloadDetail

	notifyFn := func(title, body string, variant types.ToastVariant) {
		e.toasts.Notify(title, body, variant)
	}
	e.detail = casedetail.NewController(e.gw, notifyFn, views.ReloadDetail, logger)

	e.dispatch = router.Dispatcher{
		Notify: func(title, body string, variant types.ToastVariant) {
			e.toasts.Notify(title, body, variant)
		},
		RefreshDashboard: func() { _ = e.dash.Refresh(e.ctx) },
		ReloadAlerts:     func() { _ = e.alerts.Reload(e.ctx) },
		ReloadCases:      func() { _ = e.cases.Reload(e.ctx) },
		Logger:           logger,
	}

	statusSink := views.Status
	e.conn = conn.NewManager(
		cfg.WSURL(),
		cfg.Sync.ReconnectDelay.Std(),
		e.handleFrame,
		func(state types.ConnState) {
			if statusSink != nil {
				statusSink.SetConnState(state)
			}
		},
		logger,
	)

	return e
}

// Run starts the push channel and the periodic dashboard refresh, then
// performs the initial load for the current view. It returns
// immediately; all work happens on the engine's goroutines until ctx is
// cancelled.
func (e *Engine) Run(ctx context.Context) {
	e.mu.Lock()
	e.ctx = ctx
	view := e.view
	e.mu.Unlock()

	e.conn.Start(ctx)
	go e.dash.Run(ctx, e.cfg.Sync.RefreshInterval.Std())
	e.activate(ctx, view)
}

// SetView records the currently displayed page and performs that page's
// initial pull-based load.
func (e *Engine) SetView(view types.View) {
	e.mu.Lock()
	e.view = view
	ctx := e.ctx
	e.mu.Unlock()

	e.logger.Info().Str("view", string(view)).Msg("View activated")
	e.activate(ctx, view)
}

// CurrentView returns the page currently displayed
func (e *Engine) CurrentView() types.View {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.view
}

// ConnState returns the push-channel connectivity status
func (e *Engine) ConnState() types.ConnState {
	return e.conn.State()
}

// ConnHealth returns push-channel statistics
func (e *Engine) ConnHealth() conn.Health {
	return e.conn.Health()
}

// Dashboard returns the chart state
func (e *Engine) Dashboard() *dashboard.State {
	return e.dash
}

// Alerts returns the alert list controller
func (e *Engine) Alerts() *listview.Controller[types.AlertRow] {
	return e.alerts
}

// Cases returns the case list controller
func (e *Engine) Cases() *listview.Controller[types.CaseRow] {
	return e.cases
}

// Detail returns the case editor controller
func (e *Engine) Detail() *casedetail.Controller {
	return e.detail
}

// Toasts returns the notification center
func (e *Engine) Toasts() *notify.Center {
	return e.toasts
}

// Close tears down the push channel
func (e *Engine) Close() {
	e.conn.Close()
}

// handleFrame routes one decoded push event. The active view is sampled
// here, at dispatch time.
func (e *Engine) handleFrame(ev types.InboundEvent) {
	actions := router.Route(ev, e.CurrentView())
	if len(actions) == 0 {
		e.logger.Debug().Str("event", string(ev.Event)).Msg("Event produced no actions")
		return
	}
	e.dispatch.Dispatch(actions)
}

// activate performs the initial load owed when a page becomes active
func (e *Engine) activate(ctx context.Context, view types.View) {
	switch view {
	case types.ViewDashboard:
		_ = e.dash.Refresh(ctx)
	case types.ViewAlerts:
		_ = e.alerts.Reload(ctx)
	case types.ViewCases:
		_ = e.cases.Reload(ctx)
	case types.ViewCaseDetail:
		if e.reloadDetail != nil {
			_ = e.reloadDetail(ctx)
		}
	}
}
