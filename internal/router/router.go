// Package router classifies inbound push events and decides which view
// refresh actions to trigger. Route is a pure function of the event and
// the currently displayed view, so it can be tested without a live
// channel; Dispatcher binds the resulting actions to side effects.
package router

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/socmirror/socmirror/internal/types"
)

// ActionKind enumerates the side effects an event can trigger
type ActionKind string

const (
	ActionNotify           ActionKind = "notify"
	ActionRefreshDashboard ActionKind = "refresh_dashboard"
	ActionReloadAlerts     ActionKind = "reload_alerts"
	ActionReloadCases      ActionKind = "reload_cases"
)

// Action is one side effect decided by Route. Title, Body and Variant
// are only set for ActionNotify.
type Action struct {
	Kind    ActionKind
	Title   string
	Body    string
	Variant types.ToastVariant
}

// Route maps one inbound event to the list of actions it triggers given
// the currently active view. Events with an unrecognized discriminator
// produce no actions. The view is sampled at the moment the event
// arrives, never cached, so navigating mid-session is handled correctly
// on the next event.
func Route(ev types.InboundEvent, view types.View) []Action {
	body := fmt.Sprintf("%s • %s: %s", ev.Severity, ev.IncidentType, ev.Title)

	switch ev.Event {
	case types.EventNewCase:
		actions := []Action{
			{Kind: ActionNotify, Title: "New case", Body: body, Variant: types.ToastDanger},
			{Kind: ActionRefreshDashboard},
		}
		if view == types.ViewCases {
			actions = append(actions, Action{Kind: ActionReloadCases})
		}
		if view == types.ViewAlerts {
			actions = append(actions, Action{Kind: ActionReloadAlerts})
		}
		return actions

	case types.EventNewAlert:
		actions := []Action{
			{Kind: ActionNotify, Title: "New alert", Body: body, Variant: types.ToastInfo},
			{Kind: ActionRefreshDashboard},
		}
		if view == types.ViewAlerts {
			actions = append(actions, Action{Kind: ActionReloadAlerts})
		}
		return actions
	}

	return nil
}

// Dispatcher executes routed actions against the engine's components
type Dispatcher struct {
	Notify           func(title, body string, variant types.ToastVariant)
	RefreshDashboard func()
	ReloadAlerts     func()
	ReloadCases      func()
	Logger           zerolog.Logger
}

// Dispatch runs every action in order. Missing bindings are skipped so a
// partially wired engine (e.g. in tests) stays safe.
func (d *Dispatcher) Dispatch(actions []Action) {
	for _, a := range actions {
		switch a.Kind {
		case ActionNotify:
			if d.Notify != nil {
				d.Notify(a.Title, a.Body, a.Variant)
			}
		case ActionRefreshDashboard:
			if d.RefreshDashboard != nil {
				d.RefreshDashboard()
			}
		case ActionReloadAlerts:
			if d.ReloadAlerts != nil {
				d.ReloadAlerts()
			}
		case ActionReloadCases:
			if d.ReloadCases != nil {
				d.ReloadCases()
			}
		default:
			d.Logger.Debug().Str("kind", string(a.Kind)).Msg("Unknown action kind, skipping")
		}
	}
}
