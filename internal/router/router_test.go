package router

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socmirror/socmirror/internal/types"
)

func kinds(actions []Action) []ActionKind {
	var out []ActionKind
	for _, a := range actions {
		out = append(out, a.Kind)
	}
	return out
}

func TestRoute(t *testing.T) {
	newCase := types.InboundEvent{
		Event:        types.EventNewCase,
		Severity:     types.SeverityCritical,
		IncidentType: types.IncidentBruteForce,
		Title:        "SSH brute force on bastion",
	}
	newAlert := types.InboundEvent{
		Event:        types.EventNewAlert,
		Severity:     types.SeverityMedium,
		IncidentType: types.IncidentXSS,
		Title:        "Reflected XSS attempt",
	}

	tests := []struct {
		name string
		ev   types.InboundEvent
		view types.View
		want []ActionKind
	}{
		{
			name: "new case on dashboard",
			ev:   newCase,
			view: types.ViewDashboard,
			want: []ActionKind{ActionNotify, ActionRefreshDashboard},
		},
		{
			name: "new case on case list",
			ev:   newCase,
			view: types.ViewCases,
			want: []ActionKind{ActionNotify, ActionRefreshDashboard, ActionReloadCases},
		},
		{
			name: "new case on alert list",
			ev:   newCase,
			view: types.ViewAlerts,
			want: []ActionKind{ActionNotify, ActionRefreshDashboard, ActionReloadAlerts},
		},
		{
			name: "new alert on alert list",
			ev:   newAlert,
			view: types.ViewAlerts,
			want: []ActionKind{ActionNotify, ActionRefreshDashboard, ActionReloadAlerts},
		},
		{
			name: "new alert on case list does not reload any list",
			ev:   newAlert,
			view: types.ViewCases,
			want: []ActionKind{ActionNotify, ActionRefreshDashboard},
		},
		{
			name: "new alert on case detail",
			ev:   newAlert,
			view: types.ViewCaseDetail,
			want: []ActionKind{ActionNotify, ActionRefreshDashboard},
		},
		{
			name: "unknown event kind is ignored",
			ev:   types.InboundEvent{Event: "rescan_done"},
			view: types.ViewAlerts,
			want: nil,
		},
		{
			name: "missing discriminator is ignored",
			ev:   types.InboundEvent{Title: "no event field"},
			view: types.ViewDashboard,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Route(tt.ev, tt.view)
			assert.Equal(t, tt.want, kinds(got))
		})
	}
}

func TestRoute_ToastVariants(t *testing.T) {
	caseActions := Route(types.InboundEvent{
		Event:        types.EventNewCase,
		Severity:     types.SeverityHigh,
		IncidentType: types.IncidentPhishing,
		Title:        "Credential harvest page",
	}, types.ViewOther)
	require.NotEmpty(t, caseActions)
	assert.Equal(t, ActionNotify, caseActions[0].Kind)
	assert.Equal(t, types.ToastDanger, caseActions[0].Variant)
	assert.Equal(t, "New case", caseActions[0].Title)
	assert.Equal(t, "HIGH • PHISHING: Credential harvest page", caseActions[0].Body)

	alertActions := Route(types.InboundEvent{
		Event:        types.EventNewAlert,
		Severity:     types.SeverityLow,
		IncidentType: types.IncidentCryptojack,
		Title:        "Miner signature",
	}, types.ViewOther)
	require.NotEmpty(t, alertActions)
	assert.Equal(t, types.ToastInfo, alertActions[0].Variant)
	assert.Equal(t, "New alert", alertActions[0].Title)
}

func TestDispatcher_ExecutesActionsInOrder(t *testing.T) {
	var calls []string
	d := &Dispatcher{
		Notify: func(title, body string, variant types.ToastVariant) {
			calls = append(calls, "notify")
		},
		RefreshDashboard: func() { calls = append(calls, "dashboard") },
		ReloadAlerts:     func() { calls = append(calls, "alerts") },
		ReloadCases:      func() { calls = append(calls, "cases") },
		Logger:           zerolog.Nop(),
	}

	d.Dispatch([]Action{
		{Kind: ActionNotify},
		{Kind: ActionRefreshDashboard},
		{Kind: ActionReloadCases},
		{Kind: ActionReloadAlerts},
	})

	assert.Equal(t, []string{"notify", "dashboard", "cases", "alerts"}, calls)
}

func TestDispatcher_SkipsMissingBindings(t *testing.T) {
	d := &Dispatcher{Logger: zerolog.Nop()}

	assert.NotPanics(t, func() {
		d.Dispatch([]Action{
			{Kind: ActionNotify},
			{Kind: ActionRefreshDashboard},
			{Kind: ActionReloadAlerts},
			{Kind: ActionReloadCases},
		})
	})
}
