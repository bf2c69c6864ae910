package types

// EventKind is the discriminator carried in the "event" field of every
// push frame. Unknown kinds are ignored by the router.
type EventKind string

const (
	EventNewCase  EventKind = "new_case"
	EventNewAlert EventKind = "new_alert"
)

// InboundEvent is one decoded push frame. Constructed per received frame,
// consumed synchronously by the router, never stored.
type InboundEvent struct {
	Event        EventKind    `json:"event"`
	ID           int64        `json:"id,omitempty"`
	AlertID      int64        `json:"alert_id,omitempty"`
	CaseID       int64        `json:"case_id,omitempty"`
	Severity     Severity     `json:"severity"`
	IncidentType IncidentType `json:"incident_type"`
	Title        string       `json:"title"`
}

// ConnState is the connectivity of the push channel.
type ConnState string

const (
	ConnConnecting ConnState = "connecting"
	ConnOnline     ConnState = "online"
	ConnOffline    ConnState = "offline"
)

// View identifies which page of the mirrored UI is currently displayed.
// The router consults it at dispatch time, not at connect time, so a
// view switch mid-session is picked up on the next event.
type View string

const (
	ViewDashboard  View = "dashboard"
	ViewAlerts     View = "alerts"
	ViewCases      View = "cases"
	ViewCaseDetail View = "case_detail"
	ViewOther      View = "other"
)
