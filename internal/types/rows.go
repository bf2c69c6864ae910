package types

import "time"

// AlertRow mirrors one row of the filtered alert list. Held only as the
// current rendered table content and fully replaced on each reload.
type AlertRow struct {
	ID            int64          `json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	Client        int64          `json:"client"`
	Severity      Severity       `json:"severity"`
	IncidentType  IncidentType   `json:"incident_type"`
	Title         string         `json:"title"`
	RawEvent      map[string]any `json:"raw_event,omitempty"`
	FalsePositive bool           `json:"is_false_positive"`
}

// CaseRow mirrors one row of the filtered case list, plus the detail
// fields the case editor works with.
type CaseRow struct {
	ID           int64          `json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	Client       int64          `json:"client"`
	Severity     Severity       `json:"severity"`
	IncidentType IncidentType   `json:"incident_type"`
	Status       CaseStatus     `json:"status"`
	Verdict      Verdict        `json:"verdict"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	AnalystName  string         `json:"analyst_name"`
	AnalystGroup string         `json:"analyst_group"`
	SourceIP     string         `json:"source_ip"`
	HostIP       string         `json:"host_ip"`
	Hostname     string         `json:"hostname"`
	Evidence     map[string]any `json:"evidence,omitempty"`
	Tasks        []Task         `json:"tasks,omitempty"`
}

// Task is one checklist item attached to a case.
type Task struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
}
