package ui

import (
	"fmt"
	"net/url"
	"sync"

	"github.com/socmirror/socmirror/internal/types"
)

// AlertTable renders the alert list. Each reload fully replaces the
// visible rows; an empty result renders a single placeholder line
// instead of an empty table body.
type AlertTable struct {
	renderer *Renderer

	mu   sync.Mutex
	rows []types.AlertRow
}

// NewAlertTable creates the alert table sink
func NewAlertTable(r *Renderer) *AlertTable {
	return &AlertTable{renderer: r}
}

// ReplaceRows implements listview.RowSink
func (t *AlertTable) ReplaceRows(rows []types.AlertRow) {
	t.mu.Lock()
	t.rows = rows
	t.mu.Unlock()

	t.renderer.mu.Lock()
	defer t.renderer.mu.Unlock()
	out := t.renderer.out

	if len(rows) == 0 {
		fmt.Fprintln(out, "[alerts] No alerts")
		return
	}
	for _, a := range rows {
		fmt.Fprintf(out, "[alerts] %d  %s  %s  %s  %s\n",
			a.ID, a.CreatedAt.Format("15:04:05"), a.Severity, a.IncidentType, a.Title)
	}
}

// Rows returns the currently rendered row set
func (t *AlertTable) Rows() []types.AlertRow {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rows
}

// CaseTable renders the case list with the same full-replace contract.
type CaseTable struct {
	renderer *Renderer

	mu   sync.Mutex
	rows []types.CaseRow
}

// NewCaseTable creates the case table sink
func NewCaseTable(r *Renderer) *CaseTable {
	return &CaseTable{renderer: r}
}

// ReplaceRows implements listview.RowSink
func (t *CaseTable) ReplaceRows(rows []types.CaseRow) {
	t.mu.Lock()
	t.rows = rows
	t.mu.Unlock()

	t.renderer.mu.Lock()
	defer t.renderer.mu.Unlock()
	out := t.renderer.out

	if len(rows) == 0 {
		fmt.Fprintln(out, "[cases] No cases")
		return
	}
	for _, c := range rows {
		fmt.Fprintf(out, "[cases] CASE-%d  %s  %s  %s  %s  %s  %s\n",
			c.ID, c.CreatedAt.Format("15:04:05"), c.Severity, c.IncidentType, c.Title, c.Status, c.Verdict)
	}
}

// Rows returns the currently rendered row set
func (t *CaseTable) Rows() []types.CaseRow {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rows
}

// FilterForm holds the current filter field values for one list page,
// standing in for the browser form the engine reads on each reload.
type FilterForm struct {
	mu     sync.Mutex
	fields url.Values
}

// NewFilterForm creates an empty filter form
func NewFilterForm() *FilterForm {
	return &FilterForm{fields: url.Values{}}
}

// Set stores one field value; an empty value clears the field on the
// next read because the query builder drops empty entries.
func (f *FilterForm) Set(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields.Set(key, value)
}

// Values snapshots the current field set
func (f *FilterForm) Values() url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := url.Values{}
	for k, vs := range f.fields {
		for _, v := range vs {
			out.Add(k, v)
		}
	}
	return out
}
