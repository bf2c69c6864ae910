// Package casedetail issues the mutating actions of the case editor.
// There are no optimistic updates: structural mutations force a full
// reload of the detail view, non-structural ones raise a success toast.
package casedetail

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/socmirror/socmirror/internal/gateway"
	"github.com/socmirror/socmirror/internal/types"
)

// FieldSet is the editable subset of a case submitted by save-fields.
type FieldSet struct {
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	AnalystName  string           `json:"analyst_name"`
	AnalystGroup string           `json:"analyst_group"`
	Status       types.CaseStatus `json:"status"`
	Verdict      types.Verdict    `json:"verdict"`
}

// NotifyFunc raises a toast on successful non-structural mutations.
type NotifyFunc func(title, body string, variant types.ToastVariant)

// ReloadFunc reloads the whole detail view after structural mutations.
// A full round trip is the simplest consistency strategy: derived state
// like task counts can never go stale.
type ReloadFunc func(ctx context.Context) error

// Controller drives the four mutating operations of the case editor
type Controller struct {
	gw     *gateway.Gateway
	notify NotifyFunc
	reload ReloadFunc
	logger zerolog.Logger
}

// NewController creates a case detail controller
func NewController(gw *gateway.Gateway, notify NotifyFunc, reload ReloadFunc, logger zerolog.Logger) *Controller {
	return &Controller{
		gw:     gw,
		notify: notify,
		reload: reload,
		logger: logger.With().Str("component", "casedetail").Logger(),
	}
}

// SaveFields submits the edited fields. The page's structural content
// is unchanged, so success raises a toast instead of reloading.
func (c *Controller) SaveFields(ctx context.Context, caseID int64, fields FieldSet) error {
	var updated types.CaseRow
	if err := c.gw.PatchJSON(ctx, fmt.Sprintf("/api/cases/%d/", caseID), fields, &updated); err != nil {
		return err
	}

	c.logger.Info().Int64("case_id", caseID).Msg("Case fields saved")
	if c.notify != nil {
		c.notify("Saved", fmt.Sprintf("CASE-%d updated", caseID), types.ToastSuccess)
	}
	return nil
}

// ToggleTask flips one task's done flag, then reloads the detail view.
func (c *Controller) ToggleTask(ctx context.Context, caseID, taskID int64) error {
	var resp struct {
		OK   bool `json:"ok"`
		Done bool `json:"done"`
	}
	if err := c.gw.PostJSON(ctx, fmt.Sprintf("/api/cases/%d/tasks/%d/toggle/", caseID, taskID), nil, &resp); err != nil {
		return err
	}

	c.logger.Info().
		Int64("case_id", caseID).
		Int64("task_id", taskID).
		Bool("done", resp.Done).
		Msg("Task toggled")
	return c.doReload(ctx)
}

// AddTask creates one checklist item, then reloads the detail view.
// A title that is empty or only whitespace is silently skipped.
func (c *Controller) AddTask(ctx context.Context, caseID int64, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		c.logger.Debug().Int64("case_id", caseID).Msg("Empty task title, skipping")
		return nil
	}

	var resp struct {
		OK     bool  `json:"ok"`
		TaskID int64 `json:"task_id"`
	}
	body := map[string]string{"title": title}
	if err := c.gw.PostJSON(ctx, fmt.Sprintf("/api/cases/%d/tasks/add/", caseID), body, &resp); err != nil {
		return err
	}

	c.logger.Info().
		Int64("case_id", caseID).
		Int64("task_id", resp.TaskID).
		Msg("Task added")
	return c.doReload(ctx)
}

// Dispatch hands the case off to an external channel. Success raises a
// toast; the page's structural content is unchanged.
func (c *Controller) Dispatch(ctx context.Context, caseID int64, channel types.DispatchChannel, recipients []string) error {
	body := map[string]interface{}{
		"channel":    channel,
		"recipients": recipients,
	}
	var resp struct {
		OK         bool  `json:"ok"`
		DispatchID int64 `json:"dispatch_id"`
	}
	if err := c.gw.PostJSON(ctx, fmt.Sprintf("/api/cases/%d/dispatch/", caseID), body, &resp); err != nil {
		return err
	}

	c.logger.Info().
		Int64("case_id", caseID).
		Str("channel", string(channel)).
		Int("recipients", len(recipients)).
		Msg("Case dispatched")
	if c.notify != nil {
		c.notify("Dispatched", fmt.Sprintf("CASE-%d sent via %s", caseID, channel), types.ToastSuccess)
	}
	return nil
}

func (c *Controller) doReload(ctx context.Context) error {
	if c.reload == nil {
		return nil
	}
	return c.reload(ctx)
}
