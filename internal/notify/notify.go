package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/socmirror/socmirror/internal/types"
)

// Sink renders toasts. The view layer supplies it; the center itself
// never constructs markup.
type Sink interface {
	Show(t types.Toast)
	Remove(id string)
}

// Center creates, displays and auto-retires transient notifications.
// Simultaneous toasts are independent and stack; identical content
// produces separate toasts, there is no deduplication.
type Center struct {
	sink   Sink
	ttl    time.Duration
	logger zerolog.Logger

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// NewCenter creates a notification center. A nil sink makes Notify a
// silent no-op, which supports pages without a notification target.
func NewCenter(sink Sink, ttl time.Duration, logger zerolog.Logger) *Center {
	return &Center{
		sink:   sink,
		ttl:    ttl,
		logger: logger.With().Str("component", "notify").Logger(),
		timers: make(map[string]*time.Timer),
	}
}

// Notify shows one toast and schedules its removal after the display
// window. Returns the toast id, or "" when no sink is attached.
func (c *Center) Notify(title, body string, variant types.ToastVariant) string {
	if c.sink == nil {
		return ""
	}

	t := types.Toast{
		ID:      uuid.NewString(),
		Title:   title,
		Body:    body,
		Variant: variant,
	}

	c.mu.Lock()
	c.timers[t.ID] = time.AfterFunc(c.ttl, func() { c.retire(t.ID) })
	c.mu.Unlock()

	c.sink.Show(t)
	c.logger.Debug().
		Str("toast_id", t.ID).
		Str("variant", string(variant)).
		Str("title", title).
		Msg("Toast shown")
	return t.ID
}

// Dismiss removes a toast immediately and cancels its pending timed
// removal. Unknown ids are ignored.
func (c *Center) Dismiss(id string) {
	c.mu.Lock()
	timer, ok := c.timers[id]
	if ok {
		timer.Stop()
		delete(c.timers, id)
	}
	c.mu.Unlock()

	if ok {
		c.sink.Remove(id)
	}
}

// Active returns the number of toasts currently on display
func (c *Center) Active() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

// retire handles the timed removal path
func (c *Center) retire(id string) {
	c.mu.Lock()
	_, ok := c.timers[id]
	delete(c.timers, id)
	c.mu.Unlock()

	if ok {
		c.sink.Remove(id)
	}
}
