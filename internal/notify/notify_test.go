package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socmirror/socmirror/internal/types"
)

type recordSink struct {
	mu      sync.Mutex
	shown   []types.Toast
	removed []string
}

func (s *recordSink) Show(t types.Toast) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shown = append(s.shown, t)
}

func (s *recordSink) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removed = append(s.removed, id)
}

func (s *recordSink) shownCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.shown)
}

func (s *recordSink) removedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.removed)
}

func TestNotify_ShowsToast(t *testing.T) {
	sink := &recordSink{}
	c := NewCenter(sink, time.Minute, zerolog.Nop())

	id := c.Notify("New alert", "HIGH • XSS: probe", types.ToastInfo)

	require.NotEmpty(t, id)
	require.Equal(t, 1, sink.shownCount())
	assert.Equal(t, id, sink.shown[0].ID)
	assert.Equal(t, types.ToastInfo, sink.shown[0].Variant)
	assert.Equal(t, 1, c.Active())
}

func TestNotify_NoDeduplication(t *testing.T) {
	sink := &recordSink{}
	c := NewCenter(sink, time.Minute, zerolog.Nop())

	first := c.Notify("New case", "same body", types.ToastDanger)
	second := c.Notify("New case", "same body", types.ToastDanger)

	assert.NotEqual(t, first, second, "identical content must still produce distinct toasts")
	assert.Equal(t, 2, sink.shownCount())
	assert.Equal(t, 2, c.Active())
}

func TestNotify_NilSinkIsNoOp(t *testing.T) {
	c := NewCenter(nil, time.Minute, zerolog.Nop())

	id := c.Notify("New alert", "body", types.ToastInfo)

	assert.Empty(t, id)
	assert.Zero(t, c.Active())
}

func TestDismiss_RemovesAndCancelsTimer(t *testing.T) {
	sink := &recordSink{}
	c := NewCenter(sink, 50*time.Millisecond, zerolog.Nop())

	id := c.Notify("New case", "body", types.ToastDanger)
	c.Dismiss(id)

	assert.Equal(t, []string{id}, sink.removed)
	assert.Zero(t, c.Active())

	// The timed removal must not fire a second Remove after dismissal.
	time.Sleep(120 * time.Millisecond)
	assert.Equal(t, 1, sink.removedCount())
}

func TestDismiss_UnknownIDIgnored(t *testing.T) {
	sink := &recordSink{}
	c := NewCenter(sink, time.Minute, zerolog.Nop())

	assert.NotPanics(t, func() { c.Dismiss("no-such-toast") })
	assert.Zero(t, sink.removedCount())
}

func TestToast_AutoRetiresAfterTTL(t *testing.T) {
	sink := &recordSink{}
	c := NewCenter(sink, 30*time.Millisecond, zerolog.Nop())

	id := c.Notify("New alert", "body", types.ToastInfo)

	require.Eventually(t, func() bool {
		return sink.removedCount() == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, id, sink.removed[0])
	assert.Zero(t, c.Active())
}

func TestToasts_RetireIndependently(t *testing.T) {
	sink := &recordSink{}
	c := NewCenter(sink, 40*time.Millisecond, zerolog.Nop())

	first := c.Notify("a", "a", types.ToastPrimary)
	time.Sleep(25 * time.Millisecond)
	c.Notify("b", "b", types.ToastSuccess)

	require.Eventually(t, func() bool {
		return sink.removedCount() >= 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, first, sink.removed[0], "oldest toast retires first")
	assert.Equal(t, 1, c.Active())

	require.Eventually(t, func() bool {
		return sink.removedCount() == 2
	}, time.Second, 5*time.Millisecond)
	assert.Zero(t, c.Active())
}
