package conn

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/avast/retry-go/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/socmirror/socmirror/internal/types"
)

const defaultDialTimeout = 10 * time.Second

// FrameHandler receives each decoded push event.
type FrameHandler func(ev types.InboundEvent)

// StateHandler receives every connectivity transition.
type StateHandler func(state types.ConnState)

// Manager owns the push-channel socket. It dials the monitor endpoint,
// feeds decoded frames to the frame handler, and on close or error
// schedules a fixed-delay reconnect with no backoff growth and no retry
// cap: reconnection is attempted for the lifetime of the context.
type Manager struct {
	wsURL          string
	reconnectDelay time.Duration
	dialTimeout    time.Duration
	dialer         *websocket.Dialer
	logger         zerolog.Logger

	onFrame FrameHandler
	onState StateHandler

	mu      sync.RWMutex
	state   types.ConnState
	started bool
	cancel  context.CancelFunc
	done    chan struct{}
	health  Health
}

// Health tracks push-channel statistics for the status endpoint
type Health struct {
	Connected      bool
	ConnectedSince time.Time
	LastFrame      time.Time
	FrameCount     int64
	MalformedCount int64
	ReconnectCount int
	LastError      string
}

// NewManager creates a connection manager for the given push endpoint
func NewManager(wsURL string, reconnectDelay time.Duration, onFrame FrameHandler, onState StateHandler, logger zerolog.Logger) *Manager {
	return &Manager{
		wsURL:          wsURL,
		reconnectDelay: reconnectDelay,
		dialTimeout:    defaultDialTimeout,
		dialer:         &websocket.Dialer{HandshakeTimeout: defaultDialTimeout},
		logger:         logger.With().Str("component", "conn").Logger(),
		onFrame:        onFrame,
		onState:        onState,
		state:          types.ConnOffline,
	}
}

// Start launches the connection loop. It is idempotent: calling it while
// the loop is already running does not create a second live channel.
func (m *Manager) Start(ctx context.Context) {
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		m.logger.Debug().Msg("Connection loop already running, ignoring Start")
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	m.started = true
	m.cancel = cancel
	m.done = make(chan struct{})
	m.mu.Unlock()

	go m.run(runCtx)
}

// State returns the current connectivity status
func (m *Manager) State() types.ConnState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Health returns the current channel statistics
func (m *Manager) Health() Health {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.health
}

// Done returns a channel closed when the connection loop has exited
func (m *Manager) Done() <-chan struct{} {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.done
}

// Close stops the connection loop and tears down any live socket
func (m *Manager) Close() {
	m.mu.Lock()
	cancel := m.cancel
	m.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// run is the connection lifecycle: dial with indefinite fixed-delay
// retry, then read until the socket drops, then wait one delay and dial
// again. Exits only when ctx is cancelled.
func (m *Manager) run(ctx context.Context) {
	defer func() {
		m.mu.Lock()
		m.started = false
		done := m.done
		m.mu.Unlock()
		close(done)
	}()

	for {
		ws, err := m.dialUntilConnected(ctx)
		if err != nil {
			return
		}

		m.setState(types.ConnOnline)
		m.logger.Info().Str("url", m.wsURL).Msg("Push channel established")

		m.readLoop(ctx, ws)
		ws.Close()
		m.setState(types.ConnOffline)

		select {
		case <-ctx.Done():
			return
		case <-time.After(m.reconnectDelay):
		}
	}
}

// dialUntilConnected retries the websocket handshake forever at a fixed
// delay. Returns an error only when the context is cancelled.
func (m *Manager) dialUntilConnected(ctx context.Context) (*websocket.Conn, error) {
	var ws *websocket.Conn

	r := retry.New(
		retry.Context(ctx),
		retry.Attempts(0),
		retry.Delay(m.reconnectDelay),
		retry.DelayType(retry.FixedDelay),
		retry.OnRetry(func(attempt uint, err error) {
			m.mu.Lock()
			m.health.ReconnectCount++
			m.health.LastError = err.Error()
			m.mu.Unlock()
			m.logger.Warn().
				Err(err).
				Uint("attempt", attempt).
				Dur("retry_in", m.reconnectDelay).
				Msg("Push channel handshake failed, retrying")
		}),
	)

	err := r.Do(func() error {
		m.setState(types.ConnConnecting)
		dialCtx, dialCancel := context.WithTimeout(ctx, m.dialTimeout)
		defer dialCancel()

		c, _, err := m.dialer.DialContext(dialCtx, m.wsURL, nil)
		if err != nil {
			m.setState(types.ConnOffline)
			return err
		}
		ws = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.health.Connected = true
	m.health.ConnectedSince = time.Now()
	m.health.LastError = ""
	m.mu.Unlock()
	return ws, nil
}

// readLoop consumes frames until the socket errors out. A watcher
// goroutine closes the socket when ctx is cancelled so the blocking
// read unblocks promptly.
func (m *Manager) readLoop(ctx context.Context, ws *websocket.Conn) {
	readDone := make(chan struct{})
	defer close(readDone)

	go func() {
		select {
		case <-ctx.Done():
			ws.Close()
		case <-readDone:
		}
	}()

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			m.mu.Lock()
			m.health.Connected = false
			m.health.LastError = err.Error()
			m.mu.Unlock()
			if ctx.Err() == nil {
				m.logger.Warn().Err(err).Msg("Push channel lost, will reconnect")
			}
			return
		}
		m.handleFrame(data)
	}
}

// handleFrame decodes one inbound frame. Malformed frames are logged at
// informational level and discarded; a hostile or buggy server must not
// be able to crash the client this way.
func (m *Manager) handleFrame(data []byte) {
	if !gjson.ValidBytes(data) {
		m.noteMalformed(data, "not valid JSON")
		return
	}
	if !gjson.GetBytes(data, "event").Exists() {
		m.noteMalformed(data, "missing event discriminator")
		return
	}

	var ev types.InboundEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		m.noteMalformed(data, err.Error())
		return
	}

	m.mu.Lock()
	m.health.FrameCount++
	m.health.LastFrame = time.Now()
	m.mu.Unlock()

	if m.onFrame != nil {
		m.onFrame(ev)
	}
}

func (m *Manager) noteMalformed(data []byte, reason string) {
	m.mu.Lock()
	m.health.MalformedCount++
	m.mu.Unlock()
	m.logger.Info().
		Str("reason", reason).
		Int("bytes", len(data)).
		Msg("Discarding malformed push frame")
}

func (m *Manager) setState(state types.ConnState) {
	m.mu.Lock()
	changed := m.state != state
	m.state = state
	m.mu.Unlock()

	if changed && m.onState != nil {
		m.onState(state)
	}
}
