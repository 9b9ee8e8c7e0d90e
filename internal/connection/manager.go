package connection

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/himanshu0072451/homelink/domain/entities"
	"github.com/himanshu0072451/homelink/domain/repositories"
)

// Phase is the lifecycle stage of the current connection.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseConnecting Phase = "connecting"
	PhaseOpen       Phase = "open"
	PhaseClosed     Phase = "closed"
)

const (
	// Time allowed to write a frame to the peer.
	writeWait = 10 * time.Second

	// Delay before a closed connection is dialed again.
	reconnectDelay = 3 * time.Second

	// Maximum message size allowed from peer.
	maxMessageSize = 4 * 1024
)

// ErrNotConnected is returned by Send while no open channel exists.
var ErrNotConnected = errors.New("not connected to appliance")

// Manager owns the single websocket channel to the appliance. At most one
// handle is live at any instant; a lost channel is redialed forever on a
// fixed delay until Close.
type Manager struct {
	endpoint string
	dialer   *websocket.Dialer
	notifier repositories.Notifier
	logger   *zap.Logger

	// RetryDelay is the pause between a close and the next dial.
	// Overridable before Start; tests shorten it.
	RetryDelay time.Duration

	mu      sync.Mutex
	conn    *websocket.Conn
	phase   Phase
	lastErr string
	retry   *time.Timer
	closed  bool

	onEnvelope func(entities.Envelope)
}

// NewManager creates a manager for the given ws:// endpoint.
func NewManager(endpoint string, notifier repositories.Notifier, logger *zap.Logger) *Manager {
	return &Manager{
		endpoint:   endpoint,
		dialer:     websocket.DefaultDialer,
		notifier:   notifier,
		logger:     logger,
		RetryDelay: reconnectDelay,
		phase:      PhaseIdle,
	}
}

// OnEnvelope registers the consumer of parsed inbound frames. Must be set
// before Start.
func (m *Manager) OnEnvelope(fn func(entities.Envelope)) {
	m.onEnvelope = fn
}

// Start dials the appliance unless an attempt is already outstanding or a
// live handle is owned. Interleaved close events can each try to schedule
// a redial; this guard is what keeps a single channel.
func (m *Manager) Start() {
	m.mu.Lock()
	if m.closed || m.conn != nil || m.phase == PhaseConnecting {
		m.mu.Unlock()
		return
	}
	m.phase = PhaseConnecting
	m.mu.Unlock()

	go m.dial()
}

func (m *Manager) dial() {
	conn, _, err := m.dialer.Dial(m.endpoint, nil)
	if err != nil {
		m.logger.Warn("Dial failed",
			zap.String("endpoint", m.endpoint),
			zap.Error(err))
		m.handleError()
		m.handleClose()
		return
	}
	m.handleOpen(conn)
}

func (m *Manager) handleOpen(conn *websocket.Conn) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		conn.Close()
		return
	}
	m.conn = conn
	m.phase = PhaseOpen
	m.lastErr = ""
	m.mu.Unlock()

	m.logger.Info("Connected to appliance", zap.String("endpoint", m.endpoint))
	m.notifier.Display("Connected to device", entities.SeveritySuccess)

	go m.readPump(conn)
}

// readPump pumps frames from the websocket until the channel dies.
func (m *Manager) readPump(conn *websocket.Conn) {
	defer conn.Close()

	conn.SetReadLimit(maxMessageSize)
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			m.mu.Lock()
			stale := m.closed || m.conn != conn
			m.mu.Unlock()
			if stale {
				return
			}
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				m.logger.Error("WebSocket error", zap.Error(err))
				m.handleError()
			}
			m.handleClose()
			return
		}
		m.handleMessage(raw)
	}
}

// handleMessage parses one inbound frame and forwards it. A frame that
// fails to parse is dropped whole, never partially applied.
func (m *Manager) handleMessage(raw []byte) {
	env, err := ParseEnvelope(raw)
	if err != nil {
		m.logger.Warn("Dropping malformed frame", zap.Error(err))
		m.notifier.Display("Received malformed message from device", entities.SeverityError)
		return
	}
	if m.onEnvelope != nil {
		m.onEnvelope(env)
	}
}

// handleError records the failure for the display layer. Phase changes and
// reconnect scheduling belong to handleClose, which always follows.
func (m *Manager) handleError() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.lastErr = "Connection failed. Retrying..."
	m.mu.Unlock()

	m.notifier.Display("Connection failed. Retrying...", entities.SeverityError)
}

// handleClose clears the owned handle and schedules exactly one redial.
func (m *Manager) handleClose() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	if m.conn != nil {
		m.conn.Close()
		m.conn = nil
	}
	m.phase = PhaseClosed
	if m.retry != nil {
		m.retry.Stop()
	}
	m.retry = time.AfterFunc(m.RetryDelay, m.Start)
	delay := m.RetryDelay
	m.mu.Unlock()

	m.logger.Info("Connection closed, scheduling reconnect", zap.Duration("delay", delay))
	m.notifier.Display("Disconnected. Reconnecting...", entities.SeverityWarning)
}

// Send transmits one power command over the open channel. It never queues
// or retries: callers surface ErrNotConnected to the user instead.
func (m *Manager) Send(cmd entities.Command) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != PhaseOpen || m.conn == nil {
		return ErrNotConnected
	}

	payload, err := json.Marshal(outboundFrame{Command: string(cmd)})
	if err != nil {
		return fmt.Errorf("encoding command: %w", err)
	}

	m.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := m.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		return fmt.Errorf("writing command frame: %w", err)
	}
	return nil
}

// Phase returns the current lifecycle stage.
func (m *Manager) Phase() Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase
}

// LastError returns the recorded connection error text, empty when none.
func (m *Manager) LastError() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

// RecordError stores an error for the display layer.
func (m *Manager) RecordError(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastErr = msg
}

// ClearError discards any recorded error.
func (m *Manager) ClearError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastErr = ""
}

// Close tears the channel down and halts the reconnect cycle. A reconnect
// timer that already fired becomes a no-op via the Start guard.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	if m.retry != nil {
		m.retry.Stop()
		m.retry = nil
	}
	if m.conn != nil {
		m.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		m.conn.Close()
		m.conn = nil
	}
	m.phase = PhaseClosed
	return nil
}
