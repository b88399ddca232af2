// Package session owns the streaming connection to the Applaude chat
// backend: one websocket at a time, a connect/reconnect state machine, and
// the dispatcher that turns inbound frames into transcript entries and
// progress-state merges.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"applaude/internal/auth"
	"applaude/internal/chat"
	"applaude/internal/logging"
)

// ConnState is the connectivity state of the session.
type ConnState int

const (
	StateIdle ConnState = iota
	StateConnecting
	StateOpen
	StateClosed
)

var (
	// ErrNotConnected is returned by Send while the socket is not open.
	ErrNotConnected = errors.New("session is not connected")
	// ErrSessionClosed is returned by Connect after Disconnect.
	ErrSessionClosed = errors.New("session is closed")
	// ErrEmptyMessage is returned by Send for blank input.
	ErrEmptyMessage = errors.New("message is empty")
)

const closeReasonClient = "client-initiated"

// Options configures a session manager.
type Options struct {
	Host           string // host:port of the backend
	Secure         bool   // wss when true
	Room           string
	ReconnectDelay time.Duration
	// OnConnectivity reports the binary connected indicator; runs on
	// whichever goroutine changed the state.
	OnConnectivity func(connected bool)
}

// Manager owns at most one live websocket handle. A new connect attempt
// closes any prior handle before installing its own; a connection epoch
// counter keeps stale dials and stale reconnect timers from touching state
// they no longer own.
type Manager struct {
	cred       *auth.Credential
	opts       Options
	dialer     *websocket.Dialer
	dispatcher *Dispatcher
	log        *chat.Log

	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	conn        *websocket.Conn
	state       ConnState
	closeReason string
	epoch       int
}

// NewManager creates an idle session manager. ctx bounds the whole session:
// cancelling it stops reconnect scheduling and the read loop.
func NewManager(ctx context.Context, cred *auth.Credential, opts Options, dispatcher *Dispatcher, log *chat.Log) *Manager {
	if opts.ReconnectDelay <= 0 {
		opts.ReconnectDelay = 3 * time.Second
	}
	sctx, cancel := context.WithCancel(ctx)
	return &Manager{
		cred:       cred,
		opts:       opts,
		dialer:     &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		dispatcher: dispatcher,
		log:        log,
		ctx:        sctx,
		cancel:     cancel,
	}
}

// State returns the current connectivity state.
func (m *Manager) State() ConnState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// CloseReason returns the reason recorded for the last close, if any.
func (m *Manager) CloseReason() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closeReason
}

// endpointURL builds ws(s)://host/ws/chat/<room>/?token=<bearer>.
func (m *Manager) endpointURL() string {
	scheme := "ws"
	if m.opts.Secure {
		scheme = "wss"
	}
	u := url.URL{
		Scheme:   scheme,
		Host:     m.opts.Host,
		Path:     "/ws/chat/" + m.opts.Room + "/",
		RawQuery: m.cred.Query().Encode(),
	}
	return u.String()
}

// Connect opens the streaming connection, discarding and closing any
// existing handle first. On success it emits the welcome entry and starts
// the read loop; on failure it schedules one reconnect attempt and returns
// the dial error.
func (m *Manager) Connect() error {
	if !m.cred.Valid() {
		return auth.ErrNoToken
	}

	m.mu.Lock()
	if m.state == StateClosed {
		m.mu.Unlock()
		return ErrSessionClosed
	}
	if m.conn != nil {
		m.conn.Close()
		m.conn = nil
	}
	m.epoch++
	epoch := m.epoch
	m.state = StateConnecting
	m.mu.Unlock()
	m.notifyConnectivity(false)

	endpoint := m.endpointURL()
	logging.Info("connecting to chat", "room", m.opts.Room, "host", m.opts.Host)

	conn, resp, err := m.dialer.DialContext(m.ctx, endpoint, nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		logging.Warn("websocket dial failed", "error", err)
		m.scheduleReconnect(epoch)
		return fmt.Errorf("dial %s: %w", m.opts.Host, err)
	}

	m.mu.Lock()
	if m.epoch != epoch || m.state == StateClosed {
		// A newer connect or a teardown happened while we were dialing.
		m.mu.Unlock()
		conn.Close()
		return nil
	}
	m.conn = conn
	m.state = StateOpen
	m.mu.Unlock()
	m.notifyConnectivity(true)

	// Exactly one welcome per successful open; the epoch check above means
	// a superseded dial can never get here for the same epoch.
	m.log.Append(chat.RoleAssistant, fmt.Sprintf(
		"Hey %s, share your web URL or describe what you'd love me to build for you today!",
		m.cred.DisplayName()))

	go m.readLoop(conn, epoch)
	return nil
}

// readLoop pumps frames from one connection into the dispatcher until the
// connection dies or is superseded.
func (m *Manager) readLoop(conn *websocket.Conn, epoch int) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			m.handleClose(epoch, err)
			return
		}

		frame, derr := DecodeFrame(data)
		if derr != nil {
			logging.Warn("dropping malformed frame", "error", derr)
			continue
		}
		m.dispatcher.Dispatch(m.ctx, frame)
	}
}

// handleClose reacts to a read failure: a clean client-initiated close ends
// the session, anything else schedules exactly one reconnect.
func (m *Manager) handleClose(epoch int, err error) {
	m.mu.Lock()
	if m.epoch != epoch {
		m.mu.Unlock()
		return
	}
	m.conn = nil
	if m.state == StateClosed {
		m.mu.Unlock()
		return
	}
	m.state = StateConnecting
	m.closeReason = err.Error()
	m.mu.Unlock()

	logging.Warn("connection lost", "error", err)
	m.notifyConnectivity(false)
	m.scheduleReconnect(epoch)
}

// scheduleReconnect arms a single delayed reconnect for the given epoch.
// Session cancellation or a newer epoch disarms it.
func (m *Manager) scheduleReconnect(epoch int) {
	go func() {
		select {
		case <-m.ctx.Done():
			return
		case <-time.After(m.opts.ReconnectDelay):
		}

		m.mu.Lock()
		stale := m.epoch != epoch || m.state == StateClosed
		m.mu.Unlock()
		if stale {
			return
		}

		logging.Info("attempting to reconnect", "room", m.opts.Room)
		if err := m.Connect(); err != nil && !errors.Is(err, ErrSessionClosed) {
			logging.Warn("reconnect failed", "error", err)
		}
	}()
}

// Send transmits one outbound chat message. It is a no-op error unless the
// session is Open.
func (m *Manager) Send(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyMessage
	}

	m.mu.Lock()
	conn := m.conn
	open := m.state == StateOpen
	m.mu.Unlock()

	if !open || conn == nil {
		return ErrNotConnected
	}
	return conn.WriteJSON(outboundFrame{Message: text})
}

// Disconnect performs the client-initiated close: terminal Closed state, no
// reconnect, pending timers cancelled.
func (m *Manager) Disconnect() {
	m.mu.Lock()
	if m.state == StateClosed {
		m.mu.Unlock()
		return
	}
	m.state = StateClosed
	m.closeReason = closeReasonClient
	conn := m.conn
	m.conn = nil
	m.mu.Unlock()

	m.cancel()
	if conn != nil {
		deadline := time.Now().Add(time.Second)
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, closeReasonClient), deadline)
		conn.Close()
	}
	m.notifyConnectivity(false)
}

func (m *Manager) notifyConnectivity(connected bool) {
	if m.opts.OnConnectivity != nil {
		m.opts.OnConnectivity(connected)
	}
}
