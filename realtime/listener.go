package realtime

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/yeremiapane/tableservice-client/utils"
)

// Event names pushed by the backend. Payloads are never trusted; an event is
// purely a signal that the named aggregate may have changed.
const (
	EventActivityPanelUpdated     = "activity_panel_updated"
	EventAssistanceRequestUpdated = "assistance_request_update"
)

type Message struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// TokenSource supplies the bearer token used to authenticate the push
// connection.
type TokenSource interface {
	AccessToken() string
}

// Subscription identifies one registered handler so a view can detach
// exactly what it attached when it goes away.
type Subscription struct {
	event string
	id    int
}

// Listener holds the persistent push connection and fans each event out to
// the handlers subscribed to it.
type Listener struct {
	url    string
	tokens TokenSource

	mutex    sync.Mutex
	handlers map[string]map[int]func()
	nextID   int
	conn     *websocket.Conn
	closed   bool
}

const reconnectDelay = 3 * time.Second

func NewListener(url string, tokens TokenSource) *Listener {
	return &Listener{
		url:      url,
		tokens:   tokens,
		handlers: make(map[string]map[int]func()),
	}
}

// Subscribe registers a handler for the named event and returns the handle
// needed to unsubscribe it.
func (l *Listener) Subscribe(event string, handler func()) Subscription {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if l.handlers[event] == nil {
		l.handlers[event] = make(map[int]func())
	}
	l.nextID++
	l.handlers[event][l.nextID] = handler
	return Subscription{event: event, id: l.nextID}
}

// Unsubscribe detaches a single handler. Leaving handlers attached after a
// view goes away accumulates duplicate re-fetches, so every Subscribe must
// be paired with an Unsubscribe.
func (l *Listener) Unsubscribe(sub Subscription) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if handlers, ok := l.handlers[sub.event]; ok {
		delete(handlers, sub.id)
	}
}

// Start opens the push connection and keeps it alive until Close, redialing
// after transient failures.
func (l *Listener) Start() {
	go l.run()
}

func (l *Listener) run() {
	for {
		l.mutex.Lock()
		if l.closed {
			l.mutex.Unlock()
			return
		}
		l.mutex.Unlock()

		if err := l.connectAndRead(); err != nil {
			utils.ErrorLogger.Errorf("push connection lost: %v", err)
		}

		l.mutex.Lock()
		if l.closed {
			l.mutex.Unlock()
			return
		}
		l.mutex.Unlock()
		time.Sleep(reconnectDelay)
	}
}

func (l *Listener) connectAndRead() error {
	header := http.Header{}
	if token := l.tokens.AccessToken(); token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	conn, _, err := websocket.DefaultDialer.Dial(l.url, header)
	if err != nil {
		return err
	}

	l.mutex.Lock()
	if l.closed {
		l.mutex.Unlock()
		conn.Close()
		return nil
	}
	l.conn = conn
	l.mutex.Unlock()

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			conn.Close()
			return err
		}
		l.dispatch(msg.Event)
	}
}

func (l *Listener) dispatch(event string) {
	l.mutex.Lock()
	handlers := make([]func(), 0, len(l.handlers[event]))
	for _, h := range l.handlers[event] {
		handlers = append(handlers, h)
	}
	l.mutex.Unlock()

	for _, h := range handlers {
		h()
	}
}

// Close tears the connection down and stops the redial loop.
func (l *Listener) Close() {
	l.mutex.Lock()
	l.closed = true
	conn := l.conn
	l.conn = nil
	l.mutex.Unlock()

	if conn != nil {
		conn.Close()
	}
}
