// Package presence tracks which users hold a live connection and fans out
// realtime events to them. State is process-local and rebuilt from scratch on
// restart; durability is the message log's job, not this package's.
package presence

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/google/uuid"
)

const (
	// DefaultBufferSize is the per-session event channel buffer.
	DefaultBufferSize = 64

	// EventMessageReceive carries a message addressed to the session's user.
	EventMessageReceive = "message:receive"
	// EventMessageSent echoes a message the session's user just sent.
	EventMessageSent = "message:sent"
)

// Event is one frame pushed to a live session.
type Event struct {
	Type string          `json:"event"`
	Data json.RawMessage `json:"data,omitempty"`
}

type session struct {
	id string
	ch chan Event
}

// Hub maps each user id to at most one live session. A new registration for
// the same user evicts the previous session and closes its channel, so only
// the most recent connection receives events.
type Hub struct {
	mu       sync.Mutex
	sessions map[string]*session
}

// NewHub creates an empty presence hub.
func NewHub() *Hub {
	return &Hub{
		sessions: map[string]*session{},
	}
}

// Register opens a session for userID and returns its event channel plus a
// cancel function. Cancel is idempotent and only removes the entry if this
// session is still the current one, so a reconnect that already replaced it
// is left untouched.
func (h *Hub) Register(userID string, buffer int) (<-chan Event, func()) {
	userID = strings.TrimSpace(userID)
	if h == nil || userID == "" {
		ch := make(chan Event)
		close(ch)
		return ch, func() {}
	}
	if buffer <= 0 {
		buffer = DefaultBufferSize
	}

	next := &session{
		id: uuid.NewString(),
		ch: make(chan Event, buffer),
	}

	h.mu.Lock()
	if prev, ok := h.sessions[userID]; ok {
		close(prev.ch)
	}
	h.sessions[userID] = next
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			if current, ok := h.sessions[userID]; ok && current.id == next.id {
				delete(h.sessions, userID)
				close(current.ch)
			}
			h.mu.Unlock()
		})
	}

	return next.ch, cancel
}

// Deliver pushes one event to userID's live session if there is one.
// Best-effort: no session or a full buffer silently drops the event so the
// persistence path is never blocked.
func (h *Hub) Deliver(userID string, event Event) {
	if h == nil {
		return
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return
	}
	// The lock is held across the send so the channel cannot be closed
	// between lookup and send; the send itself never blocks.
	h.mu.Lock()
	defer h.mu.Unlock()
	current, ok := h.sessions[userID]
	if !ok {
		return
	}
	select {
	case current.ch <- event:
	default:
		// Drop if the session is slow; the durable log is authoritative.
	}
}

// Connected reports whether userID currently has a live session.
func (h *Hub) Connected(userID string) bool {
	if h == nil {
		return false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.sessions[strings.TrimSpace(userID)]
	return ok
}
