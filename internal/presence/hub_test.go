package presence

import (
	"encoding/json"
	"testing"
)

const userID = "11111111-1111-1111-1111-111111111111"

func TestDeliverToRegisteredSession(t *testing.T) {
	hub := NewHub()
	events, cancel := hub.Register(userID, 1)
	defer cancel()

	hub.Deliver(userID, Event{Type: EventMessageReceive, Data: json.RawMessage(`{"x":1}`)})

	select {
	case event := <-events:
		if event.Type != EventMessageReceive {
			t.Fatalf("unexpected event type %q", event.Type)
		}
	default:
		t.Fatal("expected a buffered event")
	}
}

func TestDeliverWithoutSessionIsNoop(t *testing.T) {
	hub := NewHub()
	// Must not panic or block.
	hub.Deliver(userID, Event{Type: EventMessageReceive})
	if hub.Connected(userID) {
		t.Fatal("expected no session")
	}
}

func TestRegisterReplacesPreviousSession(t *testing.T) {
	hub := NewHub()
	first, cancelFirst := hub.Register(userID, 1)
	second, cancelSecond := hub.Register(userID, 1)
	defer cancelSecond()

	// The superseded channel is closed so its pump exits.
	if _, ok := <-first; ok {
		t.Fatal("expected first channel to be closed")
	}

	hub.Deliver(userID, Event{Type: EventMessageSent})
	select {
	case event := <-second:
		if event.Type != EventMessageSent {
			t.Fatalf("unexpected event type %q", event.Type)
		}
	default:
		t.Fatal("expected event on the replacement session")
	}

	// Cancelling the evicted session must not tear down the current one.
	cancelFirst()
	if !hub.Connected(userID) {
		t.Fatal("expected replacement session to survive stale cancel")
	}
}

func TestCancelRemovesSession(t *testing.T) {
	hub := NewHub()
	events, cancel := hub.Register(userID, 1)

	cancel()
	if hub.Connected(userID) {
		t.Fatal("expected session to be removed")
	}
	if _, ok := <-events; ok {
		t.Fatal("expected channel to be closed")
	}

	// Idempotent, and delivery after cancel is a silent drop.
	cancel()
	hub.Deliver(userID, Event{Type: EventMessageReceive})
}

func TestDeliverDropsWhenBufferFull(t *testing.T) {
	hub := NewHub()
	events, cancel := hub.Register(userID, 1)
	defer cancel()

	hub.Deliver(userID, Event{Type: "first"})
	// Buffer is full; this must drop instead of blocking.
	hub.Deliver(userID, Event{Type: "second"})

	event := <-events
	if event.Type != "first" {
		t.Fatalf("expected first event to survive, got %q", event.Type)
	}
	select {
	case extra := <-events:
		t.Fatalf("expected overflow to be dropped, got %q", extra.Type)
	default:
	}
}

func TestRegisterEmptyUserID(t *testing.T) {
	hub := NewHub()
	events, cancel := hub.Register("   ", 1)
	defer cancel()
	if _, ok := <-events; ok {
		t.Fatal("expected dead channel for empty user id")
	}
	if hub.Connected("") {
		t.Fatal("expected no session for empty user id")
	}
}
