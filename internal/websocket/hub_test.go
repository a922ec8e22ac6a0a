package websocket

import (
	"encoding/json"
	"testing"
	"time"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func newTestClient(hub *Hub, sessionID string, buffer int) *Client {
	return &Client{
		Hub:       hub,
		SessionID: sessionID,
		Send:      make(chan []byte, buffer),
	}
}

func register(t *testing.T, hub *Hub, client *Client) {
	t.Helper()
	select {
	case hub.register <- client:
	case <-time.After(time.Second):
		t.Fatal("timed out registering client")
	}

	// The map insert happens after the channel handoff; wait for it so
	// an immediate Broadcast cannot miss the client.
	deadline := time.Now().Add(time.Second)
	for {
		hub.mu.RLock()
		registered := false
		for _, c := range hub.clients[client.SessionID] {
			if c == client {
				registered = true
			}
		}
		hub.mu.RUnlock()
		if registered {
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("client never appeared in the hub")
		}
		time.Sleep(time.Millisecond)
	}
}

func receive(t *testing.T, client *Client) SessionEvent {
	t.Helper()
	select {
	case payload := <-client.Send:
		var event SessionEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			t.Fatalf("broadcast payload is not a SessionEvent: %v", err)
		}
		return event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for broadcast")
		return SessionEvent{}
	}
}

func TestBroadcastReachesSessionClients(t *testing.T) {
	hub := NewHub(nopLogger{})
	go hub.Run()

	a := newTestClient(hub, "sess-a", 4)
	b := newTestClient(hub, "sess-a", 4)
	other := newTestClient(hub, "sess-b", 4)
	register(t, hub, a)
	register(t, hub, b)
	register(t, hub, other)

	hub.Broadcast("sess-a", EventTranscribing, map[string]interface{}{"step": 1})

	for _, client := range []*Client{a, b} {
		event := receive(t, client)
		if event.Event != EventTranscribing || event.SessionId != "sess-a" {
			t.Errorf("got event %+v", event)
		}
	}
	select {
	case payload := <-other.Send:
		t.Errorf("client of another session received %s", payload)
	default:
	}
}

func TestBroadcastSkipsFullBuffers(t *testing.T) {
	hub := NewHub(nopLogger{})
	go hub.Run()

	slow := newTestClient(hub, "sess-a", 1)
	register(t, hub, slow)

	// Two broadcasts into a one-slot buffer: the second is dropped
	// instead of blocking the caller.
	done := make(chan struct{})
	go func() {
		hub.Broadcast("sess-a", EventTranscribed, nil)
		hub.Broadcast("sess-a", EventAnswered, nil)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Broadcast blocked on a full client buffer")
	}

	event := receive(t, slow)
	if event.Event != EventTranscribed {
		t.Errorf("kept event = %q, want the first one", event.Event)
	}
	if len(slow.Send) != 0 {
		t.Error("dropped event still arrived")
	}
}

func TestBroadcastNilHub(t *testing.T) {
	var hub *Hub
	hub.Broadcast("sess", EventError, nil) // must not panic
}

func TestUnregisterClosesSend(t *testing.T) {
	hub := NewHub(nopLogger{})
	go hub.Run()

	client := newTestClient(hub, "sess-a", 1)
	register(t, hub, client)

	select {
	case hub.unregister <- client:
	case <-time.After(time.Second):
		t.Fatal("timed out unregistering client")
	}

	select {
	case _, ok := <-client.Send:
		if ok {
			t.Error("expected the send channel to be closed, got a message")
		}
	case <-time.After(time.Second):
		t.Fatal("send channel was not closed")
	}

	// Broadcasts after unregister go nowhere and must not panic.
	hub.Broadcast("sess-a", EventAnswered, nil)
}
