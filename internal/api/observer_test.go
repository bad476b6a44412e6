package api

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestObserverBroadcast(t *testing.T) {
	obs := NewObserver()
	defer obs.Close()

	srv := httptest.NewServer(obs.Handler())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// The subscription is registered on the handler goroutine; wait for it
	// before broadcasting.
	deadline := time.Now().Add(2 * time.Second)
	for obs.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	obs.Broadcast(map[string]any{"tick": 1, "agents": 25})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var msg struct {
		Tick   int `json:"tick"`
		Agents int `json:"agents"`
	}
	if err := json.Unmarshal(payload, &msg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if msg.Tick != 1 || msg.Agents != 25 {
		t.Fatalf("received %+v, want tick 1 agents 25", msg)
	}
}

func TestObserverBroadcastNoClients(t *testing.T) {
	obs := NewObserver()
	// Must be safe with nobody listening.
	obs.Broadcast(map[string]int{"tick": 3})
	obs.Close()
}
