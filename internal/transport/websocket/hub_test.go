package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"

	"hoststatus/internal/config"
	"hoststatus/internal/logger"
)

func startServer(t *testing.T, cfg *config.Config, replay ReplayFunc) (*Hub, string) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := NewHub(logger.Nop(), replay)
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(NewHandler(hub, logger.Nop(), cfg).Serve))
	t.Cleanup(srv.Close)

	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	return ev
}

func TestSubscribeReplayAndEmit(t *testing.T) {
	replay := func(channel string) (*Event, bool) {
		if channel != ChannelStatus {
			return nil, false
		}
		return &Event{Channel: channel, Event: EventStatusUpdated, Payload: "latest"}, true
	}

	hub, url := startServer(t, &config.Config{}, replay)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(ClientMessage{Type: "subscribe", Channel: ChannelStatus}); err != nil {
		t.Fatal(err)
	}

	ev := readEvent(t, conn)
	if ev.Event != EventStatusUpdated || ev.Payload != "latest" {
		t.Fatalf("replayed event = %+v", ev)
	}

	hub.Emit(ChannelStatus, EventStatusUpdated, map[string]string{"loadavg": "ok"})

	ev = readEvent(t, conn)
	payload, ok := ev.Payload.(map[string]any)
	if !ok || payload["loadavg"] != "ok" {
		t.Errorf("emitted event = %+v", ev)
	}
}

func TestServeRequiresToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: "s3cret"}
	_, url := startServer(t, cfg, nil)

	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("dial without token succeeded")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("response = %v, want 401", resp)
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "ops"}).SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		t.Fatal(err)
	}

	header := http.Header{"Authorization": []string{"Bearer " + token}}
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	if err != nil {
		t.Fatalf("dial with token: %v", err)
	}
	conn.Close()
}

func TestEmitWithoutSubscribersDoesNotBlock(t *testing.T) {
	hub := NewHub(logger.Nop(), nil)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 500; i++ {
			hub.Emit(ChannelStatus, EventStatusUpdated, i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Emit blocked with no hub loop running")
	}
}
