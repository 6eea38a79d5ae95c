package websocket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := NewClient("test-client", hub, conn, Message{Type: "client.connected", Timestamp: time.Now()})
		hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
	}))
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func TestHubBroadcast(t *testing.T) {
	logger := zerolog.Nop()
	hub := NewHub(&logger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	srv := newTestServer(t, hub)
	defer srv.Close()

	conn := dial(t, srv)
	defer conn.Close()

	var greeting Message
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&greeting))
	assert.Equal(t, "client.connected", greeting.Type)

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.Broadcast(Message{Type: "catalog.reloaded", Timestamp: time.Now(), Data: map[string]any{"generation": 3}})

	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "catalog.reloaded", msg.Type)
	assert.Equal(t, map[string]any{"generation": float64(3)}, msg.Data)
}

func TestHubUnregistersOnDisconnect(t *testing.T) {
	logger := zerolog.Nop()
	hub := NewHub(&logger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	srv := newTestServer(t, hub)
	defer srv.Close()

	conn := dial(t, srv)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHubShutdownDisconnectsClients(t *testing.T) {
	logger := zerolog.Nop()
	hub := NewHub(&logger)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	srv := newTestServer(t, hub)
	defer srv.Close()

	conn := dial(t, srv)
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)

	// Greeting first, then the close frame.
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var greeting Message
	require.NoError(t, conn.ReadJSON(&greeting))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}

func TestBroadcastWithoutRunDoesNotBlock(t *testing.T) {
	logger := zerolog.Nop()
	hub := NewHub(&logger)
	for i := 0; i < cap(hub.broadcast)+5; i++ {
		hub.Broadcast(Message{Type: "x"})
	}
	assert.Equal(t, cap(hub.broadcast), len(hub.broadcast))
}
