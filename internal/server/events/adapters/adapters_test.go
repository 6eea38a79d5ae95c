package adapters

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/ultrasearch/internal/server/events"
	"github.com/agentstation/ultrasearch/internal/server/sse"
	ws "github.com/agentstation/ultrasearch/internal/server/websocket"
)

func TestSubscribersImplementInterface(t *testing.T) {
	logger := zerolog.Nop()
	var _ events.Subscriber = NewSSESubscriber(sse.NewBroadcaster(&logger))
	var _ events.Subscriber = NewWebSocketSubscriber(ws.NewHub(&logger))
}

func TestSendWithoutClients(t *testing.T) {
	logger := zerolog.Nop()
	event := events.Event{Type: events.CatalogReloaded, Timestamp: time.Now(), Data: map[string]any{"instrument": "ultracam"}}

	sseSub := NewSSESubscriber(sse.NewBroadcaster(&logger))
	assert.NoError(t, sseSub.Send(event))
	assert.NoError(t, sseSub.Close())
	assert.NoError(t, sseSub.Close(), "Close is idempotent")

	wsSub := NewWebSocketSubscriber(ws.NewHub(&logger))
	assert.NoError(t, wsSub.Send(event))
	assert.NoError(t, wsSub.Close())
}

func TestBrokerToSSEStream(t *testing.T) {
	logger := zerolog.Nop()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	broadcaster := sse.NewBroadcaster(&logger)
	go broadcaster.Run(ctx)
	broker := events.NewBroker(&logger)
	go broker.Run(ctx)
	broker.Subscribe(NewSSESubscriber(broadcaster))

	srv := httptest.NewServer(broadcaster)
	defer srv.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Eventually(t, func() bool {
		return broadcaster.ClientCount() == 1 && broker.SubscriberCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	broker.Publish(events.CatalogReloaded, map[string]any{"instrument": "ultraspec"})

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case line, ok := <-lines:
			require.True(t, ok, "stream ended early")
			if strings.HasPrefix(line, "event: catalog.reloaded") {
				data := <-lines
				for strings.HasPrefix(data, "id:") {
					data = <-lines
				}
				assert.Contains(t, data, `"instrument":"ultraspec"`)
				return
			}
		case <-deadline:
			t.Fatal("catalog.reloaded event not received")
		}
	}
}
