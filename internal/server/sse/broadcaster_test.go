package sse

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
)

func TestBroadcasterStreamsEvents(t *testing.T) {
	logger := zerolog.Nop()
	b := NewBroadcaster(&logger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Run(ctx)

	srv := httptest.NewServer(b)
	defer srv.Close()

	reqCtx, reqCancel := context.WithCancel(context.Background())
	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	scanner := bufio.NewScanner(resp.Body)
	require.True(t, scanner.Scan())
	assert.Equal(t, "event: connected", scanner.Text())

	require.Eventually(t, func() bool { return b.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)
	b.Broadcast(Event{Event: "catalog.reloaded", ID: "7", Data: map[string]int{"generation": 7}})

	var got []string
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "event: catalog.reloaded") {
			got = append(got, line)
			require.True(t, scanner.Scan())
			got = append(got, scanner.Text())
			require.True(t, scanner.Scan())
			got = append(got, scanner.Text())
			break
		}
	}
	assert.Equal(t, []string{"event: catalog.reloaded", "id: 7", `data: {"generation":7}`}, got)

	reqCancel()
	require.Eventually(t, func() bool { return b.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestBroadcasterShutdownEndsStreams(t *testing.T) {
	logger := zerolog.Nop()
	b := NewBroadcaster(&logger)
	ctx, cancel := context.WithCancel(context.Background())
	go b.Run(ctx)

	srv := httptest.NewServer(b)
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Eventually(t, func() bool { return b.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	cancel()

	done := make(chan struct{})
	go func() {
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not end after shutdown")
	}
}
