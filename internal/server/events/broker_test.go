package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSubscriber struct {
	mu     sync.Mutex
	events []Event
	closed bool
}

func (m *mockSubscriber) Send(event Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *mockSubscriber) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockSubscriber) received() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Event(nil), m.events...)
}

func (m *mockSubscriber) isClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func newTestBroker(t *testing.T) (*Broker, context.CancelFunc) {
	t.Helper()
	logger := zerolog.Nop()
	b := NewBroker(&logger)
	ctx, cancel := context.WithCancel(context.Background())
	go b.Run(ctx)
	t.Cleanup(cancel)
	return b, cancel
}

func TestBrokerDeliversEvents(t *testing.T) {
	b, _ := newTestBroker(t)

	sub := &mockSubscriber{}
	b.Subscribe(sub)
	require.Eventually(t, func() bool { return b.SubscriberCount() == 1 }, time.Second, 5*time.Millisecond)

	b.Publish(CatalogReloaded, map[string]any{"instrument": "ultracam", "generation": 2})

	require.Eventually(t, func() bool { return len(sub.received()) == 1 }, time.Second, 5*time.Millisecond)
	got := sub.received()[0]
	assert.Equal(t, CatalogReloaded, got.Type)
	assert.False(t, got.Timestamp.IsZero())
	assert.EqualValues(t, 1, b.EventsPublished())
}

func TestBrokerUnsubscribe(t *testing.T) {
	b, _ := newTestBroker(t)

	sub := &mockSubscriber{}
	b.Subscribe(sub)
	require.Eventually(t, func() bool { return b.SubscriberCount() == 1 }, time.Second, 5*time.Millisecond)

	b.Unsubscribe(sub)
	require.Eventually(t, func() bool { return b.SubscriberCount() == 0 }, time.Second, 5*time.Millisecond)
	assert.True(t, sub.isClosed())
}

func TestBrokerShutdownClosesSubscribers(t *testing.T) {
	b, cancel := newTestBroker(t)

	subs := []*mockSubscriber{{}, {}}
	for _, s := range subs {
		b.Subscribe(s)
	}
	require.Eventually(t, func() bool { return b.SubscriberCount() == 2 }, time.Second, 5*time.Millisecond)

	cancel()
	require.Eventually(t, func() bool { return b.SubscriberCount() == 0 }, time.Second, 5*time.Millisecond)
	for _, s := range subs {
		assert.True(t, s.isClosed())
	}
}

func TestBrokerSubscribeBeforeRun(t *testing.T) {
	logger := zerolog.Nop()
	b := NewBroker(&logger)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 5; i++ {
			b.Subscribe(&mockSubscriber{})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Subscribe blocked before Run started")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Run(ctx)
	require.Eventually(t, func() bool { return b.SubscriberCount() == 5 }, time.Second, 5*time.Millisecond)
}

func TestBrokerPublishDropsWhenFull(t *testing.T) {
	logger := zerolog.Nop()
	b := NewBroker(&logger)

	// Nothing drains the queue until Run starts.
	for i := 0; i < cap(b.events)+3; i++ {
		b.Publish(CatalogReloaded, i)
	}
	assert.EqualValues(t, cap(b.events), b.EventsPublished())
	assert.EqualValues(t, 3, b.EventsDropped())
	assert.Equal(t, cap(b.events), b.QueueDepth())
}
