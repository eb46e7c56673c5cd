package hub

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func recvEvent(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case data := <-c.Send:
		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			t.Fatalf("bad event payload: %v", err)
		}
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestHub_BroadcastReachesSubscribers(t *testing.T) {
	h := NewHub(testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go h.Run(ctx)

	sub := NewClient("sub", 8)
	other := NewClient("other", 8)
	h.Register(sub)
	h.Register(other)
	h.Subscribe(sub, []string{TopicAlerts})
	h.Subscribe(other, []string{TopicTelemetry})

	h.Broadcast(TopicAlerts, map[string]string{"id": "a1"})

	ev := recvEvent(t, sub)
	if ev.Topic != TopicAlerts {
		t.Errorf("expected alerts topic, got %q", ev.Topic)
	}

	select {
	case data := <-other.Send:
		t.Fatalf("unsubscribed client received event: %s", data)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_Unsubscribe(t *testing.T) {
	h := NewHub(testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go h.Run(ctx)

	c := NewClient("c", 8)
	h.Register(c)
	h.Subscribe(c, []string{TopicTelemetry, TopicAlerts})
	h.Unsubscribe(c, []string{TopicTelemetry})

	if c.HasTopic(TopicTelemetry) {
		t.Error("expected telemetry subscription removed")
	}
	if !c.HasTopic(TopicAlerts) {
		t.Error("expected alerts subscription kept")
	}

	h.Broadcast(TopicTelemetry, "x")
	select {
	case data := <-c.Send:
		t.Fatalf("received event after unsubscribe: %s", data)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	h := NewHub(testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go h.Run(ctx)

	c := NewClient("c", 8)
	h.Register(c)
	h.Subscribe(c, []string{TopicReports})

	// wait for the register to be processed so the unregister finds the client
	deadline := time.Now().Add(time.Second)
	for h.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(time.Millisecond)
	}

	h.Unregister(c)

	select {
	case _, ok := <-c.Send:
		if ok {
			t.Fatal("expected closed channel, got event")
		}
	case <-time.After(time.Second):
		t.Fatal("send channel not closed after unregister")
	}
}

func TestValidTopic(t *testing.T) {
	for _, topic := range []string{TopicTelemetry, TopicAlerts, TopicNotifications, TopicReports} {
		if !ValidTopic(topic) {
			t.Errorf("expected %q to be valid", topic)
		}
	}
	if ValidTopic("tiles") {
		t.Error("expected unknown topic to be invalid")
	}
}
