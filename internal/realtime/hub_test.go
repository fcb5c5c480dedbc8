package realtime

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/yungbote/agrovet-backend/internal/platform/logger"
	"github.com/yungbote/agrovet-backend/internal/realtime/bus"
)

func mustTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	t.Cleanup(log.Sync)
	return log
}

func recvMessage(t *testing.T, ch <-chan SSEMessage, timeout time.Duration) SSEMessage {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for SSE message")
	}
	return SSEMessage{}
}

func TestSSEHubOrderingAndReconnect(t *testing.T) {
	hub := NewSSEHub(mustTestLogger(t))

	clientA := hub.NewSSEClient()
	hub.AddChannel(clientA, ChannelPortal)

	hub.Broadcast(SSEMessage{Channel: ChannelPortal, Event: SSEEventStateChanged, Data: map[string]any{"seq": 1}})
	hub.Broadcast(SSEMessage{Channel: ChannelPortal, Event: SSEEventStateChanged, Data: map[string]any{"seq": 2}})

	first := recvMessage(t, clientA.Outbound, time.Second)
	second := recvMessage(t, clientA.Outbound, time.Second)
	if first.Data.(map[string]any)["seq"] != 1 || second.Data.(map[string]any)["seq"] != 2 {
		t.Fatalf("out of order: %v then %v", first.Data, second.Data)
	}

	hub.CloseClient(clientA)
	hub.CloseClient(clientA)
	if _, ok := <-clientA.Outbound; ok {
		t.Fatalf("clientA outbound should be closed after disconnect")
	}
	if n := hub.Subscribers(ChannelPortal); n != 0 {
		t.Fatalf("closed client still subscribed: %d", n)
	}

	clientB := hub.NewSSEClient()
	hub.AddChannel(clientB, ChannelPortal)
	hub.Broadcast(SSEMessage{Channel: ChannelPortal, Event: SSEEventStateChanged})
	if got := recvMessage(t, clientB.Outbound, time.Second); got.Event != SSEEventStateChanged {
		t.Fatalf("reconnect event: got %s", got.Event)
	}
}

func TestSSEHubDropsWhenBufferFull(t *testing.T) {
	hub := NewSSEHub(logger.Nop())
	client := hub.NewSSEClient()
	hub.AddChannel(client, ChannelPortal)

	for i := 0; i < outboundBuffer+5; i++ {
		hub.Broadcast(SSEMessage{Channel: ChannelPortal, Event: SSEEventStateChanged})
	}
	if got := len(client.Outbound); got != outboundBuffer {
		t.Fatalf("want %d buffered got %d", outboundBuffer, got)
	}
}

func TestSSEHubChannelFiltering(t *testing.T) {
	hub := NewSSEHub(logger.Nop())
	client := hub.NewSSEClient()
	hub.AddChannel(client, "other")
	hub.AddChannel(client, "  ")

	hub.Broadcast(SSEMessage{Channel: ChannelPortal, Event: SSEEventStateChanged})
	hub.Broadcast(SSEMessage{Event: SSEEventStateChanged})
	if len(client.Outbound) != 0 {
		t.Fatalf("client received messages for channels it did not join")
	}

	if hub.Subscribers("other") != 1 {
		t.Fatalf("Subscribers(other): want=1 got=%d", hub.Subscribers("other"))
	}
	hub.RemoveClient(client)
	if hub.Subscribers("other") != 0 || len(client.Channels) != 0 {
		t.Fatalf("RemoveClient left state behind")
	}
}

func TestAttachForwardsEachPublish(t *testing.T) {
	hub := NewSSEHub(logger.Nop())
	b := bus.New(logger.Nop())
	client := hub.NewSSEClient()
	hub.AddChannel(client, ChannelPortal)

	detach := hub.Attach(b)
	b.Publish()
	b.Publish()
	for i := 0; i < 2; i++ {
		if got := recvMessage(t, client.Outbound, time.Second); got.Event != SSEEventStateChanged {
			t.Fatalf("event %d: got %s", i, got.Event)
		}
	}

	detach()
	detach()
	if b.Len() != 0 {
		t.Fatalf("detach left %d listeners", b.Len())
	}
	b.Publish()
	if len(client.Outbound) != 0 {
		t.Fatalf("detached hub still forwarded")
	}
}

func TestServeHTTPStreamsEvents(t *testing.T) {
	hub := NewSSEHub(logger.Nop())
	client := hub.NewSSEClient()
	hub.AddChannel(client, ChannelPortal)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeHTTP(w, r, client)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("content type %q", ct)
	}

	hub.Broadcast(SSEMessage{Channel: ChannelPortal, Event: SSEEventStateChanged, Data: map[string]any{"seq": 7}})

	reader := bufio.NewReader(resp.Body)
	var events []string
	for len(events) < 2 {
		line, err := reader.ReadString('\n')
		if err != nil {
			t.Fatalf("read: %v (events so far %v)", err, events)
		}
		if strings.HasPrefix(line, "event: ") {
			events = append(events, strings.TrimSpace(strings.TrimPrefix(line, "event: ")))
		}
	}
	if events[0] != string(SSEEventConnected) || events[1] != string(SSEEventStateChanged) {
		t.Fatalf("unexpected events %v", events)
	}
	hub.CloseClient(client)
}
