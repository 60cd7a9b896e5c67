package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

type echoHandler struct {
	mu     sync.Mutex
	inputs []string
}

func (h *echoHandler) Handle(_ context.Context, input string) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.inputs = append(h.inputs, input)
	return "reply to " + input
}

func (h *echoHandler) seen() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string{}, h.inputs...)
}

// botServer fakes the two Bot API methods the poller uses. The first
// getUpdates call returns the configured batch, later calls return nothing.
type botServer struct {
	mu       sync.Mutex
	batch    []Update
	served   bool
	offsets  []float64
	sent     []string
	sentChat []float64
}

func (b *botServer) handle(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var payload map[string]any
	_ = json.NewDecoder(r.Body).Decode(&payload)

	switch {
	case strings.HasSuffix(r.URL.Path, "/getUpdates"):
		b.offsets = append(b.offsets, payload["offset"].(float64))
		updates := []Update{}
		if !b.served {
			b.served = true
			updates = b.batch
		}
		body, _ := json.Marshal(map[string]any{"ok": true, "result": updates})
		_, _ = w.Write(body)
	case strings.HasSuffix(r.URL.Path, "/sendMessage"):
		b.sent = append(b.sent, payload["text"].(string))
		b.sentChat = append(b.sentChat, payload["chat_id"].(float64))
		_, _ = w.Write([]byte(`{"ok":true,"result":{}}`))
	default:
		http.NotFound(w, r)
	}
}

func (b *botServer) snapshot() ([]float64, []string, []float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]float64{}, b.offsets...), append([]string{}, b.sent...), append([]float64{}, b.sentChat...)
}

func TestPollerDispatchesAndAdvancesOffset(t *testing.T) {
	bot := &botServer{batch: []Update{
		{UpdateID: 10, Message: &Message{Chat: Chat{ID: 42}, Text: "/acro get LGTM"}},
		{UpdateID: 11, Message: &Message{Chat: Chat{ID: 43}, Text: "list"}},
		{UpdateID: 12},
		{UpdateID: 13, Message: &Message{Chat: Chat{ID: 44}, Text: "   "}},
	}}
	server := httptest.NewServer(http.HandlerFunc(bot.handle))
	defer server.Close()

	client, err := NewClient("test-token", server.URL, server.Client())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	handler := &echoHandler{}
	poller := NewPoller(client, handler, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- poller.Run(ctx) }()

	deadline := time.After(5 * time.Second)
	for {
		if _, sent, _ := bot.snapshot(); len(sent) >= 2 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("timed out waiting for dispatched replies")
		case <-time.After(10 * time.Millisecond):
		}
	}
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("run returned %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("poller did not stop on cancellation")
	}

	inputs := handler.seen()
	if len(inputs) != 2 || inputs[0] != "get LGTM" || inputs[1] != "list" {
		t.Fatalf("handled inputs = %v", inputs)
	}

	offsets, sent, chats := bot.snapshot()
	if len(sent) != 2 || sent[0] != "reply to get LGTM" || sent[1] != "reply to list" {
		t.Fatalf("sent replies = %v", sent)
	}
	if chats[0] != 42 || chats[1] != 43 {
		t.Fatalf("reply chats = %v", chats)
	}
	if len(offsets) < 2 || offsets[0] != 0 || offsets[1] != 14 {
		t.Fatalf("poll offsets = %v, want second poll past the batch", offsets)
	}
}

func TestPollerRetriesAfterPollFailure(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		mu.Unlock()
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"ok":false,"description":"boom"}`))
	}))
	defer server.Close()

	client, err := NewClient("test-token", server.URL, server.Client())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	poller := NewPoller(client, &echoHandler{}, time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if err := poller.Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("run returned %v, want deadline exceeded", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if calls == 0 {
		t.Fatal("poller never polled")
	}
}
