package anthropic

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/example/sketch/internal/core/stream"
	"github.com/example/sketch/internal/ports/secondary"
)

func TestDecodeEvent(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		wantText string
		wantDone bool
		wantEmit bool
	}{
		{
			name:     "text delta",
			data:     `{"type":"content_block_delta","delta":{"type":"text_delta","text":"hello"}}`,
			wantText: "hello",
			wantEmit: true,
		},
		{
			name:     "non-text delta skipped",
			data:     `{"type":"content_block_delta","delta":{"type":"input_json_delta","partial_json":"{}"}}`,
			wantEmit: false,
		},
		{
			name:     "message stop ends stream",
			data:     `{"type":"message_stop"}`,
			wantDone: true,
		},
		{
			name:     "unknown event skipped",
			data:     `{"type":"content_block_start","content_block":{"type":"text"}}`,
			wantEmit: false,
		},
		{
			name:     "malformed frame skipped",
			data:     `{not json`,
			wantEmit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, done, emit := decodeEvent([]byte(tt.data))
			if emit != tt.wantEmit {
				t.Fatalf("emit = %v, want %v", emit, tt.wantEmit)
			}
			if done != tt.wantDone {
				t.Errorf("done = %v, want %v", done, tt.wantDone)
			}
			if ev.TextDelta != tt.wantText {
				t.Errorf("text = %q, want %q", ev.TextDelta, tt.wantText)
			}
		})
	}
}

func TestDecodeEventUsage(t *testing.T) {
	ev, _, emit := decodeEvent([]byte(`{"type":"message_start","message":{"usage":{"input_tokens":120,"output_tokens":1}}}`))
	if !emit || ev.Usage == nil {
		t.Fatal("expected usage event from message_start")
	}
	if ev.Usage.InputTokens != 120 {
		t.Errorf("input tokens = %d, want 120", ev.Usage.InputTokens)
	}

	ev, _, emit = decodeEvent([]byte(`{"type":"message_delta","delta":{"stop_reason":"end_turn"},"usage":{"output_tokens":42}}`))
	if !emit || ev.Usage == nil {
		t.Fatal("expected usage event from message_delta")
	}
	if ev.Usage.OutputTokens != 42 {
		t.Errorf("output tokens = %d, want 42", ev.Usage.OutputTokens)
	}
}

func TestDecodeEventError(t *testing.T) {
	ev, done, emit := decodeEvent([]byte(`{"type":"error","error":{"type":"overloaded_error","message":"try later"}}`))
	if !emit || !done {
		t.Fatal("expected emitted terminal event")
	}
	if ev.Err == nil || !strings.Contains(ev.Err.Error(), "overloaded_error") {
		t.Errorf("unexpected error %v", ev.Err)
	}
}

func TestStreamAgainstServer(t *testing.T) {
	frames := []string{
		`{"type":"message_start","message":{"usage":{"input_tokens":10,"output_tokens":1}}}`,
		`{"type":"content_block_delta","delta":{"type":"text_delta","text":"Hel"}}`,
		`{"type":"content_block_delta","delta":{"type":"text_delta","text":"lo"}}`,
		`{"type":"message_delta","delta":{"stop_reason":"end_turn"},"usage":{"output_tokens":5}}`,
		`{"type":"message_stop"}`,
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Api-Key") != "test-key" {
			t.Errorf("missing api key header")
		}
		if r.Header.Get("Anthropic-Version") == "" {
			t.Errorf("missing version header")
		}
		w.Header().Set("Content-Type", "text/event-stream")
		for i, frame := range frames {
			fmt.Fprintf(w, "event: e%d\ndata: %s\n\n", i, frame)
		}
	}))
	defer server.Close()

	client := NewClient("test-key", "test-model", server.URL)
	events, err := client.Stream(context.Background(), secondary.ModelRequest{
		Turns: []secondary.ConversationTurn{{Role: "user", Content: "hi"}},
	})
	if err != nil {
		t.Fatalf("Stream failed: %v", err)
	}

	res, err := stream.Assemble(events, nil)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if res.Text != "Hello" {
		t.Errorf("text = %q, want Hello", res.Text)
	}
	if res.Usage.InputTokens != 10 || res.Usage.OutputTokens != 5 {
		t.Errorf("usage = %+v", res.Usage)
	}
}

func TestStreamNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"type":"error","error":{"type":"authentication_error","message":"bad key"}}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient("bad-key", "test-model", server.URL)
	_, err := client.Stream(context.Background(), secondary.ModelRequest{})
	if err == nil {
		t.Fatal("expected error for 401")
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("expected status in error, got %v", err)
	}
}

func TestComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"content":[{"type":"text","text":"full reply"}],"usage":{"input_tokens":30,"output_tokens":12}}`)
	}))
	defer server.Close()

	client := NewClient("test-key", "test-model", server.URL)
	text, usage, err := client.Complete(context.Background(), secondary.ModelRequest{
		Turns: []secondary.ConversationTurn{{Role: "user", Content: "crystallize"}},
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if text != "full reply" {
		t.Errorf("text = %q", text)
	}
	if usage.InputTokens != 30 || usage.OutputTokens != 12 {
		t.Errorf("usage = %+v", usage)
	}
}
