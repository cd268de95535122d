package stream

import (
	"errors"
	"strings"
	"testing"
)

func feed(events ...Event) <-chan Event {
	ch := make(chan Event, len(events))
	for _, ev := range events {
		ch <- ev
	}
	close(ch)
	return ch
}

func TestAssembleProgressHidesPayload(t *testing.T) {
	var seen []string
	res, err := Assemble(feed(
		Event{TextDelta: "Visible "},
		Event{TextDelta: "response"},
		Event{TextDelta: "<canvas_update>{\"new_options\":"},
		Event{TextDelta: "[]}</canvas_update>"},
	), func(visible string) {
		seen = append(seen, visible)
	})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	if res.Text != "Visible response" {
		t.Errorf("Text = %q", res.Text)
	}
	if res.ParseError != "" {
		t.Errorf("ParseError = %q", res.ParseError)
	}
	if len(seen) != 4 {
		t.Fatalf("got %d progress calls, want one per text fragment", len(seen))
	}
	for i, v := range seen {
		if strings.Contains(v, "canvas_update") || strings.Contains(v, "{") {
			t.Errorf("progress %d leaked payload text: %q", i, v)
		}
	}
	if seen[len(seen)-1] != "Visible response" {
		t.Errorf("final progress = %q", seen[len(seen)-1])
	}
}

func TestAssembleUsageAccumulation(t *testing.T) {
	res, err := Assemble(feed(
		Event{Usage: &Usage{InputTokens: 120}},
		Event{TextDelta: "hi"},
		Event{Usage: &Usage{OutputTokens: 5}},
		Event{Usage: &Usage{OutputTokens: 42}},
	), nil)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if res.Usage.InputTokens != 120 || res.Usage.OutputTokens != 42 {
		t.Errorf("Usage = %+v, want input 120, final output 42", res.Usage)
	}
}

func TestAssembleTransportErrorAborts(t *testing.T) {
	wantErr := errors.New("upstream returned 529")
	_, err := Assemble(feed(
		Event{TextDelta: "partial"},
		Event{Err: wantErr},
	), nil)
	if !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want the transport error", err)
	}
}

func TestAssembleMalformedPayloadRecovered(t *testing.T) {
	res, err := Assemble(feed(
		Event{TextDelta: "Answer text\n"},
		Event{TextDelta: "<canvas_update>{oops}</canvas_update>"},
	), nil)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if res.Text != "Answer text" {
		t.Errorf("Text = %q", res.Text)
	}
	if res.ParseError == "" {
		t.Error("expected a parse error, recovered locally")
	}
	if res.RawBlock != "{oops}" {
		t.Errorf("RawBlock = %q", res.RawBlock)
	}
}

func TestAssembleTextFallback(t *testing.T) {
	res := AssembleText("Hello<canvas_update>{\"new_questions\":[{\"question\":\"q?\"}]}</canvas_update>", Usage{InputTokens: 1, OutputTokens: 2})
	if res.Text != "Hello" {
		t.Errorf("Text = %q", res.Text)
	}
	if len(res.Extract.NewQuestions) != 1 {
		t.Errorf("NewQuestions = %+v", res.Extract.NewQuestions)
	}
	if res.Usage.InputTokens != 1 || res.Usage.OutputTokens != 2 {
		t.Errorf("Usage = %+v", res.Usage)
	}
}
