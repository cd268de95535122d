// Package stream assembles a model reply from an incremental event
// sequence, keeping the user-visible prefix separate from the embedded
// canvas payload so a half-formed payload never reaches the screen.
package stream

import (
	"strings"

	"github.com/example/sketch/internal/core/extract"
)

// Usage is token accounting reported out-of-band by the transport.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Event is one element of the transport's asynchronous sequence: a text
// fragment, a usage report, or a fatal error. The producer closes the
// channel after the final event.
type Event struct {
	TextDelta string
	Usage     *Usage
	Err       error
}

// Result is the fully assembled and parsed reply.
type Result struct {
	// Text is the user-visible reply with the payload block removed.
	Text string

	// Extract is the decoded canvas payload (canonical empty on absence
	// or failure).
	Extract extract.Extract

	// ParseError is non-empty when the payload block was malformed.
	ParseError string

	// RawBlock preserves the undecoded payload interior on failure.
	RawBlock string

	Usage Usage
}

// Assemble consumes the event sequence to completion. After every text
// fragment it publishes the safe-to-show prefix through onProgress
// (synchronously, on the consuming goroutine). A transport error aborts
// assembly and is returned; the canvas is untouched by then since
// parsing only happens on successful completion.
func Assemble(events <-chan Event, onProgress func(visible string)) (Result, error) {
	var raw strings.Builder
	var usage Usage

	for ev := range events {
		switch {
		case ev.Err != nil:
			return Result{}, ev.Err
		case ev.Usage != nil:
			// Later reports supersede earlier ones per field; transports
			// send input counts up front and cumulative output counts.
			if ev.Usage.InputTokens > 0 {
				usage.InputTokens = ev.Usage.InputTokens
			}
			if ev.Usage.OutputTokens > 0 {
				usage.OutputTokens = ev.Usage.OutputTokens
			}
		case ev.TextDelta != "":
			raw.WriteString(ev.TextDelta)
			if onProgress != nil {
				onProgress(extract.StripTail(raw.String()))
			}
		}
	}

	return finish(raw.String(), usage), nil
}

// AssembleText is the single-shot fallback for transports without
// incremental delivery. It produces the same result shape as Assemble.
func AssembleText(text string, usage Usage) Result {
	return finish(text, usage)
}

func finish(raw string, usage Usage) Result {
	parsed := extract.Parse(raw)
	return Result{
		Text:       parsed.VisibleText,
		Extract:    parsed.Extract,
		ParseError: parsed.ParseError,
		RawBlock:   parsed.RawBlock,
		Usage:      usage,
	}
}
