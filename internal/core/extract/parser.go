package extract

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// StartTag and EndTag delimit the embedded payload. Matching is
// case-insensitive and takes the first, non-greedy occurrence.
const (
	StartTag = "<canvas_update>"
	EndTag   = "</canvas_update>"
)

var blockRe = regexp.MustCompile(`(?is)` + regexp.QuoteMeta(StartTag) + `(.*?)` + regexp.QuoteMeta(EndTag))

// Result is the outcome of parsing one complete reply.
type Result struct {
	// VisibleText is the reply with the payload block removed, trimmed.
	VisibleText string

	// Extract holds the decoded payload, or the canonical empty extract
	// when the block is absent or malformed.
	Extract Extract

	// ParseError is a human-readable reason when the block was present
	// but could not be decoded; empty otherwise.
	ParseError string

	// RawBlock preserves the undecoded interior for diagnostics when
	// decoding failed.
	RawBlock string
}

// Parse splits a complete reply into visible prose and the decoded
// canvas payload. It never panics past this boundary: any decode
// failure is captured in ParseError with the raw interior preserved.
func Parse(raw string) Result {
	loc := blockRe.FindStringSubmatchIndex(raw)
	if loc == nil {
		return Result{
			VisibleText: strings.TrimSpace(raw),
			Extract:     Empty(),
		}
	}

	visible := strings.TrimSpace(raw[:loc[0]] + raw[loc[1]:])
	interior := strings.TrimSpace(raw[loc[2]:loc[3]])

	ex := Empty()
	if err := json.Unmarshal([]byte(interior), &ex); err != nil {
		return Result{
			VisibleText: visible,
			Extract:     Empty(),
			ParseError:  fmt.Sprintf("invalid canvas payload: %v", err),
			RawBlock:    interior,
		}
	}
	ex.normalize()

	return Result{
		VisibleText: visible,
		Extract:     ex,
	}
}

// StripTail returns the prefix of a partially received reply that is
// safe to show: everything before the first start tag, whether or not
// the tag has been closed yet. Used to keep a half-formed payload from
// ever reaching the screen while streaming.
func StripTail(partial string) string {
	if i := strings.Index(strings.ToLower(partial), StartTag); i >= 0 {
		partial = partial[:i]
	}
	return strings.TrimSpace(partial)
}
