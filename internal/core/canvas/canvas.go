// Package canvas contains the merge engine: the pure state-transition
// logic that applies a parsed extraction or a manual edit to a design
// space while enforcing every referential-integrity invariant.
//
// Engine methods mutate the space they are handed. Callers own the
// transaction boundary: they pass a deep-copied snapshot and commit the
// whole result, so no reader ever observes a partially-updated canvas.
package canvas

import (
	"strings"

	"github.com/example/sketch/internal/models"
)

// Matcher is the dedupe oracle the engine consults to decide "same
// item" vs "different item". Pluggable so the scoring algorithm can be
// swapped without touching merge call sites.
type Matcher interface {
	Similarity(a, b string) float64
	IsNearDuplicate(a, b string) bool
}

// Engine applies extractions and manual edits to canvas state.
type Engine struct {
	match Matcher
}

// NewEngine creates an engine around the given matcher.
func NewEngine(m Matcher) *Engine {
	return &Engine{match: m}
}

// appendText joins an addition onto existing text with a newline,
// preserving the history of incremental refinement instead of
// replacing it.
func appendText(existing, addition string) string {
	addition = strings.TrimSpace(addition)
	if addition == "" {
		return existing
	}
	if strings.TrimSpace(existing) == "" {
		return addition
	}
	return existing + "\n" + addition
}

// addSource records a contributing message ID once.
func addSource(sources []string, messageID string) []string {
	for _, id := range sources {
		if id == messageID {
			return sources
		}
	}
	return append(sources, messageID)
}

func validOptionStatus(s string) bool {
	switch s {
	case models.OptionConsidering, models.OptionSelected, models.OptionRejected, models.OptionFinished:
		return true
	}
	return false
}

func validConstraintSource(s string) bool {
	switch s {
	case models.SourceConversation, models.SourceCode, models.SourceExternal:
		return true
	}
	return false
}

func validReferenceType(s string) bool {
	switch s {
	case models.RefCodeSnippet, models.RefURL, models.RefPaste:
		return true
	}
	return false
}

// findOptionByTitle resolves an option by near-duplicate title match.
// The model refers to options by name, not ID.
func (e *Engine) findOptionByTitle(c *models.Canvas, title string) *models.Option {
	for i := range c.Options {
		if e.match.IsNearDuplicate(c.Options[i].Title, title) {
			return &c.Options[i]
		}
	}
	return nil
}

func (e *Engine) findQuestionByText(c *models.Canvas, text string) *models.OpenQuestion {
	for i := range c.OpenQuestions {
		if e.match.IsNearDuplicate(c.OpenQuestions[i].Question, text) {
			return &c.OpenQuestions[i]
		}
	}
	return nil
}

// attachmentTarget picks the decision a new constraint/question/reference
// attaches to: the most recently created decision under the active
// option, else the most recent decision overall, else none. "Most
// recent" is last in insertion order, found by scanning from the end.
func attachmentTarget(c *models.Canvas) string {
	if c.ActiveOptionID != "" {
		for i := len(c.Decisions) - 1; i >= 0; i-- {
			if c.Decisions[i].OptionID == c.ActiveOptionID {
				return c.Decisions[i].ID
			}
		}
	}
	if n := len(c.Decisions); n > 0 {
		return c.Decisions[n-1].ID
	}
	return ""
}
