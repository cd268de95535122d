// Package prompt builds the system and crystallize prompts. The system
// prompt teaches the model the canvas payload contract the extraction
// parser expects.
package prompt

import (
	"fmt"
	"strings"

	"github.com/example/sketch/internal/models"
)

// System returns the system prompt for conversation turns. The payload
// contract here must stay in lockstep with the extract package: same
// tags, same field names.
func System() string {
	return `You are a software-architecture sparring partner. Discuss the user's
design problem conversationally. After your prose, emit exactly one machine
block describing canvas changes for this turn:

<canvas_update>
{
  "problem_statement": null,
  "new_options": [{"title": "", "description": ""}],
  "option_updates": [{"id": "", "description": ""}],
  "status_changes": [{"title": "", "status": "considering|selected|rejected|finished", "reason": ""}],
  "new_decisions": [{"title": "", "reasoning": "", "trade_offs": ""}],
  "decision_updates": [{"id": "", "reasoning": "", "trade_offs": ""}],
  "new_constraints": [{"description": "", "source": "conversation|code|external"}],
  "new_questions": [{"question": "", "context": ""}],
  "resolved_questions": [],
  "finished_options": [{"title": "", "reason": "", "score": null}],
  "option_todos": [{"id": "", "todo": ""}],
  "deletions": {"options": [], "decisions": []}
}
</canvas_update>

Omit fields with nothing to report. Refer to options by title, not id,
except in option_updates/option_todos where you must use the id shown in
the canvas summary. Set problem_statement only to replace it wholesale.
Never restate an option that already exists on the canvas.`
}

// CanvasSummary renders the current canvas as context for the model, so
// status changes and updates can reference existing items by title/id.
func CanvasSummary(space *models.DesignSpace) string {
	var b strings.Builder
	if space.ProblemStatement != "" {
		fmt.Fprintf(&b, "Problem: %s\n", space.ProblemStatement)
	}
	c := &space.Canvas
	if len(c.Options) > 0 {
		b.WriteString("Options:\n")
		for _, o := range c.Options {
			marker := " "
			if o.ID == c.ActiveOptionID {
				marker = "*"
			}
			fmt.Fprintf(&b, "%s [%s] %s (%s)\n", marker, o.ID, o.Title, o.Status)
		}
	}
	if len(c.Decisions) > 0 {
		b.WriteString("Decisions:\n")
		for _, d := range c.Decisions {
			fmt.Fprintf(&b, "  [%s] %s\n", d.ID, d.Title)
		}
	}
	if len(c.Constraints) > 0 {
		b.WriteString("Constraints:\n")
		for _, cn := range c.Constraints {
			fmt.Fprintf(&b, "  - %s\n", cn.Description)
		}
	}
	open := 0
	for _, q := range c.OpenQuestions {
		if q.Status == models.QuestionOpen {
			open++
		}
	}
	if open > 0 {
		b.WriteString("Open questions:\n")
		for _, q := range c.OpenQuestions {
			if q.Status == models.QuestionOpen {
				fmt.Fprintf(&b, "  - %s\n", q.Question)
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// Crystallize builds the one-shot prompt that turns a finished canvas
// into an artifact. No extraction block is requested: the whole reply
// is the artifact.
func Crystallize(space *models.DesignSpace, kind string) string {
	var b strings.Builder
	switch kind {
	case "task_list":
		b.WriteString("Turn the design canvas below into an ordered implementation task list.\n\n")
	default:
		b.WriteString("Turn the design canvas below into a concise design document: context, chosen approach, rejected alternatives with reasons, constraints, and open questions.\n\n")
	}
	b.WriteString(CanvasSummary(space))
	b.WriteString("\n\nFull detail:\n")
	for _, o := range space.Canvas.Options {
		fmt.Fprintf(&b, "\nOption: %s [%s]\n", o.Title, o.Status)
		if o.Description != "" {
			fmt.Fprintf(&b, "%s\n", o.Description)
		}
		if o.RejectionReason != "" {
			fmt.Fprintf(&b, "Rejected because: %s\n", o.RejectionReason)
		}
	}
	for _, d := range space.Canvas.Decisions {
		fmt.Fprintf(&b, "\nDecision: %s\n", d.Title)
		if d.Reasoning != "" {
			fmt.Fprintf(&b, "Reasoning: %s\n", d.Reasoning)
		}
		if d.TradeOffs != "" {
			fmt.Fprintf(&b, "Trade-offs: %s\n", d.TradeOffs)
		}
	}
	for _, r := range space.Canvas.References {
		fmt.Fprintf(&b, "\nReference (%s): %s\n%s\n", r.Type, r.Label, r.Content)
	}
	return b.String()
}
