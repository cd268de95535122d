package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/example/sketch/internal/models"
)

// CanvasAdapter renders a design space's canvas to a writer.
type CanvasAdapter struct {
	out io.Writer
}

// NewCanvasAdapter creates a new CanvasAdapter.
func NewCanvasAdapter(out io.Writer) *CanvasAdapter {
	return &CanvasAdapter{out: out}
}

// Show renders the full canvas.
func (a *CanvasAdapter) Show(space *models.DesignSpace) {
	c := &space.Canvas

	fmt.Fprintf(a.out, "\n%s (%s)\n", color.New(color.Bold).Sprint(space.Name), space.ID)
	if space.ProblemStatement != "" {
		fmt.Fprintf(a.out, "Problem: %s\n", space.ProblemStatement)
	}

	fmt.Fprintf(a.out, "\n%s\n", color.New(color.FgHiCyan).Sprint("Options"))
	if len(c.Options) == 0 {
		fmt.Fprintln(a.out, "  (none)")
	}
	for _, o := range c.Options {
		marker := "  "
		if o.ID == c.ActiveOptionID {
			marker = color.New(color.FgHiMagenta).Sprint("→ ")
		}
		fmt.Fprintf(a.out, "%s%s %s %s\n", marker, o.ID, statusLabel(o.Status), o.Title)
		if o.Description != "" {
			fmt.Fprintf(a.out, "    %s\n", indentLines(o.Description, "    "))
		}
		if o.RejectionReason != "" {
			fmt.Fprintf(a.out, "    rejected: %s\n", o.RejectionReason)
		}
		if o.FinishReason != "" {
			fmt.Fprintf(a.out, "    finished: %s\n", o.FinishReason)
		}
		if o.BranchScore != nil {
			fmt.Fprintf(a.out, "    score: %.1f\n", *o.BranchScore)
		}
		if o.Todo != "" {
			fmt.Fprintf(a.out, "    todo:\n    %s\n", indentLines(o.Todo, "    "))
		}
	}

	if len(c.Decisions) > 0 {
		fmt.Fprintf(a.out, "\n%s\n", color.New(color.FgHiCyan).Sprint("Decisions"))
		for _, d := range c.Decisions {
			branch := ""
			if d.OptionID != "" {
				if opt := c.Option(d.OptionID); opt != nil {
					branch = color.New(color.FgCyan).Sprintf(" [%s]", opt.Title)
				}
			}
			fmt.Fprintf(a.out, "  %s %s%s\n", d.ID, d.Title, branch)
			if d.Reasoning != "" {
				fmt.Fprintf(a.out, "    why: %s\n", indentLines(d.Reasoning, "    "))
			}
			if d.TradeOffs != "" {
				fmt.Fprintf(a.out, "    trade-offs: %s\n", indentLines(d.TradeOffs, "    "))
			}
		}
	}

	if len(c.Constraints) > 0 {
		fmt.Fprintf(a.out, "\n%s\n", color.New(color.FgHiCyan).Sprint("Constraints"))
		for _, cn := range c.Constraints {
			fmt.Fprintf(a.out, "  %s [%s] %s%s\n", cn.ID, cn.Source, cn.Description, decisionTag(c, cn.DecisionID))
		}
	}

	if len(c.OpenQuestions) > 0 {
		fmt.Fprintf(a.out, "\n%s\n", color.New(color.FgHiCyan).Sprint("Open questions"))
		for _, q := range c.OpenQuestions {
			mark := color.New(color.FgYellow).Sprint("?")
			if q.Status == models.QuestionResolved {
				mark = color.New(color.FgHiGreen).Sprint("✓")
			}
			fmt.Fprintf(a.out, "  %s %s %s%s\n", mark, q.ID, q.Question, decisionTag(c, q.DecisionID))
		}
	}

	if len(c.References) > 0 {
		fmt.Fprintf(a.out, "\n%s\n", color.New(color.FgHiCyan).Sprint("References"))
		for _, r := range c.References {
			label := r.Label
			if label == "" {
				label = firstLine(r.Content)
			}
			fmt.Fprintf(a.out, "  %s [%s] %s%s\n", r.ID, r.Type, label, decisionTag(c, r.DecisionID))
		}
	}

	if n := len(space.ExtractionFailures); n > 0 {
		fmt.Fprintf(a.out, "\n%s\n", color.New(color.FgYellow).Sprintf("⚠ %d extraction failure(s); run 'sketch log' for details", n))
	}
	fmt.Fprintln(a.out)
}

func statusLabel(status string) string {
	switch status {
	case models.OptionSelected:
		return color.New(color.FgHiGreen).Sprint("[selected]")
	case models.OptionRejected:
		return color.New(color.FgRed).Sprint("[rejected]")
	case models.OptionFinished:
		return color.New(color.FgHiBlue).Sprint("[finished]")
	default:
		return color.New(color.FgHiCyan).Sprint("[considering]")
	}
}

func decisionTag(c *models.Canvas, decisionID string) string {
	if decisionID == "" {
		return ""
	}
	if dec := c.Decision(decisionID); dec != nil {
		return color.New(color.FgCyan).Sprintf(" → %s", dec.Title)
	}
	return ""
}

func indentLines(s, prefix string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "\n", "\n"+prefix)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
