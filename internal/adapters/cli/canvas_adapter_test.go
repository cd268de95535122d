package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/example/sketch/internal/models"
)

func TestCanvasAdapterShow(t *testing.T) {
	color.NoColor = true

	score := 7.5
	space := models.NewDesignSpace("payments")
	space.ProblemStatement = "reduce checkout latency"
	space.Canvas = models.Canvas{
		Options: []models.Option{
			{ID: "opt-1", Title: "Use Redis Pub/Sub", Status: models.OptionSelected, Description: "fan out via channels"},
			{ID: "opt-2", Title: "Kafka topics", Status: models.OptionRejected, RejectionReason: "operational overhead"},
			{ID: "opt-3", Title: "Batch polling", Status: models.OptionFinished, FinishReason: "prototyped", BranchScore: &score},
		},
		Decisions: []models.Decision{
			{ID: "dec-1", Title: "Pin Redis 7", Reasoning: "stable streams API", OptionID: "opt-1"},
		},
		Constraints: []models.Constraint{
			{ID: "con-1", Description: "Budget is fixed", Source: models.SourceConversation, DecisionID: "dec-1"},
		},
		OpenQuestions: []models.OpenQuestion{
			{ID: "que-1", Question: "What is the retention window?", Status: models.QuestionOpen},
			{ID: "que-2", Question: "Who owns the cluster?", Status: models.QuestionResolved},
		},
		References: []models.Reference{
			{ID: "ref-1", Type: models.RefURL, Label: "Redis docs", Content: "https://redis.io"},
		},
		ActiveOptionID: "opt-1",
	}

	var buf bytes.Buffer
	NewCanvasAdapter(&buf).Show(space)
	out := buf.String()

	for _, want := range []string{
		"payments",
		"reduce checkout latency",
		"→ opt-1 [selected] Use Redis Pub/Sub",
		"rejected: operational overhead",
		"finished: prototyped",
		"score: 7.5",
		"Pin Redis 7 [Use Redis Pub/Sub]",
		"Budget is fixed → Pin Redis 7",
		"? que-1 What is the retention window?",
		"✓ que-2 Who owns the cluster?",
		"[url] Redis docs",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestCanvasAdapterShowEmpty(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	NewCanvasAdapter(&buf).Show(models.NewDesignSpace("blank"))
	if !strings.Contains(buf.String(), "(none)") {
		t.Errorf("expected empty options placeholder:\n%s", buf.String())
	}
}

func TestCanvasAdapterShowExtractionWarning(t *testing.T) {
	color.NoColor = true
	space := models.NewDesignSpace("warn")
	space.RecordExtractionFailure(models.ExtractionFailure{Reason: "invalid canvas payload"})

	var buf bytes.Buffer
	NewCanvasAdapter(&buf).Show(space)
	if !strings.Contains(buf.String(), "1 extraction failure") {
		t.Errorf("expected failure warning:\n%s", buf.String())
	}
}
