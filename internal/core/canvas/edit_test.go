package canvas

import (
	"testing"

	"github.com/example/sketch/internal/models"
)

func TestAddOptionActivatesFirst(t *testing.T) {
	e := newTestEngine()
	space := newTestSpace()

	idA, err := e.AddOption(space, "Branch A", "")
	if err != nil {
		t.Fatalf("AddOption: %v", err)
	}
	if space.Canvas.ActiveOptionID != idA {
		t.Errorf("first option must become active")
	}

	if _, err := e.AddOption(space, "Branch B", ""); err != nil {
		t.Fatalf("AddOption: %v", err)
	}
	if space.Canvas.ActiveOptionID != idA {
		t.Errorf("adding a second option must not steal focus")
	}

	if _, err := e.AddOption(space, "   ", ""); err == nil {
		t.Error("blank title must be rejected")
	}
}

func TestDeleteOptionClearsDecisionRefs(t *testing.T) {
	e := newTestEngine()
	space := newTestSpace()
	optID, _ := e.AddOption(space, "Branch A", "")
	decID, _ := e.AddDecision(space, "Use protobuf", "", "", optID)

	if err := e.DeleteOption(space, optID); err != nil {
		t.Fatalf("DeleteOption: %v", err)
	}

	c := &space.Canvas
	if len(c.Options) != 0 {
		t.Fatal("option should be gone")
	}
	dec := c.Decision(decID)
	if dec == nil {
		t.Fatal("decision must not be cascade-deleted")
	}
	if dec.OptionID != "" {
		t.Errorf("decision option_id = %q, want cleared", dec.OptionID)
	}
	if c.ActiveOptionID != "" {
		t.Errorf("active option must be cleared when none remain")
	}

	if err := e.DeleteOption(space, optID); err == nil {
		t.Error("deleting a missing option must error")
	}
}

func TestDeleteDecisionClearsAttachmentRefs(t *testing.T) {
	e := newTestEngine()
	space := newTestSpace()
	decID, _ := e.AddDecision(space, "Use protobuf", "", "", "")
	conID, _ := e.AddConstraint(space, "Wire format must be stable", "")
	queID, _ := e.AddQuestion(space, "What about schema evolution?", "")
	refID, _ := e.AddReference(space, models.RefURL, "protobuf docs", "https://protobuf.dev")

	c := &space.Canvas
	if c.Constraints[0].DecisionID != decID || c.OpenQuestions[0].DecisionID != decID || c.References[0].DecisionID != decID {
		t.Fatalf("precondition: attachments linked to %s", decID)
	}

	if err := e.DeleteDecision(space, decID); err != nil {
		t.Fatalf("DeleteDecision: %v", err)
	}
	for _, got := range []string{c.Constraints[0].DecisionID, c.OpenQuestions[0].DecisionID, c.References[0].DecisionID} {
		if got != "" {
			t.Errorf("decision_id = %q, want cleared on cascade", got)
		}
	}
	_ = conID
	_ = queID
	_ = refID
}

func TestManualAttachmentRuleMatchesMergePath(t *testing.T) {
	e := newTestEngine()
	space := newTestSpace()
	optA, _ := e.AddOption(space, "Branch A", "")
	optB, _ := e.AddOption(space, "Branch B", "")
	_, _ = e.AddDecision(space, "Decision on A", "", "", optA)
	decB, _ := e.AddDecision(space, "Adopt CQRS split", "", "", optB)

	// Branch A is active, so the most recent decision under it wins even
	// though decB is newer overall.
	decA2, _ := e.AddDecision(space, "Shard by tenant id", "", "", optA)
	conID, _ := e.AddConstraint(space, "P99 under 50ms", "")

	c := &space.Canvas
	var con *models.Constraint
	for i := range c.Constraints {
		if c.Constraints[i].ID == conID {
			con = &c.Constraints[i]
		}
	}
	if con.DecisionID != decA2 {
		t.Errorf("constraint attached to %q, want %q (most recent under active)", con.DecisionID, decA2)
	}
	_ = decB
}

func TestSetOptionStatusRederives(t *testing.T) {
	e := newTestEngine()
	space := newTestSpace()
	idA, _ := e.AddOption(space, "Branch A", "")
	idB, _ := e.AddOption(space, "Branch B", "")

	if err := e.SetOptionStatus(space, idA, models.OptionRejected, "too complex"); err != nil {
		t.Fatalf("SetOptionStatus: %v", err)
	}
	c := &space.Canvas
	if c.ActiveOptionID != idB {
		t.Errorf("active = %q, want re-derived to %q", c.ActiveOptionID, idB)
	}
	if c.Options[0].RejectionReason != "too complex" {
		t.Errorf("RejectionReason = %q", c.Options[0].RejectionReason)
	}

	if err := e.SetOptionStatus(space, idB, "nonsense", ""); err == nil {
		t.Error("invalid status must be rejected")
	}
	if err := e.SetOptionStatus(space, "opt-missing", models.OptionSelected, ""); err == nil {
		t.Error("missing option must error")
	}
}

func TestSetActiveOptionEligibility(t *testing.T) {
	e := newTestEngine()
	space := newTestSpace()
	idA, _ := e.AddOption(space, "Branch A", "")
	idB, _ := e.AddOption(space, "Branch B", "")
	_ = e.SetOptionStatus(space, idB, models.OptionRejected, "")

	if err := e.SetActiveOption(space, idB); err == nil {
		t.Error("a rejected option cannot take focus")
	}
	if err := e.SetActiveOption(space, idA); err != nil {
		t.Errorf("SetActiveOption: %v", err)
	}
}

func TestLinkTargetsRevalidated(t *testing.T) {
	e := newTestEngine()
	space := newTestSpace()
	optID, _ := e.AddOption(space, "Branch A", "")
	decID, _ := e.AddDecision(space, "Use protobuf", "", "", "")
	conID, _ := e.AddConstraint(space, "Stable wire format", "")
	_ = e.UnlinkAttachment(space, models.ElementConstraint, conID)

	// Linking against a vanished decision is an error, never a dangling ref.
	_ = e.DeleteDecision(space, decID)
	if err := e.LinkAttachment(space, models.ElementConstraint, conID, decID); err == nil {
		t.Error("linking to a deleted decision must fail")
	}
	if err := e.LinkDecision(space, "dec-missing", optID); err == nil {
		t.Error("linking a missing decision must fail")
	}
	checkIntegrity(t, &space.Canvas)
}

func TestReorderOptions(t *testing.T) {
	e := newTestEngine()
	space := newTestSpace()
	idA, _ := e.AddOption(space, "Branch A", "")
	idB, _ := e.AddOption(space, "Branch B", "")
	idC, _ := e.AddOption(space, "Branch C", "")

	if err := e.ReorderOptions(space, []string{idC, idA, idB}); err != nil {
		t.Fatalf("ReorderOptions: %v", err)
	}
	got := []string{space.Canvas.Options[0].ID, space.Canvas.Options[1].ID, space.Canvas.Options[2].ID}
	want := []string{idC, idA, idB}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("order[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	// Reordering never mutates anything else, including focus.
	if space.Canvas.ActiveOptionID != idA {
		t.Errorf("reorder must not change the active option")
	}

	tests := []struct {
		name string
		ids  []string
	}{
		{"wrong length", []string{idA, idB}},
		{"unknown id", []string{idA, idB, "opt-nope"}},
		{"duplicate id", []string{idA, idA, idB}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := e.ReorderOptions(space, tt.ids); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestQuestionResolveReopen(t *testing.T) {
	e := newTestEngine()
	space := newTestSpace()
	id, _ := e.AddQuestion(space, "Peak write rate?", "sizing")

	if err := e.ResolveQuestion(space, id); err != nil {
		t.Fatalf("ResolveQuestion: %v", err)
	}
	if space.Canvas.OpenQuestions[0].Status != models.QuestionResolved {
		t.Error("question should be resolved")
	}
	if err := e.ReopenQuestion(space, id); err != nil {
		t.Fatalf("ReopenQuestion: %v", err)
	}
	if space.Canvas.OpenQuestions[0].Status != models.QuestionOpen {
		t.Error("question should be open again")
	}
	if err := e.ResolveQuestion(space, "que-missing"); err == nil {
		t.Error("missing question must error")
	}
}

func TestAddReferenceValidation(t *testing.T) {
	e := newTestEngine()
	space := newTestSpace()
	if _, err := e.AddReference(space, "hologram", "x", "y"); err == nil {
		t.Error("invalid reference type must be rejected")
	}
	// References are not deduped: identical pastes are intentional.
	if _, err := e.AddReference(space, models.RefPaste, "snippet", "same content"); err != nil {
		t.Fatal(err)
	}
	if _, err := e.AddReference(space, models.RefPaste, "snippet", "same content"); err != nil {
		t.Fatal(err)
	}
	if len(space.Canvas.References) != 2 {
		t.Errorf("got %d references, want 2", len(space.Canvas.References))
	}
}

func TestRepair(t *testing.T) {
	space := &models.DesignSpace{
		ID:   "space-1",
		Name: "imported",
		Canvas: models.Canvas{
			Options: []models.Option{
				{ID: "opt-1", Title: "Branch A", Status: "bogus"},
			},
			Decisions: []models.Decision{
				{ID: "dec-1", Title: "D1", OptionID: "opt-gone"},
			},
			Constraints: []models.Constraint{
				{ID: "con-1", Description: "C1", Source: "rumor", DecisionID: "dec-gone"},
			},
			OpenQuestions: []models.OpenQuestion{
				{ID: "que-1", Question: "Q1", DecisionID: "dec-1"},
			},
			ActiveOptionID: "opt-gone",
		},
	}

	Repair(space)

	c := &space.Canvas
	if c.References == nil {
		t.Error("nil collections must become empty")
	}
	if space.Conversation == nil {
		t.Error("nil conversation must become empty")
	}
	if c.Options[0].Status != models.OptionConsidering {
		t.Errorf("status = %q, want defaulted", c.Options[0].Status)
	}
	if c.Decisions[0].OptionID != "" {
		t.Error("dangling option_id must be cleared")
	}
	if c.Constraints[0].DecisionID != "" {
		t.Error("dangling decision_id must be cleared")
	}
	if c.Constraints[0].Source != models.SourceConversation {
		t.Errorf("source = %q, want defaulted", c.Constraints[0].Source)
	}
	if c.OpenQuestions[0].DecisionID != "dec-1" {
		t.Error("valid decision_id must survive repair")
	}
	if c.OpenQuestions[0].Status != models.QuestionOpen {
		t.Errorf("question status = %q, want defaulted to open", c.OpenQuestions[0].Status)
	}
	if c.ActiveOptionID != "opt-1" {
		t.Errorf("active = %q, want repaired to the first eligible option", c.ActiveOptionID)
	}
	checkIntegrity(t, c)
}
