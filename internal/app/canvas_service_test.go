package app

import (
	"context"
	"testing"

	"github.com/example/sketch/internal/models"
	"github.com/example/sketch/internal/ports/primary"
)

func newCanvasFixture(t *testing.T) (*CanvasServiceImpl, *mockSpaceRepository, *models.DesignSpace) {
	t.Helper()
	repo := newMockSpaceRepository()
	space := seedSpace(repo, "test")
	svc := NewCanvasService(repo, newTestEngine(), &mockActivityLog{})
	return svc, repo, space
}

func TestCanvasServiceAddOption(t *testing.T) {
	svc, repo, space := newCanvasFixture(t)

	id, err := svc.AddOption(context.Background(), space.ID, "Use event sourcing", "append-only log")
	if err != nil {
		t.Fatalf("AddOption failed: %v", err)
	}
	stored := repo.spaces[space.ID]
	if len(stored.Canvas.Options) != 1 {
		t.Fatalf("expected 1 option, got %d", len(stored.Canvas.Options))
	}
	if stored.Canvas.Options[0].ID != id {
		t.Errorf("returned ID %s does not match stored %s", id, stored.Canvas.Options[0].ID)
	}
	if stored.Canvas.ActiveOptionID != id {
		t.Error("first option should become active")
	}
}

func TestCanvasServiceFailedEditLeavesStoreUntouched(t *testing.T) {
	svc, repo, space := newCanvasFixture(t)

	id, err := svc.AddOption(context.Background(), space.ID, "Branch A", "")
	if err != nil {
		t.Fatalf("AddOption failed: %v", err)
	}
	before := repo.spaces[space.ID].Clone()

	if err := svc.SetOptionStatus(context.Background(), space.ID, id, "bogus", ""); err == nil {
		t.Fatal("expected error for invalid status")
	}
	after := repo.spaces[space.ID]
	if after.Canvas.Options[0].Status != before.Canvas.Options[0].Status {
		t.Error("failed edit mutated the stored space")
	}
	if !after.UpdatedAt.Equal(before.UpdatedAt) {
		t.Error("failed edit bumped UpdatedAt")
	}
}

func TestCanvasServiceDecisionLifecycle(t *testing.T) {
	svc, repo, space := newCanvasFixture(t)
	ctx := context.Background()

	optID, err := svc.AddOption(ctx, space.ID, "Use protobuf encoding", "")
	if err != nil {
		t.Fatalf("AddOption failed: %v", err)
	}
	decID, err := svc.AddDecision(ctx, space.ID, primary.AddDecisionRequest{
		Title:     "Pin wire format v3",
		Reasoning: "stability",
		OptionID:  optID,
	})
	if err != nil {
		t.Fatalf("AddDecision failed: %v", err)
	}
	conID, err := svc.AddConstraint(ctx, space.ID, "Must stay backward compatible", models.SourceExternal)
	if err != nil {
		t.Fatalf("AddConstraint failed: %v", err)
	}

	stored := repo.spaces[space.ID]
	con := stored.Canvas.Constraints[0]
	if con.ID != conID || con.DecisionID != decID {
		t.Errorf("constraint should attach to decision %s, got %q", decID, con.DecisionID)
	}

	if err := svc.DeleteDecision(ctx, space.ID, decID); err != nil {
		t.Fatalf("DeleteDecision failed: %v", err)
	}
	stored = repo.spaces[space.ID]
	if stored.Canvas.Constraints[0].DecisionID != "" {
		t.Error("deleting decision should clear constraint attachment")
	}
}

func TestCanvasServiceAddDecisionUnknownOption(t *testing.T) {
	svc, _, space := newCanvasFixture(t)
	_, err := svc.AddDecision(context.Background(), space.ID, primary.AddDecisionRequest{
		Title:    "Orphan",
		OptionID: "opt-missing",
	})
	if err == nil {
		t.Error("expected error for unknown option")
	}
}

func TestCanvasServiceQuestionFlow(t *testing.T) {
	svc, repo, space := newCanvasFixture(t)
	ctx := context.Background()

	qID, err := svc.AddQuestion(ctx, space.ID, "What is the retention window?", "")
	if err != nil {
		t.Fatalf("AddQuestion failed: %v", err)
	}
	if err := svc.ResolveQuestion(ctx, space.ID, qID); err != nil {
		t.Fatalf("ResolveQuestion failed: %v", err)
	}
	if got := repo.spaces[space.ID].Canvas.OpenQuestions[0].Status; got != models.QuestionResolved {
		t.Errorf("expected resolved, got %q", got)
	}
	if err := svc.ReopenQuestion(ctx, space.ID, qID); err != nil {
		t.Fatalf("ReopenQuestion failed: %v", err)
	}
	if got := repo.spaces[space.ID].Canvas.OpenQuestions[0].Status; got != models.QuestionOpen {
		t.Errorf("expected open, got %q", got)
	}
}

func TestCanvasServiceReorderOptions(t *testing.T) {
	svc, repo, space := newCanvasFixture(t)
	ctx := context.Background()

	a, _ := svc.AddOption(ctx, space.ID, "A", "")
	b, _ := svc.AddOption(ctx, space.ID, "B", "")
	c, _ := svc.AddOption(ctx, space.ID, "C", "")

	if err := svc.ReorderOptions(ctx, space.ID, []string{c, a, b}); err != nil {
		t.Fatalf("ReorderOptions failed: %v", err)
	}
	opts := repo.spaces[space.ID].Canvas.Options
	if opts[0].ID != c || opts[1].ID != a || opts[2].ID != b {
		t.Errorf("unexpected order: %s %s %s", opts[0].ID, opts[1].ID, opts[2].ID)
	}

	if err := svc.ReorderOptions(ctx, space.ID, []string{a, b}); err == nil {
		t.Error("expected error for incomplete permutation")
	}
}

func TestCanvasServiceLinkAttachment(t *testing.T) {
	svc, repo, space := newCanvasFixture(t)
	ctx := context.Background()

	refID, err := svc.AddReference(ctx, space.ID, primary.AddReferenceRequest{
		Type:    models.RefURL,
		Label:   "ADR template",
		Content: "https://example.com/adr",
	})
	if err != nil {
		t.Fatalf("AddReference failed: %v", err)
	}
	decID, err := svc.AddDecision(ctx, space.ID, primary.AddDecisionRequest{Title: "Adopt ADRs"})
	if err != nil {
		t.Fatalf("AddDecision failed: %v", err)
	}

	if err := svc.LinkAttachment(ctx, space.ID, models.ElementReference, refID, decID); err != nil {
		t.Fatalf("LinkAttachment failed: %v", err)
	}
	if got := repo.spaces[space.ID].Canvas.References[0].DecisionID; got != decID {
		t.Errorf("expected link to %s, got %q", decID, got)
	}

	if err := svc.LinkAttachment(ctx, space.ID, models.ElementReference, refID, "dec-missing"); err == nil {
		t.Error("expected error linking to unknown decision")
	}

	if err := svc.UnlinkAttachment(ctx, space.ID, models.ElementReference, refID); err != nil {
		t.Fatalf("UnlinkAttachment failed: %v", err)
	}
	if got := repo.spaces[space.ID].Canvas.References[0].DecisionID; got != "" {
		t.Errorf("expected unlinked, got %q", got)
	}
}
