package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/sketch/internal/adapters/sqlite"
	"github.com/example/sketch/internal/ports/secondary"
)

func TestActivityLogRecordAndRecent(t *testing.T) {
	log := sqlite.NewActivityLogRepository(setupTestDB(t))
	ctx := context.Background()

	entries := []secondary.ActivityEntry{
		{SpaceID: "space-1", EntityType: "option", EntityID: "opt-1", Action: secondary.ActionCreate, Detail: "Use Redis Pub/Sub"},
		{SpaceID: "space-1", EntityType: "message", EntityID: "msg-1", Action: secondary.ActionMerge},
		{SpaceID: "space-2", EntityType: "space", EntityID: "space-2", Action: secondary.ActionDelete},
	}
	for _, e := range entries {
		if err := log.Record(ctx, e); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	got, err := log.Recent(ctx, "space-1", 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries for space-1, got %d", len(got))
	}
	if got[0].EntityID != "msg-1" {
		t.Errorf("expected newest first, got %+v", got[0])
	}
	if got[1].Detail != "Use Redis Pub/Sub" {
		t.Errorf("detail not round-tripped: %+v", got[1])
	}
	if got[0].CreatedAt == "" {
		t.Error("expected created_at populated")
	}

	all, err := log.Recent(ctx, "", 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 entries across spaces, got %d", len(all))
	}
}

func TestActivityLogRecentLimit(t *testing.T) {
	log := sqlite.NewActivityLogRepository(setupTestDB(t))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		entry := secondary.ActivityEntry{SpaceID: "space-1", EntityType: "option", Action: secondary.ActionUpdate}
		if err := log.Record(ctx, entry); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	got, err := log.Recent(ctx, "space-1", 3)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("expected limit applied, got %d entries", len(got))
	}
}

func TestActivityLogRejectsUnknownAction(t *testing.T) {
	log := sqlite.NewActivityLogRepository(setupTestDB(t))
	err := log.Record(context.Background(), secondary.ActivityEntry{
		SpaceID:    "space-1",
		EntityType: "option",
		Action:     "explode",
	})
	if err == nil {
		t.Error("expected CHECK constraint to reject unknown action")
	}
}
