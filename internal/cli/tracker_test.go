package cli

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/BBBtp/Tracker/internal/models"
	"github.com/BBBtp/Tracker/internal/storage/sqlite"
)

func newTestContext(t *testing.T) *Context {
	t.Helper()

	store := sqlite.NewStore(filepath.Join(t.TempDir(), "tracker.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return &Context{Store: store}
}

func TestTrackerEditRejectsBlankCategory(t *testing.T) {
	ctx := newTestContext(t)

	tracker := models.Tracker{
		ID:            uuid.New().String(),
		Title:         "Run",
		Color:         models.Colors[0],
		Emoji:         models.Emojis[0],
		Schedule:      models.EveryDay(),
		Kind:          models.KindHabit,
		CategoryTitle: "Health",
	}
	if err := ctx.Store.AddTracker("Health", tracker); err != nil {
		t.Fatalf("AddTracker failed: %v", err)
	}

	cmd := &TrackerEditCmd{Title: "Run", Category: "   "}
	if err := cmd.Run(ctx); err == nil {
		t.Fatal("edit should reject a whitespace-only category title")
	}

	got, err := ctx.Store.GetTracker(tracker.ID)
	if err != nil {
		t.Fatalf("GetTracker failed: %v", err)
	}
	if got.CategoryTitle != "Health" {
		t.Errorf("category = %q, want Health untouched", got.CategoryTitle)
	}
}

func TestTrackerEditMovesCategory(t *testing.T) {
	ctx := newTestContext(t)

	tracker := models.Tracker{
		ID:            uuid.New().String(),
		Title:         "Run",
		Color:         models.Colors[0],
		Emoji:         models.Emojis[0],
		Schedule:      models.EveryDay(),
		Kind:          models.KindHabit,
		CategoryTitle: "Health",
	}
	if err := ctx.Store.AddTracker("Health", tracker); err != nil {
		t.Fatalf("AddTracker failed: %v", err)
	}

	cmd := &TrackerEditCmd{Title: "Run", Category: "Fitness"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("edit failed: %v", err)
	}

	got, err := ctx.Store.GetTracker(tracker.ID)
	if err != nil {
		t.Fatalf("GetTracker failed: %v", err)
	}
	if got.CategoryTitle != "Fitness" {
		t.Errorf("category = %q, want Fitness", got.CategoryTitle)
	}
}
