package sqlite

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/BBBtp/Tracker/internal/models"
	"github.com/BBBtp/Tracker/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store := NewStore(filepath.Join(t.TempDir(), "tracker.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

func newTracker(title, category string, schedule models.Schedule) models.Tracker {
	kind := models.KindHabit
	if schedule.IsEmpty() {
		kind = models.KindIrregularEvent
	}
	return models.Tracker{
		ID:            uuid.New().String(),
		Title:         title,
		Color:         models.Colors[0],
		Emoji:         models.Emojis[0],
		Schedule:      schedule,
		Kind:          kind,
		CategoryTitle: category,
	}
}

func mustAdd(t *testing.T, store *Store, tracker models.Tracker) models.Tracker {
	t.Helper()
	if err := store.AddTracker(tracker.CategoryTitle, tracker); err != nil {
		t.Fatalf("AddTracker failed: %v", err)
	}
	return tracker
}

func TestAddAndGetTracker(t *testing.T) {
	store := newTestStore(t)

	want := mustAdd(t, store, newTracker("Run", "Health", models.NewSchedule(models.Monday, models.Wednesday, models.Friday)))

	got, err := store.GetTracker(want.ID)
	if err != nil {
		t.Fatalf("GetTracker failed: %v", err)
	}

	if got.Title != want.Title {
		t.Errorf("title = %q, want %q", got.Title, want.Title)
	}
	if got.Kind != models.KindHabit {
		t.Errorf("kind = %q, want %q", got.Kind, models.KindHabit)
	}
	if got.CategoryTitle != "Health" {
		t.Errorf("category = %q, want Health", got.CategoryTitle)
	}
	if !got.Schedule.Equal(want.Schedule) {
		t.Errorf("schedule = %v, want %v", got.Schedule.Days(), want.Schedule.Days())
	}
	if got.CreatedAt.IsZero() {
		t.Error("created_at was not set")
	}
}

func TestGetTrackerNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetTracker("no-such-id")
	if !errors.Is(err, storage.ErrTrackerNotFound) {
		t.Errorf("expected ErrTrackerNotFound, got %v", err)
	}
}

func TestUpdateTracker(t *testing.T) {
	store := newTestStore(t)

	tracker := mustAdd(t, store, newTracker("Run", "Health", models.EveryDay()))

	tracker.Title = "Morning run"
	tracker.Schedule = models.WorkDays()
	if err := store.UpdateTracker("Fitness", tracker); err != nil {
		t.Fatalf("UpdateTracker failed: %v", err)
	}

	got, err := store.GetTracker(tracker.ID)
	if err != nil {
		t.Fatalf("GetTracker failed: %v", err)
	}
	if got.Title != "Morning run" {
		t.Errorf("title = %q, want Morning run", got.Title)
	}
	if got.CategoryTitle != "Fitness" {
		t.Errorf("category = %q, want Fitness", got.CategoryTitle)
	}
	if !got.Schedule.Equal(models.WorkDays()) {
		t.Errorf("schedule = %v, want weekdays", got.Schedule.Days())
	}
}

func TestUpdateTrackerNotFound(t *testing.T) {
	store := newTestStore(t)

	tracker := newTracker("Ghost", "Health", models.EveryDay())
	if err := store.UpdateTracker("Health", tracker); !errors.Is(err, storage.ErrTrackerNotFound) {
		t.Errorf("expected ErrTrackerNotFound, got %v", err)
	}
}

func TestDeleteTrackerCascadesRecords(t *testing.T) {
	store := newTestStore(t)

	tracker := mustAdd(t, store, newTracker("Run", "Health", models.EveryDay()))
	if err := store.AddRecord(tracker.ID, "2024-01-10"); err != nil {
		t.Fatalf("AddRecord failed: %v", err)
	}

	if err := store.DeleteTracker(tracker.ID); err != nil {
		t.Fatalf("DeleteTracker failed: %v", err)
	}

	if _, err := store.GetTracker(tracker.ID); !errors.Is(err, storage.ErrTrackerNotFound) {
		t.Errorf("expected ErrTrackerNotFound after delete, got %v", err)
	}

	var count int
	err := store.GetDB().QueryRow("SELECT COUNT(*) FROM completion_records WHERE tracker_id = ?", tracker.ID).Scan(&count)
	if err != nil {
		t.Fatalf("failed to count records: %v", err)
	}
	if count != 0 {
		t.Errorf("expected records to cascade away, found %d", count)
	}

	if err := store.DeleteTracker(tracker.ID); !errors.Is(err, storage.ErrTrackerNotFound) {
		t.Errorf("expected ErrTrackerNotFound on second delete, got %v", err)
	}
}

func TestListTrackersSearch(t *testing.T) {
	store := newTestStore(t)

	mustAdd(t, store, newTracker("Morning run", "Health", models.EveryDay()))
	mustAdd(t, store, newTracker("Evening run", "Health", models.EveryDay()))
	mustAdd(t, store, newTracker("Read", "Leisure", models.EveryDay()))

	all, err := store.ListTrackers("")
	if err != nil {
		t.Fatalf("ListTrackers failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 trackers, got %d", len(all))
	}

	runs, err := store.ListTrackers("run")
	if err != nil {
		t.Fatalf("ListTrackers failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 matches for %q, got %d", "run", len(runs))
	}

	none, err := store.ListTrackers("swim")
	if err != nil {
		t.Fatalf("ListTrackers failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no matches, got %d", len(none))
	}
}

func TestListTrackersSearchNonASCII(t *testing.T) {
	store := newTestStore(t)

	tracker := mustAdd(t, store, newTracker("Читать", "Досуг", models.EveryDay()))

	// Case folding must work beyond ASCII, in all directions.
	for _, search := range []string{"Читать", "читать", "ЧИТАТЬ", "итат"} {
		got, err := store.ListTrackers(search)
		if err != nil {
			t.Fatalf("ListTrackers(%q) failed: %v", search, err)
		}
		if len(got) != 1 || got[0].ID != tracker.ID {
			t.Errorf("ListTrackers(%q) = %d matches, want the tracker", search, len(got))
		}
	}

	none, err := store.ListTrackers("писать")
	if err != nil {
		t.Fatalf("ListTrackers failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no matches, got %d", len(none))
	}
}

func TestPinUnpinRoundTrip(t *testing.T) {
	store := newTestStore(t)

	tracker := mustAdd(t, store, newTracker("Run", "Health", models.EveryDay()))

	if err := store.PinTracker(tracker.ID); err != nil {
		t.Fatalf("PinTracker failed: %v", err)
	}

	got, err := store.GetTracker(tracker.ID)
	if err != nil {
		t.Fatalf("GetTracker failed: %v", err)
	}
	if got.CategoryTitle != models.PinnedCategoryTitle {
		t.Errorf("category = %q, want %q", got.CategoryTitle, models.PinnedCategoryTitle)
	}
	if got.PinnedFrom != "Health" {
		t.Errorf("pinned_from = %q, want Health", got.PinnedFrom)
	}

	// Pinning again must not clobber the remembered category.
	if err := store.PinTracker(tracker.ID); err != nil {
		t.Fatalf("second PinTracker failed: %v", err)
	}
	got, _ = store.GetTracker(tracker.ID)
	if got.PinnedFrom != "Health" {
		t.Errorf("pinned_from after re-pin = %q, want Health", got.PinnedFrom)
	}

	if err := store.UnpinTracker(tracker.ID); err != nil {
		t.Fatalf("UnpinTracker failed: %v", err)
	}
	got, _ = store.GetTracker(tracker.ID)
	if got.CategoryTitle != "Health" {
		t.Errorf("category after unpin = %q, want Health", got.CategoryTitle)
	}
	if got.PinnedFrom != "" {
		t.Errorf("pinned_from after unpin = %q, want empty", got.PinnedFrom)
	}

	// Unpinning an unpinned tracker is a no-op.
	if err := store.UnpinTracker(tracker.ID); err != nil {
		t.Fatalf("UnpinTracker on unpinned tracker failed: %v", err)
	}
}

func TestUpdateTrackerClearsPinnedFromOnReparent(t *testing.T) {
	store := newTestStore(t)

	tracker := mustAdd(t, store, newTracker("Run", "Health", models.EveryDay()))
	if err := store.PinTracker(tracker.ID); err != nil {
		t.Fatalf("PinTracker failed: %v", err)
	}

	// Editing the pinned tracker into a normal category is an implicit unpin.
	if err := store.UpdateTracker("Fitness", tracker); err != nil {
		t.Fatalf("UpdateTracker failed: %v", err)
	}

	got, err := store.GetTracker(tracker.ID)
	if err != nil {
		t.Fatalf("GetTracker failed: %v", err)
	}
	if got.CategoryTitle != "Fitness" {
		t.Errorf("category = %q, want Fitness", got.CategoryTitle)
	}
	if got.PinnedFrom != "" {
		t.Errorf("pinned_from = %q, want empty after re-parent", got.PinnedFrom)
	}

	// A later unpin must not move the tracker anywhere.
	if err := store.UnpinTracker(tracker.ID); err != nil {
		t.Fatalf("UnpinTracker failed: %v", err)
	}
	got, _ = store.GetTracker(tracker.ID)
	if got.CategoryTitle != "Fitness" {
		t.Errorf("category after unpin = %q, want Fitness", got.CategoryTitle)
	}
}

func TestListCategoriesExcludesPinned(t *testing.T) {
	store := newTestStore(t)

	tracker := mustAdd(t, store, newTracker("Run", "Health", models.EveryDay()))
	mustAdd(t, store, newTracker("Read", "Leisure", models.EveryDay()))
	if err := store.PinTracker(tracker.ID); err != nil {
		t.Fatalf("PinTracker failed: %v", err)
	}

	categories, err := store.ListCategories(false)
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	for _, c := range categories {
		if c.Title == models.PinnedCategoryTitle {
			t.Error("pinned category leaked into normal listing")
		}
	}
	if len(categories) != 2 {
		t.Errorf("expected 2 categories, got %d", len(categories))
	}

	withPinned, err := store.ListCategories(true)
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	if len(withPinned) != 3 {
		t.Errorf("expected 3 categories including pinned, got %d", len(withPinned))
	}
}

func TestRenameCategory(t *testing.T) {
	store := newTestStore(t)

	tracker := mustAdd(t, store, newTracker("Run", "Health", models.EveryDay()))
	pinned := mustAdd(t, store, newTracker("Read", "Health", models.EveryDay()))
	if err := store.PinTracker(pinned.ID); err != nil {
		t.Fatalf("PinTracker failed: %v", err)
	}

	if err := store.RenameCategory("Health", "Wellness"); err != nil {
		t.Fatalf("RenameCategory failed: %v", err)
	}

	got, err := store.GetTracker(tracker.ID)
	if err != nil {
		t.Fatalf("GetTracker failed: %v", err)
	}
	if got.CategoryTitle != "Wellness" {
		t.Errorf("category = %q, want Wellness", got.CategoryTitle)
	}

	// The pinned tracker's remembered category follows the rename.
	got, _ = store.GetTracker(pinned.ID)
	if got.PinnedFrom != "Wellness" {
		t.Errorf("pinned_from = %q, want Wellness", got.PinnedFrom)
	}

	if err := store.RenameCategory("Missing", "Anything"); !errors.Is(err, storage.ErrCategoryNotFound) {
		t.Errorf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestDeleteCategoryReassignsTrackers(t *testing.T) {
	store := newTestStore(t)

	tracker := mustAdd(t, store, newTracker("Run", "Health", models.EveryDay()))

	if err := store.DeleteCategory("Health"); err != nil {
		t.Fatalf("DeleteCategory failed: %v", err)
	}

	got, err := store.GetTracker(tracker.ID)
	if err != nil {
		t.Fatalf("GetTracker failed: %v", err)
	}
	if got.CategoryTitle != models.DefaultCategoryTitle {
		t.Errorf("category = %q, want %q", got.CategoryTitle, models.DefaultCategoryTitle)
	}

	if err := store.DeleteCategory(models.PinnedCategoryTitle); err == nil {
		t.Error("deleting the pinned category should fail")
	}

	if err := store.DeleteCategory("Missing"); !errors.Is(err, storage.ErrCategoryNotFound) {
		t.Errorf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestSetCompletionIdempotent(t *testing.T) {
	store := newTestStore(t)

	tracker := mustAdd(t, store, newTracker("Run", "Health", models.EveryDay()))
	day := "2024-01-10"

	changed, err := store.SetCompletion(tracker.ID, day, true)
	if err != nil {
		t.Fatalf("SetCompletion failed: %v", err)
	}
	if !changed {
		t.Error("first completion should report a change")
	}

	changed, err = store.SetCompletion(tracker.ID, day, true)
	if err != nil {
		t.Fatalf("SetCompletion failed: %v", err)
	}
	if changed {
		t.Error("repeated completion should be a no-op")
	}

	count, err := store.CountRecords(tracker.ID)
	if err != nil {
		t.Fatalf("CountRecords failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 record, got %d", count)
	}

	changed, err = store.SetCompletion(tracker.ID, day, false)
	if err != nil {
		t.Fatalf("SetCompletion failed: %v", err)
	}
	if !changed {
		t.Error("uncompletion should report a change")
	}

	changed, err = store.SetCompletion(tracker.ID, day, false)
	if err != nil {
		t.Fatalf("SetCompletion failed: %v", err)
	}
	if changed {
		t.Error("repeated uncompletion should be a no-op")
	}

	if _, err := store.SetCompletion("no-such-id", day, true); !errors.Is(err, storage.ErrTrackerNotFound) {
		t.Errorf("expected ErrTrackerNotFound, got %v", err)
	}
}

func TestRecordQueries(t *testing.T) {
	store := newTestStore(t)

	a := mustAdd(t, store, newTracker("Run", "Health", models.EveryDay()))
	b := mustAdd(t, store, newTracker("Read", "Leisure", models.EveryDay()))

	for _, day := range []string{"2024-01-12", "2024-01-10", "2024-01-11"} {
		if err := store.AddRecord(a.ID, day); err != nil {
			t.Fatalf("AddRecord failed: %v", err)
		}
	}
	if err := store.AddRecord(b.ID, "2024-01-10"); err != nil {
		t.Fatalf("AddRecord failed: %v", err)
	}

	records, err := store.ListRecords(a.ID)
	if err != nil {
		t.Fatalf("ListRecords failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	for i := 1; i < len(records); i++ {
		if records[i].Day < records[i-1].Day {
			t.Errorf("records not ordered by day: %s before %s", records[i-1].Day, records[i].Day)
		}
	}

	completed, err := store.CompletedTrackerIDs("2024-01-10")
	if err != nil {
		t.Fatalf("CompletedTrackerIDs failed: %v", err)
	}
	if !completed[a.ID] || !completed[b.ID] {
		t.Errorf("expected both trackers completed on 2024-01-10, got %v", completed)
	}

	ever, err := store.EverCompletedTrackerIDs()
	if err != nil {
		t.Fatalf("EverCompletedTrackerIDs failed: %v", err)
	}
	if len(ever) != 2 {
		t.Errorf("expected 2 ever-completed trackers, got %d", len(ever))
	}
}

func TestCompletionStatus(t *testing.T) {
	store := newTestStore(t)

	tracker := mustAdd(t, store, newTracker("Run", "Health", models.EveryDay()))
	if err := store.AddRecord(tracker.ID, "2024-01-10"); err != nil {
		t.Fatalf("AddRecord failed: %v", err)
	}
	if err := store.AddRecord(tracker.ID, "2024-01-11"); err != nil {
		t.Fatalf("AddRecord failed: %v", err)
	}

	status, err := store.CompletionStatus(tracker.ID, "2024-01-10")
	if err != nil {
		t.Fatalf("CompletionStatus failed: %v", err)
	}
	if status.TotalCompletions != 2 {
		t.Errorf("total = %d, want 2", status.TotalCompletions)
	}
	if !status.IsCompleted {
		t.Error("expected IsCompleted on a recorded day")
	}
	if status.IsPinned {
		t.Error("unpinned tracker reported as pinned")
	}

	status, err = store.CompletionStatus(tracker.ID, "2024-01-12")
	if err != nil {
		t.Fatalf("CompletionStatus failed: %v", err)
	}
	if status.IsCompleted {
		t.Error("expected IsCompleted false on an unrecorded day")
	}
}

func TestStateRoundTrip(t *testing.T) {
	store := newTestStore(t)

	_, ok, err := store.GetState("missing")
	if err != nil {
		t.Fatalf("GetState failed: %v", err)
	}
	if ok {
		t.Error("expected ok=false for an unset key")
	}

	if err := store.SetState("greeting", "hello"); err != nil {
		t.Fatalf("SetState failed: %v", err)
	}
	if err := store.SetState("greeting", "hi"); err != nil {
		t.Fatalf("SetState failed: %v", err)
	}

	value, ok, err := store.GetState("greeting")
	if err != nil {
		t.Fatalf("GetState failed: %v", err)
	}
	if !ok || value != "hi" {
		t.Errorf("GetState = (%q, %v), want (hi, true)", value, ok)
	}
}

func TestOnboardingFlag(t *testing.T) {
	store := newTestStore(t)

	done, err := store.HasCompletedOnboarding()
	if err != nil {
		t.Fatalf("HasCompletedOnboarding failed: %v", err)
	}
	if done {
		t.Error("onboarding should start incomplete")
	}

	if err := store.SetOnboardingComplete(); err != nil {
		t.Fatalf("SetOnboardingComplete failed: %v", err)
	}

	done, err = store.HasCompletedOnboarding()
	if err != nil {
		t.Fatalf("HasCompletedOnboarding failed: %v", err)
	}
	if !done {
		t.Error("onboarding flag did not persist")
	}
}
