package feed

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/BBBtp/Tracker/internal/logger"
	"github.com/BBBtp/Tracker/internal/models"
	"github.com/BBBtp/Tracker/internal/stats"
	"github.com/BBBtp/Tracker/internal/storage"
)

// Row is one rendered tracker in the sectioned view.
type Row struct {
	Tracker          models.Tracker
	TotalCompletions int
	IsCompleted      bool
	IsPinned         bool
}

// Equal reports whether two rows would render identically.
func (r Row) Equal(other Row) bool {
	return r.Tracker.ID == other.Tracker.ID &&
		r.Tracker.Title == other.Tracker.Title &&
		r.Tracker.Color == other.Tracker.Color &&
		r.Tracker.Emoji == other.Tracker.Emoji &&
		r.Tracker.Kind == other.Tracker.Kind &&
		r.Tracker.Schedule.Equal(other.Tracker.Schedule) &&
		r.TotalCompletions == other.TotalCompletions &&
		r.IsCompleted == other.IsCompleted &&
		r.IsPinned == other.IsPinned
}

// Section is one category's worth of visible trackers.
type Section struct {
	Title  string
	Pinned bool
	Rows   []Row
}

// Feed is the live filtered, sectioned view over the tracker store. It holds
// an explicit store handle rather than reaching for ambient globals, and
// notifies subscribers with a structured diff after every refresh. All
// methods are meant to be called from a single goroutine.
type Feed struct {
	store storage.Provider
	stats *stats.Service

	filter FilterKind
	date   time.Time
	search string

	sections    []Section
	subscribers map[int]func(Diff)
	nextSubID   int

	now func() time.Time
}

func New(store storage.Provider, statsSvc *stats.Service) *Feed {
	return &Feed{
		store:       store,
		stats:       statsSvc,
		filter:      FilterAll,
		date:        time.Now(),
		subscribers: make(map[int]func(Diff)),
		now:         time.Now,
	}
}

// Subscribe registers an observer for refresh diffs. Delivery is synchronous,
// within the mutation that triggered the refresh. The returned function
// removes the subscription.
func (f *Feed) Subscribe(fn func(Diff)) (unsubscribe func()) {
	id := f.nextSubID
	f.nextSubID++
	f.subscribers[id] = fn
	return func() { delete(f.subscribers, id) }
}

// ApplyFilter re-evaluates the visible sections for the given filter, date
// and search text, then emits the diff against the previous snapshot.
func (f *Feed) ApplyFilter(kind FilterKind, date time.Time, search string) error {
	if !kind.Valid() {
		return fmt.Errorf("unknown filter kind %q", kind)
	}
	f.filter = kind
	f.date = date
	if kind == FilterToday {
		f.date = f.now()
	}
	f.search = strings.ToLower(search)
	return f.refresh()
}

// Refresh recomputes the view under the current filter settings.
func (f *Feed) Refresh() error {
	return f.refresh()
}

// Sections returns the current snapshot.
func (f *Feed) Sections() []Section {
	return f.sections
}

// Date returns the reference date the current snapshot was computed for.
func (f *Feed) Date() time.Time {
	return f.date
}

// Row resolves a row reference against the current snapshot.
func (f *Feed) Row(ref RowRef) (Row, error) {
	if ref.Section < 0 || ref.Section >= len(f.sections) {
		return Row{}, fmt.Errorf("section %d out of range", ref.Section)
	}
	s := f.sections[ref.Section]
	if ref.Row < 0 || ref.Row >= len(s.Rows) {
		return Row{}, fmt.Errorf("row %d out of range in section %q", ref.Row, s.Title)
	}
	return s.Rows[ref.Row], nil
}

// CompletionStatus re-reads the snapshot for one row from the store.
func (f *Feed) CompletionStatus(ref RowRef) (storage.CompletionStatus, error) {
	row, err := f.Row(ref)
	if err != nil {
		return storage.CompletionStatus{}, err
	}
	return f.store.CompletionStatus(row.Tracker.ID, models.Day(f.date))
}

// ChangeCompletion drives the completion state for the row's tracker on the
// feed's reference date, updates statistics on a real transition, and
// refreshes the view.
func (f *Feed) ChangeCompletion(ref RowRef, done bool) error {
	row, err := f.Row(ref)
	if err != nil {
		return err
	}

	day := models.Day(f.date)
	changed, err := f.store.SetCompletion(row.Tracker.ID, day, done)
	if err != nil {
		return err
	}

	if changed && f.stats != nil {
		var statsErr error
		if done {
			statsErr = f.stats.OnCompletion(day)
		} else {
			statsErr = f.stats.OnUncompletion(day)
		}
		if statsErr != nil {
			// Statistics are best-effort and not transactionally coupled
			// to the record mutation.
			logger.Warn("statistics update failed", "day", day, "error", statsErr)
		}
	}

	return f.refresh()
}

// DeleteTracker removes the row's tracker and refreshes the view. Completion
// records cascade away in the store.
func (f *Feed) DeleteTracker(ref RowRef) error {
	row, err := f.Row(ref)
	if err != nil {
		return err
	}
	if err := f.store.DeleteTracker(row.Tracker.ID); err != nil {
		return err
	}
	return f.refresh()
}

// PinTracker pins the row's tracker and refreshes the view.
func (f *Feed) PinTracker(ref RowRef) error {
	row, err := f.Row(ref)
	if err != nil {
		return err
	}
	if err := f.store.PinTracker(row.Tracker.ID); err != nil {
		return err
	}
	return f.refresh()
}

// UnpinTracker restores the row's tracker to its remembered category and
// refreshes the view.
func (f *Feed) UnpinTracker(ref RowRef) error {
	row, err := f.Row(ref)
	if err != nil {
		return err
	}
	if err := f.store.UnpinTracker(row.Tracker.ID); err != nil {
		return err
	}
	return f.refresh()
}

func (f *Feed) refresh() error {
	next, err := f.compute()
	if err != nil {
		return err
	}

	diff := computeDiff(f.sections, next)
	f.sections = next

	if !diff.Empty() {
		for _, fn := range f.subscribers {
			fn(diff)
		}
	}
	return nil
}

func (f *Feed) compute() ([]Section, error) {
	trackers, err := f.store.ListTrackers(f.search)
	if err != nil {
		return nil, fmt.Errorf("list trackers: %w", err)
	}

	day := models.Day(f.date)
	completedOnDate, err := f.store.CompletedTrackerIDs(day)
	if err != nil {
		return nil, fmt.Errorf("completed ids: %w", err)
	}
	everCompleted, err := f.store.EverCompletedTrackerIDs()
	if err != nil {
		return nil, fmt.Errorf("ever-completed ids: %w", err)
	}
	state := completionState{completedOnDate: completedOnDate, everCompleted: everCompleted}

	grouped := make(map[string][]Row)
	for _, t := range trackers {
		if !visible(f.filter, t, f.date, state) {
			continue
		}
		total, err := f.store.CountRecords(t.ID)
		if err != nil {
			return nil, fmt.Errorf("count records: %w", err)
		}
		grouped[t.CategoryTitle] = append(grouped[t.CategoryTitle], Row{
			Tracker:          t,
			TotalCompletions: total,
			IsCompleted:      completedOnDate[t.ID],
			IsPinned:         t.CategoryTitle == models.PinnedCategoryTitle,
		})
	}

	sections := make([]Section, 0, len(grouped))
	for title, rows := range grouped {
		sort.Slice(rows, func(i, j int) bool {
			return rows[i].Tracker.Title < rows[j].Tracker.Title
		})
		sections = append(sections, Section{
			Title:  title,
			Pinned: title == models.PinnedCategoryTitle,
			Rows:   rows,
		})
	}

	// Pinned section first, then categories alphabetically.
	sort.Slice(sections, func(i, j int) bool {
		if sections[i].Pinned != sections[j].Pinned {
			return sections[i].Pinned
		}
		return sections[i].Title < sections[j].Title
	})

	return sections, nil
}
