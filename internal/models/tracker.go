package models

import "time"

type TrackerKind string

const (
	KindHabit          TrackerKind = "habit"
	KindIrregularEvent TrackerKind = "irregular_event"
)

// DayFormat is the day-granularity date layout used for completion records.
const DayFormat = "2006-01-02"

// Tracker is a single habit or one-off event being tracked.
type Tracker struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Color         string      `json:"color"`
	Emoji         string      `json:"emoji"`
	Schedule      Schedule    `json:"schedule"`
	Kind          TrackerKind `json:"kind"`
	CategoryTitle string      `json:"category"`
	// PinnedFrom remembers the category the tracker lived in before it was
	// pinned, so unpinning can restore it. Empty while unpinned.
	PinnedFrom string    `json:"pinned_from,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ScheduledOn reports whether the tracker recurs on the given date's weekday.
// Irregular events never match; their visibility is governed by completion
// state instead.
func (t Tracker) ScheduledOn(date time.Time) bool {
	if t.Kind != KindHabit {
		return false
	}
	return t.Schedule.Contains(WeekDayFromDate(date))
}

// Category groups trackers under a display title. The Pinned pseudo-category
// is distinguished by its flag and always sorts first.
type Category struct {
	Title  string `json:"title"`
	Pinned bool   `json:"pinned"`
}

// PinnedCategoryTitle is the fixed title of the pseudo-category holding
// pinned trackers.
const PinnedCategoryTitle = "Pinned"

// DefaultCategoryTitle is the sentinel category for trackers created without
// an explicit category; "no category" is never represented as an empty title.
const DefaultCategoryTitle = "No Category"

// CompletionRecord marks a tracker as done on one calendar day. At most one
// record exists per (tracker, day) pair.
type CompletionRecord struct {
	TrackerID string `json:"tracker_id"`
	Day       string `json:"day"` // YYYY-MM-DD
}

// Day formats a date at day granularity for record storage and comparison.
func Day(date time.Time) string {
	return date.Format(DayFormat)
}
