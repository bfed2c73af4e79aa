package feed

import (
	"time"

	"github.com/BBBtp/Tracker/internal/models"
)

// FilterKind narrows the visible tracker set.
type FilterKind string

const (
	FilterAll         FilterKind = "all"
	FilterToday       FilterKind = "today"
	FilterCompleted   FilterKind = "completed"
	FilterUncompleted FilterKind = "uncompleted"
)

// Valid reports whether the value is a known filter kind.
func (f FilterKind) Valid() bool {
	switch f {
	case FilterAll, FilterToday, FilterCompleted, FilterUncompleted:
		return true
	}
	return false
}

// completionState carries the record lookups a predicate needs: which
// trackers are completed on the reference date and which were ever completed.
type completionState struct {
	completedOnDate map[string]bool
	everCompleted   map[string]bool
}

// visible applies the filter predicate for one tracker against the reference
// date. Search narrowing happens in the store query, not here.
//
// All: a habit scheduled for the date's weekday, an irregular event that was
// never completed, or any tracker completed on this exact date. Irregular
// events therefore stay visible until completed, then only reappear on their
// completion day.
func visible(kind FilterKind, t models.Tracker, date time.Time, state completionState) bool {
	switch kind {
	case FilterAll, FilterToday:
		if t.ScheduledOn(date) {
			return true
		}
		if t.Kind == models.KindIrregularEvent && !state.everCompleted[t.ID] {
			return true
		}
		return state.completedOnDate[t.ID]
	case FilterCompleted:
		return state.completedOnDate[t.ID]
	case FilterUncompleted:
		if t.ScheduledOn(date) && !state.completedOnDate[t.ID] {
			return true
		}
		return t.Kind == models.KindIrregularEvent && !state.everCompleted[t.ID]
	default:
		return false
	}
}
