package validation

import (
	"fmt"
	"strings"

	"github.com/BBBtp/Tracker/internal/models"
)

// ProblemType classifies a validation failure on a tracker definition.
type ProblemType string

const (
	ProblemEmptyTitle        ProblemType = "empty_title"
	ProblemUnknownColor      ProblemType = "unknown_color"
	ProblemUnknownEmoji      ProblemType = "unknown_emoji"
	ProblemHabitNoSchedule   ProblemType = "habit_without_schedule"
	ProblemEventWithSchedule ProblemType = "event_with_schedule"
	ProblemUnknownKind       ProblemType = "unknown_kind"
	ProblemInvalidWeekday    ProblemType = "invalid_weekday"
)

// Problem is one detected issue with a tracker definition.
type Problem struct {
	Type        ProblemType
	Description string
}

// Result collects the problems found for a single tracker.
type Result struct {
	Problems []Problem
}

// OK reports whether no problems were detected.
func (r *Result) OK() bool {
	return len(r.Problems) == 0
}

// Err returns a single error summarizing all problems, or nil when valid.
func (r *Result) Err() error {
	if r.OK() {
		return nil
	}
	descs := make([]string, 0, len(r.Problems))
	for _, p := range r.Problems {
		descs = append(descs, p.Description)
	}
	return fmt.Errorf("invalid tracker: %s", strings.Join(descs, "; "))
}

func (r *Result) add(t ProblemType, format string, args ...interface{}) {
	r.Problems = append(r.Problems, Problem{Type: t, Description: fmt.Sprintf(format, args...)})
}

// ValidateTracker checks a tracker definition against the palette and the
// kind/schedule invariants: a habit carries a non-empty weekly schedule, an
// irregular event carries an empty one.
func ValidateTracker(t models.Tracker) Result {
	var res Result

	if strings.TrimSpace(t.Title) == "" {
		res.add(ProblemEmptyTitle, "title must not be empty")
	}
	if !models.ValidColor(t.Color) {
		res.add(ProblemUnknownColor, "color %q is not in the palette", t.Color)
	}
	if !models.ValidEmoji(t.Emoji) {
		res.add(ProblemUnknownEmoji, "emoji %q is not in the palette", t.Emoji)
	}

	for _, d := range t.Schedule.Days() {
		if !d.Valid() {
			res.add(ProblemInvalidWeekday, "weekday %d is out of range", int(d))
		}
	}

	switch t.Kind {
	case models.KindHabit:
		if t.Schedule.IsEmpty() {
			res.add(ProblemHabitNoSchedule, "a habit needs at least one scheduled weekday")
		}
	case models.KindIrregularEvent:
		if !t.Schedule.IsEmpty() {
			res.add(ProblemEventWithSchedule, "an irregular event must not have a weekly schedule")
		}
	default:
		res.add(ProblemUnknownKind, "unknown tracker kind %q", t.Kind)
	}

	return res
}

// ValidateCategoryTitle checks a category title for use in lookup-or-create.
func ValidateCategoryTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("category title must not be empty")
	}
	return nil
}
