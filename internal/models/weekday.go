package models

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// WeekDay is a day of the week in the tracker domain convention:
// Monday is 1 and Sunday is 7.
type WeekDay int

const (
	Monday WeekDay = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// WeekDayFromDate maps a calendar date onto the domain weekday.
// Go's time package counts Sunday as 0, so Sunday folds to 7 and the
// remaining days carry over unchanged.
func WeekDayFromDate(date time.Time) WeekDay {
	native := int(date.Weekday())
	if native == 0 {
		return Sunday
	}
	return WeekDay(native)
}

// Valid reports whether the value is one of the seven weekdays.
func (w WeekDay) Valid() bool {
	return w >= Monday && w <= Sunday
}

func (w WeekDay) String() string {
	switch w {
	case Monday:
		return "Monday"
	case Tuesday:
		return "Tuesday"
	case Wednesday:
		return "Wednesday"
	case Thursday:
		return "Thursday"
	case Friday:
		return "Friday"
	case Saturday:
		return "Saturday"
	case Sunday:
		return "Sunday"
	default:
		return fmt.Sprintf("WeekDay(%d)", int(w))
	}
}

// Short returns the two-letter abbreviation used in list rendering.
func (w WeekDay) Short() string {
	s := w.String()
	if len(s) < 2 || strings.HasPrefix(s, "WeekDay") {
		return "??"
	}
	return s[:2]
}

// Schedule is the set of weekdays a habit recurs on. An irregular event
// carries an empty schedule.
type Schedule map[WeekDay]bool

// NewSchedule builds a schedule from the given days, dropping invalid values.
func NewSchedule(days ...WeekDay) Schedule {
	s := make(Schedule, len(days))
	for _, d := range days {
		if d.Valid() {
			s[d] = true
		}
	}
	return s
}

// EveryDay returns the full seven-day schedule.
func EveryDay() Schedule {
	return NewSchedule(Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday)
}

// WorkDays returns Monday through Friday.
func WorkDays() Schedule {
	return NewSchedule(Monday, Tuesday, Wednesday, Thursday, Friday)
}

// Weekend returns Saturday and Sunday.
func Weekend() Schedule {
	return NewSchedule(Saturday, Sunday)
}

// Contains reports whether the schedule includes the given day.
func (s Schedule) Contains(day WeekDay) bool {
	return s[day]
}

// IsEmpty reports whether no weekday is set.
func (s Schedule) IsEmpty() bool {
	return len(s) == 0
}

// Days returns the scheduled weekdays in Monday-first order.
func (s Schedule) Days() []WeekDay {
	days := make([]WeekDay, 0, len(s))
	for d := range s {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
	return days
}

// Equal reports whether two schedules contain the same weekdays.
func (s Schedule) Equal(other Schedule) bool {
	if len(s) != len(other) {
		return false
	}
	for d := range s {
		if !other[d] {
			return false
		}
	}
	return true
}

// Label returns a human-readable description of the schedule. The named
// sets are only used for display, never for matching.
func (s Schedule) Label() string {
	switch {
	case s.IsEmpty():
		return "No schedule"
	case s.Equal(EveryDay()):
		return "Every day"
	case s.Equal(WorkDays()):
		return "Weekdays"
	case s.Equal(Weekend()):
		return "Weekend"
	}
	parts := make([]string, 0, len(s))
	for _, d := range s.Days() {
		parts = append(parts, d.Short())
	}
	return strings.Join(parts, ", ")
}
