package stats

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/BBBtp/Tracker/internal/models"
	"github.com/BBBtp/Tracker/internal/storage"
)

// PerfectDayThreshold is the fixed number of completions that makes a day
// "perfect".
const PerfectDayThreshold = 3

const (
	keyTotalCompletions = "stats.total_completions"
	keyCompletionDays   = "stats.completion_days"
	keyBestStreak       = "stats.best_streak"
	keyPerfectDays      = "stats.perfect_days"
)

// Snapshot is the derived statistics read by the dashboard.
type Snapshot struct {
	TotalCompletions  int
	BestStreak        int
	PerfectDays       int
	AverageCompletion int
}

// Service maintains running statistics counters as a side effect of
// completion-record mutation. Counters and the day history are persisted in
// the store's key-value area so they survive restarts without replay.
type Service struct {
	state storage.StateStore
}

func New(state storage.StateStore) *Service {
	return &Service{state: state}
}

// OnCompletion records one completion on the given day and refreshes the
// derived counters.
func (s *Service) OnCompletion(day string) error {
	total, err := s.readInt(keyTotalCompletions)
	if err != nil {
		return err
	}
	days, err := s.readDays()
	if err != nil {
		return err
	}

	days = append(days, day)

	if err := s.writeInt(keyTotalCompletions, total+1); err != nil {
		return err
	}
	if err := s.writeDays(days); err != nil {
		return err
	}
	return s.recompute(days)
}

// OnUncompletion removes one completion on the given day, flooring the total
// at zero, and refreshes the derived counters.
func (s *Service) OnUncompletion(day string) error {
	total, err := s.readInt(keyTotalCompletions)
	if err != nil {
		return err
	}
	if total == 0 {
		return nil
	}
	days, err := s.readDays()
	if err != nil {
		return err
	}

	for i, d := range days {
		if d == day {
			days = append(days[:i], days[i+1:]...)
			break
		}
	}

	if err := s.writeInt(keyTotalCompletions, total-1); err != nil {
		return err
	}
	if err := s.writeDays(days); err != nil {
		return err
	}
	return s.recompute(days)
}

// Snapshot reads the persisted counters and derives the average on the fly.
func (s *Service) Snapshot() (Snapshot, error) {
	total, err := s.readInt(keyTotalCompletions)
	if err != nil {
		return Snapshot{}, err
	}
	best, err := s.readInt(keyBestStreak)
	if err != nil {
		return Snapshot{}, err
	}
	perfect, err := s.readInt(keyPerfectDays)
	if err != nil {
		return Snapshot{}, err
	}
	days, err := s.readDays()
	if err != nil {
		return Snapshot{}, err
	}

	return Snapshot{
		TotalCompletions:  total,
		BestStreak:        best,
		PerfectDays:       perfect,
		AverageCompletion: averageCompletion(total, days),
	}, nil
}

func (s *Service) recompute(days []string) error {
	if err := s.writeInt(keyBestStreak, bestStreak(days)); err != nil {
		return err
	}
	return s.writeInt(keyPerfectDays, perfectDays(days))
}

// bestStreak is the longest run of consecutive calendar days with at least
// one completion. Duplicate completions on a day count once.
func bestStreak(days []string) int {
	distinct := distinctSorted(days)
	if len(distinct) == 0 {
		return 0
	}

	best, current := 1, 1
	prev, err := time.Parse(models.DayFormat, distinct[0])
	if err != nil {
		return 0
	}
	for _, d := range distinct[1:] {
		date, err := time.Parse(models.DayFormat, d)
		if err != nil {
			continue
		}
		if date.Sub(prev) == 24*time.Hour {
			current++
		} else {
			current = 1
		}
		if current > best {
			best = current
		}
		prev = date
	}
	return best
}

// perfectDays counts days whose completion count equals the fixed threshold.
func perfectDays(days []string) int {
	perDay := make(map[string]int, len(days))
	for _, d := range days {
		perDay[d]++
	}
	count := 0
	for _, n := range perDay {
		if n == PerfectDayThreshold {
			count++
		}
	}
	return count
}

// averageCompletion is integer division of completions over distinct active
// days; zero when nothing was ever completed.
func averageCompletion(total int, days []string) int {
	distinct := distinctSorted(days)
	if len(distinct) == 0 {
		return 0
	}
	return total / len(distinct)
}

func distinctSorted(days []string) []string {
	seen := make(map[string]bool, len(days))
	var out []string
	for _, d := range days {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	sort.Strings(out)
	return out
}

func (s *Service) readInt(key string) (int, error) {
	value, ok, err := s.state.GetState(key)
	if err != nil || !ok {
		return 0, err
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("corrupt counter %q: %w", key, err)
	}
	return n, nil
}

func (s *Service) writeInt(key string, value int) error {
	return s.state.SetState(key, strconv.Itoa(value))
}

func (s *Service) readDays() ([]string, error) {
	value, ok, err := s.state.GetState(keyCompletionDays)
	if err != nil || !ok {
		return nil, err
	}
	var days []string
	if err := json.Unmarshal([]byte(value), &days); err != nil {
		return nil, fmt.Errorf("corrupt completion history: %w", err)
	}
	return days, nil
}

func (s *Service) writeDays(days []string) error {
	data, err := json.Marshal(days)
	if err != nil {
		return fmt.Errorf("failed to marshal completion history: %w", err)
	}
	return s.state.SetState(keyCompletionDays, string(data))
}
