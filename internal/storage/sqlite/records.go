package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/BBBtp/Tracker/internal/models"
	"github.com/BBBtp/Tracker/internal/storage"
)

// AddRecord marks the tracker complete for the given day. The one-record-per
// (tracker, day) invariant is enforced by checking first rather than relying
// on the primary key violation.
func (s *Store) AddRecord(trackerID, day string) error {
	exists, err := s.hasRecord(trackerID, day)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	if _, err := s.db.Exec("INSERT INTO completion_records (tracker_id, day) VALUES (?, ?)", trackerID, day); err != nil {
		return fmt.Errorf("insert completion record: %w", err)
	}
	return nil
}

// RemoveRecord unmarks the tracker for the given day. Removing a record that
// does not exist is a no-op.
func (s *Store) RemoveRecord(trackerID, day string) error {
	if _, err := s.db.Exec("DELETE FROM completion_records WHERE tracker_id = ? AND day = ?", trackerID, day); err != nil {
		return fmt.Errorf("delete completion record: %w", err)
	}
	return nil
}

// SetCompletion drives the record for (tracker, day) to the requested state.
// The returned bool reports whether a row was actually inserted or deleted,
// so callers can fire statistics updates only on real transitions.
func (s *Store) SetCompletion(trackerID, day string, done bool) (bool, error) {
	if _, err := s.GetTracker(trackerID); err != nil {
		return false, err
	}

	exists, err := s.hasRecord(trackerID, day)
	if err != nil {
		return false, err
	}

	if done == exists {
		return false, nil
	}

	if done {
		return true, s.AddRecord(trackerID, day)
	}
	return true, s.RemoveRecord(trackerID, day)
}

func (s *Store) hasRecord(trackerID, day string) (bool, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM completion_records WHERE tracker_id = ? AND day = ?", trackerID, day).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check completion record: %w", err)
	}
	return count > 0, nil
}

// ListRecords returns every completion record for the tracker, oldest first.
func (s *Store) ListRecords(trackerID string) ([]models.CompletionRecord, error) {
	rows, err := s.db.Query(
		"SELECT tracker_id, day FROM completion_records WHERE tracker_id = ? ORDER BY day", trackerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.CompletionRecord
	for rows.Next() {
		var r models.CompletionRecord
		if err := rows.Scan(&r.TrackerID, &r.Day); err != nil {
			return nil, err
		}
		records = append(records, r)
	}

	return records, rows.Err()
}

// CompletedTrackerIDs returns the set of trackers with a record on the day.
func (s *Store) CompletedTrackerIDs(day string) (map[string]bool, error) {
	rows, err := s.db.Query("SELECT tracker_id FROM completion_records WHERE day = ?", day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = true
	}

	return ids, rows.Err()
}

// EverCompletedTrackerIDs returns the set of trackers with at least one
// record on any day. Irregular events in this set drop out of the All filter
// except on their completion day.
func (s *Store) EverCompletedTrackerIDs() (map[string]bool, error) {
	rows, err := s.db.Query("SELECT DISTINCT tracker_id FROM completion_records")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = true
	}

	return ids, rows.Err()
}

// CountRecords returns the total number of completions for the tracker.
func (s *Store) CountRecords(trackerID string) (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM completion_records WHERE tracker_id = ?", trackerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count completion records: %w", err)
	}
	return count, nil
}

// CompletionStatus is the read-only snapshot backing one rendered row.
func (s *Store) CompletionStatus(trackerID, day string) (storage.CompletionStatus, error) {
	tracker, err := s.GetTracker(trackerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.CompletionStatus{}, storage.ErrTrackerNotFound
		}
		return storage.CompletionStatus{}, err
	}

	total, err := s.CountRecords(trackerID)
	if err != nil {
		return storage.CompletionStatus{}, err
	}

	completed, err := s.hasRecord(trackerID, day)
	if err != nil {
		return storage.CompletionStatus{}, err
	}

	return storage.CompletionStatus{
		Tracker:          tracker,
		TotalCompletions: total,
		IsCompleted:      completed,
		IsPinned:         tracker.CategoryTitle == models.PinnedCategoryTitle,
	}, nil
}
