package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BBBtp/Tracker/internal/models"
	"github.com/BBBtp/Tracker/internal/storage"
)

const trackerColumns = "id, title, color, emoji, schedule, kind, category_title, pinned_from, created_at"

func marshalSchedule(s models.Schedule) (string, error) {
	days := make([]int, 0, len(s))
	for _, d := range s.Days() {
		days = append(days, int(d))
	}
	data, err := json.Marshal(days)
	if err != nil {
		return "", fmt.Errorf("failed to marshal schedule: %w", err)
	}
	return string(data), nil
}

func unmarshalSchedule(raw string) (models.Schedule, error) {
	var days []int
	if err := json.Unmarshal([]byte(raw), &days); err != nil {
		return nil, fmt.Errorf("failed to parse schedule: %w", err)
	}
	s := make(models.Schedule, len(days))
	for _, d := range days {
		s[models.WeekDay(d)] = true
	}
	return s, nil
}

func scanTracker(row interface{ Scan(...interface{}) error }) (models.Tracker, error) {
	var t models.Tracker
	var scheduleRaw, createdAt string

	err := row.Scan(&t.ID, &t.Title, &t.Color, &t.Emoji, &scheduleRaw, &t.Kind,
		&t.CategoryTitle, &t.PinnedFrom, &createdAt)
	if err != nil {
		return models.Tracker{}, err
	}

	t.Schedule, err = unmarshalSchedule(scheduleRaw)
	if err != nil {
		return models.Tracker{}, err
	}
	t.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Tracker{}, fmt.Errorf("failed to parse created_at: %w", err)
	}

	return t, nil
}

// AddTracker attaches a new tracker to the category with the given title,
// creating the category on first use.
func (s *Store) AddTracker(categoryTitle string, tracker models.Tracker) error {
	category, err := s.FetchOrCreateCategory(categoryTitle)
	if err != nil {
		return err
	}

	scheduleRaw, err := marshalSchedule(tracker.Schedule)
	if err != nil {
		return err
	}

	createdAt := tracker.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = s.db.Exec(`
		INSERT INTO trackers (id, title, color, emoji, schedule, kind, category_title, pinned_from, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tracker.ID, tracker.Title, tracker.Color, tracker.Emoji, scheduleRaw, tracker.Kind,
		category.Title, tracker.PinnedFrom, createdAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert tracker: %w", err)
	}

	return nil
}

func (s *Store) GetTracker(id string) (models.Tracker, error) {
	row := s.db.QueryRow("SELECT "+trackerColumns+" FROM trackers WHERE id = ?", id)
	t, err := scanTracker(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Tracker{}, storage.ErrTrackerNotFound
	}
	return t, err
}

// UpdateTracker overwrites title, kind, emoji, color and schedule of the
// tracker with the given id and re-parents it to the (possibly new) category.
// A missing id surfaces as ErrTrackerNotFound.
func (s *Store) UpdateTracker(categoryTitle string, tracker models.Tracker) error {
	existing, err := s.GetTracker(tracker.ID)
	if err != nil {
		return err
	}

	category, err := s.FetchOrCreateCategory(categoryTitle)
	if err != nil {
		return err
	}

	scheduleRaw, err := marshalSchedule(tracker.Schedule)
	if err != nil {
		return err
	}

	// Re-parenting a pinned tracker to a normal category is an implicit unpin:
	// the remembered pre-pin category must not survive it.
	pinnedFrom := existing.PinnedFrom
	if existing.CategoryTitle == models.PinnedCategoryTitle && category.Title != models.PinnedCategoryTitle {
		pinnedFrom = ""
	}

	_, err = s.db.Exec(`
		UPDATE trackers
		SET title = ?, color = ?, emoji = ?, schedule = ?, kind = ?, category_title = ?, pinned_from = ?
		WHERE id = ?`,
		tracker.Title, tracker.Color, tracker.Emoji, scheduleRaw, tracker.Kind,
		category.Title, pinnedFrom, tracker.ID)
	if err != nil {
		return fmt.Errorf("update tracker: %w", err)
	}

	return nil
}

// DeleteTracker removes the tracker; its completion records cascade away
// through the foreign key relationship.
func (s *Store) DeleteTracker(id string) error {
	result, err := s.db.Exec("DELETE FROM trackers WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete tracker: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return storage.ErrTrackerNotFound
	}
	return nil
}

// ListTrackers returns all trackers, narrowed by a case-insensitive substring
// match on title when search is non-empty. The match happens here rather than
// with a LIKE clause: SQLite case-folds ASCII only, and titles are routinely
// non-ASCII. Ordering is by category title then tracker title; the feed layer
// applies the pinned-first section ordering.
func (s *Store) ListTrackers(search string) ([]models.Tracker, error) {
	query := builder.
		Select(trackerColumns).
		From("trackers").
		OrderBy("category_title", "title")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build tracker query: %w", err)
	}

	rows, err := s.db.Query(sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	needle := strings.ToLower(search)

	var trackers []models.Tracker
	for rows.Next() {
		t, err := scanTracker(rows)
		if err != nil {
			return nil, err
		}
		if needle != "" && !strings.Contains(strings.ToLower(t.Title), needle) {
			continue
		}
		trackers = append(trackers, t)
	}

	return trackers, rows.Err()
}

// PinTracker moves a tracker into the Pinned pseudo-category, remembering its
// prior category for restore. Pinning an already-pinned tracker is a no-op.
func (s *Store) PinTracker(id string) error {
	tracker, err := s.GetTracker(id)
	if err != nil {
		return err
	}

	pinned, err := s.FetchOrCreatePinnedCategory()
	if err != nil {
		return err
	}
	if tracker.CategoryTitle == pinned.Title {
		return nil
	}

	_, err = s.db.Exec("UPDATE trackers SET category_title = ?, pinned_from = ? WHERE id = ?",
		pinned.Title, tracker.CategoryTitle, id)
	if err != nil {
		return fmt.Errorf("pin tracker: %w", err)
	}
	return nil
}

// UnpinTracker restores a pinned tracker to its remembered category.
// Unpinning a tracker with no remembered category is a no-op.
func (s *Store) UnpinTracker(id string) error {
	tracker, err := s.GetTracker(id)
	if err != nil {
		return err
	}
	if tracker.PinnedFrom == "" {
		return nil
	}

	// The remembered category may have been deleted while the tracker was
	// pinned; recreate it on restore.
	category, err := s.FetchOrCreateCategory(tracker.PinnedFrom)
	if err != nil {
		return err
	}

	_, err = s.db.Exec("UPDATE trackers SET category_title = ?, pinned_from = '' WHERE id = ?",
		category.Title, id)
	if err != nil {
		return fmt.Errorf("unpin tracker: %w", err)
	}
	return nil
}
