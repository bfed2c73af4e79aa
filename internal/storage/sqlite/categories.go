package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/BBBtp/Tracker/internal/models"
	"github.com/BBBtp/Tracker/internal/storage"
)

// FetchOrCreateCategory maps a title to a durable category, creating it on
// first use. The match is case-sensitive and exact; lookup-before-create is
// sufficient under the single-threaded execution model.
func (s *Store) FetchOrCreateCategory(title string) (models.Category, error) {
	return s.fetchOrCreateCategory(title, false)
}

// FetchOrCreatePinnedCategory returns the distinguished Pinned
// pseudo-category, creating it on first pin.
func (s *Store) FetchOrCreatePinnedCategory() (models.Category, error) {
	return s.fetchOrCreateCategory(models.PinnedCategoryTitle, true)
}

func (s *Store) fetchOrCreateCategory(title string, pinned bool) (models.Category, error) {
	var c models.Category
	var pinnedInt int
	err := s.db.QueryRow("SELECT title, pinned FROM categories WHERE title = ?", title).
		Scan(&c.Title, &pinnedInt)
	if err == nil {
		c.Pinned = pinnedInt != 0
		return c, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.Category{}, fmt.Errorf("fetch category %q: %w", title, err)
	}

	pinnedVal := 0
	if pinned {
		pinnedVal = 1
	}
	if _, err := s.db.Exec("INSERT INTO categories (title, pinned) VALUES (?, ?)", title, pinnedVal); err != nil {
		return models.Category{}, fmt.Errorf("create category %q: %w", title, err)
	}

	return models.Category{Title: title, Pinned: pinned}, nil
}

// ListCategories returns all categories ordered by title. The Pinned
// pseudo-category is excluded from normal listings unless asked for.
func (s *Store) ListCategories(includePinned bool) ([]models.Category, error) {
	query := builder.Select("title", "pinned").From("categories").OrderBy("title")
	if !includePinned {
		query = query.Where("pinned = 0")
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build category query: %w", err)
	}

	rows, err := s.db.Query(sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		var pinnedInt int
		if err := rows.Scan(&c.Title, &pinnedInt); err != nil {
			return nil, err
		}
		c.Pinned = pinnedInt != 0
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

// RenameCategory changes a category's title. Tracker rows follow through the
// ON UPDATE CASCADE relationship; remembered pre-pin categories are rewritten
// explicitly.
func (s *Store) RenameCategory(oldTitle, newTitle string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.Exec("UPDATE categories SET title = ? WHERE title = ? AND pinned = 0", newTitle, oldTitle)
	if err != nil {
		return fmt.Errorf("rename category: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return storage.ErrCategoryNotFound
	}

	if _, err := tx.Exec("UPDATE trackers SET pinned_from = ? WHERE pinned_from = ?", newTitle, oldTitle); err != nil {
		return fmt.Errorf("rewrite pinned_from: %w", err)
	}

	return tx.Commit()
}

// DeleteCategory removes a category. Orphaned trackers are reassigned to the
// default category rather than cascaded away.
func (s *Store) DeleteCategory(title string) error {
	if title == models.PinnedCategoryTitle {
		return fmt.Errorf("the pinned category cannot be deleted")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRow("SELECT COUNT(*) FROM categories WHERE title = ? AND pinned = 0", title).Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		return storage.ErrCategoryNotFound
	}

	var orphans int
	if err := tx.QueryRow("SELECT COUNT(*) FROM trackers WHERE category_title = ? OR pinned_from = ?", title, title).Scan(&orphans); err != nil {
		return err
	}
	if orphans > 0 {
		if _, err := tx.Exec("INSERT OR IGNORE INTO categories (title, pinned) VALUES (?, 0)", models.DefaultCategoryTitle); err != nil {
			return err
		}
		if _, err := tx.Exec("UPDATE trackers SET category_title = ? WHERE category_title = ?", models.DefaultCategoryTitle, title); err != nil {
			return err
		}
		if _, err := tx.Exec("UPDATE trackers SET pinned_from = ? WHERE pinned_from = ?", models.DefaultCategoryTitle, title); err != nil {
			return err
		}
	}

	if _, err := tx.Exec("DELETE FROM categories WHERE title = ?", title); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	return tx.Commit()
}
