package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
)

// The app_state table is a small key-value area for statistics scalars and
// the onboarding flag. It is deliberately not transactionally coupled to the
// tracker/record tables.

const onboardingKey = "has_completed_onboarding"

// GetState reads a state value; ok is false when the key has never been set.
func (s *Store) GetState(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM app_state WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read app state %q: %w", key, err)
	}
	return value, true, nil
}

// SetState writes a state value, replacing any previous one.
func (s *Store) SetState(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO app_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("write app state %q: %w", key, err)
	}
	return nil
}

// HasCompletedOnboarding reports whether the one-time onboarding flow ran.
func (s *Store) HasCompletedOnboarding() (bool, error) {
	value, ok, err := s.GetState(onboardingKey)
	if err != nil {
		return false, err
	}
	return ok && value == "true", nil
}

// SetOnboardingComplete records that the onboarding flow ran.
func (s *Store) SetOnboardingComplete() error {
	return s.SetState(onboardingKey, "true")
}
