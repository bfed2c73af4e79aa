package storage

import (
	"errors"

	"github.com/BBBtp/Tracker/internal/models"
)

// ErrTrackerNotFound is the one failure the persistence layer surfaces as a
// typed condition; everything else is logged at the operation boundary.
var ErrTrackerNotFound = errors.New("tracker not found")

// ErrCategoryNotFound is returned by category rename/delete for a missing title.
var ErrCategoryNotFound = errors.New("category not found")

// CompletionStatus is the read-only snapshot used to render a single row.
type CompletionStatus struct {
	Tracker          models.Tracker
	TotalCompletions int
	IsCompleted      bool
	IsPinned         bool
}

// StateStore is the small key-value area holding statistics scalars and the
// onboarding flag.
type StateStore interface {
	GetState(key string) (value string, ok bool, err error)
	SetState(key, value string) error
}

// Provider is the persistence layer: durable storage of trackers, categories
// and completion records plus the key-value state area.
type Provider interface {
	StateStore

	Init() error
	Load() error
	Close() error
	GetConfigPath() string

	HasCompletedOnboarding() (bool, error)
	SetOnboardingComplete() error

	AddTracker(categoryTitle string, tracker models.Tracker) error
	GetTracker(id string) (models.Tracker, error)
	UpdateTracker(categoryTitle string, tracker models.Tracker) error
	DeleteTracker(id string) error
	ListTrackers(search string) ([]models.Tracker, error)
	PinTracker(id string) error
	UnpinTracker(id string) error

	FetchOrCreateCategory(title string) (models.Category, error)
	FetchOrCreatePinnedCategory() (models.Category, error)
	ListCategories(includePinned bool) ([]models.Category, error)
	RenameCategory(oldTitle, newTitle string) error
	DeleteCategory(title string) error

	AddRecord(trackerID, day string) error
	RemoveRecord(trackerID, day string) error
	// SetCompletion toggles the record for (tracker, day) to the requested
	// state and reports whether a mutation actually happened, so statistics
	// only move on real transitions.
	SetCompletion(trackerID, day string, done bool) (bool, error)
	ListRecords(trackerID string) ([]models.CompletionRecord, error)
	CompletedTrackerIDs(day string) (map[string]bool, error)
	EverCompletedTrackerIDs() (map[string]bool, error)
	CountRecords(trackerID string) (int, error)
	CompletionStatus(trackerID, day string) (CompletionStatus, error)
}
