package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/BBBtp/Tracker/internal/models"
)

type jsonExport struct {
	ExportedAt string        `json:"exported_at"`
	Count      int           `json:"count"`
	Trackers   []jsonTracker `json:"trackers"`
}

type jsonTracker struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Kind        string   `json:"kind"`
	Color       string   `json:"color"`
	Emoji       string   `json:"emoji"`
	Schedule    string   `json:"schedule"`
	Completions []string `json:"completions"`
}

// ToJSON writes trackers with their completion history to path as indented
// JSON. The records map is keyed by tracker id.
func ToJSON(trackers []models.Tracker, records map[string][]models.CompletionRecord, path string) error {
	out := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(trackers),
	}

	for _, t := range trackers {
		days := make([]string, 0, len(records[t.ID]))
		for _, r := range records[t.ID] {
			days = append(days, r.Day)
		}
		out.Trackers = append(out.Trackers, jsonTracker{
			ID:          t.ID,
			Title:       t.Title,
			Category:    t.CategoryTitle,
			Kind:        string(t.Kind),
			Color:       t.Color,
			Emoji:       t.Emoji,
			Schedule:    t.Schedule.Label(),
			Completions: days,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
