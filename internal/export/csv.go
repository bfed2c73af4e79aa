package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/BBBtp/Tracker/internal/models"
)

// ToCSV writes one row per tracker to path, with the completion history
// flattened into a semicolon-separated day list.
func ToCSV(trackers []models.Tracker, records map[string][]models.CompletionRecord, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"ID", "Title", "Category", "Kind", "Color", "Emoji", "Schedule", "Completions", "Days"}); err != nil {
		return err
	}

	for _, t := range trackers {
		days := make([]string, 0, len(records[t.ID]))
		for _, r := range records[t.ID] {
			days = append(days, r.Day)
		}
		row := []string{
			t.ID,
			t.Title,
			t.CategoryTitle,
			string(t.Kind),
			t.Color,
			t.Emoji,
			t.Schedule.Label(),
			fmt.Sprintf("%d", len(days)),
			strings.Join(days, ";"),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
