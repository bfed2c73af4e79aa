package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/BBBtp/Tracker/internal/backup"
	"github.com/BBBtp/Tracker/internal/feed"
	"github.com/BBBtp/Tracker/internal/logger"
	"github.com/BBBtp/Tracker/internal/models"
	"github.com/BBBtp/Tracker/internal/stats"
	"github.com/BBBtp/Tracker/internal/storage"
)

type Context struct {
	Store storage.Provider
	Feed  *feed.Feed
	Stats *stats.Service
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	_, err := mgr.Create()
	if err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// FindTrackerByTitle resolves a tracker title to its record. Titles are not
// unique in the schema, so the first match in list order wins.
func (c *Context) FindTrackerByTitle(title string) (models.Tracker, error) {
	trackers, err := c.Store.ListTrackers("")
	if err != nil {
		return models.Tracker{}, err
	}
	for _, t := range trackers {
		if t.Title == title {
			return t, nil
		}
	}
	return models.Tracker{}, fmt.Errorf("tracker %q not found", title)
}

// ParseWeekdays parses a comma-separated list of weekdays into the domain's
// Monday=1..Sunday=7 convention.
func ParseWeekdays(s string) ([]models.WeekDay, error) {
	dayMap := map[string]models.WeekDay{
		"mon": models.Monday, "monday": models.Monday,
		"tue": models.Tuesday, "tuesday": models.Tuesday,
		"wed": models.Wednesday, "wednesday": models.Wednesday,
		"thu": models.Thursday, "thursday": models.Thursday,
		"fri": models.Friday, "friday": models.Friday,
		"sat": models.Saturday, "saturday": models.Saturday,
		"sun": models.Sunday, "sunday": models.Sunday,
	}

	var weekdays []models.WeekDay
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "" {
			continue
		}
		if wd, ok := dayMap[part]; ok {
			weekdays = append(weekdays, wd)
			continue
		}
		// Numeric form, 1=Monday..7=Sunday.
		num, err := strconv.Atoi(part)
		if err == nil && models.WeekDay(num).Valid() {
			weekdays = append(weekdays, models.WeekDay(num))
			continue
		}
		return nil, fmt.Errorf("invalid weekday: %s", part)
	}

	return weekdays, nil
}

// ParseDay parses a YYYY-MM-DD argument, defaulting to today when empty.
func ParseDay(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	date, err := time.Parse(models.DayFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", s)
	}
	return date, nil
}
