package cli

import (
	"fmt"
	"time"

	"github.com/BBBtp/Tracker/internal/logger"
	"github.com/BBBtp/Tracker/internal/models"
)

type CompleteCmd struct {
	Title string `arg:"" help:"Tracker title."`
	Date  string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
	Undo  bool   `help:"Unmark instead of marking."`
}

func (c *CompleteCmd) Run(ctx *Context) error {
	tracker, err := ctx.FindTrackerByTitle(c.Title)
	if err != nil {
		return err
	}

	date, err := ParseDay(c.Date)
	if err != nil {
		return err
	}

	// Completion is only permitted for dates up to today; the persistence
	// layer itself does not enforce this.
	today := models.Day(time.Now())
	day := models.Day(date)
	if day > today {
		return fmt.Errorf("cannot mark a tracker complete for a future date (%s)", day)
	}

	changed, err := ctx.Store.SetCompletion(tracker.ID, day, !c.Undo)
	if err != nil {
		return err
	}

	if !changed {
		if c.Undo {
			fmt.Printf("%q was not completed on %s\n", tracker.Title, day)
		} else {
			fmt.Printf("%q is already completed on %s\n", tracker.Title, day)
		}
		return nil
	}

	// Statistics ride along best-effort; a failure here never rolls the
	// record mutation back.
	var statsErr error
	if c.Undo {
		statsErr = ctx.Stats.OnUncompletion(day)
	} else {
		statsErr = ctx.Stats.OnCompletion(day)
	}
	if statsErr != nil {
		logger.Warn("statistics update failed", "day", day, "error", statsErr)
	}

	status, err := ctx.Store.CompletionStatus(tracker.ID, day)
	if err != nil {
		return err
	}

	if c.Undo {
		fmt.Printf("Unmarked %q for %s (%d total)\n", tracker.Title, day, status.TotalCompletions)
	} else {
		fmt.Printf("Marked %q for %s (%d total)\n", tracker.Title, day, status.TotalCompletions)
	}
	return nil
}
