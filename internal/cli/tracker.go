package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/BBBtp/Tracker/internal/feed"
	"github.com/BBBtp/Tracker/internal/models"
	"github.com/BBBtp/Tracker/internal/validation"
)

type TrackerCmd struct {
	Add    TrackerAddCmd    `cmd:"" help:"Add a new tracker."`
	List   TrackerListCmd   `cmd:"" help:"List trackers with the filtered, sectioned view."`
	Edit   TrackerEditCmd   `cmd:"" help:"Edit an existing tracker."`
	Delete TrackerDeleteCmd `cmd:"" help:"Delete a tracker and its completion history."`
	Pin    TrackerPinCmd    `cmd:"" help:"Pin a tracker so it sorts first."`
	Unpin  TrackerUnpinCmd  `cmd:"" help:"Restore a pinned tracker to its category."`
}

type TrackerAddCmd struct {
	Title    string `arg:"" help:"Tracker title."`
	Category string `help:"Category title." default:"No Category"`
	Kind     string `help:"Tracker kind: habit or event." enum:"habit,event" default:"habit"`
	Schedule string `help:"Comma-separated weekdays for a habit (e.g. mon,wed,fri)." default:""`
	Color    string `help:"Palette color (hex)." default:"#FD4C49"`
	Emoji    string `help:"Palette emoji." default:"🙂"`
}

func (c *TrackerAddCmd) Run(ctx *Context) error {
	kind := models.KindHabit
	if c.Kind == "event" {
		kind = models.KindIrregularEvent
	}

	days, err := ParseWeekdays(c.Schedule)
	if err != nil {
		return err
	}

	tracker := models.Tracker{
		ID:            uuid.New().String(),
		Title:         c.Title,
		Color:         c.Color,
		Emoji:         c.Emoji,
		Schedule:      models.NewSchedule(days...),
		Kind:          kind,
		CategoryTitle: c.Category,
		CreatedAt:     time.Now(),
	}

	if res := validation.ValidateTracker(tracker); !res.OK() {
		return res.Err()
	}
	if err := validation.ValidateCategoryTitle(c.Category); err != nil {
		return err
	}

	if err := ctx.Store.AddTracker(c.Category, tracker); err != nil {
		return err
	}

	fmt.Printf("Added %s %q to %q (%s)\n", tracker.Kind, tracker.Title, c.Category, tracker.Schedule.Label())
	return nil
}

type TrackerListCmd struct {
	Filter string `help:"Filter kind: all, today, completed, uncompleted." enum:"all,today,completed,uncompleted" default:"all"`
	Date   string `help:"Reference date in YYYY-MM-DD format (default: today)." default:""`
	Search string `help:"Case-insensitive substring match on title." default:""`
}

func (c *TrackerListCmd) Run(ctx *Context) error {
	date, err := ParseDay(c.Date)
	if err != nil {
		return err
	}

	if err := ctx.Feed.ApplyFilter(feed.FilterKind(c.Filter), date, c.Search); err != nil {
		return err
	}

	sections := ctx.Feed.Sections()
	if len(sections) == 0 {
		fmt.Println("No trackers to show.")
		return nil
	}

	for _, section := range sections {
		header := sectionStyle.Render(section.Title)
		if section.Pinned {
			header = pinnedStyle.Render("📌 " + section.Title)
		}
		fmt.Println(header)

		for _, row := range section.Rows {
			mark := mutedStyle.Render("[ ]")
			if row.IsCompleted {
				mark = completedStyle.Render("[x]")
			}
			fmt.Printf("  %s %s %s  %s\n", mark, row.Tracker.Emoji, row.Tracker.Title,
				mutedStyle.Render(fmt.Sprintf("%s · %d done", row.Tracker.Schedule.Label(), row.TotalCompletions)))
		}
	}

	return nil
}

type TrackerEditCmd struct {
	Title    string `arg:"" help:"Current tracker title."`
	NewTitle string `help:"New title." default:""`
	Category string `help:"New category title." default:""`
	Schedule string `help:"New comma-separated weekday schedule." default:""`
	Color    string `help:"New palette color." default:""`
	Emoji    string `help:"New palette emoji." default:""`
}

func (c *TrackerEditCmd) Run(ctx *Context) error {
	tracker, err := ctx.FindTrackerByTitle(c.Title)
	if err != nil {
		return err
	}

	if c.NewTitle != "" {
		tracker.Title = c.NewTitle
	}
	if c.Color != "" {
		tracker.Color = c.Color
	}
	if c.Emoji != "" {
		tracker.Emoji = c.Emoji
	}
	if c.Schedule != "" {
		days, err := ParseWeekdays(c.Schedule)
		if err != nil {
			return err
		}
		tracker.Schedule = models.NewSchedule(days...)
	}

	category := tracker.CategoryTitle
	if c.Category != "" {
		if err := validation.ValidateCategoryTitle(c.Category); err != nil {
			return err
		}
		category = c.Category
	}

	if res := validation.ValidateTracker(tracker); !res.OK() {
		return res.Err()
	}

	if err := ctx.Store.UpdateTracker(category, tracker); err != nil {
		return err
	}

	fmt.Printf("Updated tracker %q\n", tracker.Title)
	return nil
}

type TrackerDeleteCmd struct {
	Title string `arg:"" help:"Tracker title."`
}

func (c *TrackerDeleteCmd) Run(ctx *Context) error {
	tracker, err := ctx.FindTrackerByTitle(c.Title)
	if err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()

	if err := ctx.Store.DeleteTracker(tracker.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted tracker %q and its completion history\n", tracker.Title)
	return nil
}

type TrackerPinCmd struct {
	Title string `arg:"" help:"Tracker title."`
}

func (c *TrackerPinCmd) Run(ctx *Context) error {
	tracker, err := ctx.FindTrackerByTitle(c.Title)
	if err != nil {
		return err
	}

	if err := ctx.Store.PinTracker(tracker.ID); err != nil {
		return err
	}

	fmt.Printf("Pinned %q\n", tracker.Title)
	return nil
}

type TrackerUnpinCmd struct {
	Title string `arg:"" help:"Tracker title."`
}

func (c *TrackerUnpinCmd) Run(ctx *Context) error {
	tracker, err := ctx.FindTrackerByTitle(c.Title)
	if err != nil {
		return err
	}

	if err := ctx.Store.UnpinTracker(tracker.ID); err != nil {
		return err
	}

	fmt.Printf("Unpinned %q\n", tracker.Title)
	return nil
}
