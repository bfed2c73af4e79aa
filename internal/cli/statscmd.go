package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *Context) error {
	snapshot, err := ctx.Stats.Snapshot()
	if err != nil {
		return err
	}

	if snapshot.TotalCompletions == 0 {
		fmt.Println("Nothing to analyze yet. Complete a tracker first.")
		return nil
	}

	cards := []struct {
		value int
		label string
	}{
		{snapshot.TotalCompletions, "Trackers completed"},
		{snapshot.BestStreak, "Best streak"},
		{snapshot.PerfectDays, "Perfect days"},
		{snapshot.AverageCompletion, "Average per day"},
	}

	rendered := make([]string, 0, len(cards))
	for _, card := range cards {
		content := fmt.Sprintf("%s\n%s",
			statValueStyle.Render(fmt.Sprintf("%d", card.value)),
			mutedStyle.Render(card.label))
		rendered = append(rendered, statCardStyle.Render(content))
	}

	fmt.Println(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	return nil
}
