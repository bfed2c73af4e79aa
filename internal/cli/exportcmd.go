package cli

import (
	"fmt"

	"github.com/BBBtp/Tracker/internal/export"
	"github.com/BBBtp/Tracker/internal/models"
)

type ExportCmd struct {
	Path   string `arg:"" help:"Output file path."`
	Format string `help:"Export format." enum:"csv,json" default:"csv"`
}

func (c *ExportCmd) Run(ctx *Context) error {
	trackers, err := ctx.Store.ListTrackers("")
	if err != nil {
		return err
	}

	records := make(map[string][]models.CompletionRecord, len(trackers))
	for _, t := range trackers {
		rs, err := ctx.Store.ListRecords(t.ID)
		if err != nil {
			return err
		}
		records[t.ID] = rs
	}

	switch c.Format {
	case "json":
		err = export.ToJSON(trackers, records, c.Path)
	default:
		err = export.ToCSV(trackers, records, c.Path)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Exported %d trackers to %s\n", len(trackers), c.Path)
	return nil
}
