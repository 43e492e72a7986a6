package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"edu_video_generator/history"
)

// historyTable renders past generation runs for the --history flag.
func historyTable(records []history.Record) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"ID", "Created", "Topic", "Pattern", "Fallback", "Score", "Rating"})

	for _, rec := range records {
		id := rec.ID
		if len(id) > 8 {
			id = id[:8]
		}
		fallback := ""
		if rec.UsedFallback {
			fallback = rec.FallbackReason
		}
		tw.AppendRow(table.Row{
			id,
			rec.CreatedAt.Local().Format("2006-01-02 15:04"),
			rec.Topic,
			string(rec.Pattern),
			fallback,
			fmt.Sprintf("%d", rec.Quality.OverallScore),
			rec.Quality.Rating,
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 6, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
