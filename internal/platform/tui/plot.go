package tui

import (
	"cmp"
	"slices"

	"github.com/guptarohit/asciigraph"

	"github.com/vovakirdan/neon-serpent/internal/storage"
)

// ScorePlot draws the stored scores oldest first as an ASCII line chart.
// Fewer than two entries give an empty string.
func ScorePlot(entries []storage.HighScoreEntry, width, height int) string {
	if len(entries) < 2 {
		return ""
	}
	byDate := slices.Clone(entries)
	slices.SortStableFunc(byDate, func(a, b storage.HighScoreEntry) int {
		return cmp.Compare(a.Date, b.Date)
	})

	series := make([]float64, len(byDate))
	for i, e := range byDate {
		series[i] = float64(e.Score)
	}

	opts := []asciigraph.Option{
		asciigraph.Height(max(height, 3)),
		asciigraph.Precision(0),
		asciigraph.SeriesColors(asciigraph.Cyan),
		asciigraph.Caption("scores by date"),
	}
	if width > 0 {
		opts = append(opts, asciigraph.Width(width))
	}
	return asciigraph.Plot(series, opts...)
}
