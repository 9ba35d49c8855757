package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/neon-serpent/internal/platform/tui"
)

var (
	flagBrowse bool
	flagClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the high scores",
	Long: `Display the saved high-score table and a chart of the scores.

Examples:
  serpent scores
  serpent scores --browse
  serpent scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Browse the table interactively")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every saved score")
}

func runScores(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr)
	cfg := loadConfig(logger)
	st := openStores(cfg, logger)
	defer st.Close()

	if flagClear {
		st.highScores.Clear()
		fmt.Println("High scores cleared.")
		return
	}

	scores := st.highScores.Scores()

	if flagBrowse {
		width, height := 80, 24
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(scores, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error running scoreboard: %v\n", err)
			st.Close()
			os.Exit(1)
		}
		return
	}

	fmt.Println("High Scores - Neon Serpent")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Run 'serpent play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-6s  %-8s  %-5s  %s\n", "Rank", "Name", "Score", "Level", "Date")
	fmt.Printf("  %-4s  %-6s  %-8s  %-5s  %s\n", "----", "----", "-----", "-----", "----")
	for i, e := range scores {
		fmt.Printf("  %-4d  %-6s  %-8d  %-5d  %s\n", i+1, e.Name, e.Score, e.Level, e.Date)
	}

	if chart := tui.ScorePlot(scores, 60, 8); chart != "" {
		fmt.Println()
		fmt.Println(chart)
	}

	fmt.Println()
	fmt.Printf("Best: %d\n", scores[0].Score)
}
