package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/neon-serpent/internal/core"
	"github.com/vovakirdan/neon-serpent/internal/platform/tui"
	"github.com/vovakirdan/neon-serpent/internal/serpent"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Neon Serpent",
	Long: `Start the game in this terminal.

Controls:
  Arrows/WASD  - Steer (menus: move the cursor)
  Enter        - Start / select
  Space/Esc    - Pause and resume
  S            - Settings (start screen)
  H            - Enter your name after a high score
  R            - Restart (after game over)
  Ctrl+S       - Save a screenshot to ~/.serpent/screenshots
  Q/Ctrl+C     - Quit

Examples:
  serpent play
  serpent play --seed 42 --log-file serpent.log
  serpent play --config ./my-serpent.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	// Logs must not reach the alt-screen.
	var logOut io.Writer = io.Discard
	if flagLogFile != "" {
		f, err := tea.LogToFile(flagLogFile, "serpent")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	logger := newLogger(logOut)

	cfg := loadConfig(logger)
	st := openStores(cfg, logger)
	defer st.Close()

	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}

	game := serpent.New(serpent.Options{
		Config:     cfg,
		Settings:   st.settings,
		HighScores: st.highScores,
		Seed:       flagSeed,
		Logger:     logger,
	})

	runtime := core.RuntimeConfig{
		ScreenW: width,
		ScreenH: height,
		FPS:     flagFPS,
		Seed:    flagSeed,
	}
	if err := tui.Run(game, runtime); err != nil {
		logger.Error("game exited with error", "error", err)
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		st.Close()
		os.Exit(1)
	}
}
