package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/neon-serpent/internal/config"
)

var (
	flagDifficulty string
	flagGrid       int
	flagBoundary   string
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show the saved settings",
	Long: `Show the settings used by the next game. The same options can be
changed in game from the start screen with S.

Examples:
  serpent settings
  serpent settings set --difficulty hard
  serpent settings set --grid 30 --boundary wall
  serpent settings reset`,
	Args: cobra.NoArgs,
	Run:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change the saved settings",
	Args:  cobra.NoArgs,
	Run:   runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default settings",
	Args:  cobra.NoArgs,
	Run:   runSettingsReset,
}

func init() {
	settingsSetCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "easy, normal or hard")
	settingsSetCmd.Flags().IntVar(&flagGrid, "grid", 0, "Grid size (one of the configured sizes)")
	settingsSetCmd.Flags().StringVar(&flagBoundary, "boundary", "", "wrap or wall")

	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
}

func runSettingsShow(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr)
	cfg := loadConfig(logger)
	st := openStores(cfg, logger)
	defer st.Close()

	printSettings(st.settings.Get())
}

func runSettingsSet(cmd *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr)
	cfg := loadConfig(logger)
	st := openStores(cfg, logger)
	defer st.Close()

	s := st.settings.Get()
	if cmd.Flags().Changed("difficulty") {
		d := config.Difficulty(flagDifficulty)
		if !d.Valid() {
			exitSettings(st, "unknown difficulty %q (want one of %v)", flagDifficulty, config.Difficulties)
		}
		s.Difficulty = d
	}
	if cmd.Flags().Changed("grid") {
		if !slices.Contains(cfg.Grid.Sizes, flagGrid) {
			exitSettings(st, "unsupported grid size %d (want one of %v)", flagGrid, cfg.Grid.Sizes)
		}
		s.GridSize = flagGrid
	}
	if cmd.Flags().Changed("boundary") {
		b := config.BoundaryMode(flagBoundary)
		if !b.Valid() {
			exitSettings(st, "unknown boundary mode %q (want one of %v)", flagBoundary, config.BoundaryModes)
		}
		s.BoundaryMode = b
	}

	printSettings(st.settings.Save(s))
}

func runSettingsReset(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr)
	cfg := loadConfig(logger)
	st := openStores(cfg, logger)
	defer st.Close()

	printSettings(st.settings.Save(config.DefaultSettings(cfg)))
}

func exitSettings(st *stores, format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	st.Close()
	os.Exit(1)
}

func printSettings(s config.Settings) {
	fmt.Printf("  %-10s %s\n", "difficulty", s.Difficulty)
	fmt.Printf("  %-10s %dx%d\n", "grid", s.GridSize, s.GridSize)
	fmt.Printf("  %-10s %s\n", "boundary", s.BoundaryMode)
}
