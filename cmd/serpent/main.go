// serpent is Neon Serpent, a cyberpunk snake game for the terminal.
//
// Usage:
//
//	serpent play             - Play in this terminal (default command)
//	serpent scores           - Show the high-score table
//	serpent settings         - Show or change the saved settings
//	serpent levels           - List the level definitions
//	serpent config           - Print the effective game config as YAML
//	serpent serve            - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>        - Render frames per second (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.serpent/serpent.db)
//	--config <path>     - Game config YAML overlaid on the defaults
//	--log-file <path>   - Write logs here while playing
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/neon-serpent/internal/config"
	"github.com/vovakirdan/neon-serpent/internal/storage"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagLogFile string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "serpent",
	Short: "Neon Serpent - a cyberpunk snake game for your terminal",
	Long: `Neon Serpent is a snake game with combos, power-ups, obstacles
and ten levels of rising speed.

Available commands:
  play      - Play in this terminal
  scores    - View high scores
  settings  - Show or change difficulty, grid size and boundary mode
  levels    - List the level definitions
  config    - Print the effective game config
  serve     - Start SSH server for remote play

Examples:
  serpent
  serpent play --seed 42
  serpent scores --browse
  serpent settings set --difficulty hard --grid 25
  serpent serve --ssh :2222`,
	Run: runPlay,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Render frames per second")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to the scores and settings database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug messages")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the CLI logger writing to w.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "serpent",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// loadConfig loads the game config or exits on a broken --config file.
func loadConfig(logger *log.Logger) config.GameConfig {
	cfg, source, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("config loaded", "source", source)
	return cfg
}

// stores holds the persistence backing one CLI invocation.
type stores struct {
	db         *storage.Store
	kv         storage.KV
	settings   *storage.SettingsManager
	highScores *storage.HighScoreManager
}

// openStores opens the database. When it cannot be opened the game still
// runs on an in-memory store and nothing is saved.
func openStores(cfg config.GameConfig, logger *log.Logger) *stores {
	s := &stores{}
	db, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open database, scores will not be saved", "error", err)
		s.kv = storage.NewMemoryKV()
	} else {
		s.db = db
		s.kv = db
	}
	s.settings = storage.NewSettingsManager(s.kv, cfg, logger)
	s.highScores = storage.NewHighScoreManager(s.kv, cfg.HighScores.MaxEntries, logger)
	return s
}

func (s *stores) Close() {
	if s.db != nil {
		s.db.Close()
	}
}
