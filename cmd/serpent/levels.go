package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/neon-serpent/internal/config"
	"github.com/vovakirdan/neon-serpent/internal/engine"
	"github.com/vovakirdan/neon-serpent/internal/serpent"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the level definitions",
	Long: `Shows every level of the effective config with its tick length for
each difficulty, power-up odds, food types and obstacle count.`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	cfg := loadConfig(newLogger(os.Stderr))
	levels := serpent.NewLevelSystem(cfg, engine.NewBus())

	fmt.Printf("Levels (%d food per level)\n", levels.FoodPerLevel())
	fmt.Println()
	fmt.Printf("  %-5s  %-6s  %-6s  %-6s  %-8s  %-9s  %s\n", "Level", "Easy", "Normal", "Hard", "Power-up", "Obstacles", "Food")
	fmt.Printf("  %-5s  %-6s  %-6s  %-6s  %-8s  %-9s  %s\n", "-----", "----", "------", "----", "--------", "---------", "----")

	for i := 1; i <= levels.MaxLevel(); i++ {
		levels.Current = i
		lc := levels.Config()
		cells := 0
		for _, o := range lc.Obstacles {
			cells += len(o.Segments)
		}
		fmt.Printf("  %-5d  %-6s  %-6s  %-6s  %-8s  %-9d  %s\n",
			lc.Level,
			levels.TickRate(config.DifficultyEasy),
			levels.TickRate(config.DifficultyNormal),
			levels.TickRate(config.DifficultyHard),
			fmt.Sprintf("%.0f%%", lc.PowerUpChance*100),
			cells,
			strings.Join(lc.FoodTypes, ","),
		)
	}
}
