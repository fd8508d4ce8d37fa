// whale is a side-scrolling reflex game for the terminal: keep the whale
// swimming between the coral columns.
//
// Usage:
//
//	whale play               - Play a session
//	whale config show        - Print the effective configuration
//	whale config validate    - Check a configuration file
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--log-file <path>    - Write the session log to a file
//	--log-level <level>  - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagLogFile  string
	flagLogLevel string

	// Game config flags shared by play and config
	flagConfig     string
	flagDifficulty string
	flagClassic    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "whale",
	Short: "Whale Dash - a reflex game in your terminal",
	Long: `Whale Dash is a terminal side-scroller. Tap to swim up, let gravity
pull you down, and slip through the gaps between coral columns.

Available commands:
  play     - Play a session
  config   - Show or validate the game configuration

Examples:
  whale play
  whale play --difficulty hard
  whale play --classic --seed 42
  whale config show --difficulty easy
  whale config validate --config ./whale.yaml`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Append the session log to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(configCmd)
}

// addGameConfigFlags registers the flags that select the game config.
func addGameConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	cmd.Flags().BoolVar(&flagClassic, "classic", false, "Top/bottom pairs only")
}
