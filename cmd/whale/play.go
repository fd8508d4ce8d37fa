package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-whale/internal/assets"
	"github.com/vovakirdan/tui-whale/internal/core"
	"github.com/vovakirdan/tui-whale/internal/games/whale"
	"github.com/vovakirdan/tui-whale/internal/platform/tui"
	"github.com/vovakirdan/tui-whale/internal/storage"
)

var flagAssets string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a session",
	Long: `Start a play session. Runs are kept in memory and summarized when
you quit; nothing is saved between sessions.

Controls:
  Space/Up/W   - Swim up
  Enter/Space  - Start
  Click        - Swim up / start
  R            - Restart (after game over)
  Tab          - Runs of this session (between runs)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Slower start, wider gaps
  normal - The configured values
  hard   - Faster start, tighter gaps
  fixed  - No progression, stays at the initial speed

Examples:
  whale play
  whale play --difficulty easy
  whale play --classic
  whale play --assets ./my-sprites
  whale play --config ./my-whale.yaml --log-file whale.log`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	addGameConfigFlags(playCmd)
	playCmd.Flags().StringVar(&flagAssets, "assets", "", "Directory with whale.txt and obstacle.txt sprites")
}

func runPlay(cmd *cobra.Command, args []string) error {
	cli, err := newLogger(os.Stderr, flagLogLevel)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(flagConfig, flagDifficulty, flagClassic)
	if err != nil {
		return err
	}

	// Get terminal size early so the first frame fits
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	runtime := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	gameLog, closeLog, err := openGameLog(flagLogFile, flagLogLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	opts := tui.Options{
		Logger:     gameLog,
		LoadAssets: assetLoader(flagAssets),
	}

	session, err := storage.OpenSession()
	if err != nil {
		cli.Warn("could not open session log", "error", err)
		// Continue without the session log - game still works
	} else {
		defer session.Close()
		opts.Recorder = session
	}

	gameLog.Info("session started",
		"fps", runtime.TickRate,
		"seed", runtime.Seed,
		"difficulty", flagDifficulty,
		"classic", flagClassic)

	if err := tui.Run(whale.New(cfg), runtime, opts); err != nil {
		return fmt.Errorf("running game: %w", err)
	}

	if session == nil {
		return nil
	}
	return printSummary(cmd.OutOrStdout(), session)
}

// assetLoader picks the sprite source for --assets.
func assetLoader(dir string) tui.AssetLoader {
	return func() (assets.Set, error) {
		if dir != "" {
			return assets.Load(assets.Dir(dir))
		}
		return assets.Load(assets.Embedded())
	}
}

// printSummary writes the end-of-session report.
func printSummary(w io.Writer, session *storage.Session) error {
	stats, err := session.Stats()
	if err != nil {
		return err
	}
	if stats.Runs == 0 {
		fmt.Fprintln(w, "No runs finished this session.")
		return nil
	}

	top, err := session.TopRuns(5)
	if err != nil {
		return err
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	var b strings.Builder
	b.WriteString(titleStyle.Render("Whale Dash - session summary"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "  Runs:       %d\n", stats.Runs)
	fmt.Fprintf(&b, "  Best:       %d\n", stats.BestScore)
	fmt.Fprintf(&b, "  Average:    %.1f\n", stats.AverageScore())
	fmt.Fprintf(&b, "  Collisions: %d  Seabed: %d\n", stats.Collisions, stats.FloorHits)
	b.WriteString("\n")

	fmt.Fprintf(&b, "  %-4s  %-6s  %-7s  %s\n", "Rank", "Score", "Ticks", "Ended by")
	fmt.Fprintf(&b, "  %-4s  %-6s  %-7s  %s\n", "----", "-----", "-----", "--------")
	for i, r := range top {
		fmt.Fprintf(&b, "  %-4d  %-6d  %-7d  %s\n", i+1, r.Score, r.Ticks, r.Cause)
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Runs are not saved between sessions."))
	b.WriteString("\n")

	_, err = io.WriteString(w, b.String())
	return err
}
