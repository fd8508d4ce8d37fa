package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-whale/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or validate the game configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Long: `Print the configuration a play session would use, after the
search order, difficulty preset and --classic have been applied.

Search order:
  --config <path>
  ~/.whale/configs/whale.yaml
  ./configs/whale.yaml
  built-in defaults`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration for errors",
	Args:  cobra.NoArgs,
	RunE:  runConfigValidate,
}

func init() {
	addGameConfigFlags(configShowCmd)
	addGameConfigFlags(configValidateCmd)

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)
}

// resolveConfig loads the config and applies the CLI overrides.
func resolveConfig(path, difficulty string, classic bool) (config.WhaleConfig, error) {
	preset, err := config.ParsePreset(difficulty)
	if err != nil {
		return config.WhaleConfig{}, err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return config.WhaleConfig{}, err
	}

	config.ApplyPreset(&cfg, preset)
	if classic {
		config.ApplyClassic(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		return config.WhaleConfig{}, err
	}
	return cfg, nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(flagConfig, flagDifficulty, flagClassic)
	if err != nil {
		return err
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(os.Stderr, flagLogLevel)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(flagConfig, flagDifficulty, flagClassic)
	if err != nil {
		logger.Error("configuration rejected", "error", err)
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "configuration ok (play field needs at least %.0f rows)\n",
		cfg.MinSurfaceHeight()+1)
	return nil
}
