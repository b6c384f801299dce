package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"dragsort.dev/dragsort/internal/config"
	"dragsort.dev/dragsort/internal/tui"
)

// newInitCmd creates the init command
func newInitCmd() *cobra.Command {
	var (
		configPath  string
		useDefaults bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a dragsort config file",
		Long: `Write a dragsort config file.

Prompts for the animation transition and hit-test threshold; pass
--defaults to skip the prompts and write the built-in defaults.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := tui.NewLogger()

			path := configPath
			if path == "" {
				var err error
				if path, err = config.DefaultPath(); err != nil {
					return err
				}
			}

			if _, err := os.Stat(path); err == nil && !useDefaults {
				overwrite := false
				prompt := &survey.Confirm{
					Message: fmt.Sprintf("Config %s already exists. Overwrite?", path),
				}
				if err := survey.AskOne(prompt, &overwrite); err != nil {
					return fmt.Errorf("canceled")
				}
				if !overwrite {
					return nil
				}
			}

			cfg := config.Default()
			if !useDefaults {
				if err := promptConfig(&cfg); err != nil {
					return err
				}
			}

			if _, err := cfg.EngineOptions(); err != nil {
				return err
			}
			if err := config.Write(path, cfg); err != nil {
				return err
			}

			logger.Info("Wrote %s", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file path")
	cmd.Flags().BoolVar(&useDefaults, "defaults", false, "write defaults without prompting")

	return cmd
}

// promptConfig asks for the tunable fields, keeping the defaults when the
// answers are left empty.
func promptConfig(cfg *config.Config) error {
	transition := cfg.Transition
	prompt := &survey.Input{
		Message: "Animation transition (e.g. 500ms)",
		Default: cfg.Transition,
	}
	if err := survey.AskOne(prompt, &transition); err != nil {
		return fmt.Errorf("canceled")
	}
	if _, err := time.ParseDuration(transition); err != nil {
		return fmt.Errorf("invalid transition %q: %w", transition, err)
	}
	cfg.Transition = transition

	threshold := fmt.Sprintf("%g", cfg.Threshold)
	prompt = &survey.Input{
		Message: "Hit-test threshold in cells",
		Default: threshold,
	}
	if err := survey.AskOne(prompt, &threshold); err != nil {
		return fmt.Errorf("canceled")
	}
	if _, err := fmt.Sscanf(threshold, "%g", &cfg.Threshold); err != nil {
		return fmt.Errorf("invalid threshold %q", threshold)
	}
	return nil
}
