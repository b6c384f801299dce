package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"dragsort.dev/dragsort/internal/config"
	"dragsort.dev/dragsort/internal/tui"
	"dragsort.dev/dragsort/internal/tui/components/sortlist"
)

// newDemoCmd creates the demo command
func newDemoCmd() *cobra.Command {
	var (
		configPath string
		items      []string
		transition string
		easing     string
		threshold  float64
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the drag-sort list in the current terminal",
		Long: `Run the drag-sort list in the current terminal.

Items come from --items, falling back to the config file and then to a
built-in sample list. The final order is printed on exit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !interactiveTerminal() {
				return fmt.Errorf("demo requires an interactive terminal")
			}

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			// Flags win over the config file.
			if len(items) > 0 {
				cfg.Items = items
			}
			if cmd.Flags().Changed("transition") {
				cfg.Transition = transition
			}
			if cmd.Flags().Changed("easing") {
				cfg.Easing = easing
			}
			if cmd.Flags().Changed("threshold") {
				cfg.Threshold = threshold
			}

			opts, err := cfg.EngineOptions()
			if err != nil {
				return err
			}

			logger, err := tui.NewLoggerWithFile(cfg.LogFile)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Close() }()

			listItems := make([]sortlist.Item, len(cfg.Items))
			for i, label := range cfg.Items {
				listItems[i] = sortlist.Item{Label: label}
			}

			model, err := sortlist.NewModel(listItems, opts, logger.Slog())
			if err != nil {
				return fmt.Errorf("failed to create list: %w", err)
			}
			model.SetTitle("Drag rows by their grip to reorder")

			// The TUI owns the terminal; keep console logging quiet.
			logger.SetQuiet(true)
			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
			final, err := p.Run()
			logger.SetQuiet(false)
			if err != nil {
				return fmt.Errorf("failed to run demo: %w", err)
			}

			list, ok := final.(*sortlist.Model)
			if !ok {
				return fmt.Errorf("unexpected final model %T", final)
			}
			if err := list.Err(); err != nil {
				return err
			}

			logger.Info("Final order:")
			for i, label := range list.Order() {
				logger.Info("  %d. %s", i+1, label)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file path")
	cmd.Flags().StringSliceVarP(&items, "items", "i", nil, "item labels (comma separated)")
	cmd.Flags().StringVar(&transition, "transition", "500ms", "animation duration")
	cmd.Flags().StringVar(&easing, "easing", "cubic", "easing curve: linear, cubic, cubic-in, cubic-out")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "hit-test inset in cells before a slot change registers")

	return cmd
}

// loadConfig loads the explicit path, or the default location when none is
// given.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		defaultPath, err := config.DefaultPath()
		if err != nil {
			return config.Default(), nil
		}
		path = defaultPath
	}
	return config.Load(path)
}

func interactiveTerminal() bool {
	return (isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())) &&
		(isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()))
}
