package cli

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/greenchem-labs/regwatch-cli/internal/adapters/driving/tui"
	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
	"github.com/greenchem-labs/regwatch-cli/internal/core/ports/driving"
)

// TUIConfig holds configuration for the TUI command.
type TUIConfig struct {
	DiagnosisService  driving.DiagnosisService
	ComparisonService driving.ComparisonService
	SearchService     driving.SearchService
	SourceService     driving.SourceService
	SyncOrchestrator  driving.SyncOrchestrator
	SettingsService   driving.SettingsService
	Scheduler         driving.Scheduler
	SchedulerConfig   domain.SchedulerConfig
}

// tuiConfig holds the current TUI configuration.
var tuiConfig *TUIConfig

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for Regwatch.

The TUI provides a visual interface for diagnosing chemicals, browsing
the diagnosis history and searching regulation text with keyboard
navigation.

Controls:
  ↑/k, ↓/j - Navigate results
  Tab      - Switch view
  Enter    - Diagnose / Select
  Esc      - Back / Cancel
  ?        - Toggle help
  q        - Quit`,
	RunE: runTUI,
}

// SetTUIConfig sets the configuration for the TUI command.
func SetTUIConfig(config *TUIConfig) {
	tuiConfig = config
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	// Start scheduler if enabled (TUI is long-running, needs background tasks)
	if tuiConfig != nil && tuiConfig.SchedulerConfig.Enabled && tuiConfig.Scheduler != nil {
		schedulerCtx, schedulerCancel := context.WithCancel(context.Background())
		defer schedulerCancel()

		go func() {
			if err := tuiConfig.Scheduler.Start(schedulerCtx); err != nil {
				// Log but don't fail - scheduler errors shouldn't block TUI
				fmt.Fprintf(os.Stderr, "scheduler stopped: %v\n", err)
			}
		}()

		defer func() {
			if err := tuiConfig.Scheduler.Stop(); err != nil {
				fmt.Fprintf(os.Stderr, "scheduler stop error: %v\n", err)
			}
		}()
	}

	// Build ports from configuration
	ports := &tui.Ports{}

	if tuiConfig != nil {
		ports.Diagnosis = tuiConfig.DiagnosisService
		ports.Comparison = tuiConfig.ComparisonService
		ports.Search = tuiConfig.SearchService
		ports.Source = tuiConfig.SourceService
		ports.Sync = tuiConfig.SyncOrchestrator
		ports.Settings = tuiConfig.SettingsService
	}

	// Create the TUI app
	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	// Set up context from command
	app.WithContext(cmd.Context())

	// Create and run the bubbletea program
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
