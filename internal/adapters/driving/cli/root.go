// Package cli implements the regwatch command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/greenchem-labs/regwatch-cli/internal/core/ports/driving"
	"github.com/greenchem-labs/regwatch-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services the commands dispatch to. Wired by SetServices before
// Execute; commands nil-check the ones they need.
var (
	diagnosisService    driving.DiagnosisService
	comparisonService   driving.ComparisonService
	alternativesService driving.AlternativesService
	searchService       driving.SearchService
	syncOrchestrator    driving.SyncOrchestrator
	sourceService       driving.SourceService
	settingsService     driving.SettingsService
	scheduler           driving.Scheduler
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "regwatch",
	Short: "Chemical regulatory compliance from your terminal",
	Long: `Regwatch checks chemicals against regulatory datasets for the EU,
Taiwan and the United States.

Diagnose the compliance status of a chemical in a market, compare it
across jurisdictions, search the indexed regulation text, and research
safer alternatives from the literature.

Run 'regwatch source seed' followed by 'regwatch sync' to install and
fetch the built-in regulatory sources before the first diagnosis.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

// Services bundles everything the CLI commands depend on.
type Services struct {
	Diagnosis    driving.DiagnosisService
	Comparison   driving.ComparisonService
	Alternatives driving.AlternativesService
	Search       driving.SearchService
	Sync         driving.SyncOrchestrator
	Source       driving.SourceService
	Settings     driving.SettingsService
	Scheduler    driving.Scheduler
}

// SetServices wires the service implementations into the commands.
func SetServices(s Services) {
	diagnosisService = s.Diagnosis
	comparisonService = s.Comparison
	alternativesService = s.Alternatives
	searchService = s.Search
	syncOrchestrator = s.Sync
	sourceService = s.Source
	settingsService = s.Settings
	scheduler = s.Scheduler
}

// SetVersion overrides the reported version.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
