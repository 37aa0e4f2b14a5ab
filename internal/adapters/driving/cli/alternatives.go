package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
)

var (
	alternativesIndustry string
	alternativesMax      int
	alternativesJSON     bool
)

var alternativesCmd = &cobra.Command{
	Use:   "alternatives [chemical]",
	Short: "Research safer substitute chemicals",
	Long: `Runs the literature research pipeline for a chemical: searches
published papers, analyses them with the configured LLM and extracts
substitute candidates.

Requires deep diagnosis mode with an LLM provider and literature
search configured ('regwatch settings').

Examples:
  regwatch alternatives formaldehyde --industry "wood adhesives"
  regwatch alternatives "lead chromate" --max 3 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runAlternatives,
}

func init() {
	alternativesCmd.Flags().StringVarP(&alternativesIndustry, "industry", "i", "", "industry context for the substitution")
	alternativesCmd.Flags().IntVarP(&alternativesMax, "max", "n", 5, "maximum number of alternatives")
	alternativesCmd.Flags().BoolVar(&alternativesJSON, "json", false, "output the report as JSON")
	rootCmd.AddCommand(alternativesCmd)
}

func runAlternatives(cmd *cobra.Command, args []string) error {
	if alternativesService == nil {
		return errors.New("alternatives service not configured")
	}

	cmd.Println("Researching alternatives, this can take a minute...")

	report, err := alternativesService.Research(context.Background(), args[0], alternativesIndustry, alternativesMax)
	if err != nil {
		return fmt.Errorf("research failed: %w", err)
	}

	if alternativesJSON {
		return outputJSON(cmd, report)
	}

	outputResearchReport(cmd, report)
	return nil
}

func outputResearchReport(cmd *cobra.Command, report *domain.ResearchReport) {
	cmd.Printf("Alternatives for %s", report.Chemical.Name)
	if report.Industry != "" {
		cmd.Printf(" (%s)", report.Industry)
	}
	cmd.Println()
	cmd.Println()

	if len(report.Alternatives) == 0 {
		cmd.Println("No substitute candidates were extracted.")
	}
	for i := range report.Alternatives {
		alt := &report.Alternatives[i]
		cmd.Printf("  [%d] %s", i+1, alt.Name)
		if alt.Year > 0 {
			cmd.Printf(" (%d)", alt.Year)
		}
		cmd.Println()
		if alt.Rationale != "" {
			cmd.Printf("      %s\n", alt.Rationale)
		}
		if alt.SafetyNote != "" {
			cmd.Printf("      Safety: %s\n", alt.SafetyNote)
		}
		if alt.Reference != "" {
			cmd.Printf("      Ref: %s\n", alt.Reference)
		}
		cmd.Println()
	}

	if len(report.Papers) > 0 {
		cmd.Println("Literature:")
		for i := range report.Papers {
			cmd.Printf("  - %s\n    %s\n", report.Papers[i].Title, report.Papers[i].URL)
		}
	}
}
