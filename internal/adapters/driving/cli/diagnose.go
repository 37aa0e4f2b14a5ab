package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
)

var (
	diagnoseMarket string
	diagnoseJSON   bool
)

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose [chemical]",
	Short: "Diagnose the compliance status of a chemical",
	Long: `Determines the compliance status of a chemical in a market.

The chemical is resolved against PubChem (assisted and deep modes) and
matched against the locally synced regulatory datasets. The result is
the most severe status the evidence supports: BANNED,
AUTHORIZATION_REQUIRED, RESTRICTED, LISTED or NOT_LISTED.

Examples:
  regwatch diagnose cadmium --market EU
  regwatch diagnose "bisphenol A" --market TW --json`,
	Args: cobra.ExactArgs(1),
	RunE: runDiagnose,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent diagnoses",
	RunE:  runHistory,
}

var historyLimit int

func init() {
	diagnoseCmd.Flags().StringVarP(&diagnoseMarket, "market", "m", "EU", "market to diagnose against (EU, TW, US, GLOBAL)")
	diagnoseCmd.Flags().BoolVar(&diagnoseJSON, "json", false, "output the diagnosis as JSON")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "maximum number of entries")
	rootCmd.AddCommand(diagnoseCmd)
	rootCmd.AddCommand(historyCmd)
}

func runDiagnose(cmd *cobra.Command, args []string) error {
	if diagnosisService == nil {
		return errors.New("diagnosis service not configured")
	}

	market, err := domain.ParseMarket(diagnoseMarket)
	if err != nil {
		return fmt.Errorf("unsupported market %q: %w", diagnoseMarket, err)
	}

	ctx := context.Background()

	if market == domain.MarketGlobal {
		// A global diagnosis is a comparison across all markets.
		return runCompareFor(cmd, ctx, args[0], nil, diagnoseJSON)
	}

	diagnosis, err := diagnosisService.Diagnose(ctx, args[0], market)
	if err != nil {
		return fmt.Errorf("diagnosis failed: %w", err)
	}

	if diagnoseJSON {
		return outputJSON(cmd, diagnosis)
	}

	outputDiagnosis(cmd, diagnosis)
	return nil
}

func outputDiagnosis(cmd *cobra.Command, d *domain.Diagnosis) {
	cmd.Printf("%s in %s: %s\n", d.Chemical.Name, d.Market.Description(), d.Status)
	cmd.Printf("  %s\n", d.Status.Description())

	if cas := d.Chemical.PrimaryCAS(); cas != "" {
		cmd.Printf("  CAS: %s\n", strings.Join(d.Chemical.CASNumbers, ", "))
	}
	if d.Basis != "" {
		cmd.Printf("  Basis: %s\n", d.Basis)
	}
	if d.Reason != "" {
		cmd.Printf("  Reason: %s\n", d.Reason)
	}

	if len(d.Evidence) > 0 {
		cmd.Println("\nEvidence:")
		for i := range d.Evidence {
			cmd.Printf("  - %s (%s)\n", d.Evidence[i].Basis(), d.Evidence[i].Classification)
		}
	}

	if d.Hazard != nil {
		cmd.Printf("\nHazard profile (%s):\n", d.Hazard.Provider)
		for key, value := range d.Hazard.Attributes {
			cmd.Printf("  %s: %v\n", key, value)
		}
	}
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if diagnosisService == nil {
		return errors.New("diagnosis service not configured")
	}

	history, err := diagnosisService.History(context.Background(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	if len(history) == 0 {
		cmd.Println("No diagnoses yet.")
		return nil
	}

	for i := range history {
		d := &history[i]
		cmd.Printf("%s  %-22s %-3s %s\n",
			d.DiagnosedAt.Format("2006-01-02 15:04"),
			d.Chemical.Name, d.Market, d.Status)
	}
	return nil
}

// outputJSON prints any value as indented JSON.
func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
