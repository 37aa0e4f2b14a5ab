package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
)

var (
	compareMarkets []string
	compareJSON    bool
)

var compareCmd = &cobra.Command{
	Use:   "compare [chemical]",
	Short: "Compare compliance status across markets",
	Long: `Diagnoses a chemical in several markets and reports the results
side by side, with the strictest jurisdiction called out.

Examples:
  regwatch compare cadmium
  regwatch compare formaldehyde --markets EU,US`,
	Args: cobra.ExactArgs(1),
	RunE: runCompare,
}

var diffCmd = &cobra.Command{
	Use:   "diff [slug]",
	Short: "Show how a regulation changed between syncs",
	Long: `Compares the two most recent stored snapshots of a dataset and
prints a unified diff of the regulation text.

Example:
  regwatch diff eu_reach_eurlex`,
	Args: cobra.ExactArgs(1),
	RunE: runDiff,
}

func init() {
	compareCmd.Flags().StringSliceVarP(&compareMarkets, "markets", "m", nil, "markets to compare (default: all)")
	compareCmd.Flags().BoolVar(&compareJSON, "json", false, "output the comparison as JSON")
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(diffCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	var markets []domain.Market
	for _, raw := range compareMarkets {
		market, err := domain.ParseMarket(raw)
		if err != nil {
			return fmt.Errorf("unsupported market %q: %w", raw, err)
		}
		markets = append(markets, market)
	}

	return runCompareFor(cmd, context.Background(), args[0], markets, compareJSON)
}

// runCompareFor is shared by 'compare' and 'diagnose --market GLOBAL'.
func runCompareFor(cmd *cobra.Command, ctx context.Context, chemical string, markets []domain.Market, asJSON bool) error {
	if comparisonService == nil {
		return errors.New("comparison service not configured")
	}

	comparison, err := comparisonService.Compare(ctx, chemical, markets)
	if err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}

	if asJSON {
		return outputJSON(cmd, comparison)
	}

	outputComparison(cmd, comparison)
	return nil
}

func outputComparison(cmd *cobra.Command, c *domain.MarketComparison) {
	cmd.Printf("%s", c.Chemical.Name)
	if cas := c.Chemical.PrimaryCAS(); cas != "" {
		cmd.Printf(" (CAS %s)", cas)
	}
	cmd.Println()
	cmd.Println()

	cmd.Printf("  %-16s %-24s %s\n", "Market", "Status", "Basis")
	for i := range c.Rows {
		row := &c.Rows[i]
		cmd.Printf("  %-16s %-24s %s\n", row.Market.Description(), row.Status, row.Basis)
	}

	if strictest := c.Strictest(); strictest != nil && strictest.Status.Severity() > domain.StatusNotListed.Severity() {
		cmd.Printf("\nStrictest: %s (%s)\n", strictest.Market.Description(), strictest.Status)
	}

	if c.Summary != "" {
		cmd.Printf("\n%s\n", c.Summary)
	}
}

func runDiff(cmd *cobra.Command, args []string) error {
	if comparisonService == nil {
		return errors.New("comparison service not configured")
	}

	diff, err := comparisonService.DiffRevisions(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("diff failed: %w", err)
	}

	if !diff.Changed {
		cmd.Printf("%s: no changes between the last two snapshots.\n", diff.Slug)
		return nil
	}

	cmd.Printf("%s: %s -> %s\n\n", diff.Slug,
		diff.OldFetchedAt.Format("2006-01-02"), diff.NewFetchedAt.Format("2006-01-02"))
	cmd.Println(diff.Unified)
	return nil
}
