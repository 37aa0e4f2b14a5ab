package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
)

var (
	sourceAddSlug    string
	sourceAddName    string
	sourceAddType    string
	sourceAddURL     string
	sourceAddMarket  string
	sourceAddDataset string
	sourceListJSON   bool
)

var sourceCmd = &cobra.Command{
	Use:   "source",
	Short: "Manage regulatory sources",
	Long:  `Add, list and remove the regulatory data sources that sync pulls from.`,
}

var sourceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured sources",
	RunE:  runSourceList,
}

var sourceAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a source",
	Long: `Adds a regulatory source configuration.

Example:
  regwatch source add --slug eu_reach_eurlex --name "REACH (EUR-Lex)" \
    --type eurlex --url https://eur-lex.europa.eu/... --market EU --dataset regulation`,
	RunE: runSourceAdd,
}

var sourceRemoveCmd = &cobra.Command{
	Use:   "remove [slug]",
	Short: "Remove a source and its stored data",
	Args:  cobra.ExactArgs(1),
	RunE:  runSourceRemove,
}

var sourceSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Install the built-in source catalogue",
	Long: `Installs the built-in catalogue of regulatory sources (EUR-Lex,
ECHA, Taiwan MOENV, US TSCA and CFR). Sources that already exist are
left untouched.`,
	RunE: runSourceSeed,
}

func init() {
	sourceAddCmd.Flags().StringVar(&sourceAddSlug, "slug", "", "dataset slug (required)")
	sourceAddCmd.Flags().StringVar(&sourceAddName, "name", "", "display name (required)")
	sourceAddCmd.Flags().StringVar(&sourceAddType, "type", "", "scraper type (required)")
	sourceAddCmd.Flags().StringVar(&sourceAddURL, "url", "", "source URL")
	sourceAddCmd.Flags().StringVar(&sourceAddMarket, "market", "EU", "jurisdiction (EU, TW, US)")
	sourceAddCmd.Flags().StringVar(&sourceAddDataset, "dataset", string(domain.KindRegulation), "dataset kind (regulation or inventory)")
	sourceListCmd.Flags().BoolVar(&sourceListJSON, "json", false, "output sources as JSON")

	sourceCmd.AddCommand(sourceListCmd)
	sourceCmd.AddCommand(sourceAddCmd)
	sourceCmd.AddCommand(sourceRemoveCmd)
	sourceCmd.AddCommand(sourceSeedCmd)
	rootCmd.AddCommand(sourceCmd)
}

func runSourceList(cmd *cobra.Command, _ []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	sources, err := sourceService.List(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list sources: %w", err)
	}

	if sourceListJSON {
		return outputJSON(cmd, sources)
	}

	if len(sources) == 0 {
		cmd.Println("No sources configured. Run 'regwatch source seed' to install the built-in catalogue.")
		return nil
	}

	cmd.Printf("%-24s %-12s %-4s %-10s %s\n", "Slug", "Type", "Mkt", "Dataset", "Enabled")
	for i := range sources {
		s := &sources[i]
		cmd.Printf("%-24s %-12s %-4s %-10s %v\n", s.Slug, s.Type, s.Jurisdiction, s.Dataset, s.Enabled)
	}
	return nil
}

func runSourceAdd(cmd *cobra.Command, _ []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	market, err := domain.ParseMarket(sourceAddMarket)
	if err != nil {
		return fmt.Errorf("unsupported market %q: %w", sourceAddMarket, err)
	}

	source := domain.Source{
		Slug:         sourceAddSlug,
		Name:         sourceAddName,
		Type:         sourceAddType,
		URL:          sourceAddURL,
		Jurisdiction: market,
		Dataset:      domain.DatasetKind(sourceAddDataset),
		Enabled:      true,
	}

	if err := sourceService.Add(context.Background(), source); err != nil {
		return fmt.Errorf("failed to add source: %w", err)
	}

	cmd.Printf("Source %s added.\n", source.Slug)
	return nil
}

func runSourceRemove(cmd *cobra.Command, args []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	ctx := context.Background()
	source, err := resolveSource(ctx, args[0])
	if err != nil {
		return err
	}

	if err := sourceService.Remove(ctx, source.ID); err != nil {
		return fmt.Errorf("failed to remove source: %w", err)
	}

	cmd.Printf("Source %s removed.\n", source.Slug)
	return nil
}

func runSourceSeed(cmd *cobra.Command, _ []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	added, err := sourceService.Seed(context.Background())
	if err != nil {
		return fmt.Errorf("failed to seed sources: %w", err)
	}

	if added == 0 {
		cmd.Println("Catalogue already installed.")
		return nil
	}
	cmd.Printf("Installed %d sources. Run 'regwatch sync' to fetch them.\n", added)
	return nil
}
