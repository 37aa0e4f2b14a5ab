package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
)

var (
	searchLimit   int
	searchOffset  int
	searchSlugs   []string
	searchMarket  string
	searchRewrite bool
	searchJSON    bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed regulation text",
	Long: `Performs full-text search across all synced regulation sections.
Results carry the citation of the matching section and the dataset it
came from.

With --rewrite, the configured LLM expands the query with synonyms and
CAS numbers before searching.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	searchCmd.Flags().IntVar(&searchOffset, "offset", 0, "number of results to skip")
	searchCmd.Flags().StringSliceVarP(&searchSlugs, "source", "s", nil, "restrict to dataset slugs")
	searchCmd.Flags().StringVarP(&searchMarket, "market", "m", "", "restrict to a market (EU, TW, US)")
	searchCmd.Flags().BoolVar(&searchRewrite, "rewrite", false, "expand the query with the configured LLM")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	opts := domain.SearchOptions{
		Limit:   searchLimit,
		Offset:  searchOffset,
		Slugs:   searchSlugs,
		Rewrite: searchRewrite,
	}
	if searchMarket != "" {
		market, err := domain.ParseMarket(searchMarket)
		if err != nil {
			return fmt.Errorf("unsupported market %q: %w", searchMarket, err)
		}
		opts.Market = market
	}

	results, err := searchService.Search(context.Background(), args[0], opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputJSON(cmd, results)
	}

	return outputSearchTable(cmd, results)
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		title := results[i].Section.Citation
		if title == "" {
			title = results[i].Section.Heading
		}
		if title == "" {
			title = results[i].Section.ID
		}

		snippet := ""
		if len(results[i].Highlights) > 0 {
			snippet = results[i].Highlights[0]
		}

		cmd.Printf("  [%d] %s (%.2f)\n", i+1, title, results[i].Score)
		if results[i].SourceName != "" {
			cmd.Printf("      Source: %s\n", results[i].SourceName)
		}
		if snippet != "" {
			cmd.Printf("      %s\n", snippet)
		}
		cmd.Println()
	}

	return nil
}
