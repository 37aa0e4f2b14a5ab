package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
	"github.com/greenchem-labs/regwatch-cli/internal/core/ports/driving"
)

var syncCmd = &cobra.Command{
	Use:   "sync [slug]",
	Short: "Synchronise regulatory datasets",
	Long: `Fetches, normalises and indexes regulatory data from configured
sources. With a dataset slug only that source is synchronised;
otherwise every enabled source is.

Examples:
  regwatch sync
  regwatch sync eu_reach_eurlex`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	if syncOrchestrator == nil {
		return errors.New("sync service not configured")
	}

	ctx := context.Background()

	if len(args) > 0 {
		source, err := resolveSource(ctx, args[0])
		if err != nil {
			return err
		}
		cmd.Printf("Synchronising %s...\n", source.Slug)

		if err := syncWithProgress(ctx, cmd, syncOrchestrator, source.ID); err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}

		cmd.Printf("%s synchronised successfully.\n", source.Slug)
		return nil
	}

	cmd.Println("Synchronising all enabled sources...")

	if err := syncOrchestrator.SyncAll(ctx); err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	cmd.Println("All sources synchronised successfully.")
	return nil
}

// resolveSource accepts either a dataset slug or a source ID.
func resolveSource(ctx context.Context, ref string) (*domain.Source, error) {
	if sourceService == nil {
		return nil, errors.New("source service not configured")
	}

	sources, err := sourceService.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sources: %w", err)
	}
	for i := range sources {
		if sources[i].Slug == ref || sources[i].ID == ref {
			return &sources[i], nil
		}
	}
	return nil, fmt.Errorf("source %q: %w", ref, domain.ErrNotFound)
}

// syncWithProgress runs sync while displaying progress updates.
func syncWithProgress(
	ctx context.Context,
	cmd *cobra.Command,
	syncOrch driving.SyncOrchestrator,
	sourceID string,
) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- syncOrch.Sync(ctx, sourceID)
	}()

	// Poll status every 500ms
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	lastCount := 0
	for {
		select {
		case err := <-errCh:
			// Print final status (ignore status error - best effort)
			status, statusErr := syncOrch.Status(ctx, sourceID)
			if statusErr == nil && status != nil {
				switch {
				case status.Unchanged:
					cmd.Println("\rSource content unchanged since last sync.")
				case status.SnapshotsProcessed > 0:
					cmd.Printf("\rProcessed %d snapshots, %d listings (%d errors)\n",
						status.SnapshotsProcessed, status.ListingsSaved, status.ErrorCount)
				}
			}
			return err
		case <-ticker.C:
			// Check progress (ignore status error - best effort)
			status, statusErr := syncOrch.Status(ctx, sourceID)
			if statusErr == nil && status != nil && status.SnapshotsProcessed > lastCount {
				cmd.Printf("\rProcessing... %d snapshots", status.SnapshotsProcessed)
				lastCount = status.SnapshotsProcessed
			}
		}
	}
}
