package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the background scheduler",
	Long: `Runs the background scheduler in the foreground until interrupted.

The scheduler periodically re-syncs sources whose data has gone stale
and prunes old task history. Intervals are configured in config.toml
under the [scheduler] section.`,
	RunE: runSchedule,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, _ []string) error {
	if scheduler == nil {
		return errors.New("scheduler not configured (enable it in config.toml)")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cmd.Println("Scheduler running. Press Ctrl+C to stop.")

	if err := scheduler.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	cmd.Println("Scheduler stopped.")
	return nil
}
