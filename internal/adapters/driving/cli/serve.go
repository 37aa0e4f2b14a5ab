package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/greenchem-labs/regwatch-cli/internal/adapters/driving/api"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Starts an HTTP server exposing the diagnosis API.

Endpoints:
  POST /diagnose  - diagnose a chemical {"target": ..., "market": ...}
  GET  /healthz   - liveness check

Example:
  regwatch serve --port 8080`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if diagnosisService == nil {
		return errors.New("diagnosis service not configured")
	}

	server := api.NewServer(&api.Ports{
		Diagnosis:    diagnosisService,
		Comparison:   comparisonService,
		Alternatives: alternativesService,
		Search:       searchService,
	})

	addr := fmt.Sprintf(":%d", servePort)
	cmd.Printf("API server listening on http://localhost%s\n", addr)
	return server.Run(cmd.Context(), addr)
}
