package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
)

// API key targets understood by the settings service.
const (
	serviceLLM        = "llm"
	serviceLiterature = "literature"
	serviceGitHub     = "github"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the diagnosis mode, AI provider and other options.

Use subcommands to configure specific settings or run the interactive wizard.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure all settings step by step.`,
	RunE:  runSettingsWizard,
}

var settingsModeCmd = &cobra.Command{
	Use:   "mode",
	Short: "Set diagnosis mode",
	Long: `Set the diagnosis mode to control how much external machinery a
diagnosis may use.

Available modes:
  offline  - Local dataset only (fastest, no setup required)
  assisted - Adds PubChem identity resolution and hazard lookups
  deep     - Adds LLM summaries and literature research (requires LLM provider)`,
	RunE: runSettingsMode,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure LLM provider",
	Long:  `Configure the LLM provider for comparison summaries and alternatives research.`,
	RunE:  runSettingsLLM,
}

var settingsLiteratureCmd = &cobra.Command{
	Use:   "literature",
	Short: "Configure literature search",
	Long:  `Configure the Google Programmable Search credentials for literature search.`,
	RunE:  runSettingsLiterature,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	settingsCmd.AddCommand(settingsModeCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	settingsCmd.AddCommand(settingsLiteratureCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	ctx := context.Background()
	settings, err := settingsService.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Diagnosis]")
	cmd.Printf("  Mode: %s\n", settings.Mode.Description())
	cmd.Println()

	cmd.Println("[LLM]")
	cmd.Printf("  Provider: %s\n", settings.LLM.Provider.Description())
	cmd.Printf("  Model: %s\n", settings.LLM.Model)
	if settings.LLM.Provider.IsLocal() {
		cmd.Printf("  Base URL: %s\n", settings.LLM.BaseURL)
	}
	if settings.LLM.Provider.RequiresAPIKey() {
		if settings.LLM.APIKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(settings.LLM.APIKey))
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
	}
	status := "configured"
	if !settings.LLM.IsConfigured() {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()

	cmd.Println("[Literature]")
	if settings.Literature.IsConfigured() {
		cmd.Printf("  API Key: %s\n", maskAPIKey(settings.Literature.APIKey))
		cmd.Printf("  Engine ID: %s\n", settings.Literature.EngineID)
	} else {
		cmd.Println("  Not configured.")
	}
	cmd.Println()

	cmd.Println("[GitHub]")
	if settings.GitHubToken != "" {
		cmd.Printf("  Token: %s\n", maskAPIKey(settings.GitHubToken))
	} else {
		cmd.Println("  Token: (not set, mirror sources use anonymous access)")
	}
	cmd.Println()

	if err := settingsService.Validate(ctx); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'regwatch settings wizard' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Println("Regwatch Settings Wizard")
	cmd.Println("========================")
	cmd.Println()

	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	// Step 1: Diagnosis Mode
	cmd.Println("Step 1: Select Diagnosis Mode")
	cmd.Println("-----------------------------")
	modes := domain.AllDiagnosisModes()
	for i, mode := range modes {
		cmd.Printf("  %d. %s\n", i+1, mode.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	input := readLine(reader)
	modeIdx := parseChoice(input, len(modes), 1)
	selectedMode := modes[modeIdx-1]

	// Step 2: Configure LLM Provider (if needed)
	if selectedMode.RequiresLLM() {
		cmd.Println("\nStep 2: Configure LLM Provider")
		cmd.Println("------------------------------")
		cmd.Println("Deep mode needs an LLM for summaries and research.")
		cmd.Println()

		if err := configureLLMProvider(cmd, ctx, reader); err != nil {
			return err
		}

		cmd.Println("Step 3: Configure Literature Search")
		cmd.Println("-----------------------------------")
		cmd.Println("Alternatives research needs Google Programmable Search credentials.")
		cmd.Println("Leave blank to skip.")
		cmd.Println()

		if err := configureLiterature(cmd, ctx, reader); err != nil {
			return err
		}
	} else {
		cmd.Println("\nStep 2: LLM Provider (skipped)")
		cmd.Println("------------------------------")
		cmd.Println("Not required for the selected mode.")
		cmd.Println()
	}

	// Mode last: setting deep mode fails while the LLM is unconfigured.
	if err := settingsService.SetDiagnosisMode(ctx, selectedMode); err != nil {
		return fmt.Errorf("failed to set diagnosis mode: %w", err)
	}
	cmd.Printf("Set diagnosis mode to: %s\n\n", selectedMode.Description())

	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")
	if err := settingsService.Validate(ctx); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("All settings are valid and saved.")
	}

	return nil
}

func runSettingsMode(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	cmd.Println("Select Diagnosis Mode")
	cmd.Println("---------------------")
	modes := domain.AllDiagnosisModes()
	for i, mode := range modes {
		cmd.Printf("  %d. %s\n", i+1, mode.Description())
	}
	cmd.Print("\nEnter choice: ")
	input := readLine(reader)
	idx := parseChoice(input, len(modes), 0)
	if idx == 0 {
		return errors.New("invalid selection")
	}

	selectedMode := modes[idx-1]
	if err := settingsService.SetDiagnosisMode(ctx, selectedMode); err != nil {
		if selectedMode.RequiresLLM() {
			cmd.Println("Deep mode requires an LLM provider.")
			cmd.Println("Run 'regwatch settings llm' to configure one first.")
		}
		return fmt.Errorf("failed to set diagnosis mode: %w", err)
	}

	cmd.Printf("Diagnosis mode set to: %s\n", selectedMode.Description())
	return nil
}

func runSettingsLLM(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	reader := bufio.NewReader(os.Stdin)
	return configureLLMProvider(cmd, context.Background(), reader)
}

func runSettingsLiterature(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	reader := bufio.NewReader(os.Stdin)
	return configureLiterature(cmd, context.Background(), reader)
}

func configureLLMProvider(cmd *cobra.Command, ctx context.Context, reader *bufio.Reader) error {
	cmd.Println("Select LLM Provider")
	providers := domain.AllAIProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	input := readLine(reader)
	idx := parseChoice(input, len(providers), 1)
	selectedProvider := providers[idx-1]

	// Get API key if needed
	if selectedProvider.RequiresAPIKey() {
		cmd.Print("Enter API key: ")
		apiKey := readPassword()
		cmd.Println()
		if apiKey == "" {
			return errors.New("API key is required for this provider")
		}
		if err := settingsService.SetAPIKey(ctx, serviceLLM, apiKey); err != nil {
			return fmt.Errorf("failed to store API key: %w", err)
		}
	}

	if err := settingsService.SetAIProvider(ctx, selectedProvider); err != nil {
		return fmt.Errorf("failed to configure LLM provider: %w", err)
	}

	model := domain.DefaultLLMModels()[selectedProvider]
	cmd.Printf("LLM provider configured: %s (%s)\n\n", selectedProvider.Description(), model)
	return nil
}

func configureLiterature(cmd *cobra.Command, ctx context.Context, reader *bufio.Reader) error {
	cmd.Print("Enter Google API key: ")
	apiKey := readPassword()
	cmd.Println()
	if apiKey == "" {
		cmd.Println("Literature search left unconfigured.")
		return nil
	}

	cmd.Print("Enter search engine ID: ")
	engineID := readLine(reader)
	if engineID == "" {
		return errors.New("search engine ID is required")
	}

	if err := settingsService.SetAPIKey(ctx, serviceLiterature, apiKey); err != nil {
		return fmt.Errorf("failed to store API key: %w", err)
	}
	if err := settingsService.SetLiteratureEngine(ctx, engineID); err != nil {
		return fmt.Errorf("failed to store engine ID: %w", err)
	}

	cmd.Println("Literature search configured.")
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
