// Command regwatch checks chemicals against regulatory datasets for the
// EU, Taiwan and the United States.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/greenchem-labs/regwatch-cli/internal/adapters/driven/ai"
	"github.com/greenchem-labs/regwatch-cli/internal/adapters/driven/chemid/pubchem"
	"github.com/greenchem-labs/regwatch-cli/internal/adapters/driven/config/file"
	"github.com/greenchem-labs/regwatch-cli/internal/adapters/driven/hazard/sas"
	"github.com/greenchem-labs/regwatch-cli/internal/adapters/driven/papers/googlecse"
	"github.com/greenchem-labs/regwatch-cli/internal/adapters/driven/storage/sqlite"
	"github.com/greenchem-labs/regwatch-cli/internal/adapters/driving/cli"
	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
	"github.com/greenchem-labs/regwatch-cli/internal/core/ports/driven"
	"github.com/greenchem-labs/regwatch-cli/internal/core/services"
	"github.com/greenchem-labs/regwatch-cli/internal/logger"
	"github.com/greenchem-labs/regwatch-cli/internal/normalisers"
	"github.com/greenchem-labs/regwatch-cli/internal/scrapers"
	"github.com/greenchem-labs/regwatch-cli/internal/scrapers/ghmirror"
)

// version is injected at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Configuration lives under ~/.regwatch, data under ~/.regwatch/data.
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("open config store: %w", err)
	}
	promptStore, err := file.NewPromptStore(filepath.Join(filepath.Dir(configStore.Path()), "prompts"))
	if err != nil {
		return fmt.Errorf("open prompt store: %w", err)
	}

	store, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())
	settings, err := settingsService.Get(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	// The LLM is optional across the board: comparison summaries, query
	// rewriting and alternatives research degrade gracefully without it.
	// A misconfigured provider must not block offline diagnosis, so the
	// failure is logged rather than returned.
	llm, err := ai.CreateAndValidateLLMService(&settings.LLM)
	if err != nil {
		logger.Warn("LLM unavailable: %v", err)
		llm = nil
	}

	// Remote enrichment only when the configured mode allows network calls.
	var resolver driven.ChemicalResolver
	var hazard driven.HazardDatabase
	if settings.Mode.RequiresNetwork() {
		resolver = pubchem.New()
		hazard = sas.New()
	}

	var papers driven.PaperSearch
	if settings.Literature.IsConfigured() {
		search, err := googlecse.New(ctx, settings.Literature.APIKey, settings.Literature.EngineID)
		if err != nil {
			logger.Warn("literature search unavailable: %v", err)
		} else {
			papers = search
		}
	}

	factory := scrapers.DefaultFactory()
	if settings.GitHubToken != "" {
		// Mirror sources without an explicit token fall back to the
		// account-level one from settings.
		token := settings.GitHubToken
		factory.Register("ghmirror", func(source domain.Source) (driven.Scraper, error) {
			if source.Config["token"] == "" {
				cfg := make(map[string]string, len(source.Config)+1)
				for k, v := range source.Config {
					cfg[k] = v
				}
				cfg["token"] = token
				source.Config = cfg
			}
			return ghmirror.New(source)
		})
	}

	diagnosisService := services.NewDiagnosisService(
		store.RegulationStore(),
		store.ChemicalStore(),
		store.DiagnosisStore(),
		resolver,
		hazard,
	)
	comparisonService := services.NewComparisonService(diagnosisService, store.RegulationStore(), llm)
	alternativesService := services.NewAlternativesService(papers, llm, store.ChemicalStore(), resolver)
	alternativesService.SetPromptStore(promptStore)
	searchService := services.NewSearchService(
		store.RegulationStore(),
		store.SourceStore(),
		store.SearchEngine(),
		llm,
	)
	syncOrchestrator := services.NewSyncOrchestrator(
		store.SourceStore(),
		store.SyncStateStore(),
		store.RegulationStore(),
		factory,
		normalisers.Defaults(),
		store.SearchEngine(),
	)
	sourceService := services.NewSourceService(
		store.SourceStore(),
		store.SyncStateStore(),
		store.RegulationStore(),
		store.SearchEngine(),
		factory,
	)
	scheduler := services.NewScheduler(
		settingsService.GetSchedulerConfig(),
		store.SchedulerStore(),
		store.SourceStore(),
		store.SyncStateStore(),
		syncOrchestrator,
	)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Diagnosis:    diagnosisService,
		Comparison:   comparisonService,
		Alternatives: alternativesService,
		Search:       searchService,
		Sync:         syncOrchestrator,
		Source:       sourceService,
		Settings:     settingsService,
		Scheduler:    scheduler,
	})
	cli.SetTUIConfig(&cli.TUIConfig{
		DiagnosisService:  diagnosisService,
		ComparisonService: comparisonService,
		SearchService:     searchService,
		SourceService:     sourceService,
		SyncOrchestrator:  syncOrchestrator,
		SettingsService:   settingsService,
		Scheduler:         scheduler,
		SchedulerConfig:   settingsService.GetSchedulerConfig(),
	})

	cli.Execute()
	return nil
}
