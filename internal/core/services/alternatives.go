package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
	"github.com/greenchem-labs/regwatch-cli/internal/core/ports/driven"
	"github.com/greenchem-labs/regwatch-cli/internal/core/ports/driving"
	"github.com/greenchem-labs/regwatch-cli/internal/logger"
)

// Ensure AlternativesService implements the interface.
var _ driving.AlternativesService = (*AlternativesService)(nil)

// Research pipeline limits.
const (
	// defaultMaxAlternatives caps extracted candidates when the caller
	// doesn't specify a limit.
	defaultMaxAlternatives = 5

	// maxPapers is how many literature hits feed the pipeline.
	maxPapers = 8

	// maxAbstractPromptChars caps per-paper text in the analysis prompt.
	maxAbstractPromptChars = 1500
)

// defaultResearchSystemPrompt is used when no prompt store is configured.
const defaultResearchSystemPrompt = `You are a chemical substitution researcher. You help identify safer
alternatives to regulated chemicals based on published literature.

When analysing papers:
1. Only propose substances the literature actually names as substitutes
2. Note the application context (adhesives, coatings, plasticisers, ...)
3. Cite the paper each candidate came from
4. Flag candidates that are themselves on restriction lists

Answer in the structured format requested by the user.`

// AlternativesService researches substitute chemicals through a staged
// pipeline: literature search, abstract retrieval, model analysis, and
// structured extraction.
type AlternativesService struct {
	papers      driven.PaperSearch
	llm         driven.LLMService
	identity    identityResolver
	promptStore driven.PromptStore
}

// NewAlternativesService creates an alternatives research service.
// Both papers and llm are required for Research to run; promptStore is
// optional and overrides the built-in system prompt when set.
func NewAlternativesService(
	papers driven.PaperSearch,
	llm driven.LLMService,
	chemStore driven.ChemicalStore,
	resolver driven.ChemicalResolver,
) *AlternativesService {
	return &AlternativesService{
		papers:   papers,
		llm:      llm,
		identity: identityResolver{chemStore: chemStore, resolver: resolver},
	}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
func (s *AlternativesService) SetPromptStore(store driven.PromptStore) {
	s.promptStore = store
}

// Research runs the literature pipeline and extracts substitute
// candidates for the chemical in the given industry context.
func (s *AlternativesService) Research(ctx context.Context, chemicalName, industry string, maxAlternatives int) (*domain.ResearchReport, error) {
	chemicalName = strings.TrimSpace(chemicalName)
	if chemicalName == "" {
		return nil, fmt.Errorf("%w: chemical name is required", domain.ErrInvalidInput)
	}
	if s.papers == nil {
		return nil, domain.ErrPaperSearchUnavailable
	}
	if s.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}
	if maxAlternatives <= 0 {
		maxAlternatives = defaultMaxAlternatives
	}

	chemical := s.identity.Resolve(ctx, chemicalName)

	// Stage 1: literature search.
	papers, err := s.searchPapers(ctx, chemicalName, industry)
	if err != nil {
		return nil, err
	}
	if len(papers) == 0 {
		return nil, fmt.Errorf("%w: no literature found for %q", domain.ErrNotFound, chemicalName)
	}

	// Stage 2: abstract retrieval. Failures fall back to the snippet.
	s.fetchAbstracts(ctx, papers)

	// Stage 3: model analysis of the collected literature.
	analysis, err := s.analyse(ctx, chemicalName, industry, papers)
	if err != nil {
		return nil, fmt.Errorf("analyse literature: %w", err)
	}

	// Stage 4: structured extraction of candidates.
	alternatives, err := s.extract(ctx, analysis, maxAlternatives)
	if err != nil {
		return nil, fmt.Errorf("extract alternatives: %w", err)
	}
	if len(alternatives) > maxAlternatives {
		alternatives = alternatives[:maxAlternatives]
	}

	return &domain.ResearchReport{
		Chemical:     chemical,
		Industry:     industry,
		Alternatives: alternatives,
		Papers:       papers,
		Analysis:     analysis,
		GeneratedAt:  time.Now(),
	}, nil
}

// searchPapers runs the literature query for the substitution question.
func (s *AlternativesService) searchPapers(ctx context.Context, chemicalName, industry string) ([]domain.PaperRef, error) {
	query := fmt.Sprintf("%s alternatives substitutes safer replacement", chemicalName)
	if industry != "" {
		query += " " + industry
	}

	papers, err := s.papers.Search(ctx, query, maxPapers)
	if err != nil {
		return nil, fmt.Errorf("literature search: %w", err)
	}
	return papers, nil
}

// fetchAbstracts fills in abstracts for each paper. A paper whose page
// cannot be fetched keeps its snippet as the abstract.
func (s *AlternativesService) fetchAbstracts(ctx context.Context, papers []domain.PaperRef) {
	for i := range papers {
		abstract, err := s.papers.FetchAbstract(ctx, papers[i])
		if err != nil || abstract == "" {
			logger.Debug("abstract fallback for %s: %v", papers[i].URL, err)
			papers[i].Abstract = papers[i].Snippet
			continue
		}
		papers[i].Abstract = abstract
	}
}

// analyse asks the model which substitutes the literature supports.
func (s *AlternativesService) analyse(ctx context.Context, chemicalName, industry string, papers []domain.PaperRef) (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Target chemical: %s\n", chemicalName)
	if industry != "" {
		fmt.Fprintf(&sb, "Industry context: %s\n", industry)
	}
	sb.WriteString("\nLiterature:\n")
	for i, paper := range papers {
		text := paper.Abstract
		if len(text) > maxAbstractPromptChars {
			text = text[:maxAbstractPromptChars]
		}
		fmt.Fprintf(&sb, "[%d] %s (%s)\n%s\n\n", i+1, paper.Title, paper.URL, text)
	}
	sb.WriteString("Which substitutes does this literature support, and why?")

	messages := []driven.ChatMessage{
		{Role: "system", Content: s.systemPrompt()},
		{Role: "user", Content: sb.String()},
	}

	analysis, err := s.llm.Chat(ctx, messages, driven.ChatOptions{Temperature: 0.3})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(analysis), nil
}

// extractionPrompt asks for machine-readable candidates from an analysis.
const extractionPrompt = `Extract up to %d substitute candidates from the analysis below.
Respond with ONLY a JSON array, no prose, where each element is:
{"name": "...", "rationale": "...", "reference": "...", "year": 2020, "safety_note": "..."}
Use 0 for an unknown year and "" for unknown fields.

Analysis:
%s`

// extractedAlternative mirrors the JSON shape the extraction prompt asks for.
type extractedAlternative struct {
	Name       string `json:"name"`
	Rationale  string `json:"rationale"`
	Reference  string `json:"reference"`
	Year       int    `json:"year"`
	SafetyNote string `json:"safety_note"`
}

// extract converts the free-text analysis into structured alternatives.
func (s *AlternativesService) extract(ctx context.Context, analysis string, maxAlternatives int) ([]domain.Alternative, error) {
	raw, err := s.llm.Generate(ctx, fmt.Sprintf(extractionPrompt, maxAlternatives, analysis), driven.GenerateOptions{
		Temperature: 0.1,
	})
	if err != nil {
		return nil, err
	}

	var extracted []extractedAlternative
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &extracted); err != nil {
		return nil, fmt.Errorf("parse extraction output: %w", err)
	}

	alternatives := make([]domain.Alternative, 0, len(extracted))
	for _, e := range extracted {
		if e.Name == "" {
			continue
		}
		alternatives = append(alternatives, domain.Alternative{
			Name:       e.Name,
			Rationale:  e.Rationale,
			Reference:  e.Reference,
			Year:       e.Year,
			SafetyNote: e.SafetyNote,
		})
	}
	return alternatives, nil
}

// systemPrompt loads the research system prompt, falling back to the
// built-in default.
func (s *AlternativesService) systemPrompt() string {
	if s.promptStore == nil {
		return defaultResearchSystemPrompt
	}
	prompt, err := s.promptStore.Load(driven.PromptResearchSystem)
	if err != nil {
		return defaultResearchSystemPrompt
	}
	return prompt
}

// stripCodeFence removes a markdown code fence wrapping, which models
// add despite instructions to return bare JSON.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
