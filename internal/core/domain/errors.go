package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown scraper or normaliser type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrSyncInProgress indicates a sync is already running for a source.
	ErrSyncInProgress = errors.New("sync in progress")

	// ErrMarketUnsupported indicates the requested market is not a known jurisdiction.
	ErrMarketUnsupported = errors.New("market not supported")

	// ErrChemicalNotFound indicates the resolver found no compound for a name.
	ErrChemicalNotFound = errors.New("chemical not found")

	// ErrNoHazardData indicates no hazard database entry exists for any
	// of the chemical's CAS numbers.
	ErrNoHazardData = errors.New("no hazard data")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Features requiring LLM (summaries, alternatives research) are disabled.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrPaperSearchUnavailable indicates the literature search service is
	// not configured. Alternatives research is disabled without it.
	ErrPaperSearchUnavailable = errors.New("paper search unavailable")

	// ErrSearchUnavailable indicates the section search engine is not configured.
	ErrSearchUnavailable = errors.New("search engine unavailable")

	// Scraper errors.

	// ErrScraperValidation indicates scraper validation failed.
	// The source is misconfigured or the upstream site is unreachable.
	ErrScraperValidation = errors.New("scraper validation failed")

	// ErrScraperClosed indicates the scraper has been closed.
	ErrScraperClosed = errors.New("scraper closed")

	// ErrNotImplemented indicates a scraper does not support the operation
	// (e.g. Watch on an HTTP scraper).
	ErrNotImplemented = errors.New("not implemented")

	// ErrRateLimited indicates an upstream API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
