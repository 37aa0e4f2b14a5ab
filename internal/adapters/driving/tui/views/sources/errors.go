package sources

import "errors"

// ErrNoSourceService is returned when no source service is available.
var ErrNoSourceService = errors.New("no source service available")

// ErrNoSyncOrchestrator is returned when no sync orchestrator is available.
var ErrNoSyncOrchestrator = errors.New("no sync orchestrator available")
