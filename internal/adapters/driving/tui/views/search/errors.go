package search

import "errors"

// ErrNoSearchService is returned when no search service is available.
var ErrNoSearchService = errors.New("no search service available")
