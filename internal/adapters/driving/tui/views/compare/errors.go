package compare

import "errors"

// ErrNoComparisonService is returned when no comparison service is available.
var ErrNoComparisonService = errors.New("no comparison service available")
