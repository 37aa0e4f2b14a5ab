package history

import "errors"

// ErrNoDiagnosisService is returned when no diagnosis service is available.
var ErrNoDiagnosisService = errors.New("no diagnosis service available")
