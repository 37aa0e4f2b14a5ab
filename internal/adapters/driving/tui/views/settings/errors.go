package settings

import "errors"

// ErrNoSettingsService is returned when no settings service is available.
var ErrNoSettingsService = errors.New("no settings service available")
