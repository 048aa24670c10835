package tui

import "errors"

// ErrMissingBundleService is returned when the bundle service is not provided.
var ErrMissingBundleService = errors.New("tui: bundle service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
