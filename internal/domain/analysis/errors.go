package analysis

import "errors"

// Sentinel kinds for metric outcomes. InsufficientData and NotFound-class
// conditions are first-class results for callers, not failures.
var (
	ErrInsufficientData = errors.New("insufficient data")
	ErrInvalidParameter = errors.New("invalid parameter")
)
