package service

import "errors"

// Sentinel errors for service lifecycle misuse.
var (
	ErrNotStarted = errors.New("service not started")
	ErrNoStore    = errors.New("no fight store configured")
)
