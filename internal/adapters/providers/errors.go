package providers

import "errors"

var (
	// ErrSourceUnavailable marks a provider that cannot serve right now,
	// either because it has no credentials or the upstream failed.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrNoData means the upstream answered but had nothing for the
	// requested fighters.
	ErrNoData = errors.New("no data for request")
)
