package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound     = errors.New("fighter not found")
	ErrUnavailable  = errors.New("record store unavailable")
	ErrInvalidLimit = errors.New("invalid search limit")
)
