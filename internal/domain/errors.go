package domain

import "errors"

// Sentinel errors used across all layers.
var (
	ErrDuplicateKey     = errors.New("duplicate key")
	ErrInvalidField     = errors.New("invalid field")
	ErrInvalidLocale    = errors.New("invalid locale")
	ErrNotFound         = errors.New("not found")
	ErrInvalidKeyFormat = errors.New("invalid key format")
	ErrPersistence      = errors.New("persistence failure")
	ErrProvider         = errors.New("provider failure")

	ErrUnsupportedFormat = errors.New("unsupported format")
)
