package socialtext

import "errors"

// Sentinel errors for library operations.
var (
	// Checkbox errors.
	ErrNoCheckbox = errors.New("text has no initial checkbox")

	// Domain configuration errors.
	ErrEmptyDomain   = errors.New("domain cannot be empty")
	ErrInvalidDomain = errors.New("invalid domain")

	// Tokenizer configuration errors.
	ErrUnknownRule = errors.New("unknown recognizer rule")

	// List loading errors.
	ErrListNotFound    = errors.New("list not found")
	ErrInvalidListPath = errors.New("invalid list path")
	ErrListRead        = errors.New("failed to read list")
)
