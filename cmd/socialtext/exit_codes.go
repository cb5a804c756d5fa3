package main

import (
	"errors"
	"os"

	socialtext "github.com/alnah/go-socialtext"
	"github.com/alnah/go-socialtext/internal/config"
	"github.com/alnah/go-socialtext/internal/fileutil"
)

// Exit codes for the socialtext CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess    = 0 // All inputs processed
	ExitGeneral    = 1 // General/unexpected error
	ExitUsage      = 2 // Invalid flags, config, or validation
	ExitIO         = 3 // File not found, permission denied, input too large
	ExitNoCheckbox = 4 // Checkbox edit on text without an initial checkbox
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, socialtext.ErrNoCheckbox) {
		return ExitNoCheckbox
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, fileutil.ErrInputTooLarge) ||
		errors.Is(err, fileutil.ErrNotRegularFile) ||
		errors.Is(err, socialtext.ErrListRead) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrTooManyDomains) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, socialtext.ErrEmptyDomain) ||
		errors.Is(err, socialtext.ErrInvalidDomain) ||
		errors.Is(err, socialtext.ErrUnknownRule) ||
		errors.Is(err, socialtext.ErrListNotFound) ||
		errors.Is(err, socialtext.ErrInvalidListPath) ||
		errors.Is(err, ErrUnknownFormat) ||
		errors.Is(err, ErrInvalidColorMode) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrConflictingFlags) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}
