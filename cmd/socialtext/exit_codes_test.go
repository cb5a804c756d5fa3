package main

// Notes:
// - exitCodeFor: we test the sentinel errors of the library, config and CLI,
//   plus wrapped errors to verify the errors.Is() chain.
// - Exit code constants: we verify Unix conventions (0=success, 1=general,
//   2=usage) and that custom codes are below 126.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	socialtext "github.com/alnah/go-socialtext"
	"github.com/alnah/go-socialtext/internal/config"
	"github.com/alnah/go-socialtext/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		// Success
		{"nil error", nil, ExitSuccess},

		// Checkbox errors (exit 4)
		{"no checkbox", socialtext.ErrNoCheckbox, ExitNoCheckbox},
		{"wrapped no checkbox", fmt.Errorf("post.txt: %w", socialtext.ErrNoCheckbox), ExitNoCheckbox},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"read input", ErrReadInput, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"input too large", fileutil.ErrInputTooLarge, ExitIO},
		{"not regular file", fileutil.ErrNotRegularFile, ExitIO},
		{"list read", socialtext.ErrListRead, ExitIO},
		{"wrapped file not exist", fmt.Errorf("reading: %w", os.ErrNotExist), ExitIO},
		{"batch failure keeps first cause", fmt.Errorf("1 of 2 inputs failed: %w", fmt.Errorf("%w: x", ErrReadInput)), ExitIO},

		// Usage/config/validation errors (exit 2)
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"empty config name", config.ErrEmptyConfigName, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"too many domains", config.ErrTooManyDomains, ExitUsage},
		{"invalid config value", config.ErrInvalidValue, ExitUsage},
		{"empty domain", socialtext.ErrEmptyDomain, ExitUsage},
		{"invalid domain", socialtext.ErrInvalidDomain, ExitUsage},
		{"unknown rule", socialtext.ErrUnknownRule, ExitUsage},
		{"list not found", socialtext.ErrListNotFound, ExitUsage},
		{"invalid list path", socialtext.ErrInvalidListPath, ExitUsage},
		{"unknown format", ErrUnknownFormat, ExitUsage},
		{"invalid color", ErrInvalidColorMode, ExitUsage},
		{"invalid workers", ErrInvalidWorkerCount, ExitUsage},
		{"conflicting flags", ErrConflictingFlags, ExitUsage},
		{"unknown command", ErrUnknownCommand, ExitUsage},
		{"unsupported shell", ErrUnsupportedShell, ExitUsage},
		{"wrapped config parse", fmt.Errorf("loading config: %w", config.ErrConfigParse), ExitUsage},

		// General errors (exit 1)
		{"unknown error", errors.New("boom"), ExitGeneral},
		{"canceled", context.Canceled, ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestExitCodeConstants - Unix conventions
// ---------------------------------------------------------------------------

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 || ExitGeneral != 1 || ExitUsage != 2 {
		t.Errorf("standard codes = %d/%d/%d, want 0/1/2", ExitSuccess, ExitGeneral, ExitUsage)
	}
	for _, code := range []int{ExitIO, ExitNoCheckbox} {
		if code <= ExitUsage || code >= 126 {
			t.Errorf("custom exit code %d must be in (2, 126)", code)
		}
	}
}
