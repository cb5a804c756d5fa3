// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/alnah/go-socialtext/internal/fileutil"
)

// StdinIsTerminal reports whether stdin is attached to a terminal.
var StdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) // #nosec G115 -- fd fits in int
}

// ForNoInput returns hints for a command run without any message source.
func ForNoInput() string {
	hints := []string{"pass file names or --text"}
	if StdinIsTerminal() {
		hints = append(hints, "or pipe a message on stdin")
	}
	return format(strings.Join(hints, " "))
}

// ForReadInput returns hints for an input argument that could not be read.
func ForReadInput(arg string) string {
	if fileutil.LooksLikeURL(arg) {
		return format("arguments are file names; use --text " + strconv.Quote(arg) + " for inline text")
	}
	return format("check the file exists and is readable")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), "/socialtext/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForInvalidDomain returns hints for rejected site domains.
func ForInvalidDomain() string {
	return format("use a bare host name such as freefeed.net (no scheme, port or path)")
}

// ForListNotFound returns hints for custom list errors.
func ForListNotFound(basePath string) string {
	if basePath == "" {
		return ""
	}
	return format("custom lists are read from " + filepath.Join(basePath, "lists", "<name>.txt"))
}

// ForNoCheckbox returns hints for checkbox edits on text without one.
func ForNoCheckbox() string {
	return format(`the text must start with a single checkbox such as "[ ]" or "[x]"`)
}

// ForUnknownValue returns hints listing the accepted values.
func ForUnknownValue(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForWorkers returns a hint about the accepted worker range.
func ForWorkers(maxWorkers int) string {
	return format("use a value between 1 and " + strconv.Itoa(maxWorkers) + ", or 0 for auto")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
