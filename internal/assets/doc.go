// Package assets provides the word lists used by the tokenizer and the
// preview classifier.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	ListLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in lists)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── ListResolver      - combines both with custom-first fallback
//
// EmbeddedLoader provides the built-in lists (tlds, nopreview) embedded at
// compile time.
//
// FilesystemLoader allows users to provide replacement lists from a
// directory, with path traversal protection and symlink resolution.
//
// ListResolver is the loader used by the CLI. It tries the custom
// FilesystemLoader first, falling back to EmbeddedLoader if the list is not
// found. This enables overriding one list while keeping the other defaults.
//
// # Directory Structure
//
//	{basePath}/
//	└── lists/
//	    ├── tlds.txt        # one top-level domain per line
//	    └── nopreview.txt   # hosts that never get a link preview
//
// # List Format
//
// One entry per line. Blank lines and lines starting with # are ignored.
// Entries are trimmed and lower-cased.
//
// # Security
//
// List names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
