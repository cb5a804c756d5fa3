// Package fileutil provides bounded input reading and path helpers.
package fileutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrInputTooLarge  = errors.New("input exceeds maximum size")
	ErrNotRegularFile = errors.New("not a regular file")
)

// MaxInputSize bounds a single message read from a file or stdin (4MB).
const MaxInputSize int64 = 4 << 20

// ReadFile reads a regular file of at most limit bytes.
func ReadFile(path string, limit int64) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotRegularFile, path)
	}
	if info.Size() > limit {
		return nil, fmt.Errorf("%w: %s (%d bytes, max %d)", ErrInputTooLarge, path, info.Size(), limit)
	}

	f, err := os.Open(path) // #nosec G304 -- path is user-provided input
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := ReadAll(f, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

// ReadAll reads r to EOF, failing once more than limit bytes arrive.
func ReadAll(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrInputTooLarge, limit)
	}
	return data, nil
}

// LooksLikeURL returns true if the string starts like a web address rather
// than a file name.
//
// Examples:
//   - "https://freefeed.net" -> true
//   - "HTTP://example.com" -> true
//   - "www.example.com" -> true
//   - "./post.txt" -> false
//   - "post.txt" -> false
func LooksLikeURL(s string) bool {
	lower := strings.ToLower(s)
	for _, prefix := range []string{"http://", "https://", "ftp://", "www."} {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}
