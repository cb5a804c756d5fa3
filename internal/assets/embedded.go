package assets

import (
	"embed"
	"fmt"
)

//go:embed lists/*
var lists embed.FS

// EmbeddedLoader loads lists from the embedded filesystem.
// Implements ListLoader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadList loads a list from embedded assets by name.
// The name should not include the .txt extension.
func (e *EmbeddedLoader) LoadList(name string) ([]string, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	content, err := lists.ReadFile("lists/" + name + ".txt")
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrListNotFound, name)
	}

	return ParseList(string(content)), nil
}

// Compile-time interface check.
var _ ListLoader = (*EmbeddedLoader)(nil)
