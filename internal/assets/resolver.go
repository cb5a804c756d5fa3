package assets

import (
	"errors"
)

// ListResolver combines custom and embedded loaders with fallback logic.
// When a custom loader is configured, it tries custom first, then falls back
// to embedded if the list is not found in the custom location.
type ListResolver struct {
	custom   ListLoader // nil if no custom path configured
	embedded ListLoader
}

// NewListResolver creates a ListResolver.
// If customBasePath is empty, only embedded lists are used.
// Returns error if customBasePath is set but invalid.
func NewListResolver(customBasePath string) (*ListResolver, error) {
	resolver := &ListResolver{
		embedded: NewEmbeddedLoader(),
	}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}

	return resolver, nil
}

// LoadList loads a list, trying the custom loader first if available.
func (r *ListResolver) LoadList(name string) ([]string, error) {
	if r.custom == nil {
		return r.embedded.LoadList(name)
	}

	list, err := r.custom.LoadList(name)
	if err == nil {
		return list, nil
	}

	// Only fall back for "not found" errors, not validation or I/O errors
	if !errors.Is(err, ErrListNotFound) {
		return nil, err
	}

	return r.embedded.LoadList(name)
}

// HasCustomLoader returns true if a custom list loader is configured.
func (r *ListResolver) HasCustomLoader() bool {
	return r.custom != nil
}

// Compile-time interface check.
var _ ListLoader = (*ListResolver)(nil)
