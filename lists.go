package socialtext

import (
	"errors"

	"github.com/alnah/go-socialtext/internal/assets"
)

// Lists holds the word lists the tokenizer and the embed selector use.
type Lists struct {
	TLDs           []string // top-level domains accepted in bare links
	NoPreviewHosts []string // sites whose links get no preview
}

// DefaultLists returns copies of the built-in lists.
func DefaultLists() *Lists {
	return &Lists{
		TLDs:           append([]string(nil), defaultTLDs...),
		NoPreviewHosts: NoPreviewHosts(),
	}
}

// NoPreview reports whether rawURL is on a site of l.NoPreviewHosts. Like
// NoPreviewForURL, only https links match.
func (l *Lists) NoPreview(rawURL string) bool {
	return noPreviewFor(rawURL, l.NoPreviewHosts)
}

// LoadLists loads the lists from basePath, falling back to the built-in
// version of any list missing there. An empty basePath yields the built-in
// lists.
//
// The basePath directory may contain:
//   - lists/tlds.txt
//   - lists/nopreview.txt
//
// One entry per line; blank lines and lines starting with # are ignored.
// Returns ErrInvalidListPath if basePath is set but not a readable directory.
func LoadLists(basePath string) (*Lists, error) {
	resolver, err := assets.NewListResolver(basePath)
	if err != nil {
		return nil, convertListError(err)
	}

	tlds, err := resolver.LoadList(assets.ListTLDs)
	if err != nil {
		return nil, convertListError(err)
	}
	noPreview, err := resolver.LoadList(assets.ListNoPreview)
	if err != nil {
		return nil, convertListError(err)
	}
	return &Lists{TLDs: tlds, NoPreviewHosts: noPreview}, nil
}

// convertListError maps internal asset errors to public errors.
func convertListError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, assets.ErrListNotFound), errors.Is(err, assets.ErrInvalidAssetName):
		return wrapError(ErrListNotFound, err)
	case errors.Is(err, assets.ErrInvalidBasePath), errors.Is(err, assets.ErrPathTraversal):
		return wrapError(ErrInvalidListPath, err)
	case errors.Is(err, assets.ErrAssetRead):
		return wrapError(ErrListRead, err)
	default:
		return err
	}
}

// wrapError creates an error that keeps the original message and matches
// the public sentinel with errors.Is.
func wrapError(sentinel, original error) error {
	return &wrappedListError{sentinel: sentinel, original: original}
}

type wrappedListError struct {
	sentinel error
	original error
}

func (e *wrappedListError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel; internal errors stay hidden.
func (e *wrappedListError) Unwrap() error {
	return e.sentinel
}
