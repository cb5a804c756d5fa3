package assets

import (
	"errors"
	"slices"
	"testing"
)

func TestEmbeddedLoader_LoadList(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	t.Run("tlds", func(t *testing.T) {
		t.Parallel()

		list, err := loader.LoadList(ListTLDs)
		if err != nil {
			t.Fatalf("LoadList(%q) error = %v", ListTLDs, err)
		}
		for _, want := range []string{"com", "net", "org", "ru", "рф"} {
			if !slices.Contains(list, want) {
				t.Errorf("tlds list missing %q", want)
			}
		}
		if slices.Contains(list, "test") {
			t.Error("tlds list should not contain reserved name \"test\"")
		}
	})

	t.Run("nopreview", func(t *testing.T) {
		t.Parallel()

		list, err := loader.LoadList(ListNoPreview)
		if err != nil {
			t.Fatalf("LoadList(%q) error = %v", ListNoPreview, err)
		}
		for _, want := range []string{"freefeed.net", "reddit.com", "redd.it"} {
			if !slices.Contains(list, want) {
				t.Errorf("nopreview list missing %q", want)
			}
		}
	})

	t.Run("unknown list", func(t *testing.T) {
		t.Parallel()

		_, err := loader.LoadList("stopwords")
		if !errors.Is(err, ErrListNotFound) {
			t.Errorf("LoadList(\"stopwords\") error = %v, want ErrListNotFound", err)
		}
	})

	t.Run("invalid name", func(t *testing.T) {
		t.Parallel()

		_, err := loader.LoadList("../tlds")
		if !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("LoadList(\"../tlds\") error = %v, want ErrInvalidAssetName", err)
		}
	})
}

func TestMustLoadList(t *testing.T) {
	t.Parallel()

	if len(MustLoadList(ListTLDs)) == 0 {
		t.Error("MustLoadList(tlds) returned empty list")
	}

	defer func() {
		if recover() == nil {
			t.Error("MustLoadList(missing) did not panic")
		}
	}()
	MustLoadList("missing")
}

func TestEmbeddedLoader_ImplementsListLoader(t *testing.T) {
	t.Parallel()

	var _ ListLoader = (*EmbeddedLoader)(nil)
}
