package assets

// Built-in list names.
const (
	ListTLDs      = "tlds"
	ListNoPreview = "nopreview"
)

// ListLoader defines the contract for loading word lists.
type ListLoader interface {
	// LoadList loads a list by name (without .txt extension).
	// Returns ErrListNotFound if the list doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadList(name string) ([]string, error)
}

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadList loads a list by name using the default embedded loader.
func LoadList(name string) ([]string, error) {
	return defaultLoader.LoadList(name)
}

// MustLoadList is like LoadList but panics on error.
// Intended for package-level initialization of built-in lists.
func MustLoadList(name string) []string {
	list, err := LoadList(name)
	if err != nil {
		panic("assets: " + err.Error())
	}
	return list
}
