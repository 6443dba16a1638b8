package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/alnah/go-md2kdp/internal/layout"
)

//go:embed themes/*.yaml
var themes embed.FS

// EmbeddedLoader loads themes compiled into the binary.
// Implements ThemeLoader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadTheme loads an embedded theme by name.
func (e *EmbeddedLoader) LoadTheme(name string) (layout.Theme, error) {
	if err := ValidateAssetName(name); err != nil {
		return layout.Theme{}, err
	}

	data, err := themes.ReadFile("themes/" + name + ".yaml")
	if err != nil {
		return layout.Theme{}, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}

	theme, err := ParseTheme(data)
	if err != nil {
		return layout.Theme{}, fmt.Errorf("theme %q: %w", name, err)
	}
	return theme, nil
}

// Names returns the embedded theme names, sorted.
func (e *EmbeddedLoader) Names() []string {
	entries, err := fs.ReadDir(themes, "themes")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}

// Compile-time interface check.
var _ ThemeLoader = (*EmbeddedLoader)(nil)
