package assets

import (
	"errors"

	"github.com/alnah/go-md2kdp/internal/layout"
)

// AssetResolver combines custom and embedded loaders. A custom theme with
// the same name shadows the embedded preset.
type AssetResolver struct {
	custom   ThemeLoader // nil if no custom path configured
	embedded *EmbeddedLoader
}

// NewAssetResolver creates an AssetResolver.
// If customBasePath is empty, only embedded themes are used.
// Returns error if customBasePath is set but invalid.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	resolver := &AssetResolver{embedded: NewEmbeddedLoader()}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}
	return resolver, nil
}

// LoadTheme loads a theme, trying the custom loader first if available.
// Only a missing custom theme falls back; parse and I/O errors are returned.
func (r *AssetResolver) LoadTheme(name string) (layout.Theme, error) {
	if r.custom == nil {
		return r.embedded.LoadTheme(name)
	}

	theme, err := r.custom.LoadTheme(name)
	if err == nil {
		return theme, nil
	}
	if !errors.Is(err, ErrThemeNotFound) {
		return layout.Theme{}, err
	}
	return r.embedded.LoadTheme(name)
}

// Names returns the embedded theme names.
func (r *AssetResolver) Names() []string {
	return r.embedded.Names()
}

// HasCustomLoader returns true if a custom theme directory is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

// Compile-time interface check.
var _ ThemeLoader = (*AssetResolver)(nil)
