package assets

import (
	"fmt"
	"regexp"

	"github.com/goccy/go-yaml"

	"github.com/alnah/go-md2kdp/internal/layout"
)

// DefaultThemeName is the name of the built-in theme.
const DefaultThemeName = "classic"

// MaxThemeSize limits theme files to prevent memory exhaustion (64KB).
const MaxThemeSize = 64 << 10

// themeName allows letters, digits, hyphens and underscores only, so a name
// can never reach outside the themes directory or pick its own extension.
var themeName = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateAssetName reports ErrInvalidAssetName unless name is a bare theme
// name such as "large-print".
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if !themeName.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

// ThemeLoader defines the contract for loading book themes.
type ThemeLoader interface {
	// LoadTheme loads a theme by name (without .yaml extension).
	// Returns ErrThemeNotFound if the theme doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTheme(name string) (layout.Theme, error)
}

// themeFile is the on-disk theme layout. Trim is applied before the
// explicit page fields.
type themeFile struct {
	Trim         string `yaml:"trim"`
	layout.Theme `yaml:",inline"`
}

// ParseTheme decodes theme YAML over the default theme and validates it.
// Unknown keys are rejected.
func ParseTheme(data []byte) (layout.Theme, error) {
	if len(data) > MaxThemeSize {
		return layout.Theme{}, fmt.Errorf("%w: %d bytes (max %d)", ErrThemeParse, len(data), MaxThemeSize)
	}

	file := themeFile{Theme: layout.DefaultTheme()}
	if len(data) == 0 {
		return file.Theme, nil
	}

	// Trim is resolved first so explicit page fields can still override it.
	var head struct {
		Trim string `yaml:"trim"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return layout.Theme{}, fmt.Errorf("%w: %v", ErrThemeParse, err)
	}
	if head.Trim != "" {
		page, err := file.Page.WithTrim(head.Trim)
		if err != nil {
			return layout.Theme{}, err
		}
		file.Page = page
	}

	if err := yaml.UnmarshalWithOptions(data, &file, yaml.Strict()); err != nil {
		return layout.Theme{}, fmt.Errorf("%w: %v", ErrThemeParse, err)
	}
	if err := file.Theme.Validate(); err != nil {
		return layout.Theme{}, err
	}
	return file.Theme, nil
}

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadTheme loads an embedded theme by name.
func LoadTheme(name string) (layout.Theme, error) {
	return defaultLoader.LoadTheme(name)
}

// ThemeNames lists the embedded theme names, sorted.
func ThemeNames() []string {
	return defaultLoader.Names()
}
