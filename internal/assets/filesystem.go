package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2kdp/internal/layout"
)

// FilesystemLoader loads themes from a directory on the filesystem.
// Implements ThemeLoader interface.
type FilesystemLoader struct {
	basePath string
}

// NewFilesystemLoader creates a FilesystemLoader for the given base path.
// Returns ErrInvalidBasePath if the path is not a valid, readable directory.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}

	// Containment checks compare resolved paths.
	if realPath, err := filepath.EvalSymlinks(absPath); err == nil {
		absPath = realPath
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, absPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, absPath)
	}
	if _, err := os.ReadDir(absPath); err != nil {
		return nil, fmt.Errorf("%w: cannot read directory: %v", ErrInvalidBasePath, err)
	}

	return &FilesystemLoader{basePath: absPath}, nil
}

// LoadTheme loads {basePath}/themes/{name}.yaml.
func (f *FilesystemLoader) LoadTheme(name string) (layout.Theme, error) {
	if err := ValidateAssetName(name); err != nil {
		return layout.Theme{}, err
	}

	filePath := filepath.Join(f.basePath, "themes", name+".yaml")
	if err := f.verifyPathContainment(filePath); err != nil {
		return layout.Theme{}, err
	}

	data, err := os.ReadFile(filePath) // #nosec G304 -- path validated above
	if err != nil {
		if os.IsNotExist(err) {
			return layout.Theme{}, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
		}
		return layout.Theme{}, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}

	theme, err := ParseTheme(data)
	if err != nil {
		return layout.Theme{}, fmt.Errorf("theme %q: %w", name, err)
	}
	return theme, nil
}

// LoadThemeFile loads a theme from an explicit file path. No containment
// check applies: the path comes from the user, not from a theme name.
func LoadThemeFile(path string) (layout.Theme, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return layout.Theme{}, fmt.Errorf("%w: %s", ErrThemeNotFound, path)
		}
		return layout.Theme{}, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	theme, err := ParseTheme(data)
	if err != nil {
		return layout.Theme{}, fmt.Errorf("theme %s: %w", path, err)
	}
	return theme, nil
}

// verifyPathContainment ensures the resolved file path is within basePath,
// following symlinks so a link cannot point outside it.
func (f *FilesystemLoader) verifyPathContainment(filePath string) error {
	absFilePath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("%w: cannot resolve path", ErrPathTraversal)
	}

	// A missing file keeps its unresolved path; opening it fails later.
	if realPath, err := filepath.EvalSymlinks(absFilePath); err == nil {
		absFilePath = realPath
	}

	if !strings.HasPrefix(absFilePath, f.basePath+string(filepath.Separator)) {
		return fmt.Errorf("%w: path escapes base directory", ErrPathTraversal)
	}
	return nil
}

// Compile-time interface check.
var _ ThemeLoader = (*FilesystemLoader)(nil)
