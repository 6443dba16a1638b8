// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-md2kdp/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, "go-md2kdp") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForThemeNotFound returns hints for theme not found errors.
func ForThemeNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", ") + "; or pass a path to a .yaml theme")
}

// ForTrimSize lists the supported trim presets.
func ForTrimSize(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("supported trim sizes: " + strings.Join(available, ", "))
}

// ForInputEncoding returns a hint for manuscripts that are not UTF-8.
func ForInputEncoding() string {
	return format("re-save the manuscript as UTF-8")
}

// ForInputMissing returns a hint when no manuscript was found at the given path.
func ForInputMissing() string {
	return format("pass a .md file or a directory containing .md files")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
