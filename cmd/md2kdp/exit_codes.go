package main

import (
	"errors"
	"os"

	md2kdp "github.com/alnah/go-md2kdp"
	"github.com/alnah/go-md2kdp/internal/assets"
	"github.com/alnah/go-md2kdp/internal/config"
	"github.com/alnah/go-md2kdp/internal/fileutil"
)

// Exit codes for md2kdp CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error, including render failures
	ExitUsage   = 2 // Invalid flags, config, theme, or validation
	ExitIO      = 3 // Input missing, unreadable manuscript, write failure
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrReadManuscript) ||
		errors.Is(err, ErrWriteDOCX) ||
		errors.Is(err, ErrOutputDirectory) ||
		errors.Is(err, fileutil.ErrNotUTF8) ||
		errors.Is(err, fileutil.ErrManuscriptTooLarge) ||
		errors.Is(err, fileutil.ErrIsDirectory) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, md2kdp.ErrInvalidTheme) ||
		errors.Is(err, assets.ErrThemeNotFound) ||
		errors.Is(err, assets.ErrThemeParse) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, assets.ErrPathTraversal) {
		return ExitUsage
	}

	return ExitGeneral
}
