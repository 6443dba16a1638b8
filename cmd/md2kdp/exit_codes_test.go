package main

// Notes:
// - exitCodeFor: every sentinel the CLI can surface is listed, plus wrapped
//   forms to verify the errors.Is chain.

import (
	"errors"
	"fmt"
	"os"
	"testing"

	md2kdp "github.com/alnah/go-md2kdp"
	"github.com/alnah/go-md2kdp/internal/assets"
	"github.com/alnah/go-md2kdp/internal/config"
	"github.com/alnah/go-md2kdp/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		// Success
		{"nil error", nil, ExitSuccess},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"input missing", ErrInputMissing, ExitIO},
		{"wrapped input missing", fmt.Errorf("%w: book.md", ErrInputMissing), ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"read manuscript", ErrReadManuscript, ExitIO},
		{"write docx", ErrWriteDOCX, ExitIO},
		{"output directory", ErrOutputDirectory, ExitIO},
		{"not utf8", fileutil.ErrNotUTF8, ExitIO},
		{"too large", fileutil.ErrManuscriptTooLarge, ExitIO},
		{"batch failure keeps cause", fmt.Errorf("%w: 1 of 2: %w", ErrConversionFailed, ErrWriteDOCX), ExitIO},

		// Usage/config/validation errors (exit 2)
		{"usage", ErrUsage, ExitUsage},
		{"unknown command", ErrUnknownCommand, ExitUsage},
		{"invalid extension", ErrInvalidExtension, ExitUsage},
		{"invalid workers", ErrInvalidWorkerCount, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"invalid config value", config.ErrInvalidValue, ExitUsage},
		{"invalid theme", md2kdp.ErrInvalidTheme, ExitUsage},
		{"theme not found", assets.ErrThemeNotFound, ExitUsage},
		{"theme parse", assets.ErrThemeParse, ExitUsage},
		{"path traversal", assets.ErrPathTraversal, ExitUsage},
		{"wrapped config parse", fmt.Errorf("loading config: %w", config.ErrConfigParse), ExitUsage},

		// General errors (exit 1)
		{"render failure", fmt.Errorf("%w: %w", md2kdp.ErrRender, errors.New("zip")), ExitGeneral},
		{"unknown error", errors.New("boom"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	codes := []int{ExitSuccess, ExitGeneral, ExitUsage, ExitIO}
	seen := make(map[int]bool)
	for _, c := range codes {
		if c >= 126 {
			t.Errorf("exit code %d collides with shell-reserved range", c)
		}
		if seen[c] {
			t.Errorf("duplicate exit code %d", c)
		}
		seen[c] = true
	}
}
