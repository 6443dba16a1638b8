package assets

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/alnah/go-md2kdp/internal/layout"
)

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"simple name", "classic", nil},
		{"hyphenated", "large-print", nil},
		{"underscore and digits", "my_theme2", nil},
		{"empty", "", ErrInvalidAssetName},
		{"forward slash", "a/b", ErrInvalidAssetName},
		{"backslash", `a\b`, ErrInvalidAssetName},
		{"traversal", "..", ErrInvalidAssetName},
		{"extension", "novel.yaml", ErrInvalidAssetName},
		{"null byte", "nov\x00el", ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateAssetName(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateAssetName(%q) = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestParseTheme(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		yaml    string
		check   func(t *testing.T, th layout.Theme)
		wantErr error
	}{
		{
			name: "empty keeps defaults",
			yaml: "",
			check: func(t *testing.T, th layout.Theme) {
				if !reflect.DeepEqual(th, layout.DefaultTheme()) {
					t.Error("empty theme differs from default")
				}
			},
		},
		{
			name: "partial override keeps siblings",
			yaml: "fonts:\n  body: Palatino\n",
			check: func(t *testing.T, th layout.Theme) {
				if th.Fonts.Body != "Palatino" {
					t.Errorf("body font = %q", th.Fonts.Body)
				}
				if th.Fonts.Heading != "Arial" {
					t.Errorf("heading font = %q, want default", th.Fonts.Heading)
				}
			},
		},
		{
			name: "trim then explicit width",
			yaml: "trim: 5x8\npage:\n  width: 7560\n",
			check: func(t *testing.T, th layout.Theme) {
				if th.Page.Width != 7560 || th.Page.Height != layout.Inches(8) {
					t.Errorf("page = %dx%d", th.Page.Width, th.Page.Height)
				}
			},
		},
		{
			name:    "unknown key",
			yaml:    "colour:\n  link: FF0000\n",
			wantErr: ErrThemeParse,
		},
		{
			name:    "unknown trim",
			yaml:    "trim: A5\n",
			wantErr: layout.ErrInvalidTheme,
		},
		{
			name:    "invalid value",
			yaml:    "colors:\n  link: blue\n",
			wantErr: layout.ErrInvalidTheme,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			th, err := ParseTheme([]byte(tt.yaml))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseTheme() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTheme() unexpected error: %v", err)
			}
			tt.check(t, th)
		})
	}
}

func TestParseTheme_TooLarge(t *testing.T) {
	t.Parallel()

	data := make([]byte, MaxThemeSize+1)
	if _, err := ParseTheme(data); !errors.Is(err, ErrThemeParse) {
		t.Errorf("ParseTheme() error = %v, want ErrThemeParse", err)
	}
}

func TestEmbeddedThemes(t *testing.T) {
	t.Parallel()

	names := ThemeNames()
	want := []string{"classic", "large-print", "novel", "technical"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("ThemeNames() = %v, want %v", names, want)
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			th, err := LoadTheme(name)
			if err != nil {
				t.Fatalf("LoadTheme(%q) error = %v", name, err)
			}
			if err := th.Validate(); err != nil {
				t.Errorf("theme %q invalid: %v", name, err)
			}
			if _, err := layout.NewAssembler(th); err != nil {
				t.Errorf("theme %q rejected by assembler: %v", name, err)
			}
		})
	}

	t.Run("classic is default", func(t *testing.T) {
		t.Parallel()

		th, err := LoadTheme(DefaultThemeName)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(th, layout.DefaultTheme()) {
			t.Error("classic theme differs from layout.DefaultTheme")
		}
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()

		if _, err := LoadTheme("nonexistent"); !errors.Is(err, ErrThemeNotFound) {
			t.Errorf("LoadTheme() error = %v, want ErrThemeNotFound", err)
		}
	})
}

func writeTheme(t *testing.T, dir, name, content string) {
	t.Helper()
	themeDir := filepath.Join(dir, "themes")
	if err := os.MkdirAll(themeDir, 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(themeDir, name+".yaml"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestNewFilesystemLoader(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{"", "/nonexistent/path/abc123xyz", file} {
		if _, err := NewFilesystemLoader(path); !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewFilesystemLoader(%q) error = %v, want ErrInvalidBasePath", path, err)
		}
	}
}

func TestFilesystemLoader_LoadTheme(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTheme(t, dir, "mine", "fonts:\n  body: Baskerville\n")
	writeTheme(t, dir, "broken", "fonts: [\n")

	loader, err := NewFilesystemLoader(dir)
	if err != nil {
		t.Fatal(err)
	}

	th, err := loader.LoadTheme("mine")
	if err != nil {
		t.Fatalf("LoadTheme() error = %v", err)
	}
	if th.Fonts.Body != "Baskerville" {
		t.Errorf("body font = %q", th.Fonts.Body)
	}

	if _, err := loader.LoadTheme("absent"); !errors.Is(err, ErrThemeNotFound) {
		t.Errorf("absent theme error = %v", err)
	}
	if _, err := loader.LoadTheme("broken"); !errors.Is(err, ErrThemeParse) {
		t.Errorf("broken theme error = %v", err)
	}
	if _, err := loader.LoadTheme("../etc"); !errors.Is(err, ErrInvalidAssetName) {
		t.Errorf("traversal name error = %v", err)
	}
}

func TestFilesystemLoader_SymlinkEscape(t *testing.T) {
	t.Parallel()

	outside := t.TempDir()
	writeTheme(t, outside, "evil", "fonts:\n  body: Evil\n")

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "themes"), 0o750); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(dir, "themes", "evil.yaml")
	if err := os.Symlink(filepath.Join(outside, "themes", "evil.yaml"), link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	loader, err := NewFilesystemLoader(dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := loader.LoadTheme("evil"); !errors.Is(err, ErrPathTraversal) {
		t.Errorf("LoadTheme() error = %v, want ErrPathTraversal", err)
	}
}

func TestAssetResolver(t *testing.T) {
	t.Parallel()

	t.Run("embedded only", func(t *testing.T) {
		t.Parallel()

		r, err := NewAssetResolver("")
		if err != nil {
			t.Fatal(err)
		}
		if r.HasCustomLoader() {
			t.Error("expected no custom loader")
		}
		if _, err := r.LoadTheme("novel"); err != nil {
			t.Errorf("LoadTheme(novel) error = %v", err)
		}
	})

	t.Run("custom shadows embedded", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeTheme(t, dir, "novel", "fonts:\n  body: Custom Serif\n")
		writeTheme(t, dir, "bad", "sizes:\n  body: 0\n")

		r, err := NewAssetResolver(dir)
		if err != nil {
			t.Fatal(err)
		}
		th, err := r.LoadTheme("novel")
		if err != nil {
			t.Fatal(err)
		}
		if th.Fonts.Body != "Custom Serif" {
			t.Errorf("body font = %q, want custom", th.Fonts.Body)
		}

		if _, err := r.LoadTheme("technical"); err != nil {
			t.Errorf("fallback to embedded failed: %v", err)
		}
		if _, err := r.LoadTheme("bad"); !errors.Is(err, layout.ErrInvalidTheme) {
			t.Errorf("invalid custom theme error = %v, want ErrInvalidTheme", err)
		}
	})

	t.Run("invalid base path", func(t *testing.T) {
		t.Parallel()

		if _, err := NewAssetResolver("/nonexistent/path/abc123xyz"); !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestLoadThemeFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "book-theme.yaml")
	if err := os.WriteFile(path, []byte("labels:\n  tocTitle: Contents\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	th, err := LoadThemeFile(path)
	if err != nil {
		t.Fatalf("LoadThemeFile() error = %v", err)
	}
	if th.Labels.TOCTitle != "Contents" {
		t.Errorf("TOC title = %q", th.Labels.TOCTitle)
	}

	if _, err := LoadThemeFile(path + ".missing"); !errors.Is(err, ErrThemeNotFound) {
		t.Errorf("missing file error = %v", err)
	}
}
