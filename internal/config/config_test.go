package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/alnah/go-md2kdp/internal/frontmatter"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
	if cfg.Theme.Name != "" || cfg.Theme.Trim != "" {
		t.Errorf("Theme = %+v, want empty", cfg.Theme)
	}
	if len(cfg.Metadata()) != 0 {
		t.Errorf("Metadata() = %v, want empty", cfg.Metadata())
	}
}

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
	}{
		{"empty value is valid", "", 10, false},
		{"value at limit is valid", "1234567890", 10, false},
		{"value over limit returns error", "12345678901", 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateFieldLength("test.field", tt.value, tt.maxLength)
			if !tt.wantErr {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrFieldTooLong) {
				t.Fatalf("error = %v, want ErrFieldTooLong", err)
			}
			if !strings.Contains(err.Error(), "test.field") {
				t.Errorf("error %q should name the field", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{
			name: "full valid config",
			cfg: Config{
				Theme: ThemeConfig{Name: "novel", Trim: "5.5X8.5", CodeHighlight: "monokai"},
				Book:  BookConfig{Author: "J. Doe", Year: "2025"},
				Batch: BatchConfig{Workers: 4},
				Log:   LogConfig{Level: "DEBUG"},
			},
		},
		{
			name: "theme path may exceed name limit",
			cfg:  Config{Theme: ThemeConfig{Name: "./" + strings.Repeat("a", MaxThemeNameLength) + ".yaml"}},
		},
		{
			name:    "long theme name",
			cfg:     Config{Theme: ThemeConfig{Name: strings.Repeat("a", MaxThemeNameLength+1)}},
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "long author",
			cfg:     Config{Book: BookConfig{Author: strings.Repeat("x", MaxNameLength+1)}},
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "unknown trim",
			cfg:     Config{Theme: ThemeConfig{Trim: "a4"}},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "negative workers",
			cfg:     Config{Batch: BatchConfig{Workers: -1}},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "too many workers",
			cfg:     Config{Batch: BatchConfig{Workers: MaxWorkers + 1}},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "unknown log level",
			cfg:     Config{Log: LogConfig{Level: "verbose"}},
			wantErr: ErrInvalidValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Metadata(t *testing.T) {
	t.Parallel()

	cfg := Config{Book: BookConfig{Author: "J. Doe", Publisher: "Small Press"}}
	want := frontmatter.Metadata{"author": "J. Doe", "publisher": "Small Press"}
	if got := cfg.Metadata(); !reflect.DeepEqual(got, want) {
		t.Errorf("Metadata() = %v, want %v", got, want)
	}

	if got := MetadataKeys(); !reflect.DeepEqual(got, []string{"author", "publisher", "website", "year"}) {
		t.Errorf("MetadataKeys() = %v", got)
	}
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		check   func(t *testing.T, cfg *Config)
		wantErr error
	}{
		{
			name: "complete file",
			content: `
input:
  defaultDir: ./manuscripts
output:
  defaultDir: ./build
  fixZip: true
  transliterate: true
theme:
  name: novel
  trim: 5x8
book:
  author: "J. Doe"
  publisher: Small Press
batch:
  workers: 2
log:
  level: warn
`,
			check: func(t *testing.T, cfg *Config) {
				if !cfg.Output.FixZip || !cfg.Output.Transliterate {
					t.Errorf("Output = %+v", cfg.Output)
				}
				if cfg.Theme.Name != "novel" || cfg.Theme.Trim != "5x8" {
					t.Errorf("Theme = %+v", cfg.Theme)
				}
				if cfg.Book.Author != "J. Doe" || cfg.Batch.Workers != 2 || cfg.Log.Level != "warn" {
					t.Errorf("cfg = %+v", cfg)
				}
			},
		},
		{
			name:    "unknown field rejected",
			content: "theme:\n  colour: red\n",
			wantErr: ErrConfigParse,
		},
		{
			name:    "malformed yaml",
			content: "theme: [\n",
			wantErr: ErrConfigParse,
		},
		{
			name:    "empty file",
			content: "",
			wantErr: ErrConfigParse,
		},
		{
			name:    "validation runs",
			content: "theme:\n  trim: a4\n",
			wantErr: ErrInvalidValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeConfig(t, t.TempDir(), "book.yaml", tt.content)
			cfg, err := LoadConfig(path)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("LoadConfig() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadConfig() unexpected error: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Parallel()

	if _, err := LoadConfig(""); !errors.Is(err, ErrEmptyConfigName) {
		t.Errorf("LoadConfig(\"\") error = %v, want ErrEmptyConfigName", err)
	}
	missing := filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := LoadConfig(missing); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("LoadConfig(missing) error = %v, want ErrConfigNotFound", err)
	}
}

func TestParseConfig_TooLarge(t *testing.T) {
	t.Parallel()

	data := []byte("# " + strings.Repeat("x", MaxConfigSize))
	if _, err := parseConfig(data); !errors.Is(err, ErrConfigParse) {
		t.Errorf("parseConfig() error = %v, want ErrConfigParse", err)
	}
}

// Not parallel: changes the working directory and config home.
func TestLoadConfig_ByName(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("HOME", dir)

	writeConfig(t, dir, "local.yml", "log:\n  level: debug\n")
	cfg, err := LoadConfig("local")
	if err != nil {
		t.Fatalf("LoadConfig(local) error = %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}

	_, err = LoadConfig("absent")
	if !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("LoadConfig(absent) error = %v, want ErrConfigNotFound", err)
	}
	if !strings.Contains(err.Error(), "absent.yaml") || !strings.Contains(err.Error(), "go-md2kdp") {
		t.Errorf("error %q should list tried paths", err)
	}
}
