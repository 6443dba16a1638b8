package hints

import (
	"strings"
	"testing"
)

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		paths       []string
		wantContain []string
		wantAbsent  string
	}{
		{
			name:        "suggests user config path",
			paths:       []string{"book.yaml", "/home/u/.config/go-md2kdp/book.yaml"},
			wantContain: []string{"--config", "or create /home/u/.config/go-md2kdp/book.yaml"},
		},
		{
			name:        "local paths only",
			paths:       []string{"book.yaml", "book.yml"},
			wantContain: []string{"--config"},
			wantAbsent:  "or create",
		},
		{
			name:        "no paths",
			paths:       nil,
			wantContain: []string{"hint:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ForConfigNotFound(tt.paths)
			for _, want := range tt.wantContain {
				if !strings.Contains(got, want) {
					t.Errorf("hint %q missing %q", got, want)
				}
			}
			if tt.wantAbsent != "" && strings.Contains(got, tt.wantAbsent) {
				t.Errorf("hint %q should not contain %q", got, tt.wantAbsent)
			}
		})
	}
}

func TestListHints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fn   func([]string) string
		in   []string
		want string
	}{
		{"themes", ForThemeNotFound, []string{"classic", "novel"}, "available: classic, novel"},
		{"themes empty", ForThemeNotFound, nil, ""},
		{"trim", ForTrimSize, []string{"5x8", "6x9"}, "supported trim sizes: 5x8, 6x9"},
		{"trim empty", ForTrimSize, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tt.fn(tt.in)
			if tt.want == "" {
				if got != "" {
					t.Errorf("got %q, want empty", got)
				}
				return
			}
			if !strings.HasPrefix(got, "\n  hint: ") || !strings.Contains(got, tt.want) {
				t.Errorf("got %q, want hint containing %q", got, tt.want)
			}
		})
	}
}

func TestStaticHints(t *testing.T) {
	t.Parallel()

	for name, got := range map[string]string{
		"output":   ForOutputDirectory(),
		"encoding": ForInputEncoding(),
		"missing":  ForInputMissing(),
	} {
		if !strings.HasPrefix(got, "\n  hint: ") {
			t.Errorf("%s hint %q lacks prefix", name, got)
		}
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	if got := format(""); got != "" {
		t.Errorf("format(\"\") = %q, want empty", got)
	}
	if got := format("x"); got != "\n  hint: x" {
		t.Errorf("format(x) = %q", got)
	}
}
