package main

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRun - Command dispatch
// ---------------------------------------------------------------------------

func TestRun_Dispatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantErr    error
		wantStdout string
		wantStderr string
	}{
		{
			name:       "no command",
			args:       []string{"md2kdp"},
			wantErr:    ErrUsage,
			wantStderr: "Usage: md2kdp <command>",
		},
		{
			name:       "unknown command",
			args:       []string{"md2kdp", "publish"},
			wantErr:    ErrUnknownCommand,
			wantStderr: "Commands:",
		},
		{
			name:       "version",
			args:       []string{"md2kdp", "version"},
			wantStdout: "md2kdp dev",
		},
		{
			name:       "help",
			args:       []string{"md2kdp", "help"},
			wantStdout: "Run 'md2kdp help <command>'",
		},
		{
			name:       "help convert",
			args:       []string{"md2kdp", "help", "convert"},
			wantStdout: "--trim <size>",
		},
		{
			name:       "help unknown",
			args:       []string{"md2kdp", "help", "publish"},
			wantErr:    ErrUnknownCommand,
			wantStderr: "Commands:",
		},
		{
			name:       "convert --help",
			args:       []string{"md2kdp", "convert", "--help"},
			wantStderr: "Usage: md2kdp convert",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv()
			err := run(context.Background(), tt.args, env)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("run() unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("run() error = %v, want %v", err, tt.wantErr)
			}
			if !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want it to contain %q", stdout.String(), tt.wantStdout)
			}
			if !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want it to contain %q", stderr.String(), tt.wantStderr)
			}
		})
	}
}

func TestParseConvertFlags(t *testing.T) {
	t.Parallel()

	flags, args, err := parseConvertFlags([]string{
		"book.md", "-o", "out", "-c", "press", "--theme", "novel", "--theme-dir", "assets",
		"--trim", "5x8", "--code-style", "monokai", "--author", "A", "--publisher", "P",
		"--website", "https://example.com", "--year", "2024", "--fix-zip", "--transliterate",
		"-w", "3", "-v",
	}, &strings.Builder{})
	if err != nil {
		t.Fatalf("parseConvertFlags() error = %v", err)
	}

	if len(args) != 1 || args[0] != "book.md" {
		t.Errorf("args = %v", args)
	}
	if flags.output != "out" || flags.workers != 3 || flags.common.config != "press" || !flags.common.verbose {
		t.Errorf("flags = %+v", flags)
	}
	want := themeFlags{name: "novel", dir: "assets", trim: "5x8", codeStyle: "monokai"}
	if flags.theme != want {
		t.Errorf("theme = %+v, want %+v", flags.theme, want)
	}
	if flags.book != (bookFlags{author: "A", publisher: "P", website: "https://example.com", year: "2024"}) {
		t.Errorf("book = %+v", flags.book)
	}
	if !flags.outputMode.fixZip || !flags.outputMode.transliterate {
		t.Errorf("outputMode = %+v", flags.outputMode)
	}
}
