package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	md2kdp "github.com/alnah/go-md2kdp"
	"github.com/alnah/go-md2kdp/internal/assets"
	"github.com/alnah/go-md2kdp/internal/config"
	"github.com/alnah/go-md2kdp/internal/fileutil"
	"github.com/alnah/go-md2kdp/internal/hints"
	"github.com/alnah/go-md2kdp/internal/layout"
)

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	cfg, err := loadConfig(flags.common.config)
	if err != nil {
		return err
	}

	// CLI flags win over the config file.
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := newLogger(env.Stderr, resolveLogLevel(cfg.Log.Level, flags.common.quiet, flags.common.verbose))
	defer func() { _ = log.Sync() }()

	theme, err := resolveTheme(cfg)
	if err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}

	files, err := discoverFiles(inputPath, resolveOutputDir(flags.output, cfg), cfg.Output.Transliterate)
	if err != nil {
		return err
	}

	conv, err := md2kdp.NewConverter(
		md2kdp.WithTheme(theme),
		md2kdp.WithLogger(log),
		md2kdp.WithClock(env.Now),
		md2kdp.WithFixZip(cfg.Output.FixZip),
	)
	if err != nil {
		return err
	}

	workers := resolvePoolSize(cfg.Batch.Workers)
	log.Debug("Starting conversion", zap.Int("files", len(files)), zap.Int("workers", workers))

	results := convertBatch(ctx, conv, workers, files, &conversionParams{
		defaults: cfg.Metadata(),
		log:      log,
	})
	return printResults(results, flags.common.quiet, flags.common.verbose, env)
}

// loadConfig loads the named config, or the defaults when name is empty.
func loadConfig(name string) (*config.Config, error) {
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(configSearchPaths(name)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// configSearchPaths lists where a config name would be created for the hint.
func configSearchPaths(name string) []string {
	if fileutil.IsFilePath(name) {
		return nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	return []string{filepath.Join(dir, "go-md2kdp", name+".yaml")}
}

// mergeFlags copies explicitly set CLI flags over config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	setString := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	setString(&cfg.Theme.Name, flags.theme.name)
	setString(&cfg.Theme.BasePath, flags.theme.dir)
	setString(&cfg.Theme.Trim, flags.theme.trim)
	setString(&cfg.Theme.CodeHighlight, flags.theme.codeStyle)

	setString(&cfg.Book.Author, flags.book.author)
	setString(&cfg.Book.Publisher, flags.book.publisher)
	setString(&cfg.Book.Website, flags.book.website)
	setString(&cfg.Book.Year, flags.book.year)

	if flags.workers > 0 {
		cfg.Batch.Workers = flags.workers
	}
	if flags.outputMode.fixZip {
		cfg.Output.FixZip = true
	}
	if flags.outputMode.transliterate {
		cfg.Output.Transliterate = true
	}
}

// resolveTheme loads the configured theme and applies the trim and code
// style overrides. A theme name containing a path separator is read from
// that file; other names come from the theme directory or the presets.
func resolveTheme(cfg *config.Config) (layout.Theme, error) {
	var (
		theme layout.Theme
		err   error
	)

	if fileutil.IsFilePath(cfg.Theme.Name) {
		theme, err = assets.LoadThemeFile(cfg.Theme.Name)
		if err != nil {
			return layout.Theme{}, err
		}
	} else {
		resolver, err := assets.NewAssetResolver(cfg.Theme.BasePath)
		if err != nil {
			return layout.Theme{}, err
		}
		name := cfg.Theme.Name
		if name == "" {
			name = assets.DefaultThemeName
		}
		theme, err = resolver.LoadTheme(name)
		if err != nil {
			if errors.Is(err, assets.ErrThemeNotFound) {
				return layout.Theme{}, fmt.Errorf("%w%s", err, hints.ForThemeNotFound(resolver.Names()))
			}
			return layout.Theme{}, err
		}
	}

	if cfg.Theme.Trim != "" {
		theme.Page, err = theme.Page.WithTrim(cfg.Theme.Trim)
		if err != nil {
			return layout.Theme{}, fmt.Errorf("%w%s", err, hints.ForTrimSize(layout.TrimNames()))
		}
	}
	if cfg.Theme.CodeHighlight != "" {
		theme.CodeHighlightStyle = cfg.Theme.CodeHighlight
	}
	return theme, nil
}

// resolveInputPath returns the positional input or the configured default.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", fmt.Errorf("%w%s", ErrNoInput, hints.ForInputMissing())
}

// resolveOutputDir returns the -o flag or the configured default.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}
