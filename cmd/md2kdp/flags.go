package main

import (
	"errors"
	"io"

	flag "github.com/spf13/pflag"
)

// errHelpShown reports that --help printed usage and nothing else should run.
var errHelpShown = errors.New("help shown")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// themeFlags selects and adjusts the book theme.
type themeFlags struct {
	name      string
	dir       string
	trim      string
	codeStyle string
}

// bookFlags supply metadata the front matter may omit.
type bookFlags struct {
	author    string
	publisher string
	website   string
	year      string
}

// outputFlags control how output files are written.
type outputFlags struct {
	fixZip        bool
	transliterate bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common     commonFlags
	output     string
	workers    int
	theme      themeFlags
	book       bookFlags
	outputMode outputFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing and debug logs")
}

// addThemeFlags adds theme flags to a FlagSet.
func addThemeFlags(fs *flag.FlagSet, f *themeFlags) {
	fs.StringVar(&f.name, "theme", "", "theme name or path to a .yaml theme")
	fs.StringVar(&f.dir, "theme-dir", "", "directory containing a themes/ folder")
	fs.StringVar(&f.trim, "trim", "", "trim size: 5x8, 5.25x8, 5.5x8.5, 6x9, 7x10, 8.5x11")
	fs.StringVar(&f.codeStyle, "code-style", "", "chroma style for fenced code blocks")
}

// addBookFlags adds metadata default flags to a FlagSet.
func addBookFlags(fs *flag.FlagSet, f *bookFlags) {
	fs.StringVar(&f.author, "author", "", "author when front matter has none")
	fs.StringVar(&f.publisher, "publisher", "", "publisher when front matter has none")
	fs.StringVar(&f.website, "website", "", "website when front matter has none")
	fs.StringVar(&f.year, "year", "", "copyright year when front matter has none")
}

// addOutputFlags adds output mode flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.BoolVar(&f.fixZip, "fix-zip", false, "write archives without data descriptors")
	fs.BoolVar(&f.transliterate, "transliterate", false, "ASCII-only output file names")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, stderr io.Writer) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &convertFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")

	addCommonFlags(fs, &f.common)
	addThemeFlags(fs, &f.theme)
	addBookFlags(fs, &f.book)
	addOutputFlags(fs, &f.outputMode)

	fs.Usage = func() { printConvertUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, nil, errHelpShown
		}
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
