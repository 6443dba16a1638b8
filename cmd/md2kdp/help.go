package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2kdp <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Compile markdown manuscripts to print-ready .docx books")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2kdp help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2kdp convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Compile markdown manuscripts to .docx books for print-on-demand.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Manuscript file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output .docx file or directory")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --fix-zip             Write archives without data descriptors")
	fmt.Fprintln(w, "      --transliterate       ASCII-only output file names")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Theme:")
	fmt.Fprintln(w, "      --theme <name>        Preset (classic, novel, technical, large-print) or .yaml path")
	fmt.Fprintln(w, "      --theme-dir <dir>     Directory with custom themes/<name>.yaml")
	fmt.Fprintln(w, "      --trim <size>         Trim size: 5x8, 5.25x8, 5.5x8.5, 6x9, 7x10, 8.5x11")
	fmt.Fprintln(w, "      --code-style <s>      Chroma style for fenced code blocks")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Book defaults (front matter wins):")
	fmt.Fprintln(w, "      --author <s>          Author name")
	fmt.Fprintln(w, "      --publisher <s>       Publisher name")
	fmt.Fprintln(w, "      --website <url>       Author or publisher website")
	fmt.Fprintln(w, "      --year <yyyy>         Copyright year (default: current year)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2kdp version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2kdp help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	return nil
}
