package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Sentinel errors for command dispatch.
var (
	ErrUsage          = errors.New("invalid usage")
	ErrUnknownCommand = errors.New("unknown command")
)

// Environment carries the clock and output streams so commands can run
// against buffers in tests.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultEnv wires the real clock and standard streams.
func DefaultEnv() *Environment {
	return &Environment{Now: time.Now, Stdout: os.Stdout, Stderr: os.Stderr}
}

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	ctx, stop := notifyContext(context.Background())
	err := run(ctx, os.Args, DefaultEnv())
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(exitCodeFor(err))
}

// notifyContext returns a context that is canceled when an interrupt
// or termination signal is received.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// run dispatches args[1] to a command. args[0] is the program name.
func run(ctx context.Context, args []string, env *Environment) error {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ErrUsage
	}

	cmd, rest := args[1], args[2:]
	switch cmd {
	case "convert":
		flags, positional, err := parseConvertFlags(rest, env.Stderr)
		if err != nil {
			if errors.Is(err, errHelpShown) {
				return nil
			}
			return fmt.Errorf("%w: %v", ErrUsage, err)
		}
		return runConvert(ctx, positional, flags, env)
	case "help", "-h", "--help":
		return runHelp(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "md2kdp %s\n", Version)
		return nil
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}
}
