package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-socialtext/internal/hints"
)

// Version is set at build time via ldflags.
var Version = "dev"

// ErrUnknownCommand is returned for a command name runMain does not know.
var ErrUnknownCommand = errors.New("unknown command")

func main() {
	verbose := slices.ContainsFunc(os.Args[1:], func(a string) bool {
		return a == "-v" || a == "--verbose"
	})

	// maxprocs runs before worker sizing so GOMAXPROCS reflects the CPU quota.
	undo := setMaxProcs(newLogger(os.Stderr, false, verbose))
	code := runMain(os.Args, DefaultEnv())
	undo()
	os.Exit(code)
}

// setMaxProcs adjusts GOMAXPROCS to the container CPU quota.
// Its messages go to the debug log.
func setMaxProcs(logger *slog.Logger) func() {
	undo, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		logger.Debug(fmt.Sprintf(format, args...))
	}))
	if err != nil {
		// GOMAXPROCS env is invalid; runtime defaults apply.
		logger.Debug("maxprocs not applied", "error", err)
	}
	if undo == nil {
		return func() {}
	}
	return undo
}

// isCommand reports whether s names a command.
func isCommand(s string) bool {
	return slices.ContainsFunc(commandInfos, func(c commandInfo) bool { return c.name == s })
}

// runMain dispatches the command in args and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	switch cmd {
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "socialtext %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		return reportError(runHelp(rest, env), env)
	case "completion":
		return reportError(runCompletion(rest, env), env)
	case "doctor":
		return runDoctorCmd(rest, env)
	}

	if !isCommand(cmd) {
		err := fmt.Errorf("%w: %s%s", ErrUnknownCommand, cmd, hints.ForUnknownValue(commandNames()))
		return reportError(err, env)
	}

	flags, files, err := parseFlags(cmd, rest)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printCommandUsage(env.Stdout, cmd)
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "%s: %v\n", cmd, err)
		fmt.Fprintf(env.Stderr, "Run 'socialtext help %s' for usage.\n", cmd)
		return ExitUsage
	}

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)

	ctx, stop := notifyContext(context.Background())
	defer stop()

	return reportError(runCommand(ctx, cmd, flags, files, env, logger), env)
}

// reportError prints err and maps it to an exit code.
func reportError(err error, env *Environment) int {
	if err == nil {
		return ExitSuccess
	}
	fmt.Fprintln(env.Stderr, err)
	return exitCodeFor(err)
}

// runCommand resolves settings and runs a message command over all inputs.
func runCommand(ctx context.Context, cmd string, f *cmdFlags, args []string, env *Environment, logger *slog.Logger) error {
	s, err := resolveSettings(f, env, logger)
	if err != nil {
		return err
	}

	if cmd == "config" {
		return runConfig(s, env)
	}

	var h handler
	switch cmd {
	case "tokens":
		h = tokensHandler(s)
	case "links":
		h = linksHandler(s)
	case "embed":
		h = embedHandler(s)
	case "checkbox":
		h, err = checkboxHandler(f.checkbox)
		if err != nil {
			return err
		}
	case "tags":
		h = tagsHandler(s)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}

	sources, err := resolveSources(args, f.input.text, env.Stdin)
	if err != nil {
		return err
	}

	results := processBatch(ctx, sources, s.workers, h, logger)
	p := newPrinter(env, s, len(sources) > 1)
	return p.printResults(results)
}
