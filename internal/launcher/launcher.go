// SPDX-License-Identifier: MPL-2.0

// Package launcher implements the launch pipeline: console code page, child
// environment, status banner, child execution, and the end-of-run pause.
package launcher

import (
	"context"
	"fmt"
	"io"
	"os"

	"utf8run-cli/internal/config"
	"utf8run-cli/internal/issue"
	"utf8run-cli/internal/platform"
	"utf8run-cli/internal/term"

	"github.com/charmbracelet/log"
)

type (
	// Launcher wires the launch pipeline. Build one with New; all behavior is
	// driven by the configuration it was created with.
	Launcher struct {
		cfg        *config.Config
		runner     Runner
		envBuilder *EnvBuilder
		logger     *log.Logger

		stdin  *os.File
		stdout io.Writer
		stderr io.Writer

		enableConsole func() bool
		pause         func(*os.File, io.Writer) error
	}

	// Dependencies defines the injection points for building a Launcher.
	// Nil fields are replaced with production defaults by New. Tests supply
	// fakes to observe the pipeline without real process state.
	Dependencies struct {
		Runner        Runner
		EnvBuilder    *EnvBuilder
		Logger        *log.Logger
		Stdin         *os.File
		Stdout        io.Writer
		Stderr        io.Writer
		EnableConsole func() bool
		Pause         func(*os.File, io.Writer) error
	}
)

// New creates a Launcher for the given configuration, filling unset
// dependencies with production defaults.
func New(cfg *config.Config, deps Dependencies) *Launcher {
	l := &Launcher{
		cfg:           cfg,
		runner:        deps.Runner,
		envBuilder:    deps.EnvBuilder,
		logger:        deps.Logger,
		stdin:         deps.Stdin,
		stdout:        deps.Stdout,
		stderr:        deps.Stderr,
		enableConsole: deps.EnableConsole,
		pause:         deps.Pause,
	}

	if l.runner == nil {
		l.runner = runnerForMode(cfg.Runner.Mode)
	}
	if l.envBuilder == nil {
		l.envBuilder = NewEnvBuilder()
	}
	if l.stdin == nil {
		l.stdin = os.Stdin
	}
	if l.stdout == nil {
		l.stdout = os.Stdout
	}
	if l.stderr == nil {
		l.stderr = os.Stderr
	}
	if l.enableConsole == nil {
		l.enableConsole = platform.EnableUTF8Console
	}
	if l.pause == nil {
		l.pause = term.Pause
	}
	if l.logger == nil {
		l.logger = log.NewWithOptions(l.stderr, log.Options{
			Prefix: config.AppName,
		})
		if cfg.UI.Verbose {
			l.logger.SetLevel(log.DebugLevel)
		} else {
			l.logger.SetLevel(log.WarnLevel)
		}
	}

	return l
}

// Run executes the full launch pipeline with the forwarded CLI arguments and
// returns the child's result. The pipeline is fully synchronous: the only
// blocking points are the child wait and the final pause.
func (l *Launcher) Run(ctx context.Context, args []string) *Result {
	// 1. Console code page. Failure is non-fatal; proceed regardless.
	if l.cfg.Console.CodePage {
		if ok := l.enableConsole(); !ok {
			l.logger.Debug("could not switch console code page to UTF-8")
		}
	}

	// 2. Child environment, injected at spawn time.
	env, err := l.envBuilder.Build(l.cfg.Env)
	if err != nil {
		return NewErrorResult(1, issue.NewErrorContext().
			WithOperation("build child environment").
			WithSuggestion("Check the env.files paths in the configuration").
			Wrap(err).
			BuildError())
	}

	inv := &Invocation{
		Program: l.cfg.Target.Program,
		Args:    append(append([]string{}, l.cfg.Target.EffectiveArgs()...), args...),
		Env:     env,
		WorkDir: l.cfg.Runner.WorkDir,
		Stdin:   l.stdin,
		Stdout:  l.stdout,
		Stderr:  l.stderr,
	}

	// 3. Banner, unconditionally before the child starts.
	if l.cfg.UI.Banner {
		printBanner(l.stdout, inv)
	}

	l.logger.Debug("starting child process",
		"runner", l.runner.Name(),
		"program", inv.Program,
		"args", len(inv.Args))

	// 4. Run the child to completion.
	res := l.runner.Run(ctx, inv)
	if res.Error != nil {
		l.logger.Error("child process failed to start", "err", res.Error)
	} else {
		l.logger.Debug("child process exited", "code", res.ExitCode)
	}

	// 5. Pause regardless of the child's exit status.
	if l.cfg.UI.Pause {
		if err := l.pause(l.stdin, l.stdout); err != nil {
			l.logger.Debug("pause interrupted", "err", err)
		}
	}

	return res
}

// printBanner emits the fixed status text: the command line about to run and
// the three encoding variables the child will see.
func printBanner(w io.Writer, inv *Invocation) {
	fmt.Fprintf(w, "Running command: %s\n", inv.CommandLine())
	fmt.Fprintln(w, "Environment variables set:")
	fmt.Fprintf(w, "  %s=%s\n", EnvIOEncoding, utf8Value)
	fmt.Fprintf(w, "  %s=%s\n", EnvUTF8Mode, utf8ModeOn)
	fmt.Fprintf(w, "  %s=%s\n", EnvLegacyConsoleIO, utf8Value)
}

// runnerForMode maps a configured runner mode to its implementation.
// Unknown modes fall back to exec; config validation rejects them earlier.
func runnerForMode(mode config.RunnerMode) Runner {
	if mode == config.RunnerShell {
		return NewShellRunner()
	}
	return NewExecRunner()
}
