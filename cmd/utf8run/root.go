// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the CLI surface of utf8run.
//
// The surface is deliberately a single command with flag parsing disabled:
// every argument utf8run receives belongs to the target program and is
// forwarded untouched, so even -h and --help pass through. The launcher's
// own knobs live in the config file and UTF8RUN_* environment variables.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"utf8run-cli/internal/config"
	"utf8run-cli/internal/issue"
	"utf8run-cli/internal/launcher"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// rootCmd is the single launcher command.
	rootCmd = &cobra.Command{
		Use:   "utf8run [args...]",
		Short: "UTF-8 launcher for the demo entry point",
		Long: TitleStyle.Render("utf8run") + SubtitleStyle.Render(" - UTF-8 launcher") + `

utf8run switches the console to the UTF-8 code page, injects UTF-8
encoding hints into the child environment, and runs the configured
target program with every argument forwarded verbatim. After the
child exits, it pauses for a keypress and exits with the child's
exit code.

` + SubtitleStyle.Render("Configuration:") + `
  config.cue in the platform config directory, utf8run.cue in the
  current directory, or UTF8RUN_* environment variables.`,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE:               runLaunch,
	}
)

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// runLaunch loads configuration, runs the launch pipeline, and maps the
// child's exit status onto an ExitError.
func runLaunch(cmd *cobra.Command, args []string) error {
	cfg := loadConfigOrDefault(cmd.Context(), cmd.ErrOrStderr())

	res := launcher.New(cfg, launcher.Dependencies{
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	}).Run(cmd.Context(), args)

	if res.Error != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), ErrorStyle.Render("Error: ")+formatErrorForDisplay(res.Error, cfg.UI.Verbose))
	}
	if !res.ExitCode.IsSuccess() {
		// Propagate the child's exit code as our own.
		return &ExitError{Code: res.ExitCode, Err: res.Error}
	}
	return nil
}

// loadConfigOrDefault loads configuration, falling back to the built-in
// defaults when loading fails. A broken config file must not keep the
// target program from launching, so the failure is surfaced as a warning.
func loadConfigOrDefault(ctx context.Context, stderr io.Writer) *config.Config {
	cfg, err := config.NewProvider().Load(ctx, config.LoadOptions{})
	if err != nil {
		fmt.Fprintln(stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, false))
		return config.DefaultConfig()
	}
	return cfg
}

// formatErrorForDisplay renders ActionableErrors with their suggestions and
// everything else as plain text.
func formatErrorForDisplay(err error, verbose bool) string {
	var actionable *issue.ActionableError
	if errors.As(err, &actionable) {
		return actionable.Format(verbose)
	}
	return err.Error()
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}
