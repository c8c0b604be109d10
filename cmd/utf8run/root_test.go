// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"utf8run-cli/internal/config"
	"utf8run-cli/internal/issue"
)

func TestRootCmd_ForwardsAllFlags(t *testing.T) {
	t.Parallel()

	// Flag parsing must stay disabled: -h, --help, --version and anything
	// else belongs to the child, not to the launcher.
	if !rootCmd.DisableFlagParsing {
		t.Error("rootCmd.DisableFlagParsing = false, want true")
	}
	if rootCmd.HasSubCommands() {
		t.Error("rootCmd must not have subcommands; a subcommand name would be swallowed instead of forwarded")
	}
}

func TestExitError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *ExitError
		want string
	}{
		{name: "bare code", err: &ExitError{Code: 3}, want: "exit status 3"},
		{name: "with cause", err: &ExitError{Code: 1, Err: errors.New("boom")}, want: "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExitError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("inner")
	err := &ExitError{Code: 1, Err: cause}
	if !errors.Is(err, cause) {
		t.Error("errors.Is does not reach the wrapped cause")
	}
}

func TestFormatErrorForDisplay(t *testing.T) {
	t.Parallel()

	plain := errors.New("plain failure")
	if got := formatErrorForDisplay(plain, false); got != "plain failure" {
		t.Errorf("plain error rendered as %q", got)
	}

	actionable := issue.NewErrorContext().
		WithOperation("load configuration").
		WithSuggestion("Check the file").
		Wrap(errors.New("bad syntax")).
		BuildError()
	got := formatErrorForDisplay(actionable, false)
	if !strings.Contains(got, "• Check the file") {
		t.Errorf("suggestions missing from rendered error: %q", got)
	}
}

func TestLoadConfigOrDefault_BrokenConfigWarnsAndFallsBack(t *testing.T) {
	// Not parallel: mutates the global config directory override.
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.cue"), []byte(`runner: mode: "container"`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Cleanup(config.Reset)
	config.SetConfigDirOverride(dir)

	var stderr bytes.Buffer
	cfg := loadConfigOrDefault(context.Background(), &stderr)

	// A broken config must not stop the launch: the defaults take over.
	if cfg.Target.Program != config.DefaultConfig().Target.Program {
		t.Errorf("Target.Program = %q, want default", cfg.Target.Program)
	}
	if !strings.Contains(stderr.String(), "Warning:") {
		t.Errorf("stderr = %q, want a warning about the broken config", stderr.String())
	}
}

func TestGetVersionString(t *testing.T) {
	t.Parallel()

	if got := getVersionString(); !strings.Contains(got, "dev") {
		t.Errorf("getVersionString() = %q, want dev marker for source builds", got)
	}
}
