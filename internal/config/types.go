// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// RunnerExec runs the target program directly through os/exec.
	RunnerExec RunnerMode = "exec"
	// RunnerShell runs the target invocation through the embedded
	// mvdan/sh interpreter.
	RunnerShell RunnerMode = "shell"
)

var (
	// ErrInvalidRunnerMode is returned when a RunnerMode value is not recognized.
	ErrInvalidRunnerMode = errors.New("invalid runner mode")
	// ErrInvalidTargetConfig is returned when the target section is unusable.
	ErrInvalidTargetConfig = errors.New("invalid target config")
	// ErrInvalidEnvConfig is returned when the env section is unusable.
	ErrInvalidEnvConfig = errors.New("invalid env config")
)

type (
	// RunnerMode selects how the target invocation is executed.
	RunnerMode string

	// TargetConfig describes the secondary entry point the launcher delegates
	// to. Forwarded CLI arguments are appended after Args (or VariantArgs).
	TargetConfig struct {
		// Program is the executable to invoke.
		Program string `mapstructure:"program"`
		// Args are the fixed arguments placed before the forwarded ones.
		Args []string `mapstructure:"args"`
		// VariantArgs replace Args when Variant is set. They point at the
		// alternate entry point (manual recording control build).
		VariantArgs []string `mapstructure:"variant_args"`
		// Variant selects VariantArgs over Args. Usually set through the
		// UTF8RUN_TARGET_VARIANT environment variable.
		Variant bool `mapstructure:"variant"`
	}

	// RunnerConfig selects the execution mode and working directory.
	RunnerConfig struct {
		Mode    RunnerMode `mapstructure:"mode"`
		WorkDir string     `mapstructure:"workdir"`
	}

	// EnvConfig lists extra environment inputs for the child process.
	EnvConfig struct {
		// Files are dotenv files merged into the child environment in order.
		// A trailing '?' marks a file as optional.
		Files []string `mapstructure:"files"`
		// Vars are inline variables merged after Files.
		Vars map[string]string `mapstructure:"vars"`
	}

	// ConsoleConfig controls console code-page handling.
	ConsoleConfig struct {
		// CodePage enables switching the console to UTF-8 before launch.
		CodePage bool `mapstructure:"codepage"`
	}

	// UIConfig controls the launcher's own output surface.
	UIConfig struct {
		// Banner enables the pre-launch status banner.
		Banner bool `mapstructure:"banner"`
		// Pause enables the press-any-key pause after the child exits.
		Pause bool `mapstructure:"pause"`
		// Verbose enables diagnostic logging to stderr.
		Verbose bool `mapstructure:"verbose"`
	}

	// Config is the launcher configuration.
	Config struct {
		Target  TargetConfig  `mapstructure:"target"`
		Runner  RunnerConfig  `mapstructure:"runner"`
		Env     EnvConfig     `mapstructure:"env"`
		Console ConsoleConfig `mapstructure:"console"`
		UI      UIConfig      `mapstructure:"ui"`
	}
)

// DefaultConfig returns the built-in configuration: run the bundled demo
// entry point through uv, with banner, pause, and code-page switch enabled.
func DefaultConfig() *Config {
	return &Config{
		Target: TargetConfig{
			Program:     "uv",
			Args:        []string{"run", "src/demo.py"},
			VariantArgs: []string{"run", "src/demo_v2.py"},
		},
		Runner: RunnerConfig{
			Mode: RunnerExec,
		},
		Console: ConsoleConfig{
			CodePage: true,
		},
		UI: UIConfig{
			Banner: true,
			Pause:  true,
		},
	}
}

// EffectiveArgs returns the fixed argument vector for the selected entry
// point: VariantArgs when Variant is set and non-empty, Args otherwise.
func (t TargetConfig) EffectiveArgs() []string {
	if t.Variant && len(t.VariantArgs) > 0 {
		return t.VariantArgs
	}
	return t.Args
}

// Validate checks the RunnerMode against the known set.
func (m RunnerMode) Validate() error {
	switch m {
	case RunnerExec, RunnerShell:
		return nil
	default:
		return fmt.Errorf("%w: %q (valid: %q, %q)", ErrInvalidRunnerMode, m, RunnerExec, RunnerShell)
	}
}

// Validate checks constraints the CUE schema cannot express.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Target.Program) == "" {
		return fmt.Errorf("%w: target.program must not be empty", ErrInvalidTargetConfig)
	}
	if err := c.Runner.Mode.Validate(); err != nil {
		return err
	}
	for k := range c.Env.Vars {
		if k == "" || strings.Contains(k, "=") {
			return fmt.Errorf("%w: bad variable name %q", ErrInvalidEnvConfig, k)
		}
	}
	for _, f := range c.Env.Files {
		if strings.TrimSpace(strings.TrimSuffix(f, "?")) == "" {
			return fmt.Errorf("%w: empty env file path", ErrInvalidEnvConfig)
		}
	}
	return nil
}
