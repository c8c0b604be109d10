// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"context"
	"fmt"
	"io"
	"os"
)

type (
	// Invocation is a fully resolved child-process launch: the program, its
	// complete argument vector (fixed target args followed by the forwarded
	// CLI arguments), and the exact environment the child will see.
	//
	// Env is injected at spawn time; runners never mutate the launcher's own
	// process environment.
	Invocation struct {
		Program string
		Args    []string
		Env     map[string]string
		WorkDir string

		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}

	// Runner executes an Invocation to completion and reports the child's
	// exit status.
	Runner interface {
		// Name returns the runner name ("exec" or "shell").
		Name() string
		// Run blocks until the child exits.
		Run(ctx context.Context, inv *Invocation) *Result
	}
)

// CommandLine returns the invocation as a single display string for the
// banner. It is informational only and performs no quoting.
func (inv *Invocation) CommandLine() string {
	line := inv.Program
	for _, a := range inv.Args {
		line += " " + a
	}
	return line
}

// validateWorkDir validates that a working directory exists and is accessible.
// This provides a better error message than letting exec fail with a cryptic error.
func validateWorkDir(dir string) error {
	if dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("directory does not exist: %s", dir)
		}
		if os.IsPermission(err) {
			return fmt.Errorf("permission denied: %s", dir)
		}
		return fmt.Errorf("cannot access directory: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", dir)
	}

	return nil
}
