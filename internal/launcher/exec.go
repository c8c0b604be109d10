// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"

	"utf8run-cli/internal/issue"
	"utf8run-cli/pkg/types"
)

// ExecRunner runs the target program directly through os/exec with the
// invocation's environment injected at spawn time.
type ExecRunner struct{}

// NewExecRunner creates a new exec runner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Name returns the runner name.
func (r *ExecRunner) Name() string {
	return "exec"
}

// Run executes the invocation and blocks until the child exits.
// The child inherits the invocation's stdio streams unchanged.
func (r *ExecRunner) Run(ctx context.Context, inv *Invocation) *Result {
	cmd, res := r.prepare(ctx, inv)
	if res != nil {
		return res
	}

	cmd.Stdin = inv.Stdin
	cmd.Stdout = inv.Stdout
	cmd.Stderr = inv.Stderr

	return runAndExtract(cmd, inv.Program)
}

// RunCapture executes the invocation with stdout and stderr captured.
// Used by tests and verbose diagnostics; the production path is Run.
func (r *ExecRunner) RunCapture(ctx context.Context, inv *Invocation) (*Result, string, string) {
	cmd, res := r.prepare(ctx, inv)
	if res != nil {
		return res, "", ""
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdin = inv.Stdin
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	result := runAndExtract(cmd, inv.Program)
	return result, stdout.String(), stderr.String()
}

// prepare builds the exec.Cmd, or returns a Result describing why it cannot
// be built.
func (r *ExecRunner) prepare(ctx context.Context, inv *Invocation) (*exec.Cmd, *Result) {
	if err := validateWorkDir(inv.WorkDir); err != nil {
		return nil, NewErrorResult(1, issue.WrapWithOperation(err, "enter working directory"))
	}

	cmd := exec.CommandContext(ctx, inv.Program, inv.Args...)
	if inv.WorkDir != "" {
		cmd.Dir = inv.WorkDir
	}
	cmd.Env = EnvToSlice(inv.Env)
	return cmd, nil
}

// runAndExtract runs the command and maps the outcome onto a Result:
// a clean exit keeps the child's code with no error, everything else
// (program not found, permission denied) is a launcher-side failure.
func runAndExtract(cmd *exec.Cmd, program string) *Result {
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()
			if code < 0 {
				// A child killed by a signal reports -1, which has no
				// process exit code equivalent. Map it to a generic failure
				// so the propagated code stays in the 0-255 range.
				code = 1
			}
			return NewExitCodeResult(types.ExitCode(code))
		}
		return NewErrorResult(1, fmt.Errorf("failed to start %s: %w", program, err))
	}
	return NewSuccessResult()
}
