// SPDX-License-Identifier: MPL-2.0

package launcher

import "utf8run-cli/pkg/types"

// Result is the outcome of running the target program.
type Result struct {
	// ExitCode is the child's exit status, or 1 when the child never started.
	ExitCode types.ExitCode
	// Error is set only for launcher-side failures (start failure, bad
	// working directory). A child that ran and exited non-zero has a nil
	// Error.
	Error error
}

// NewErrorResult creates a Result with the given exit code and error.
func NewErrorResult(code types.ExitCode, err error) *Result {
	return &Result{ExitCode: code, Error: err}
}

// NewSuccessResult creates a Result with exit code 0 and no error.
func NewSuccessResult() *Result {
	return &Result{}
}

// NewExitCodeResult creates a Result with the given exit code and no error.
// Use this for non-zero exits that represent normal process termination
// rather than launcher failures.
func NewExitCodeResult(code types.ExitCode) *Result {
	return &Result{ExitCode: code}
}
