// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"context"
	"fmt"
	"strings"

	"utf8run-cli/internal/issue"
	"utf8run-cli/pkg/types"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// ShellRunner runs the target invocation through the embedded mvdan/sh
// interpreter instead of the system shell. Useful on hosts without a POSIX
// shell (plain Windows) when the target must be resolved through shell
// PATH semantics.
type ShellRunner struct{}

// NewShellRunner creates a new shell runner.
func NewShellRunner() *ShellRunner {
	return &ShellRunner{}
}

// Name returns the runner name.
func (r *ShellRunner) Name() string {
	return "shell"
}

// Run renders the invocation as a single quoted shell command and executes
// it to completion in the embedded interpreter with the invocation's
// environment and stdio.
func (r *ShellRunner) Run(ctx context.Context, inv *Invocation) *Result {
	if err := validateWorkDir(inv.WorkDir); err != nil {
		return NewErrorResult(1, issue.WrapWithOperation(err, "enter working directory"))
	}

	src, err := renderCommand(inv)
	if err != nil {
		return NewErrorResult(1, err)
	}

	prog, err := syntax.NewParser().Parse(strings.NewReader(src), "launch")
	if err != nil {
		return NewErrorResult(1, fmt.Errorf("failed to parse launch command: %w", err))
	}

	opts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(EnvToSlice(inv.Env)...)),
		interp.StdIO(inv.Stdin, inv.Stdout, inv.Stderr),
	}
	if inv.WorkDir != "" {
		opts = append(opts, interp.Dir(inv.WorkDir))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return NewErrorResult(1, fmt.Errorf("failed to create shell interpreter: %w", err))
	}

	if err := runner.Run(ctx, prog); err != nil {
		if status, ok := interp.IsExitStatus(err); ok {
			return NewExitCodeResult(types.ExitCode(status))
		}
		return NewErrorResult(1, fmt.Errorf("failed to start %s: %w", inv.Program, err))
	}

	return NewSuccessResult()
}

// renderCommand quotes every word of the invocation so forwarded arguments
// survive the shell round trip byte for byte.
func renderCommand(inv *Invocation) (string, error) {
	words := make([]string, 0, len(inv.Args)+1)
	for _, w := range append([]string{inv.Program}, inv.Args...) {
		quoted, err := syntax.Quote(w, syntax.LangBash)
		if err != nil {
			return "", fmt.Errorf("cannot quote argument %q: %w", w, err)
		}
		words = append(words, quoted)
	}
	return strings.Join(words, " "), nil
}
