// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "load configuration"},
			expected: "failed to load configuration",
		},
		{
			name:     "operation and resource",
			err:      &ActionableError{Operation: "load configuration", Resource: "config.cue"},
			expected: "failed to load configuration: config.cue",
		},
		{
			name: "operation, resource and cause",
			err: &ActionableError{
				Operation: "start target program",
				Resource:  "uv",
				Cause:     errors.New("executable file not found"),
			},
			expected: "failed to start target program: uv: executable file not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := WrapWithOperation(cause, "start target program")

	if !errors.Is(err, cause) {
		t.Error("errors.Is does not find the wrapped cause")
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	err := NewErrorContext().
		WithOperation("load configuration").
		WithResource("config.cue").
		WithSuggestion("Check that the file contains valid CUE syntax").
		WithSuggestion("Delete the file to fall back to defaults").
		Wrap(errors.New("syntax error")).
		Build()

	got := err.Format(false)
	if !strings.Contains(got, "• Check that the file contains valid CUE syntax") {
		t.Errorf("Format(false) missing suggestion:\n%s", got)
	}
	if strings.Contains(got, "Error chain") {
		t.Errorf("Format(false) should not include the error chain:\n%s", got)
	}

	verbose := err.Format(true)
	if !strings.Contains(verbose, "Error chain:") {
		t.Errorf("Format(true) missing error chain:\n%s", verbose)
	}
}

func TestErrorContext_BuildRequiresOperation(t *testing.T) {
	t.Parallel()

	if err := NewErrorContext().WithResource("x").Build(); err != nil {
		t.Errorf("Build() without operation = %v, want nil", err)
	}
	if err := NewErrorContext().WithResource("x").BuildError(); err != nil {
		t.Errorf("BuildError() without operation = %v, want nil", err)
	}
}

func TestWrapWithOperation_NilError(t *testing.T) {
	t.Parallel()

	if got := WrapWithOperation(nil, "anything"); got != nil {
		t.Errorf("WrapWithOperation(nil) = %v, want nil", got)
	}
}
