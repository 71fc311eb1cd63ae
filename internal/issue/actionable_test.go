// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
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
			err:      &ActionableError{Operation: "load artifact config"},
			expected: "failed to load artifact config",
		},
		{
			name:     "operation and resource",
			err:      &ActionableError{Operation: "load artifact config", Resource: "./artman.yaml"},
			expected: "failed to load artifact config: ./artman.yaml",
		},
		{
			name: "operation, resource and cause",
			err: &ActionableError{
				Operation: "pull docker image",
				Resource:  "googleapis/artman:3.0.0",
				Cause:     errors.New("connection refused"),
			},
			expected: "failed to pull docker image: googleapis/artman:3.0.0: connection refused",
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

	cause := errors.New("root cause")
	err := NewErrorContext().
		WithOperation("run pipeline").
		Wrap(fmt.Errorf("stage failed: %w", cause)).
		BuildError()

	if !errors.Is(err, cause) {
		t.Error("errors.Is should reach the wrapped cause")
	}

	var ae *ActionableError
	if !errors.As(err, &ae) {
		t.Fatal("errors.As should find ActionableError")
	}
	if ae.Operation != "run pipeline" {
		t.Errorf("Operation = %q, want %q", ae.Operation, "run pipeline")
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	err := NewErrorContext().
		WithOperation("load user config").
		WithResource("~/.artman/config.yaml").
		WithSuggestion("Check the file is valid YAML").
		WithSuggestion("Remove the file to fall back to defaults").
		Wrap(fmt.Errorf("outer: %w", errors.New("inner"))).
		Build()

	t.Run("non-verbose includes suggestions", func(t *testing.T) {
		t.Parallel()

		got := err.Format(false)
		if !strings.Contains(got, "• Check the file is valid YAML") {
			t.Errorf("missing first suggestion:\n%s", got)
		}
		if !strings.Contains(got, "• Remove the file to fall back to defaults") {
			t.Errorf("missing second suggestion:\n%s", got)
		}
		if strings.Contains(got, "Error chain:") {
			t.Errorf("non-verbose output should not include the chain:\n%s", got)
		}
	})

	t.Run("verbose includes error chain", func(t *testing.T) {
		t.Parallel()

		got := err.Format(true)
		if !strings.Contains(got, "Error chain:") {
			t.Errorf("verbose output should include the chain:\n%s", got)
		}
		if !strings.Contains(got, "2. inner") {
			t.Errorf("chain should reach the innermost error:\n%s", got)
		}
	})
}

func TestErrorContext_Build(t *testing.T) {
	t.Parallel()

	t.Run("missing operation yields nil", func(t *testing.T) {
		t.Parallel()

		if err := NewErrorContext().WithResource("x").BuildError(); err != nil {
			t.Errorf("expected nil, got %v", err)
		}
	})

	t.Run("wrap nil via shorthand yields nil", func(t *testing.T) {
		t.Parallel()

		if got := WrapWithOperation(nil, "anything"); got != nil {
			t.Errorf("expected nil, got %v", got)
		}
	})
}
