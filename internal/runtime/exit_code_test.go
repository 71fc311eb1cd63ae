// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"testing"
)

func TestExitCode_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		code  ExitCode
		valid bool
	}{
		{name: "success", code: ExitSuccess, valid: true},
		{name: "pipeline failure", code: ExitPipelineFailure, valid: true},
		{name: "container failure", code: ExitContainerFailure, valid: true},
		{name: "config failure", code: ExitConfigFailure, valid: true},
		{name: "upper bound", code: 255, valid: true},
		{name: "negative", code: -1, valid: false},
		{name: "too large", code: 256, valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			valid, errs := tt.code.IsValid()
			if valid != tt.valid {
				t.Errorf("IsValid() = %v, want %v", valid, tt.valid)
			}
			if tt.valid {
				if len(errs) != 0 {
					t.Errorf("IsValid() errors = %v, want none", errs)
				}
				return
			}
			if len(errs) == 0 {
				t.Fatal("IsValid() returned no errors for an invalid code")
			}
			if !errors.Is(errs[0], ErrInvalidExitCode) {
				t.Errorf("errors.Is(errs[0], ErrInvalidExitCode) = false for %v", errs[0])
			}
			var invalidErr *InvalidExitCodeError
			if !errors.As(errs[0], &invalidErr) {
				t.Fatalf("errs[0] is %T, want *InvalidExitCodeError", errs[0])
			}
			if invalidErr.Value != int(tt.code) {
				t.Errorf("Value = %d, want %d", invalidErr.Value, int(tt.code))
			}
		})
	}
}

func TestExitCode_IsSuccess(t *testing.T) {
	t.Parallel()

	if !ExitSuccess.IsSuccess() {
		t.Error("ExitSuccess.IsSuccess() = false, want true")
	}
	for _, code := range []ExitCode{ExitPipelineFailure, ExitContainerFailure, ExitConfigFailure} {
		if code.IsSuccess() {
			t.Errorf("ExitCode(%d).IsSuccess() = true, want false", int(code))
		}
	}
}

func TestExitCode_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code ExitCode
		want string
	}{
		{code: ExitSuccess, want: "0"},
		{code: ExitPipelineFailure, want: "32"},
		{code: ExitContainerFailure, want: "64"},
		{code: ExitConfigFailure, want: "96"},
	}

	for _, tt := range tests {
		if got := tt.code.String(); got != tt.want {
			t.Errorf("ExitCode(%d).String() = %q, want %q", int(tt.code), got, tt.want)
		}
	}
}

// The failure codes are a contract with calling scripts; they must stay
// pairwise distinct and distinguishable from success.
func TestExitCodes_Distinct(t *testing.T) {
	t.Parallel()

	codes := []ExitCode{ExitSuccess, ExitPipelineFailure, ExitContainerFailure, ExitConfigFailure}
	seen := make(map[ExitCode]bool, len(codes))
	for _, code := range codes {
		if seen[code] {
			t.Errorf("exit code %d assigned twice", int(code))
		}
		seen[code] = true
	}
}
