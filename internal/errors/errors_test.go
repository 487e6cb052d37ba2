package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "error without cause",
			err: &AppError{
				Code:    ErrCodeNotFound,
				Message: "account not found",
			},
			want: "account not found",
		},
		{
			name: "error with cause",
			err: &AppError{
				Code:    ErrCodeInternal,
				Message: "failed to authenticate",
				Cause:   errors.New("underlying error"),
			},
			want: "failed to authenticate: underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("AppError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := &AppError{
		Code:    ErrCodeInternal,
		Message: "wrapped error",
		Cause:   cause,
	}

	if unwrapped := err.Unwrap(); !errors.Is(unwrapped, cause) {
		t.Errorf("AppError.Unwrap() = %v, want %v", unwrapped, cause)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("db down")
	err := Wrap(cause, ErrCodeInternal, "lookup failed")
	if err.Code != ErrCodeInternal {
		t.Errorf("Code = %v", err.Code)
	}
	if !errors.Is(err, cause) {
		t.Error("wrapped error should match cause via errors.Is")
	}

	if Wrap(nil, ErrCodeInternal, "nothing") != nil {
		t.Error("Wrap(nil, ...) should return nil")
	}
}

func TestCodePredicates(t *testing.T) {
	cause := errors.New("x")
	tests := []struct {
		name string
		pred func(error) bool
		err  error
		want bool
	}{
		{"IsNotFound match", IsNotFound, Wrap(cause, ErrCodeNotFound, "missing"), true},
		{"IsNotFound wrapped", IsNotFound, fmt.Errorf("outer: %w", Wrap(cause, ErrCodeNotFound, "missing")), true},
		{"IsNotFound mismatch", IsNotFound, Wrap(cause, ErrCodeConflict, "duplicate"), false},
		{"IsConflict match", IsConflict, Wrap(cause, ErrCodeConflict, "duplicate"), true},
		{"IsValidation match", IsValidation, Wrap(cause, ErrCodeValidation, "bad input"), true},
		{"IsInternal match", IsInternal, Wrap(cause, ErrCodeInternal, "boom"), true},
		{"plain error", IsInternal, cause, false},
		{"nil error", IsNotFound, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pred(tt.err); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
