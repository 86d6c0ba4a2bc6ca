package errors

import (
	stdErrors "errors"
	"strings"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"validation", ErrValidation},
		{"not found", ErrNotFound},
		{"already exists", ErrAlreadyExists},
		{"invalid credentials", ErrInvalidCredentials},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !stdErrors.Is(tc.err, tc.err) {
				t.Fatalf("expected error to match itself: %v", tc.err)
			}
		})
	}
}

func TestStoreErrorWrapsCause(t *testing.T) {
	cause := stdErrors.New("connection reset")
	err := NewStoreError("get order", cause)

	var storeErr *StoreError
	if !stdErrors.As(err, &storeErr) {
		t.Fatalf("expected StoreError, got %T", err)
	}
	if storeErr.Op != "get order" {
		t.Fatalf("unexpected op %q", storeErr.Op)
	}
	if !stdErrors.Is(err, cause) {
		t.Fatalf("expected cause to be unwrapped")
	}
	if !strings.Contains(err.Error(), "connection reset") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestNewStoreErrorKeepsDomainErrors(t *testing.T) {
	if NewStoreError("op", nil) != nil {
		t.Fatal("expected nil for nil cause")
	}
	for _, sentinel := range []error{ErrNotFound, ErrAlreadyExists, ErrValidation} {
		if err := NewStoreError("op", sentinel); err != sentinel {
			t.Fatalf("expected %v to pass through, got %v", sentinel, err)
		}
	}
}

func TestValidationf(t *testing.T) {
	err := Validationf("line %d: quantity must be positive", 2)
	if !stdErrors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("expected detail in message, got %q", err.Error())
	}
}
