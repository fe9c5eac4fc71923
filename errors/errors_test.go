package errors

import (
	"strings"
	"testing"
)

func TestSentinelWrapping(t *testing.T) {
	err := Wrap(ErrUnknownCheckKind, "loading style 'write-good'")
	if !Is(err, ErrUnknownCheckKind) {
		t.Fatal("wrapped sentinel should still match with Is()")
	}
	if Is(err, ErrNotFound) {
		t.Fatal("wrapped sentinel should not match unrelated sentinel")
	}
}

func TestNewUnknownCheckKindError(t *testing.T) {
	err := NewUnknownCheckKindError("telemetry")
	if !Is(err, ErrUnknownCheckKind) {
		t.Fatal("should wrap ErrUnknownCheckKind")
	}
	if !strings.Contains(err.Error(), `no handler registered for kind "telemetry"`) {
		t.Fatalf("error message should name the kind, got %q", err.Error())
	}
}

func TestIsNotFoundError(t *testing.T) {
	if IsNotFoundError(nil) {
		t.Fatal("nil is not a not-found error")
	}
	if !IsNotFoundError(Wrap(ErrNotFound, "cached result for README.md")) {
		t.Fatal("wrapped ErrNotFound should be recognized")
	}
}
