package errors

import (
	"errors"
	"testing"
)

func TestIsMatchesCode(t *testing.T) {
	err := New(ErrCodeMultipleBackEdges, "header %s already has a back edge", "h1")
	if !Is(err, ErrCodeMultipleBackEdges) {
		t.Fatal("expected Is to match the error's own code")
	}
	if Is(err, ErrCodeUnsupportedCFG) {
		t.Fatal("expected Is to reject a different code")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("underlying failure")
	err := Wrap(ErrCodeUnsupportedCFG, cause, "building pool")
	if !errors.Is(err, cause) {
		t.Fatal("expected errors.Is to unwrap to cause")
	}
	if err.Cause != cause {
		t.Fatalf("Cause = %v, want %v", err.Cause, cause)
	}
}

func TestRecoverCatchesFatal(t *testing.T) {
	fn := func() (err error) {
		defer Recover(&err)
		Fatal(ErrCodeInvariant, "broken invariant")
		return nil
	}

	err := fn()
	if err == nil {
		t.Fatal("expected Recover to turn the panic into an error")
	}
	if !Is(err, ErrCodeInvariant) {
		t.Fatalf("err = %v, want code %s", err, ErrCodeInvariant)
	}
}

func TestRecoverRepanicsOnForeignValue(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a non-*Error panic to re-panic")
		}
	}()

	fn := func() (err error) {
		defer Recover(&err)
		panic("not a structured error")
	}
	_ = fn()
}
