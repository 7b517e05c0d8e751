package apperr

import (
	"errors"
	"testing"
)

func TestInvalidTransitionError_Message(t *testing.T) {
	t.Parallel()

	err := NewInvalidTransition("PREP", "ON_ROUTE", "PICKED")
	want := "cannot move order from PREP to ON_ROUTE: legal next status is PICKED"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}

func TestInvalidTransitionError_TerminalSaysNone(t *testing.T) {
	t.Parallel()

	err := NewInvalidTransition("DELIVERED", "PREP", "")
	want := "cannot move order from DELIVERED to PREP: legal next status is none"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}

func TestInvalidTransitionError_MatchesSentinel(t *testing.T) {
	t.Parallel()

	err := NewInvalidTransition("PREP", "DELIVERED", "PICKED")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatal("expected errors.Is match on ErrInvalidTransition")
	}
	if errors.Is(err, ErrConflict) {
		t.Fatal("unexpected errors.Is match on ErrConflict")
	}

	var ite *InvalidTransitionError
	if !errors.As(err, &ite) {
		t.Fatal("expected errors.As to extract InvalidTransitionError")
	}
	if ite.Next != "PICKED" {
		t.Fatalf("expected next status PICKED, got %q", ite.Next)
	}
}
