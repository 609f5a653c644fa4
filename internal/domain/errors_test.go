package domain

import (
	"errors"
	"strconv"
	"strings"
	"testing"
)

func TestInvalidIDError_IsAndUnwrap(t *testing.T) {
	_, cause := strconv.ParseUint("65590", 10, 16)
	err := NewInvalidID("65590", cause)

	if !errors.Is(err, ErrInvalidID) {
		t.Error("expected errors.Is(err, ErrInvalidID)")
	}
	if !errors.Is(err, strconv.ErrRange) {
		t.Error("expected the parse cause to stay reachable")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("invalid id must not match ErrNotFound")
	}
	if !strings.Contains(err.Error(), `"65590"`) {
		t.Errorf("error = %q, want quoted token", err)
	}
}

func TestModifierError(t *testing.T) {
	err := NewModifierError("s?", 1, "unexpected character '?'")

	if !errors.Is(err, ErrInvalidModifier) {
		t.Error("expected errors.Is(err, ErrInvalidModifier)")
	}
	var me *ModifierError
	if !errors.As(err, &me) {
		t.Fatal("expected *ModifierError")
	}
	if me.Pos != 1 {
		t.Errorf("Pos = %d, want 1", me.Pos)
	}
	if !strings.Contains(err.Error(), "position 1") {
		t.Errorf("error = %q", err)
	}
}

func TestSentinelsDistinct(t *testing.T) {
	all := []error{ErrInvalidID, ErrInvalidModifier, ErrNotFound, ErrInvalidEngineVariant, ErrNoSuggestion}
	for i, a := range all {
		for j, b := range all {
			if i != j && errors.Is(a, b) {
				t.Errorf("%v unexpectedly matches %v", a, b)
			}
		}
	}
}
