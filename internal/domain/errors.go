package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidID signals an identifier token that is not a full uint16.
	ErrInvalidID = errors.New("invalid id")
	// ErrInvalidModifier signals a malformed modifier clause.
	ErrInvalidModifier = errors.New("invalid modifier")
	// ErrNotFound signals that no catalog record matches the selector.
	ErrNotFound = errors.New("not found")
	// ErrInvalidEngineVariant signals an engine index the airframe does not have.
	ErrInvalidEngineVariant = errors.New("invalid engine variant")
	// ErrNoSuggestion signals that no record clears the similarity threshold.
	ErrNoSuggestion = errors.New("no suggestion")
)

// InvalidIDError wraps ErrInvalidID with the offending token and the parse failure.
type InvalidIDError struct {
	Token string
	Err   error
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("%s: %q: %v", ErrInvalidID.Error(), e.Token, e.Err)
}

// Is reports ErrInvalidID so callers can match with errors.Is.
func (e *InvalidIDError) Is(target error) bool { return target == ErrInvalidID }

func (e *InvalidIDError) Unwrap() error { return e.Err }

// NewInvalidID creates an invalid id error.
func NewInvalidID(token string, cause error) error {
	return &InvalidIDError{Token: token, Err: cause}
}

// ModifierError wraps ErrInvalidModifier with the position of the offending character.
type ModifierError struct {
	Clause string
	Pos    int
	Reason string
}

func (e *ModifierError) Error() string {
	return fmt.Sprintf("%s: %s at position %d in %q", ErrInvalidModifier.Error(), e.Reason, e.Pos, e.Clause)
}

func (e *ModifierError) Unwrap() error { return ErrInvalidModifier }

// NewModifierError creates an invalid modifier error.
func NewModifierError(clause string, pos int, reason string) error {
	return &ModifierError{Clause: clause, Pos: pos, Reason: reason}
}
