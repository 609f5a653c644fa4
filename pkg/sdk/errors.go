package acdex

import "github.com/kailas-cloud/acdex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidID            = domain.ErrInvalidID
	ErrInvalidModifier      = domain.ErrInvalidModifier
	ErrNotFound             = domain.ErrNotFound
	ErrInvalidEngineVariant = domain.ErrInvalidEngineVariant
	ErrNoSuggestion         = domain.ErrNoSuggestion
)

// ModifierError carries the position of a malformed modifier clause.
// Use errors.As() to extract it.
type ModifierError = domain.ModifierError

// InvalidIDError carries the rejected id token.
type InvalidIDError = domain.InvalidIDError
