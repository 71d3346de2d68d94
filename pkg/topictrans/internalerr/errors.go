package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrDuplicate        = errors.New("duplicate entry")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrInvalidConfig    = errors.New("invalid configuration")
)

// Numeric input errors shared by the divergence and sparse vector packages.
var (
	ErrShapeMismatch     = errors.New("shape mismatch")
	ErrEmptyInput        = errors.New("empty input")
	ErrIllegalParameter  = errors.New("illegal parameter")
	ErrIllegalValueCount = errors.New("illegal value count")
	ErrNoValues          = errors.New("no values")
)

// Translation run errors.
var (
	ErrIncompatibleLanguages    = errors.New("incompatible languages")
	ErrDictionaryEmpty          = errors.New("dictionary empty")
	ErrOptimizedDictionaryEmpty = errors.New("topic specific dictionary empty")
	ErrVoting                   = errors.New("voting failed")
	ErrProvider                 = errors.New("variable provider failed")
)
