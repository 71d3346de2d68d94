package translate

import (
	"fmt"

	"github.com/cognicore/topictrans/pkg/topictrans/internalerr"
)

// OriginError tags a failure with the topic and source word it happened at.
type OriginError struct {
	TopicID int
	WordID  int
	Err     error
}

func (e *OriginError) Error() string {
	return fmt.Sprintf("topic %d word %d: %v", e.TopicID, e.WordID, e.Err)
}

func (e *OriginError) Unwrap() error { return e.Err }

// LanguageError reports a topic model whose language differs from the
// dictionary's source language.
type LanguageError struct {
	Model string
	DictA string
	DictB string
}

func (e *LanguageError) Error() string {
	b := e.DictB
	if b == "" {
		b = "###"
	}
	return fmt.Sprintf("topic model language %q does not match dictionary %q -> %q", e.Model, e.DictA, b)
}

func (e *LanguageError) Unwrap() error { return internalerr.ErrIncompatibleLanguages }

// Direction names a translation direction of the dictionary.
type Direction string

const (
	AToB Direction = "AToB"
	BToA Direction = "BToA"
)

// DirectionError reports an empty translation direction, either in the input
// dictionary or after restricting it to the model vocabulary (Optimized).
type DirectionError struct {
	Direction Direction
	Optimized bool
}

func (e *DirectionError) Error() string {
	if e.Optimized {
		return fmt.Sprintf("topic specific dictionary is empty in direction %s", e.Direction)
	}
	return fmt.Sprintf("dictionary is empty in direction %s", e.Direction)
}

func (e *DirectionError) Unwrap() error {
	if e.Optimized {
		return internalerr.ErrOptimizedDictionaryEmpty
	}
	return internalerr.ErrDictionaryEmpty
}
