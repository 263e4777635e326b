package domain

import "errors"

var (
	// ErrNilEntity signals a nil record inside a searched collection.
	ErrNilEntity = errors.New("nil entity")
	// ErrProjection signals that a record's searchable text could not be built.
	ErrProjection = errors.New("entity projection failed")
)
