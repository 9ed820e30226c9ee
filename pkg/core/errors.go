package core

import "errors"

// Error taxonomy shared by stores, handlers and the console layer.
// Callers match with errors.Is; implementations wrap with context.
var (
	// ErrStoreInit means the backing file could not be read, parsed or created.
	ErrStoreInit = errors.New("store initialization failed")

	// ErrKindMismatch means a model of one kind was handed to a store bound to another.
	ErrKindMismatch = errors.New("model kind does not match store kind")

	// ErrPersist means writing the document back failed; the mutation was not committed.
	ErrPersist = errors.New("persisting document failed")

	// ErrUnknownAttribute means the attribute name is not part of the entity schema.
	ErrUnknownAttribute = errors.New("unknown attribute")

	// ErrParse means a value that must be numeric is not.
	ErrParse = errors.New("value is not a number")

	// ErrRead and ErrWrite report console I/O failures.
	ErrRead  = errors.New("reading input failed")
	ErrWrite = errors.New("writing output failed")

	// ErrReadOnly is returned by mutations on a store opened read-only.
	ErrReadOnly = errors.New("store is in read-only mode")
)
