package linker

import "errors"

var (
	// ErrUnknownDialect indicates a rewrite was requested for a markup
	// family the engine does not understand.
	ErrUnknownDialect = errors.New("linker: unknown dialect")
)
