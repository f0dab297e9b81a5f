package conda

import "errors"

var (
	ErrUnknownBackend = errors.New("unknown backend")
	ErrNameMismatch   = errors.New("rendered package name mismatch")
	ErrSearch         = errors.New("channel search failed")
)
