package specs

import "errors"

var (
	ErrInvalidSpecs     = errors.New("invalid specs file")
	ErrInvalidSelection = errors.New("invalid recipe selection")
)
