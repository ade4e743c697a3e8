package main

import "errors"

var (
	ErrCatalogRequired = errors.New("catalog path required")
	ErrFileRequired    = errors.New("exactly one file argument required")
	ErrUnknownMode     = errors.New("unknown mode")
)
