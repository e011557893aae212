package rawtree

import (
	errors "gopkg.in/src-d/go-errors.v1"
)

var (
	// ErrMalformedInput is returned when a document cannot be decoded into a token tree.
	ErrMalformedInput = errors.NewKind("%s:%s: malformed raw tree: %s")
	// ErrUnsupportedFormat is returned for documents that are neither XML nor JSON.
	ErrUnsupportedFormat = errors.NewKind("%s: unsupported raw tree format")
	// ErrEmptyDocument is returned when a document holds no root token.
	ErrEmptyDocument = errors.NewKind("%s: document has no root element")
)
