package schemagen

import "errors"

// Facets and model groups the underlying codec deliberately does not
// support. Preserved as distinct sentinel errors rather than collapsed into
// one, so callers can decide whether a given gap matters to them.
var (
	ErrAllGroupNotImplemented        = errors.New("schemagen: 'all' model group is not implemented")
	ErrListFacetNotImplemented       = errors.New("schemagen: simple type 'list' variety is not implemented")
	ErrEnumerationValueNotImplemented = errors.New("schemagen: enumeration facet on decimal/float/dateTime base types is not implemented")
	ErrUnknownType                   = errors.New("schemagen: reference to undeclared type")
	ErrUnknownElement                = errors.New("schemagen: reference to undeclared element")
)
