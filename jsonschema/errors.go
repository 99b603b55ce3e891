package jsonschema

import "github.com/speakeasy-api/datamapper/errors"

const (
	ErrInvalidSchema       = errors.Error("invalid schema")
	ErrAmbiguousReference  = errors.Error("ambiguous schema reference")
	ErrUnresolvedReference = errors.Error("unresolved schema reference")
	ErrInvalidTypeOverride = errors.Error("invalid type override")
	ErrNoDefinitionFiles   = errors.Error("no definition files")
	ErrPrimaryFileNotFound = errors.Error("primary file not found")
)
