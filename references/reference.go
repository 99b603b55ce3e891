// Package references provides the $ref value type shared by the schema resolvers.
package references

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/speakeasy-api/datamapper/errors"
	"github.com/speakeasy-api/datamapper/jsonpointer"
)

// ErrInvalidReference is returned by Validate.
const ErrInvalidReference = errors.Error("invalid reference")

// Reference is a raw $ref value of the form "<schema part>#<local part>".
type Reference string

var _ fmt.Stringer = (*Reference)(nil)

// GetURI returns the schema part of the reference, the text before the first "#".
func (r Reference) GetURI() string {
	uri, _, _ := strings.Cut(string(r), "#")
	return strings.TrimSpace(uri)
}

// HasJSONPointer reports whether the reference carries a "#" fragment.
func (r Reference) HasJSONPointer() bool {
	return strings.Contains(string(r), "#")
}

// GetLocalPart returns the raw text after the first "#", or "" if there is none.
func (r Reference) GetLocalPart() string {
	_, local, found := strings.Cut(string(r), "#")
	if !found {
		return ""
	}
	return strings.TrimSpace(local)
}

// GetJSONPointer returns the percent-decoded local part as a JSON pointer.
func (r Reference) GetJSONPointer() jsonpointer.JSONPointer {
	pointer := r.GetLocalPart()

	if decoded, err := url.PathUnescape(pointer); err == nil {
		pointer = decoded
	}

	return jsonpointer.JSONPointer(pointer)
}

// IsInternal reports whether the reference points into the document it appears in.
func (r Reference) IsInternal() bool {
	return strings.HasPrefix(strings.TrimSpace(string(r)), "#") || r.GetURI() == ""
}

// Validate reports whether the schema part parses as a URI reference and the local part is a valid JSON pointer.
func (r Reference) Validate() error {
	if strings.TrimSpace(string(r)) == "" {
		return ErrInvalidReference.Wrapf("empty")
	}

	if uri := r.GetURI(); uri != "" {
		if _, err := url.Parse(uri); err != nil {
			return ErrInvalidReference.Wrapf("uri: %w", err)
		}
	}

	if r.HasJSONPointer() {
		if err := r.GetJSONPointer().Validate(); err != nil {
			return ErrInvalidReference.Wrapf("local part: %w", err)
		}
	}

	return nil
}

func (r Reference) String() string {
	return string(r)
}
