// Package jsonpointer evaluates RFC6901 JSON pointers against schema trees https://datatracker.ietf.org/doc/html/rfc6901
package jsonpointer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/speakeasy-api/datamapper/errors"
)

const (
	// ErrNotFound is returned when the target is not found.
	ErrNotFound = errors.Error("not found")
	// ErrInvalidPath is returned when the path cannot be navigated on the source.
	ErrInvalidPath = errors.Error("invalid path")
	// ErrValidation is returned when the jsonpointer is invalid.
	ErrValidation = errors.Error("validation error")
)

// KeyNavigable is implemented by values that can be navigated with an object key.
type KeyNavigable interface {
	NavigateWithKey(key string) (any, error)
}

// IndexNavigable is implemented by values that can be navigated with an array index.
type IndexNavigable interface {
	NavigateWithIndex(index int) (any, error)
}

// JSONPointer is the local part of a $ref such as "/definitions/Address".
// The empty pointer and "/" both address the whole document.
type JSONPointer string

var tokenRegex = regexp.MustCompile("^(?:[\x00-\x2E\x30-\x7D\x7F-\uffff]|~[01])+$")

// segment is one reference token. index is -1 unless the raw token is an array index without leading zeros.
type segment struct {
	raw   string
	name  string
	index int
}

func (j JSONPointer) segments() ([]segment, error) {
	if j == "" || j == "/" {
		return nil, nil
	}

	rest, ok := strings.CutPrefix(string(j), "/")
	if !ok {
		return nil, fmt.Errorf("jsonpointer must start with /: %s", string(j))
	}

	raw := strings.Split(rest, "/")
	segments := make([]segment, 0, len(raw))
	for _, token := range raw {
		if token == "" {
			return nil, fmt.Errorf("jsonpointer part must not be empty: %s", string(j))
		}
		if !tokenRegex.MatchString(token) {
			return nil, fmt.Errorf("jsonpointer part %q is not a valid token: %s", token, string(j))
		}

		s := segment{raw: token, name: unescape(token), index: -1}
		if i, err := strconv.Atoi(token); err == nil && i >= 0 && (token == "0" || token[0] != '0') && token[0] != '+' {
			s.index = i
		}
		segments = append(segments, s)
	}
	return segments, nil
}

// Validate will validate the JSONPointer is valid as per RFC6901.
func (j JSONPointer) Validate() error {
	if _, err := j.segments(); err != nil {
		return ErrValidation.Wrap(err)
	}
	return nil
}

// Tokens returns the unescaped reference tokens of the pointer.
func (j JSONPointer) Tokens() ([]string, error) {
	segments, err := j.segments()
	if err != nil {
		return nil, ErrValidation.Wrap(err)
	}

	tokens := make([]string, 0, len(segments))
	for _, s := range segments {
		tokens = append(tokens, s.name)
	}
	return tokens, nil
}

// Append returns the pointer extended by the given unescaped tokens.
func (j JSONPointer) Append(tokens ...string) JSONPointer {
	var sb strings.Builder
	sb.WriteString(strings.TrimSuffix(string(j), "/"))
	for _, token := range tokens {
		sb.WriteByte('/')
		sb.WriteString(escape(token))
	}
	return JSONPointer(sb.String())
}

// GetTarget evaluates pointer against source. Every value on the way must implement KeyNavigable or
// IndexNavigable. A numeric token is tried as an index first and falls back to a key.
func GetTarget(source any, pointer JSONPointer) (any, error) {
	segments, err := pointer.segments()
	if err != nil {
		return nil, ErrValidation.Wrap(err)
	}

	current := source
	var at strings.Builder
	for _, s := range segments {
		at.WriteByte('/')
		at.WriteString(s.raw)

		if current == nil {
			return nil, ErrNotFound.Wrap(fmt.Errorf("source is nil at %s", at.String()))
		}
		if current, err = step(current, s); err != nil {
			return nil, fmt.Errorf("%w at %s", err, at.String())
		}
	}

	return current, nil
}

func step(source any, s segment) (any, error) {
	if in, ok := source.(IndexNavigable); ok && s.index >= 0 {
		value, err := in.NavigateWithIndex(s.index)
		if err != nil {
			return nil, ErrNotFound.Wrap(err)
		}
		return value, nil
	}

	kn, ok := source.(KeyNavigable)
	if !ok {
		return nil, ErrInvalidPath.Wrap(fmt.Errorf("expected navigable value, got %T", source))
	}
	value, err := kn.NavigateWithKey(s.name)
	if err != nil {
		return nil, ErrNotFound.Wrap(err)
	}
	return value, nil
}

func escape(token string) string {
	return strings.ReplaceAll(strings.ReplaceAll(token, "~", "~0"), "/", "~1")
}

func unescape(token string) string {
	return strings.ReplaceAll(strings.ReplaceAll(token, "~1", "/"), "~0", "~")
}
