package errors

import (
	"maps"
	"slices"
	"strings"
	"unicode"
)

// ReservedPrefix namespaces generated resource ids (markers, filters).
// Authored element ids may not start with it.
const ReservedPrefix = "sp-"

// maxIDLength bounds authored element ids.
const maxIDLength = 256

// ValidateElementID validates an authored node, edge, port or overlay id.
//
// Ids end up verbatim inside element id attributes and url(#...)
// references, so they are restricted to printable characters without
// whitespace, quotes or '#', and may not use [ReservedPrefix].
func ValidateElementID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidScene, "id cannot be empty")
	}
	if len(id) > maxIDLength {
		return New(ErrCodeInvalidScene, "id too long (max %d characters)", maxIDLength)
	}
	if strings.HasPrefix(id, ReservedPrefix) {
		return New(ErrCodeInvalidScene, "id %q uses reserved prefix %q", id, ReservedPrefix)
	}
	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidScene, "id %q contains whitespace or control characters", id)
		}
		switch r {
		case '"', '\'', '#', '<', '>', '&', '(', ')':
			return New(ErrCodeInvalidScene, "id %q contains invalid character %q", id, r)
		}
	}
	return nil
}

// ValidateFormat checks format against the supported output formats.
func ValidateFormat(format string, valid map[string]bool) error {
	if !valid[format] {
		names := slices.Sorted(maps.Keys(valid))
		return New(ErrCodeInvalidFormat, "invalid format %q (supported: %s)", format, strings.Join(names, ", "))
	}
	return nil
}
