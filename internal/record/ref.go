// Package record translates between the wire entity shape and the storage
// record shape. It is the only package aware of both identity
// representations: the opaque "<table>:<key>" string the client sees and
// the composite (table, native key) reference the backends use.
package record

import (
	"strings"

	apperrors "github.com/ideaboard/ideaboard-server/internal/errors"
)

// Ref is a backend-native composite record reference.
type Ref struct {
	Table string
	Key   string
}

// String returns the canonical identity form "<table>:<key>".
func (r Ref) String() string {
	return r.Table + ":" + r.Key
}

// IsZero reports whether the ref is unset.
func (r Ref) IsZero() bool {
	return r.Table == "" && r.Key == ""
}

// ParseRef parses a canonical identity string into a Ref. The identity must
// be exactly "<table>:<key>" with both parts non-empty; anything else is
// data corruption or a backend mismatch.
func ParseRef(id string) (Ref, error) {
	table, key, ok := strings.Cut(id, ":")
	if !ok || table == "" || key == "" || strings.Contains(key, ":") {
		return Ref{}, apperrors.InvalidIdentityf("malformed record identity %q", id)
	}
	return Ref{Table: table, Key: key}, nil
}
