// Package id mints unique, lexically time-ordered identifiers.
package id

import (
	"strings"

	"github.com/oklog/ulid/v2"
)

// New returns a fresh ULID string. ULIDs sort by creation time, which the
// world graph relies on for stable scan order.
func New() string {
	return strings.ToLower(ulid.Make().String())
}
