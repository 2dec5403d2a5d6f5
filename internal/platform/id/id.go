// Package id generates compact, URL-safe entity identifiers.
//
// Identifiers are UUIDv4 bytes encoded as unpadded lowercase base32, which
// keeps them sortable-free, case-insensitive-safe, and 26 characters long.
package id

import (
	"encoding/base32"
	"strings"

	"github.com/google/uuid"
)

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// NewID returns a new 26-character lowercase base32 identifier.
func NewID() (string, error) {
	raw, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return strings.ToLower(encoding.EncodeToString(raw[:])), nil
}
