// Package id generates native record keys for the embedded backend.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// NewKey creates a unique record key using NanoID.
//
// NanoIDs are URL-friendly, compact (21 characters vs UUID's 36), and use a
// larger alphabet for better entropy per character. The alphabet contains no
// ':' so a key can never be confused with the table separator in the
// canonical "<table>:<key>" identity form.
//
// Returns an error if the system has insufficient entropy for secure random generation.
func NewKey() (string, error) {
	key, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return key, nil
}
