// Package identity mints and validates the vault installation id.
// Each vault database carries one UUID v4, generated at first open and
// stable for the life of the file. Record ids are integers minted from
// counters; the vault id is the only UUID in the system.
package identity

import (
	"fmt"
	"regexp"

	"github.com/google/uuid"
)

// UUID v4 format: xxxxxxxx-xxxx-4xxx-yxxx-xxxxxxxxxxxx
// where y is one of [8, 9, a, b] (variant bits)
var vaultIDRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-4[0-9a-fA-F]{3}-[89abAB][0-9a-fA-F]{3}-[0-9a-fA-F]{12}$`)

// NewVaultID generates a fresh vault id.
func NewVaultID() string {
	return uuid.New().String()
}

// IsValid checks if a string is a well-formed vault id.
func IsValid(s string) bool {
	return vaultIDRegex.MatchString(s)
}

// Validate returns an error if the string is not a well-formed vault id.
func Validate(s string) error {
	if !IsValid(s) {
		return fmt.Errorf("invalid vault id: %q", s)
	}
	return nil
}
