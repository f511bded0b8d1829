// Package util provides utility functions for the AuraCore application.
package util

import (
	"math/rand/v2"
	"strings"
)

// GenerateRandomID generates a random ID with the specified prefix and hex length.
// The returned ID will be in the format: "{prefix}{hex_string}".
func GenerateRandomID(prefix string, hexLength int) string {
	return prefix + GenerateRandomHex(hexLength)
}

// GenerateRandomHex generates a random hexadecimal string of the specified length.
// Uses math/rand/v2; non-cryptographic purposes only.
func GenerateRandomHex(length int) string {
	if length <= 0 {
		return ""
	}

	const hexChars = "0123456789abcdef"
	var builder strings.Builder
	builder.Grow(length)

	for i := 0; i < length; i++ {
		builder.WriteByte(hexChars[rand.IntN(16)])
	}

	return builder.String()
}

// GenerateActionID generates a unique pending-action ID with "a_" prefix.
func GenerateActionID() string {
	return GenerateRandomID("a_", 32)
}

// GenerateInteractionID generates a unique interaction record ID with "i_" prefix.
func GenerateInteractionID() string {
	return GenerateRandomID("i_", 32)
}
