// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/google/uuid"
)

// EmptyCredentialHash is what an unset credential hashes to.
// A reference hash equal to this would unlock every fresh session.
var EmptyCredentialHash = HashCredential("")

// HashCredential returns the lowercase hex SHA-256 of the raw credential bytes.
// No trimming or normalisation is applied.
func HashCredential(credential string) string {
	sum := sha256.Sum256([]byte(credential))
	return hex.EncodeToString(sum[:])
}

// IsHash reports whether s has the shape HashCredential produces:
// 64 lowercase hex characters
func IsHash(s string) bool {
	if len(s) != 2*sha256.Size {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// ReferenceHash derives the reference hash from the configured secret
func ReferenceHash(secret string) string {
	return HashCredential(secret)
}

// IsPrivileged reports whether the stored credential unlocks the mutation
// controls. Plain string comparison of the hex encodings.
//
// This is a rendering switch, not a security boundary: the reference hash is
// shipped to the page and anyone can paste a matching value.
func IsPrivileged(storedCredential, referenceHash string) bool {
	if referenceHash == "" {
		return false
	}
	return HashCredential(storedCredential) == referenceHash
}

// NewSessionID creates a random identifier for a browser session
func NewSessionID() string {
	return uuid.NewString()
}
