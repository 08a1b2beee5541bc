// Package auth implements the iRacing members-service login handshake and
// the credential derivation it expects.
package auth

import (
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

// EncodePassword derives the login secret the members service expects in
// place of the raw password: the SHA-256 hash of the plaintext password
// concatenated with the lowercased username, encoded as base64.
//
// The derivation is deterministic; identical inputs always produce the
// same secret.
func EncodePassword(username, password string) string {
	sum := sha256.Sum256([]byte(password + strings.ToLower(username)))
	return base64.StdEncoding.EncodeToString(sum[:])
}
