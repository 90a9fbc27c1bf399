// Copyright (c) 2026 TCGScan. All rights reserved.

/*
Package sec provides cryptographic primitives and token management.

# Architecture

This package isolates security-sensitive code (password key derivation, JWT
signing) from the domain logic. It acts as an Infrastructure service injected
into the Application layer via small interfaces defined at the point of use.
*/
package sec

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// # Key Derivation Parameters

const (
	// saltLength is the byte length of the random per-hash salt.
	saltLength = 16

	// pbkdf2Iterations is the fixed PBKDF2 iteration count. Changing it
	// invalidates every stored hash, so it must never be lowered in place.
	pbkdf2Iterations = 100_000

	// derivedKeyLength is the byte length of the PBKDF2 output.
	derivedKeyLength = 32

	// hashDelimiter joins the hex-encoded salt and derived hash.
	hashDelimiter = ":"
)

// ErrMalformedHash is returned when a stored password hash does not follow
// the "<salt-hex>:<hash-hex>" encoding. A record carrying such a hash can
// never verify; the condition is a data-integrity fault, not a user error.
var ErrMalformedHash = errors.New("sec: malformed password hash")

/*
HashPassword derives a salted PBKDF2-SHA256 hash of a plain-text password.

Description: Generates a fresh cryptographically random salt on every call,
so hashing the same password twice yields two different encodings.

Parameters:
  - plainTextPassword: string

Returns:
  - string: "<salt-hex>:<hash-hex>" self-describing encoding
  - error: Entropy source failures
*/
func HashPassword(plainTextPassword string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("sec: failed to generate salt: %w", err)
	}

	derived := pbkdf2.Key([]byte(plainTextPassword), salt, pbkdf2Iterations, derivedKeyLength, sha256.New)

	return hex.EncodeToString(salt) + hashDelimiter + hex.EncodeToString(derived), nil
}

/*
VerifyPassword compares a plain-text password against a stored encoded hash.

Description: Splits the encoding, re-derives the hash with the extracted salt,
and compares in constant time to avoid timing side-channels.

Parameters:
  - plainTextPassword: string
  - encodedHash: string ("<salt-hex>:<hash-hex>")

Returns:
  - bool: true only on an exact match
  - error: ErrMalformedHash if the encoding is corrupt
*/
func VerifyPassword(plainTextPassword, encodedHash string) (bool, error) {
	parts := strings.Split(encodedHash, hashDelimiter)
	if len(parts) != 2 {
		return false, ErrMalformedHash
	}

	salt, err := hex.DecodeString(parts[0])
	if err != nil {
		return false, ErrMalformedHash
	}

	stored, err := hex.DecodeString(parts[1])
	if err != nil {
		return false, ErrMalformedHash
	}

	derived := pbkdf2.Key([]byte(plainTextPassword), salt, pbkdf2Iterations, derivedKeyLength, sha256.New)

	return subtle.ConstantTimeCompare(derived, stored) == 1, nil
}
