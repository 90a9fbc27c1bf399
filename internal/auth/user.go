// Copyright (c) 2026 TCGScan. All rights reserved.

/*
Package auth implements the user identity layer.

It defines the credential entity and the logic for registration, login, and
bearer-token session resolution.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import "time"

// # Domain Entities

// User represents a registered member of the TCGScan platform.
//
// Email is the unique login identity. Lookups are exact-match: no case or
// whitespace normalization is applied anywhere, so "A@x.com" and "a@x.com"
// are distinct identities.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldAccessToken = "access_token"
	FieldTokenType   = "token_type"
	FieldExpiresIn   = "expires_in"
	FieldUser        = "user"
)
