// Copyright (c) 2026 TCGScan. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tcgscan/tcgscan/internal/platform/apperr"
	"github.com/tcgscan/tcgscan/internal/platform/sec"
)

// # Contracts & Types

// TokenProvider defines the contract for issuing and verifying bearer tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT asserting the given user ID.
	GenerateAccessToken(userID int64) (string, error)

	// VerifyToken checks signature, algorithm, and expiry, returning the
	// claims only if every check passes.
	VerifyToken(tokenString string) (*sec.AuthClaims, error)

	// TTL reports the configured lifetime of issued tokens.
	TTL() time.Duration
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed before merge.
type Service struct {
	userRepository UserRepository
	tokenProvider  TokenProvider
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(userRepo UserRepository, tokenProv TokenProvider) *Service {
	return &Service{
		userRepository: userRepo,
		tokenProvider:  tokenProv,
	}
}

// # Registration Flow

/*
Register validates, hashes, and persists a brand new user account.

Description: Enrolls a new member, hashing the password before anything is
persisted. The plain-text password never leaves this call.

Parameters:
  - context: context.Context
  - email: string
  - password: string

Returns:
  - *User: Created entity
  - error: Conflict (if identity exists) or storage errors
*/
func (service *Service) Register(context context.Context, email, password string) (*User, error) {

	// Verify email uniqueness. Return a client-safe Conflict error.
	// This check is a fast path only: the database UNIQUE constraint is the
	// authoritative guard against a concurrent duplicate registration.
	_, err := service.userRepository.FindByEmail(context, email)
	if err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	// Prevent storing plain-text passwords.
	hashedPassword, err := sec.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		Email:        email,
		PasswordHash: hashedPassword,
		IsActive:     true,
	}

	// Persist the user to the database
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	return user, nil
}

// # Authentication Flow

/*
Authenticate validates login credentials.

Description: Looks up the identity and performs constant-time password
verification. A missing account and a wrong password return the exact same
error so a caller cannot probe which email addresses are registered.

Parameters:
  - context: context.Context
  - email: string
  - password: string

Returns:
  - *User: The authenticated account
  - error: Unauthorized on any credential failure
*/
func (service *Service) Authenticate(context context.Context, email, password string) (*User, error) {
	user, err := service.userRepository.FindByEmail(context, email)

	// Generic message to prevent account enumeration.
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	ok, err := sec.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		// A malformed stored hash is a data-integrity fault on our side,
		// never a user error. This record can never verify until repaired.
		if errors.Is(err, sec.ErrMalformedHash) {
			return nil, apperr.Internal(fmt.Errorf("auth_service_corrupt_hash user_id=%d: %w", user.ID, err))
		}
		return nil, apperr.Internal(err)
	}

	if !ok {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	return user, nil
}

/*
IssueToken creates a signed bearer token for an authenticated account.

Description: Pure delegation to the configured token codec; no state is
recorded anywhere. The token is valid until expiry with no revocation.

Parameters:
  - userID: int64

Returns:
  - string: Signed compact JWT
  - error: Signing failures
*/
func (service *Service) IssueToken(userID int64) (string, error) {
	token, err := service.tokenProvider.GenerateAccessToken(userID)
	if err != nil {
		return "", fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}
	return token, nil
}

// TokenTTL reports the lifetime of tokens issued by [IssueToken].
func (service *Service) TokenTTL() time.Duration {
	return service.tokenProvider.TTL()
}

// # Session Resolution

/*
Resolve recovers the acting user from a bearer token.

Description: Decodes and verifies the token, extracts the numeric subject,
loads the account, and checks the active flag. Every precondition failure
collapses into an Unauthorized outcome; expiry is surfaced in the failure
detail only. The call is read-only and safe on every authenticated request.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - *User: The resolved principal
  - error: Unauthorized on any violated precondition
*/
func (service *Service) Resolve(context context.Context, token string) (*User, error) {
	claims, err := service.tokenProvider.VerifyToken(token)
	if err != nil {
		if errors.Is(err, sec.ErrTokenExpired) {
			return nil, apperr.Unauthorized("Token expired")
		}
		return nil, apperr.Unauthorized("Could not validate credentials")
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, apperr.Unauthorized("Could not validate credentials")
	}

	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, apperr.Unauthorized("Could not validate credentials")
	}

	if !user.IsActive {
		return nil, apperr.Unauthorized("Could not validate credentials")
	}

	return user, nil
}
