// Copyright (c) 2026 TCGScan. All rights reserved.

package sec

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// # Token Errors

var (
	// ErrTokenExpired is returned when a token's signature is valid but its
	// expiry claim is in the past.
	ErrTokenExpired = errors.New("sec: token expired")

	// ErrTokenInvalid is returned for every other verification failure:
	// bad signature, malformed structure, or wrong signing algorithm.
	ErrTokenInvalid = errors.New("sec: token invalid")
)

// AuthClaims represents the payload embedded inside a JWT access token.
//
// The subject claim is the decimal string form of the user's numeric ID.
// One canonical representation avoids cross-type comparison bugs when the
// subject is later used for a primary-key lookup.
type AuthClaims struct {
	jwt.RegisteredClaims
}

// UserID parses the subject claim back into a numeric user ID.
// It fails if the claim is absent or not a decimal integer.
func (claims *AuthClaims) UserID() (int64, error) {
	if claims.Subject == "" {
		return 0, fmt.Errorf("%w: missing subject claim", ErrTokenInvalid)
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: non-numeric subject claim", ErrTokenInvalid)
	}

	return id, nil
}

// TokenService handles generation and verification of signed bearer tokens.
//
// Tokens are stateless: once issued they are valid until expiry, with no
// server-side session record and no revocation.
type TokenService struct {
	secret    []byte
	method    jwt.SigningMethod
	algorithm string
	issuer    string
	ttl       time.Duration

	// now is a clock hook. Overridden in tests to simulate expiry.
	now func() time.Time
}

// NewTokenService creates a new TokenService.
//
// # Parameters
//   - secret: The symmetric signing secret.
//   - algorithm: HMAC algorithm identifier (HS256, HS384, HS512).
//   - issuer: The 'iss' claim stamped on every token.
//   - ttl: Lifetime of issued tokens.
func NewTokenService(secret, algorithm, issuer string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("sec: signing secret must not be empty")
	}

	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("sec: unknown signing algorithm %q", algorithm)
	}

	// Only symmetric HMAC schemes are supported; the secret is a shared key.
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("sec: algorithm %q is not an HMAC scheme", algorithm)
	}

	if ttl <= 0 {
		return nil, fmt.Errorf("sec: token TTL must be positive, got %s", ttl)
	}

	return &TokenService{
		secret:    []byte(secret),
		method:    method,
		algorithm: algorithm,
		issuer:    issuer,
		ttl:       ttl,
		now:       time.Now,
	}, nil
}

// TTL reports the configured lifetime of issued tokens.
func (service *TokenService) TTL() time.Duration {
	return service.ttl
}

// GenerateAccessToken creates a new signed JWT asserting the given user ID.
func (service *TokenService) GenerateAccessToken(userID int64) (string, error) {
	currentTime := service.now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(service.ttl)),
		},
	}

	token := jwt.NewWithClaims(service.method, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// VerifyToken checks the signature, algorithm, and expiry of a JWT string.
//
// Claims are never returned from an unverified token. Expired tokens yield
// [ErrTokenExpired]; every other failure yields [ErrTokenInvalid].
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	claims := &AuthClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			return service.secret, nil
		},
		jwt.WithValidMethods([]string{service.algorithm}),
		jwt.WithTimeFunc(service.now),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
