// Copyright (c) 2026 TCGScan. All rights reserved.

package sec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestTokenService(t *testing.T, ttl time.Duration) *TokenService {
	t.Helper()
	service, err := NewTokenService(testSecret, "HS256", "tcgscan.test", ttl)
	require.NoError(t, err)
	return service
}

/*
TestNewTokenService_Validation checks constructor rejection of bad parameters.
*/
func TestNewTokenService_Validation(t *testing.T) {
	tests := []struct {
		name      string
		secret    string
		algorithm string
		ttl       time.Duration
	}{
		{"empty_secret", "", "HS256", time.Hour},
		{"unknown_algorithm", testSecret, "HS999", time.Hour},
		{"asymmetric_algorithm", testSecret, "RS256", time.Hour},
		{"zero_ttl", testSecret, "HS256", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTokenService(tt.secret, tt.algorithm, "tcgscan.test", tt.ttl)
			assert.Error(t, err)
		})
	}
}

/*
TestTokenService_RoundTrip checks issuance and verification of a fresh token.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service := newTestTokenService(t, 60*time.Minute)

	token, err := service.GenerateAccessToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)

	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "tcgscan.test", claims.Issuer)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

/*
TestTokenService_Expiry advances the service clock past the TTL and checks
that verification fails with ErrTokenExpired.
*/
func TestTokenService_Expiry(t *testing.T) {
	service := newTestTokenService(t, 60*time.Minute)

	issuedAt := time.Now()
	service.now = func() time.Time { return issuedAt }

	token, err := service.GenerateAccessToken(42)
	require.NoError(t, err)

	// Still valid just before expiry.
	service.now = func() time.Time { return issuedAt.Add(59 * time.Minute) }
	_, err = service.VerifyToken(token)
	assert.NoError(t, err)

	// Invalid once the clock passes the expiry claim.
	service.now = func() time.Time { return issuedAt.Add(61 * time.Minute) }
	_, err = service.VerifyToken(token)
	require.ErrorIs(t, err, ErrTokenExpired)
}

/*
TestTokenService_WrongSecret checks that a token signed under a different
secret is rejected as invalid, not expired.
*/
func TestTokenService_WrongSecret(t *testing.T) {
	issuer := newTestTokenService(t, time.Hour)

	other, err := NewTokenService("another-secret-another-secret-32", "HS256", "tcgscan.test", time.Hour)
	require.NoError(t, err)

	token, err := other.GenerateAccessToken(42)
	require.NoError(t, err)

	_, err = issuer.VerifyToken(token)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

/*
TestTokenService_Garbage checks rejection of structurally broken tokens.
*/
func TestTokenService_Garbage(t *testing.T) {
	service := newTestTokenService(t, time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"not_a_jwt", "definitely-not-a-token"},
		{"two_segments", "aaaa.bbbb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.VerifyToken(tt.token)
			require.ErrorIs(t, err, ErrTokenInvalid)
		})
	}
}

/*
TestAuthClaims_UserID checks subject parsing edge cases.
*/
func TestAuthClaims_UserID(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		want    int64
		wantErr bool
	}{
		{"numeric", "7", 7, false},
		{"large", "9007199254740993", 9007199254740993, false},
		{"empty", "", 0, true},
		{"non_numeric", "abc", 0, true},
		{"float", "7.5", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := &AuthClaims{}
			claims.Subject = tt.subject

			id, err := claims.UserID()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrTokenInvalid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}
