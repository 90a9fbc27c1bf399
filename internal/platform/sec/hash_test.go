// Copyright (c) 2026 TCGScan. All rights reserved.

package sec_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcgscan/tcgscan/internal/platform/sec"
)

/*
TestHashPassword_RoundTrip checks that any hashed password verifies against itself.
*/
func TestHashPassword_RoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"simple", "hunter2"},
		{"long", strings.Repeat("correct horse battery staple ", 8)},
		{"unicode", "pàsswörd-ドラゴン"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := sec.HashPassword(tt.password)
			require.NoError(t, err)

			ok, err := sec.VerifyPassword(tt.password, encoded)
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}
}

/*
TestHashPassword_Encoding checks the "<salt-hex>:<hash-hex>" shape of the output.
*/
func TestHashPassword_Encoding(t *testing.T) {
	encoded, err := sec.HashPassword("hunter2")
	require.NoError(t, err)

	parts := strings.Split(encoded, ":")
	require.Len(t, parts, 2)

	// 16-byte salt and 32-byte derived key, both hex-encoded.
	assert.Len(t, parts[0], 32)
	assert.Len(t, parts[1], 64)
}

/*
TestHashPassword_SaltFreshness checks that hashing the same password twice
yields two different encodings.
*/
func TestHashPassword_SaltFreshness(t *testing.T) {
	first, err := sec.HashPassword("hunter2")
	require.NoError(t, err)

	second, err := sec.HashPassword("hunter2")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

/*
TestVerifyPassword_WrongPassword checks that a different password never verifies.
*/
func TestVerifyPassword_WrongPassword(t *testing.T) {
	encoded, err := sec.HashPassword("hunter2")
	require.NoError(t, err)

	ok, err := sec.VerifyPassword("hunter3", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

/*
TestVerifyPassword_Malformed checks that corrupt stored hashes fail with
ErrMalformedHash instead of crashing or silently mismatching.
*/
func TestVerifyPassword_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
	}{
		{"no_delimiter", "deadbeef"},
		{"too_many_delimiters", "aa:bb:cc"},
		{"empty", ""},
		{"non_hex_salt", "zz:deadbeef"},
		{"non_hex_hash", "deadbeef:zz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := sec.VerifyPassword("hunter2", tt.encoded)
			assert.False(t, ok)
			require.ErrorIs(t, err, sec.ErrMalformedHash)
		})
	}
}
