// Copyright (c) 2026 TCGScan. All rights reserved.

package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tcgscan/tcgscan/pkg/search"
)

/*
TestNormalize checks accent folding, lowercasing, and whitespace collapsing.
*/
func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Black Lotus", "black lotus"},
		{"accents", "Juzám Djinn", "juzam djinn"},
		{"apostrophe_accent", "Lim-Dûl's Vault", "lim-dul's vault"},
		{"extra_whitespace", "  Séance   of\tthe  Lost ", "seance of the lost"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, search.Normalize(tt.in))
		})
	}
}
