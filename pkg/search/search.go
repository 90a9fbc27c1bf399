// Copyright (c) 2026 TCGScan. All rights reserved.

// Package search normalizes free-text search terms for card-name matching.
//
// # Usage
//
// Card names routinely carry diacritics ("Lim-Dûl's Vault", "Séance", "Juzám
// Djinn"). Folding both the query and the stored name to plain lowercase
// ASCII lets a user typing "juzam" find "Juzám".
package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize folds an arbitrary Unicode search term to lowercase with
// accents removed and whitespace collapsed.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD (decomposes accented chars: é → e + combining acute).
// 2. Removes combining marks (accents).
// 3. Converts to lowercase.
// 4. Collapses internal whitespace runs and trims the ends.
func Normalize(s string) string {
	// 1. Normalize and remove accents
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		// Fold what we can; the raw term still matches exact spellings.
		result = s
	}

	// 2. Lowercase
	result = strings.ToLower(result)

	// 3. Collapse whitespace
	return strings.Join(strings.Fields(result), " ")
}
