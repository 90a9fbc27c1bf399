// Copyright (c) 2026 TCGScan. All rights reserved.

/*
Package deck manages user-built decks: named, format-tagged lists of
catalogue cards with per-card quantities.

Decks are readable by their owner only, and every mutation checks
ownership before touching the list. Unlike collection entries, a deck
card carries no physical details; it is purely (card, quantity).
*/
package deck

import "time"

// Deck is a user's named card list for one play format.
type Deck struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Format    *string   `json:"format"`
	OwnerID   int64     `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Cards is populated only when a single deck is fetched in full.
	Cards []*DeckCard `json:"cards,omitempty"`
}

// DeckCard is one line of a deck list.
type DeckCard struct {
	DeckID   int64 `json:"-"`
	CardID   int64 `json:"card_id"`
	Quantity int   `json:"quantity"`
}
