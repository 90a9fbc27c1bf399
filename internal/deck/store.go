// Copyright (c) 2026 TCGScan. All rights reserved.

package deck

import "context"

// Repository defines the data access contract for decks and their lists.
type Repository interface {
	Create(context context.Context, deck *Deck) error

	// GetByID returns the deck header without its card list.
	GetByID(context context.Context, id int64) (*Deck, error)

	// ListByOwner returns one page of a user's decks plus the total count.
	ListByOwner(context context.Context, ownerID int64, limit, offset int) ([]*Deck, int, error)

	// Update persists name and format changes.
	Update(context context.Context, deck *Deck) error

	// Delete removes a deck and, via cascade, its card list.
	Delete(context context.Context, id int64) error

	// SetCard inserts or replaces one deck list line.
	SetCard(context context.Context, line *DeckCard) error

	// RemoveCard deletes one deck list line.
	RemoveCard(context context.Context, deckID, cardID int64) error

	// ListCards returns the full card list of a deck.
	ListCards(context context.Context, deckID int64) ([]*DeckCard, error)
}
