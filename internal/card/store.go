// Copyright (c) 2026 TCGScan. All rights reserved.

package card

import "context"

// ListFilter narrows a catalogue listing.
type ListFilter struct {
	// NameQuery matches against the accent-folded name column. Must already
	// be normalized by the caller.
	NameQuery string

	// SetCodes restricts results to the given set codes.
	SetCodes []string

	// Rarity restricts results to a single rarity.
	Rarity string

	Limit  int
	Offset int
}

// Repository defines the data access contract for the card catalogue.
type Repository interface {
	CreateCard(context context.Context, card *Card) error
	UpdateCard(context context.Context, card *Card) error
	GetCardByID(context context.Context, id int64) (*Card, error)

	// ListCards returns one page of matching cards plus the total match count.
	ListCards(context context.Context, filter ListFilter) ([]*Card, int, error)

	AddPriceSnapshot(context context.Context, snapshot *PriceSnapshot) error

	// ListPriceSnapshots returns the price history for a card, newest first.
	ListPriceSnapshots(context context.Context, cardID int64, limit int) ([]*PriceSnapshot, error)

	// LatestPrices returns the most recent snapshot per source for a card.
	LatestPrices(context context.Context, cardID int64) ([]*PriceSnapshot, error)

	// SetLegality upserts a card's status for one format.
	SetLegality(context context.Context, legality *Legality) error
	ListLegalities(context context.Context, cardID int64) ([]*Legality, error)
}

// PriceCache is a best-effort cache in front of [Repository.LatestPrices].
//
// Implementations must treat the backing store as volatile: a miss or an
// infrastructure error simply falls through to the repository.
type PriceCache interface {
	// GetLatest returns cached latest prices and whether the entry existed.
	GetLatest(context context.Context, cardID int64) ([]*PriceSnapshot, bool)

	// SetLatest stores latest prices for a card with the cache's TTL.
	SetLatest(context context.Context, cardID int64, snapshots []*PriceSnapshot)

	// Invalidate drops the cached entry after a new snapshot is recorded.
	Invalidate(context context.Context, cardID int64)
}
