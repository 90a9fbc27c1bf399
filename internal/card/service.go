// Copyright (c) 2026 TCGScan. All rights reserved.

package card

import (
	"context"
	"log/slog"

	"github.com/tcgscan/tcgscan/pkg/search"
)

// Service implements catalogue use cases.
type Service struct {
	repo   Repository
	cache  PriceCache
	logger *slog.Logger
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(repo Repository, cache PriceCache, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// CreateCard persists a new catalogue entry, maintaining the folded search name.
func (service *Service) CreateCard(context context.Context, card *Card) (*Card, error) {
	card.NameSearch = search.Normalize(card.Name)

	if err := service.repo.CreateCard(context, card); err != nil {
		return nil, err
	}

	return card, nil
}

// UpdateCard replaces a card's metadata, refreshing the folded search name.
func (service *Service) UpdateCard(context context.Context, card *Card) (*Card, error) {
	card.NameSearch = search.Normalize(card.Name)

	if err := service.repo.UpdateCard(context, card); err != nil {
		return nil, err
	}

	return card, nil
}

// GetCard retrieves a single card by ID.
func (service *Service) GetCard(context context.Context, id int64) (*Card, error) {
	return service.repo.GetCardByID(context, id)
}

// ListCards returns one page of cards plus the total match count.
// The name query is folded so accented names match unaccented input.
func (service *Service) ListCards(context context.Context, filter ListFilter) ([]*Card, int, error) {
	filter.NameQuery = search.Normalize(filter.NameQuery)
	return service.repo.ListCards(context, filter)
}

// RecordPrice appends a price snapshot and invalidates the latest-price cache.
func (service *Service) RecordPrice(context context.Context, snapshot *PriceSnapshot) (*PriceSnapshot, error) {
	// Reject snapshots for cards that do not exist.
	if _, err := service.repo.GetCardByID(context, snapshot.CardID); err != nil {
		return nil, err
	}

	if err := service.repo.AddPriceSnapshot(context, snapshot); err != nil {
		return nil, err
	}

	if service.cache != nil {
		service.cache.Invalidate(context, snapshot.CardID)
	}

	return snapshot, nil
}

// PriceHistory returns a card's snapshots, newest first.
func (service *Service) PriceHistory(context context.Context, cardID int64, limit int) ([]*PriceSnapshot, error) {
	if _, err := service.repo.GetCardByID(context, cardID); err != nil {
		return nil, err
	}
	return service.repo.ListPriceSnapshots(context, cardID, limit)
}

// LatestPrices returns the newest snapshot per source, read through the cache.
func (service *Service) LatestPrices(context context.Context, cardID int64) ([]*PriceSnapshot, error) {
	if service.cache != nil {
		if snapshots, ok := service.cache.GetLatest(context, cardID); ok {
			return snapshots, nil
		}
	}

	if _, err := service.repo.GetCardByID(context, cardID); err != nil {
		return nil, err
	}

	snapshots, err := service.repo.LatestPrices(context, cardID)
	if err != nil {
		return nil, err
	}

	if service.cache != nil {
		service.cache.SetLatest(context, cardID, snapshots)
	}

	return snapshots, nil
}

// SetLegality upserts a card's status for one format.
func (service *Service) SetLegality(context context.Context, legality *Legality) error {
	if _, err := service.repo.GetCardByID(context, legality.CardID); err != nil {
		return err
	}
	return service.repo.SetLegality(context, legality)
}

// Legalities returns all known format statuses for a card.
func (service *Service) Legalities(context context.Context, cardID int64) ([]*Legality, error) {
	if _, err := service.repo.GetCardByID(context, cardID); err != nil {
		return nil, err
	}
	return service.repo.ListLegalities(context, cardID)
}
