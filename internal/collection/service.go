// Copyright (c) 2026 TCGScan. All rights reserved.

package collection

import (
	"context"
	"log/slog"

	"github.com/tcgscan/tcgscan/internal/card"
)

// CardResolver confirms catalogue membership before entries are written.
// Satisfied by [card.Service].
type CardResolver interface {
	GetCard(context context.Context, id int64) (*card.Card, error)
}

// Service implements collection use cases, all scoped to a single owner.
type Service struct {
	repo   Repository
	cards  CardResolver
	logger *slog.Logger
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(repo Repository, cards CardResolver, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		cards:  cards,
		logger: logger,
	}
}

/*
UpsertEntry records or replaces one holding in the owner's collection.

Description: Verifies the referenced card exists in the catalogue, then
writes the entry. Re-recording the same (card, foil) printing overwrites
quantity and condition.

Parameters:
  - context: context.Context
  - entry: *OwnedCard (UserID must be the authenticated owner)

Returns:
  - *OwnedCard: Persisted entry with ID and timestamps
  - error: apperr.NotFound for unknown cards, or persistence failures
*/
func (service *Service) UpsertEntry(context context.Context, entry *OwnedCard) (*OwnedCard, error) {
	if _, err := service.cards.GetCard(context, entry.CardID); err != nil {
		return nil, err
	}

	if err := service.repo.Upsert(context, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// ListEntries returns one page of the owner's collection plus the total count.
func (service *Service) ListEntries(context context.Context, userID int64, limit, offset int) ([]*OwnedCard, int, error) {
	return service.repo.ListByUser(context, userID, limit, offset)
}

// RemoveEntry deletes one holding from the owner's collection. Entries
// belonging to other users read as not found.
func (service *Service) RemoveEntry(context context.Context, id, userID int64) error {
	return service.repo.Delete(context, id, userID)
}
