// Copyright (c) 2026 TCGScan. All rights reserved.

package deck

import (
	"context"
	"log/slog"

	"github.com/tcgscan/tcgscan/internal/card"
	"github.com/tcgscan/tcgscan/internal/platform/apperr"
)

// CardResolver confirms catalogue membership before list lines are written.
// Satisfied by [card.Service].
type CardResolver interface {
	GetCard(context context.Context, id int64) (*card.Card, error)
}

// Service implements deck use cases with owner-only access control.
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

// ownedDeck loads a deck header and enforces that actorID owns it.
//
// A deck that exists but belongs to someone else returns Forbidden, not
// NotFound: deck IDs are not secret, only their contents are.
func (service *Service) ownedDeck(context context.Context, deckID, actorID int64) (*Deck, error) {
	deck, err := service.repo.GetByID(context, deckID)
	if err != nil {
		return nil, err
	}

	if deck.OwnerID != actorID {
		return nil, apperr.Forbidden("You do not have access to this deck")
	}

	return deck, nil
}

// CreateDeck persists a new empty deck owned by the actor.
func (service *Service) CreateDeck(context context.Context, deck *Deck) (*Deck, error) {
	if err := service.repo.Create(context, deck); err != nil {
		return nil, err
	}
	return deck, nil
}

// ListDecks returns one page of the actor's decks plus the total count.
func (service *Service) ListDecks(context context.Context, ownerID int64, limit, offset int) ([]*Deck, int, error) {
	return service.repo.ListByOwner(context, ownerID, limit, offset)
}

/*
GetDeck returns a deck with its full card list.

Parameters:
  - context: context.Context
  - deckID: int64
  - actorID: int64 (The authenticated user)

Returns:
  - *Deck: Header plus hydrated Cards slice
  - error: apperr.NotFound, apperr.Forbidden for foreign decks
*/
func (service *Service) GetDeck(context context.Context, deckID, actorID int64) (*Deck, error) {
	deck, err := service.ownedDeck(context, deckID, actorID)
	if err != nil {
		return nil, err
	}

	cards, err := service.repo.ListCards(context, deckID)
	if err != nil {
		return nil, err
	}

	deck.Cards = cards
	return deck, nil
}

// RenameDeck updates a deck's name and format. Owner only.
func (service *Service) RenameDeck(context context.Context, deckID, actorID int64, name string, format *string) (*Deck, error) {
	deck, err := service.ownedDeck(context, deckID, actorID)
	if err != nil {
		return nil, err
	}

	deck.Name = name
	deck.Format = format

	if err := service.repo.Update(context, deck); err != nil {
		return nil, err
	}

	return deck, nil
}

// DeleteDeck removes a deck and its card list. Owner only.
func (service *Service) DeleteDeck(context context.Context, deckID, actorID int64) error {
	if _, err := service.ownedDeck(context, deckID, actorID); err != nil {
		return err
	}
	return service.repo.Delete(context, deckID)
}

// SetCard inserts or replaces one list line in the actor's deck, after
// verifying the card exists in the catalogue.
func (service *Service) SetCard(context context.Context, deckID, actorID int64, line *DeckCard) (*DeckCard, error) {
	if _, err := service.ownedDeck(context, deckID, actorID); err != nil {
		return nil, err
	}

	if _, err := service.cards.GetCard(context, line.CardID); err != nil {
		return nil, err
	}

	line.DeckID = deckID
	if err := service.repo.SetCard(context, line); err != nil {
		return nil, err
	}

	return line, nil
}

// RemoveCard deletes one list line from the actor's deck.
func (service *Service) RemoveCard(context context.Context, deckID, actorID, cardID int64) error {
	if _, err := service.ownedDeck(context, deckID, actorID); err != nil {
		return err
	}
	return service.repo.RemoveCard(context, deckID, cardID)
}
