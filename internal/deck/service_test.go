// Copyright (c) 2026 TCGScan. All rights reserved.

package deck_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcgscan/tcgscan/internal/card"
	"github.com/tcgscan/tcgscan/internal/deck"
	"github.com/tcgscan/tcgscan/internal/platform/apperr"
)

type lineKey struct {
	deckID int64
	cardID int64
}

// fakeRepository is an in-memory deck.Repository for service tests.
type fakeRepository struct {
	decks  map[int64]*deck.Deck
	lines  map[lineKey]*deck.DeckCard
	nextID int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		decks:  make(map[int64]*deck.Deck),
		lines:  make(map[lineKey]*deck.DeckCard),
		nextID: 1,
	}
}

func (repository *fakeRepository) Create(_ context.Context, entity *deck.Deck) error {
	entity.ID = repository.nextID
	repository.nextID++
	repository.decks[entity.ID] = entity
	return nil
}

func (repository *fakeRepository) GetByID(_ context.Context, id int64) (*deck.Deck, error) {
	entity, ok := repository.decks[id]
	if !ok {
		return nil, apperr.NotFound("Deck")
	}
	copied := *entity
	return &copied, nil
}

func (repository *fakeRepository) ListByOwner(_ context.Context, ownerID int64, _, _ int) ([]*deck.Deck, int, error) {
	var matched []*deck.Deck
	for _, entity := range repository.decks {
		if entity.OwnerID == ownerID {
			matched = append(matched, entity)
		}
	}
	return matched, len(matched), nil
}

func (repository *fakeRepository) Update(_ context.Context, entity *deck.Deck) error {
	if _, ok := repository.decks[entity.ID]; !ok {
		return apperr.NotFound("Deck")
	}
	copied := *entity
	repository.decks[entity.ID] = &copied
	return nil
}

func (repository *fakeRepository) Delete(_ context.Context, id int64) error {
	if _, ok := repository.decks[id]; !ok {
		return apperr.NotFound("Deck")
	}
	delete(repository.decks, id)
	for key := range repository.lines {
		if key.deckID == id {
			delete(repository.lines, key)
		}
	}
	return nil
}

func (repository *fakeRepository) SetCard(_ context.Context, line *deck.DeckCard) error {
	repository.lines[lineKey{deckID: line.DeckID, cardID: line.CardID}] = line
	return nil
}

func (repository *fakeRepository) RemoveCard(_ context.Context, deckID, cardID int64) error {
	key := lineKey{deckID: deckID, cardID: cardID}
	if _, ok := repository.lines[key]; !ok {
		return apperr.NotFound("Deck card")
	}
	delete(repository.lines, key)
	return nil
}

func (repository *fakeRepository) ListCards(_ context.Context, deckID int64) ([]*deck.DeckCard, error) {
	var lines []*deck.DeckCard
	for key, line := range repository.lines {
		if key.deckID == deckID {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// fakeCatalog resolves only the card IDs it was seeded with.
type fakeCatalog struct {
	known map[int64]*card.Card
}

func (catalog *fakeCatalog) GetCard(_ context.Context, id int64) (*card.Card, error) {
	entity, ok := catalog.known[id]
	if !ok {
		return nil, apperr.NotFound("Card")
	}
	return entity, nil
}

func newTestService(t *testing.T, cardIDs ...int64) *deck.Service {
	t.Helper()

	catalog := &fakeCatalog{known: make(map[int64]*card.Card)}
	for _, id := range cardIDs {
		catalog.known[id] = &card.Card{ID: id}
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return deck.NewService(newFakeRepository(), catalog, logger)
}

/*
TestService_CreateAndGetDeck verifies the create/fetch round trip including
card list hydration.
*/
func TestService_CreateAndGetDeck(t *testing.T) {
	service := newTestService(t, 7)

	created, err := service.CreateDeck(context.Background(), &deck.Deck{
		Name:    "Mono Blue Tempo",
		OwnerID: 1,
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	_, err = service.SetCard(context.Background(), created.ID, 1, &deck.DeckCard{
		CardID:   7,
		Quantity: 4,
	})
	require.NoError(t, err)

	fetched, err := service.GetDeck(context.Background(), created.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "Mono Blue Tempo", fetched.Name)
	require.Len(t, fetched.Cards, 1)
	assert.Equal(t, int64(7), fetched.Cards[0].CardID)
	assert.Equal(t, 4, fetched.Cards[0].Quantity)
}

/*
TestService_ForeignDeck_Forbidden verifies that every operation on another
user's deck is refused with a Forbidden error, not NotFound.
*/
func TestService_ForeignDeck_Forbidden(t *testing.T) {
	service := newTestService(t, 7)

	created, err := service.CreateDeck(context.Background(), &deck.Deck{
		Name:    "Owner's Deck",
		OwnerID: 1,
	})
	require.NoError(t, err)

	const intruderID = int64(2)

	assertForbidden := func(t *testing.T, err error) {
		t.Helper()
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "FORBIDDEN", ae.Code)
	}

	_, err = service.GetDeck(context.Background(), created.ID, intruderID)
	assertForbidden(t, err)

	_, err = service.RenameDeck(context.Background(), created.ID, intruderID, "Stolen", nil)
	assertForbidden(t, err)

	err = service.DeleteDeck(context.Background(), created.ID, intruderID)
	assertForbidden(t, err)

	_, err = service.SetCard(context.Background(), created.ID, intruderID, &deck.DeckCard{
		CardID: 7, Quantity: 1,
	})
	assertForbidden(t, err)

	err = service.RemoveCard(context.Background(), created.ID, intruderID, 7)
	assertForbidden(t, err)
}

/*
TestService_SetCard_Replaces verifies that setting the same card twice
updates the quantity rather than duplicating the list line.
*/
func TestService_SetCard_Replaces(t *testing.T) {
	service := newTestService(t, 7)

	created, err := service.CreateDeck(context.Background(), &deck.Deck{
		Name:    "Burn",
		OwnerID: 1,
	})
	require.NoError(t, err)

	_, err = service.SetCard(context.Background(), created.ID, 1, &deck.DeckCard{CardID: 7, Quantity: 2})
	require.NoError(t, err)

	_, err = service.SetCard(context.Background(), created.ID, 1, &deck.DeckCard{CardID: 7, Quantity: 4})
	require.NoError(t, err)

	fetched, err := service.GetDeck(context.Background(), created.ID, 1)
	require.NoError(t, err)
	require.Len(t, fetched.Cards, 1)
	assert.Equal(t, 4, fetched.Cards[0].Quantity)
}

/*
TestService_SetCard_UnknownCard verifies that list lines referencing cards
absent from the catalogue are rejected.
*/
func TestService_SetCard_UnknownCard(t *testing.T) {
	service := newTestService(t)

	created, err := service.CreateDeck(context.Background(), &deck.Deck{
		Name:    "Empty",
		OwnerID: 1,
	})
	require.NoError(t, err)

	_, err = service.SetCard(context.Background(), created.ID, 1, &deck.DeckCard{
		CardID: 404, Quantity: 1,
	})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

/*
TestService_RenameDeck verifies the rename path for the rightful owner.
*/
func TestService_RenameDeck(t *testing.T) {
	service := newTestService(t)

	created, err := service.CreateDeck(context.Background(), &deck.Deck{
		Name:    "Draft Leftovers",
		OwnerID: 1,
	})
	require.NoError(t, err)

	format := "modern"
	renamed, err := service.RenameDeck(context.Background(), created.ID, 1, "Jund Midrange", &format)
	require.NoError(t, err)
	assert.Equal(t, "Jund Midrange", renamed.Name)
	require.NotNil(t, renamed.Format)
	assert.Equal(t, "modern", *renamed.Format)
}
