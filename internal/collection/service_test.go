// Copyright (c) 2026 TCGScan. All rights reserved.

package collection_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcgscan/tcgscan/internal/card"
	"github.com/tcgscan/tcgscan/internal/collection"
	"github.com/tcgscan/tcgscan/internal/platform/apperr"
	"github.com/tcgscan/tcgscan/pkg/pointer"
)

// entryKey identifies one printing in a user's collection.
type entryKey struct {
	userID int64
	cardID int64
	isFoil bool
}

// fakeRepository is an in-memory collection.Repository for service tests.
type fakeRepository struct {
	entries map[entryKey]*collection.OwnedCard
	byID    map[int64]*collection.OwnedCard
	nextID  int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		entries: make(map[entryKey]*collection.OwnedCard),
		byID:    make(map[int64]*collection.OwnedCard),
		nextID:  1,
	}
}

func (repository *fakeRepository) Upsert(_ context.Context, entry *collection.OwnedCard) error {
	key := entryKey{userID: entry.UserID, cardID: entry.CardID, isFoil: entry.IsFoil}

	if existing, ok := repository.entries[key]; ok {
		existing.Quantity = entry.Quantity
		existing.Condition = entry.Condition
		*entry = *existing
		return nil
	}

	entry.ID = repository.nextID
	repository.nextID++
	repository.entries[key] = entry
	repository.byID[entry.ID] = entry
	return nil
}

func (repository *fakeRepository) ListByUser(_ context.Context, userID int64, _, _ int) ([]*collection.OwnedCard, int, error) {
	var matched []*collection.OwnedCard
	for _, entry := range repository.entries {
		if entry.UserID == userID {
			matched = append(matched, entry)
		}
	}
	return matched, len(matched), nil
}

func (repository *fakeRepository) GetByID(_ context.Context, id int64) (*collection.OwnedCard, error) {
	entry, ok := repository.byID[id]
	if !ok {
		return nil, apperr.NotFound("Collection entry")
	}
	return entry, nil
}

func (repository *fakeRepository) Delete(_ context.Context, id, userID int64) error {
	entry, ok := repository.byID[id]
	if !ok || entry.UserID != userID {
		return apperr.NotFound("Collection entry")
	}

	delete(repository.byID, id)
	delete(repository.entries, entryKey{userID: entry.UserID, cardID: entry.CardID, isFoil: entry.IsFoil})
	return nil
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

func newTestService(t *testing.T, cardIDs ...int64) *collection.Service {
	t.Helper()

	catalog := &fakeCatalog{known: make(map[int64]*card.Card)}
	for _, id := range cardIDs {
		catalog.known[id] = &card.Card{ID: id}
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return collection.NewService(newFakeRepository(), catalog, logger)
}

/*
TestService_UpsertEntry verifies that a holding is persisted with an
assigned ID and the caller's ownership intact.
*/
func TestService_UpsertEntry(t *testing.T) {
	service := newTestService(t, 7)

	entry, err := service.UpsertEntry(context.Background(), &collection.OwnedCard{
		UserID:    1,
		CardID:    7,
		Quantity:  4,
		Condition: pointer.To(collection.ConditionNearMint),
	})

	require.NoError(t, err)
	assert.NotZero(t, entry.ID)
	assert.Equal(t, int64(1), entry.UserID)
	assert.Equal(t, 4, entry.Quantity)
}

/*
TestService_UpsertEntry_Replaces verifies that recording the same printing
twice overwrites quantity and condition instead of adding a second entry.
*/
func TestService_UpsertEntry_Replaces(t *testing.T) {
	service := newTestService(t, 7)

	first, err := service.UpsertEntry(context.Background(), &collection.OwnedCard{
		UserID:   1,
		CardID:   7,
		Quantity: 1,
	})
	require.NoError(t, err)

	second, err := service.UpsertEntry(context.Background(), &collection.OwnedCard{
		UserID:    1,
		CardID:    7,
		Quantity:  3,
		Condition: pointer.To(collection.ConditionPlayed),
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 3, second.Quantity)

	entries, total, err := service.ListEntries(context.Background(), 1, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, entries, 1)
	assert.Equal(t, 3, entries[0].Quantity)
}

/*
TestService_UpsertEntry_FoilIsDistinct verifies that foil and non-foil
copies of the same card are tracked as separate entries.
*/
func TestService_UpsertEntry_FoilIsDistinct(t *testing.T) {
	service := newTestService(t, 7)

	_, err := service.UpsertEntry(context.Background(), &collection.OwnedCard{
		UserID: 1, CardID: 7, Quantity: 2, IsFoil: false,
	})
	require.NoError(t, err)

	_, err = service.UpsertEntry(context.Background(), &collection.OwnedCard{
		UserID: 1, CardID: 7, Quantity: 1, IsFoil: true,
	})
	require.NoError(t, err)

	_, total, err := service.ListEntries(context.Background(), 1, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}

/*
TestService_UpsertEntry_UnknownCard verifies that entries referencing cards
absent from the catalogue are rejected.
*/
func TestService_UpsertEntry_UnknownCard(t *testing.T) {
	service := newTestService(t)

	_, err := service.UpsertEntry(context.Background(), &collection.OwnedCard{
		UserID: 1, CardID: 99, Quantity: 1,
	})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

/*
TestService_RemoveEntry_OwnerScoped verifies that a user cannot delete
another user's entry, and that the refusal reads as not found.
*/
func TestService_RemoveEntry_OwnerScoped(t *testing.T) {
	service := newTestService(t, 7)

	entry, err := service.UpsertEntry(context.Background(), &collection.OwnedCard{
		UserID: 1, CardID: 7, Quantity: 1,
	})
	require.NoError(t, err)

	err = service.RemoveEntry(context.Background(), entry.ID, 2)
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)

	// The rightful owner can still remove it.
	require.NoError(t, service.RemoveEntry(context.Background(), entry.ID, 1))

	_, total, err := service.ListEntries(context.Background(), 1, 20, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
}
