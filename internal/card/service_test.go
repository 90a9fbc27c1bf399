// Copyright (c) 2026 TCGScan. All rights reserved.

package card_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcgscan/tcgscan/internal/card"
	"github.com/tcgscan/tcgscan/internal/platform/apperr"
)

// fakeRepository is an in-memory card.Repository for service tests.
type fakeRepository struct {
	cards     map[int64]*card.Card
	snapshots map[int64][]*card.PriceSnapshot
	nextID    int64

	latestPricesCalls int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		cards:     make(map[int64]*card.Card),
		snapshots: make(map[int64][]*card.PriceSnapshot),
		nextID:    1,
	}
}

func (repository *fakeRepository) CreateCard(_ context.Context, entity *card.Card) error {
	entity.ID = repository.nextID
	repository.nextID++
	repository.cards[entity.ID] = entity
	return nil
}

func (repository *fakeRepository) UpdateCard(_ context.Context, entity *card.Card) error {
	if _, ok := repository.cards[entity.ID]; !ok {
		return apperr.NotFound("Card")
	}
	repository.cards[entity.ID] = entity
	return nil
}

func (repository *fakeRepository) GetCardByID(_ context.Context, id int64) (*card.Card, error) {
	entity, ok := repository.cards[id]
	if !ok {
		return nil, apperr.NotFound("Card")
	}
	return entity, nil
}

func (repository *fakeRepository) ListCards(_ context.Context, filter card.ListFilter) ([]*card.Card, int, error) {
	var matched []*card.Card
	for _, entity := range repository.cards {
		if filter.NameQuery != "" && entity.NameSearch != filter.NameQuery {
			continue
		}
		matched = append(matched, entity)
	}
	return matched, len(matched), nil
}

func (repository *fakeRepository) AddPriceSnapshot(_ context.Context, snapshot *card.PriceSnapshot) error {
	snapshot.ID = repository.nextID
	repository.nextID++
	repository.snapshots[snapshot.CardID] = append(repository.snapshots[snapshot.CardID], snapshot)
	return nil
}

func (repository *fakeRepository) ListPriceSnapshots(_ context.Context, cardID int64, _ int) ([]*card.PriceSnapshot, error) {
	return repository.snapshots[cardID], nil
}

func (repository *fakeRepository) LatestPrices(_ context.Context, cardID int64) ([]*card.PriceSnapshot, error) {
	repository.latestPricesCalls++
	return repository.snapshots[cardID], nil
}

func (repository *fakeRepository) SetLegality(_ context.Context, _ *card.Legality) error {
	return nil
}

func (repository *fakeRepository) ListLegalities(_ context.Context, _ int64) ([]*card.Legality, error) {
	return nil, nil
}

// fakeCache is an in-memory card.PriceCache recording its traffic.
type fakeCache struct {
	entries map[int64][]*card.PriceSnapshot

	hits        int
	misses      int
	invalidated []int64
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[int64][]*card.PriceSnapshot)}
}

func (cache *fakeCache) GetLatest(_ context.Context, cardID int64) ([]*card.PriceSnapshot, bool) {
	snapshots, ok := cache.entries[cardID]
	if ok {
		cache.hits++
	} else {
		cache.misses++
	}
	return snapshots, ok
}

func (cache *fakeCache) SetLatest(_ context.Context, cardID int64, snapshots []*card.PriceSnapshot) {
	cache.entries[cardID] = snapshots
}

func (cache *fakeCache) Invalidate(_ context.Context, cardID int64) {
	delete(cache.entries, cardID)
	cache.invalidated = append(cache.invalidated, cardID)
}

func newTestService(t *testing.T) (*card.Service, *fakeRepository, *fakeCache) {
	t.Helper()

	repository := newFakeRepository()
	cache := newFakeCache()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return card.NewService(repository, cache, logger), repository, cache
}

func floatPointer(value float64) *float64 {
	return &value
}

/*
TestService_CreateCard_FoldsSearchName verifies that creating a card
populates the accent-folded search column from the display name.
*/
func TestService_CreateCard_FoldsSearchName(t *testing.T) {
	service, repository, _ := newTestService(t)

	created, err := service.CreateCard(context.Background(), &card.Card{Name: "Juzám Djinn"})

	require.NoError(t, err)
	assert.Equal(t, "Juzám Djinn", created.Name)
	assert.Equal(t, "juzam djinn", created.NameSearch)
	assert.Equal(t, created.NameSearch, repository.cards[created.ID].NameSearch)
}

/*
TestService_ListCards_FoldsQuery verifies that a list query matches cards
regardless of the accents and casing in the search input.
*/
func TestService_ListCards_FoldsQuery(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.CreateCard(context.Background(), &card.Card{Name: "Lim-Dûl's Vault"})
	require.NoError(t, err)

	cards, total, err := service.ListCards(context.Background(), card.ListFilter{
		NameQuery: "LIM-DÛL'S VAULT",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, cards, 1)
	assert.Equal(t, "Lim-Dûl's Vault", cards[0].Name)
}

/*
TestService_LatestPrices_CacheMissThenHit verifies the read-through cache:
the first lookup hits the repository and populates the cache, the second is
served from the cache alone.
*/
func TestService_LatestPrices_CacheMissThenHit(t *testing.T) {
	service, repository, cache := newTestService(t)

	created, err := service.CreateCard(context.Background(), &card.Card{Name: "Brainstorm"})
	require.NoError(t, err)

	_, err = service.RecordPrice(context.Background(), &card.PriceSnapshot{
		CardID: created.ID,
		Source: "scryfall",
		USD:    floatPointer(1.25),
	})
	require.NoError(t, err)

	first, err := service.LatestPrices(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, repository.latestPricesCalls)
	assert.Equal(t, 1, cache.misses)

	second, err := service.LatestPrices(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, 1, repository.latestPricesCalls, "second read must be served from cache")
	assert.Equal(t, 1, cache.hits)
}

/*
TestService_RecordPrice_InvalidatesCache verifies that appending a new
snapshot drops the stale cached latest prices for that card.
*/
func TestService_RecordPrice_InvalidatesCache(t *testing.T) {
	service, _, cache := newTestService(t)

	created, err := service.CreateCard(context.Background(), &card.Card{Name: "Counterspell"})
	require.NoError(t, err)

	_, err = service.RecordPrice(context.Background(), &card.PriceSnapshot{
		CardID: created.ID,
		Source: "scryfall",
		USD:    floatPointer(0.99),
	})
	require.NoError(t, err)

	// Prime the cache, then record again.
	_, err = service.LatestPrices(context.Background(), created.ID)
	require.NoError(t, err)

	_, err = service.RecordPrice(context.Background(), &card.PriceSnapshot{
		CardID: created.ID,
		Source: "scryfall",
		USD:    floatPointer(1.10),
	})
	require.NoError(t, err)

	assert.Contains(t, cache.invalidated, created.ID)

	latest, err := service.LatestPrices(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Len(t, latest, 2)
}

/*
TestService_RecordPrice_UnknownCard verifies that snapshots for cards that
do not exist are rejected with a not-found error.
*/
func TestService_RecordPrice_UnknownCard(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.RecordPrice(context.Background(), &card.PriceSnapshot{
		CardID: 42,
		Source: "scryfall",
		USD:    floatPointer(2.50),
	})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}
