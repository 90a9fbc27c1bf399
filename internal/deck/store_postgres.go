// Copyright (c) 2026 TCGScan. All rights reserved.

package deck

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tcgscan/tcgscan/internal/platform/apperr"
)

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const deckColumns = `id, name, format, owner_id, created_at, updated_at`

func scanDeck(row pgx.Row) (*Deck, error) {
	d := &Deck{}
	err := row.Scan(
		&d.ID,
		&d.Name,
		&d.Format,
		&d.OwnerID,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Create persists a new deck header and hydrates its assigned ID.
func (repository *PostgresRepository) Create(context context.Context, deck *Deck) error {
	const query = `
		INSERT INTO decks (name, format, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		RETURNING id`

	now := time.Now()
	deck.CreatedAt = now
	deck.UpdatedAt = now

	err := repository.pool.QueryRow(context, query,
		deck.Name,
		deck.Format,
		deck.OwnerID,
		now,
	).Scan(&deck.ID)

	if err != nil {
		return fmt.Errorf("postgres_deck_repo_create_failed: %w", err)
	}

	return nil
}

// GetByID retrieves a deck header by its primary key.
func (repository *PostgresRepository) GetByID(context context.Context, id int64) (*Deck, error) {
	query := `SELECT ` + deckColumns + ` FROM decks WHERE id = $1`

	deck, err := scanDeck(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Deck")
		}
		return nil, fmt.Errorf("postgres_deck_repo_get_failed: %w", err)
	}

	return deck, nil
}

// ListByOwner returns one page of a user's decks plus the total count.
func (repository *PostgresRepository) ListByOwner(context context.Context, ownerID int64, limit, offset int) ([]*Deck, int, error) {
	var total int
	const countQuery = `SELECT COUNT(*) FROM decks WHERE owner_id = $1`
	if err := repository.pool.QueryRow(context, countQuery, ownerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_deck_repo_count_failed: %w", err)
	}

	query := `SELECT ` + deckColumns + `
		FROM decks
		WHERE owner_id = $1
		ORDER BY updated_at DESC, id DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(context, query, ownerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_deck_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var decks []*Deck
	for rows.Next() {
		deck, err := scanDeck(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_deck_repo_scan_failed: %w", err)
		}
		decks = append(decks, deck)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_deck_repo_rows_failed: %w", err)
	}

	return decks, total, nil
}

// Update persists name and format changes, refreshing updated_at.
func (repository *PostgresRepository) Update(context context.Context, deck *Deck) error {
	const query = `
		UPDATE decks
		SET name = $2, format = $3, updated_at = $4
		WHERE id = $1`

	deck.UpdatedAt = time.Now()

	tag, err := repository.pool.Exec(context, query,
		deck.ID,
		deck.Name,
		deck.Format,
		deck.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_deck_repo_update_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Deck")
	}

	return nil
}

// Delete removes a deck. The deck_cards rows cascade at the schema level.
func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	const query = `DELETE FROM decks WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_deck_repo_delete_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Deck")
	}

	return nil
}

// SetCard inserts or replaces one deck list line.
func (repository *PostgresRepository) SetCard(context context.Context, line *DeckCard) error {
	const query = `
		INSERT INTO deck_cards (deck_id, card_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (deck_id, card_id) DO UPDATE SET quantity = EXCLUDED.quantity`

	_, err := repository.pool.Exec(context, query,
		line.DeckID,
		line.CardID,
		line.Quantity,
	)

	if err != nil {
		return fmt.Errorf("postgres_deck_repo_set_card_failed: %w", err)
	}

	return nil
}

// RemoveCard deletes one deck list line.
func (repository *PostgresRepository) RemoveCard(context context.Context, deckID, cardID int64) error {
	const query = `DELETE FROM deck_cards WHERE deck_id = $1 AND card_id = $2`

	tag, err := repository.pool.Exec(context, query, deckID, cardID)
	if err != nil {
		return fmt.Errorf("postgres_deck_repo_remove_card_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Deck card")
	}

	return nil
}

// ListCards returns the full card list of a deck, ordered by card ID.
func (repository *PostgresRepository) ListCards(context context.Context, deckID int64) ([]*DeckCard, error) {
	const query = `
		SELECT deck_id, card_id, quantity
		FROM deck_cards
		WHERE deck_id = $1
		ORDER BY card_id`

	rows, err := repository.pool.Query(context, query, deckID)
	if err != nil {
		return nil, fmt.Errorf("postgres_deck_repo_list_cards_failed: %w", err)
	}
	defer rows.Close()

	var lines []*DeckCard
	for rows.Next() {
		line := &DeckCard{}
		if err := rows.Scan(&line.DeckID, &line.CardID, &line.Quantity); err != nil {
			return nil, fmt.Errorf("postgres_deck_repo_scan_card_failed: %w", err)
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_deck_repo_card_rows_failed: %w", err)
	}

	return lines, nil
}
