// Copyright (c) 2026 TCGScan. All rights reserved.

package collection

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

const ownedCardColumns = `id, user_id, card_id, quantity, is_foil, condition, created_at, updated_at`

func scanOwnedCard(row pgx.Row) (*OwnedCard, error) {
	entry := &OwnedCard{}
	err := row.Scan(
		&entry.ID,
		&entry.UserID,
		&entry.CardID,
		&entry.Quantity,
		&entry.IsFoil,
		&entry.Condition,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

/*
Upsert inserts or replaces a collection entry.

Description: The (user_id, card_id, is_foil) triple is unique, so recording
the same printing again overwrites quantity and condition rather than
creating a second row. The assigned ID and timestamps are hydrated back.

Parameters:
  - context: context.Context
  - entry: *OwnedCard

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) Upsert(context context.Context, entry *OwnedCard) error {
	const query = `
		INSERT INTO user_cards (user_id, card_id, quantity, is_foil, condition, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (user_id, card_id, is_foil) DO UPDATE
			SET quantity = EXCLUDED.quantity,
				condition = EXCLUDED.condition,
				updated_at = EXCLUDED.updated_at
		RETURNING id, created_at, updated_at`

	now := time.Now()

	err := repository.pool.QueryRow(context, query,
		entry.UserID,
		entry.CardID,
		entry.Quantity,
		entry.IsFoil,
		entry.Condition,
		now,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)

	if err != nil {
		return fmt.Errorf("postgres_collection_repo_upsert_failed: %w", err)
	}

	return nil
}

/*
ListByUser returns one page of a user's collection entries plus the total
count for pagination metadata.
*/
func (repository *PostgresRepository) ListByUser(context context.Context, userID int64, limit, offset int) ([]*OwnedCard, int, error) {
	var total int
	const countQuery = `SELECT COUNT(*) FROM user_cards WHERE user_id = $1`
	if err := repository.pool.QueryRow(context, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_collection_repo_count_failed: %w", err)
	}

	query := `SELECT ` + ownedCardColumns + `
		FROM user_cards
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(context, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_collection_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var entries []*OwnedCard
	for rows.Next() {
		entry, err := scanOwnedCard(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_collection_repo_scan_failed: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_collection_repo_rows_failed: %w", err)
	}

	return entries, total, nil
}

// GetByID retrieves a single collection entry by its primary key.
func (repository *PostgresRepository) GetByID(context context.Context, id int64) (*OwnedCard, error) {
	query := `SELECT ` + ownedCardColumns + ` FROM user_cards WHERE id = $1`

	entry, err := scanOwnedCard(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Collection entry")
		}
		return nil, fmt.Errorf("postgres_collection_repo_get_failed: %w", err)
	}

	return entry, nil
}

/*
Delete removes a single collection entry owned by the given user.

Description: The user_id predicate makes removal owner-scoped at the SQL
level, so a valid ID belonging to another user reads as not found.
*/
func (repository *PostgresRepository) Delete(context context.Context, id, userID int64) error {
	const query = `DELETE FROM user_cards WHERE id = $1 AND user_id = $2`

	tag, err := repository.pool.Exec(context, query, id, userID)
	if err != nil {
		return fmt.Errorf("postgres_collection_repo_delete_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Collection entry")
	}

	return nil
}
