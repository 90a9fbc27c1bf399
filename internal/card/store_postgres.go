// Copyright (c) 2026 TCGScan. All rights reserved.

package card

import (
	"context"
	"errors"
	"fmt"
	"strings"
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

const cardColumns = `id, name, name_search, set_name, set_code, collector_number,
	image_url, mana_cost, type_line, rarity, oracle_text, created_at, updated_at`

func scanCard(row pgx.Row) (*Card, error) {
	c := &Card{}
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.NameSearch,
		&c.SetName,
		&c.SetCode,
		&c.CollectorNumber,
		&c.ImageURL,
		&c.ManaCost,
		&c.TypeLine,
		&c.Rarity,
		&c.OracleText,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

/*
CreateCard persists a new catalogue entry and hydrates its assigned ID.

Parameters:
  - context: context.Context
  - card: *Card

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) CreateCard(context context.Context, card *Card) error {
	const query = `
		INSERT INTO cards (name, name_search, set_name, set_code, collector_number,
			image_url, mana_cost, type_line, rarity, oracle_text, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`

	now := time.Now()
	card.CreatedAt = now
	card.UpdatedAt = now

	err := repository.pool.QueryRow(context, query,
		card.Name,
		card.NameSearch,
		card.SetName,
		card.SetCode,
		card.CollectorNumber,
		card.ImageURL,
		card.ManaCost,
		card.TypeLine,
		card.Rarity,
		card.OracleText,
		card.CreatedAt,
		card.UpdatedAt,
	).Scan(&card.ID)

	if err != nil {
		return fmt.Errorf("postgres_card_repo_create_failed: %w", err)
	}

	return nil
}

/*
UpdateCard synchronizes a card's mutable metadata with the database,
refreshing the updated_at timestamp.
*/
func (repository *PostgresRepository) UpdateCard(context context.Context, card *Card) error {
	const query = `
		UPDATE cards
		SET name = $2, name_search = $3, set_name = $4, set_code = $5,
			collector_number = $6, image_url = $7, mana_cost = $8,
			type_line = $9, rarity = $10, oracle_text = $11, updated_at = $12
		WHERE id = $1`

	card.UpdatedAt = time.Now()

	tag, err := repository.pool.Exec(context, query,
		card.ID,
		card.Name,
		card.NameSearch,
		card.SetName,
		card.SetCode,
		card.CollectorNumber,
		card.ImageURL,
		card.ManaCost,
		card.TypeLine,
		card.Rarity,
		card.OracleText,
		card.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_card_repo_update_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Card")
	}

	return nil
}

// GetCardByID retrieves a single card by its primary key.
func (repository *PostgresRepository) GetCardByID(context context.Context, id int64) (*Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE id = $1`

	card, err := scanCard(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Card")
		}
		return nil, fmt.Errorf("postgres_card_repo_get_failed: %w", err)
	}

	return card, nil
}

/*
ListCards returns one page of catalogue entries matching the filter plus
the total match count for pagination metadata.

Description: Filters compose with AND. Name matching is a substring match
on the accent-folded column so "juzam" finds "Juzám Djinn".
*/
func (repository *PostgresRepository) ListCards(context context.Context, filter ListFilter) ([]*Card, int, error) {
	conditions := []string{"TRUE"}
	args := []any{}

	if filter.NameQuery != "" {
		args = append(args, "%"+filter.NameQuery+"%")
		conditions = append(conditions, fmt.Sprintf("name_search LIKE $%d", len(args)))
	}

	if len(filter.SetCodes) > 0 {
		args = append(args, filter.SetCodes)
		conditions = append(conditions, fmt.Sprintf("set_code = ANY($%d)", len(args)))
	}

	if filter.Rarity != "" {
		args = append(args, filter.Rarity)
		conditions = append(conditions, fmt.Sprintf("rarity = $%d", len(args)))
	}

	where := strings.Join(conditions, " AND ")

	// Total count first, for the pagination meta block.
	var total int
	countQuery := `SELECT COUNT(*) FROM cards WHERE ` + where
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_card_repo_count_failed: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset)
	listQuery := fmt.Sprintf(`SELECT %s FROM cards WHERE %s ORDER BY name, id LIMIT $%d OFFSET $%d`,
		cardColumns, where, len(args)-1, len(args))

	rows, err := repository.pool.Query(context, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_card_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var cards []*Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_card_repo_scan_failed: %w", err)
		}
		cards = append(cards, card)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_card_repo_rows_failed: %w", err)
	}

	return cards, total, nil
}

// AddPriceSnapshot appends a pricing observation for a card.
func (repository *PostgresRepository) AddPriceSnapshot(context context.Context, snapshot *PriceSnapshot) error {
	const query = `
		INSERT INTO price_snapshots (card_id, source, usd, usd_foil, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	if snapshot.CreatedAt.IsZero() {
		snapshot.CreatedAt = time.Now()
	}

	err := repository.pool.QueryRow(context, query,
		snapshot.CardID,
		snapshot.Source,
		snapshot.USD,
		snapshot.USDFoil,
		snapshot.CreatedAt,
	).Scan(&snapshot.ID)

	if err != nil {
		return fmt.Errorf("postgres_card_repo_add_price_failed: %w", err)
	}

	return nil
}

// ListPriceSnapshots returns a card's price history, newest first.
func (repository *PostgresRepository) ListPriceSnapshots(context context.Context, cardID int64, limit int) ([]*PriceSnapshot, error) {
	const query = `
		SELECT id, card_id, source, usd, usd_foil, created_at
		FROM price_snapshots
		WHERE card_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`

	rows, err := repository.pool.Query(context, query, cardID, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres_card_repo_list_prices_failed: %w", err)
	}
	defer rows.Close()

	return collectSnapshots(rows)
}

// LatestPrices returns the most recent snapshot per pricing source.
func (repository *PostgresRepository) LatestPrices(context context.Context, cardID int64) ([]*PriceSnapshot, error) {
	const query = `
		SELECT DISTINCT ON (source) id, card_id, source, usd, usd_foil, created_at
		FROM price_snapshots
		WHERE card_id = $1
		ORDER BY source, created_at DESC, id DESC`

	rows, err := repository.pool.Query(context, query, cardID)
	if err != nil {
		return nil, fmt.Errorf("postgres_card_repo_latest_prices_failed: %w", err)
	}
	defer rows.Close()

	return collectSnapshots(rows)
}

func collectSnapshots(rows pgx.Rows) ([]*PriceSnapshot, error) {
	var snapshots []*PriceSnapshot
	for rows.Next() {
		s := &PriceSnapshot{}
		if err := rows.Scan(&s.ID, &s.CardID, &s.Source, &s.USD, &s.USDFoil, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("postgres_card_repo_scan_price_failed: %w", err)
		}
		snapshots = append(snapshots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_card_repo_price_rows_failed: %w", err)
	}

	return snapshots, nil
}

// SetLegality upserts a card's legality status for one format.
func (repository *PostgresRepository) SetLegality(context context.Context, legality *Legality) error {
	const query = `
		INSERT INTO legalities (card_id, format, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (card_id, format) DO UPDATE SET status = EXCLUDED.status`

	_, err := repository.pool.Exec(context, query,
		legality.CardID,
		legality.Format,
		legality.Status,
	)

	if err != nil {
		return fmt.Errorf("postgres_card_repo_set_legality_failed: %w", err)
	}

	return nil
}

// ListLegalities returns all known format statuses for a card.
func (repository *PostgresRepository) ListLegalities(context context.Context, cardID int64) ([]*Legality, error) {
	const query = `
		SELECT card_id, format, status
		FROM legalities
		WHERE card_id = $1
		ORDER BY format`

	rows, err := repository.pool.Query(context, query, cardID)
	if err != nil {
		return nil, fmt.Errorf("postgres_card_repo_list_legalities_failed: %w", err)
	}
	defer rows.Close()

	var legalities []*Legality
	for rows.Next() {
		l := &Legality{}
		if err := rows.Scan(&l.CardID, &l.Format, &l.Status); err != nil {
			return nil, fmt.Errorf("postgres_card_repo_scan_legality_failed: %w", err)
		}
		legalities = append(legalities, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_card_repo_legality_rows_failed: %w", err)
	}

	return legalities, nil
}
