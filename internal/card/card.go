// Copyright (c) 2026 TCGScan. All rights reserved.

/*
Package card implements the trading-card catalogue: card metadata, daily
price snapshots, and per-format legality status.

# Architecture

  - Service: Orchestrates catalogue reads/writes and the price cache.
  - Repository: Abstracted interface over PostgreSQL.
  - PriceCache: Best-effort Redis cache in front of the latest-price query.
*/
package card

import "time"

// Card is a trading card with metadata pulled from external sources.
type Card struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	SetName         *string   `json:"set_name"`
	SetCode         *string   `json:"set_code"`
	CollectorNumber *string   `json:"collector_number"`
	ImageURL        *string   `json:"image_url"`
	ManaCost        *string   `json:"mana_cost"`
	TypeLine        *string   `json:"type_line"`
	Rarity          *string   `json:"rarity"`
	OracleText      *string   `json:"oracle_text"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// NameSearch is the accent-folded lowercase form of Name, maintained by
	// the service for diacritic-insensitive search. Never exposed.
	NameSearch string `json:"-"`
}

// PriceSnapshot is one day's pricing for a card from a single source.
type PriceSnapshot struct {
	ID        int64     `json:"id"`
	CardID    int64     `json:"card_id"`
	Source    string    `json:"source"`
	USD       *float64  `json:"usd"`
	USDFoil   *float64  `json:"usd_foil"`
	CreatedAt time.Time `json:"created_at"`
}

// Legality is a card's status in one play format.
type Legality struct {
	CardID int64  `json:"card_id"`
	Format string `json:"format"`
	Status string `json:"status"`
}

// Known legality statuses.
const (
	StatusLegal      = "legal"
	StatusNotLegal   = "not_legal"
	StatusBanned     = "banned"
	StatusRestricted = "restricted"
)
