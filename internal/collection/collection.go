// Copyright (c) 2026 TCGScan. All rights reserved.

/*
Package collection tracks which physical cards each user owns.

An owned card is the (user, card) pair plus print-specific details: how
many copies, whether the copy is foil, and its physical condition. All
operations are scoped to the authenticated owner.
*/
package collection

import "time"

// OwnedCard is one user's holding of a single catalogue card.
type OwnedCard struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	CardID    int64     `json:"card_id"`
	Quantity  int       `json:"quantity"`
	IsFoil    bool      `json:"is_foil"`
	Condition *string   `json:"condition"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Known card conditions.
const (
	ConditionMint     = "mint"
	ConditionNearMint = "near_mint"
	ConditionPlayed   = "played"
	ConditionDamaged  = "damaged"
)
