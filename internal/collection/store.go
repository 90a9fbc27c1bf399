// Copyright (c) 2026 TCGScan. All rights reserved.

package collection

import "context"

// Repository defines the data access contract for user collections.
type Repository interface {
	// Upsert inserts or replaces the entry identified by
	// (UserID, CardID, IsFoil), accumulating nothing: the given quantity
	// and condition win.
	Upsert(context context.Context, entry *OwnedCard) error

	// ListByUser returns one page of a user's entries plus the total count.
	ListByUser(context context.Context, userID int64, limit, offset int) ([]*OwnedCard, int, error)

	// GetByID returns a single entry. Callers enforce ownership.
	GetByID(context context.Context, id int64) (*OwnedCard, error)

	// Delete removes a single entry belonging to the given user.
	Delete(context context.Context, id, userID int64) error
}
