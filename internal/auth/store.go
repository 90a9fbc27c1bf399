// Copyright (c) 2026 TCGScan. All rights reserved.

package auth

import "context"

// # User Data Access

// UserRepository defines the data access contract for user accounts.
//
// The duplicate check performed by the service before Create is advisory
// only; the users.email UNIQUE constraint is the authoritative guard
// against concurrent duplicate registrations.
type UserRepository interface {

	/*
		FindByEmail returns the account with the given email (exact match).

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		FindByID returns the account with the given numeric ID.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByID(context context.Context, id int64) (*User, error)

	/*
		Create persists a brand-new user account and assigns its ID.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Constraint violations or persistence failures
	*/
	Create(context context.Context, user *User) error
}
