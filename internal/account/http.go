// Copyright (c) 2026 TCGScan. All rights reserved.

/*
Package account exposes the authenticated user's own profile.

It is intentionally thin: the acting user is already resolved by the
authentication middleware, so the handler only reads it back out of the
request context.
*/
package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tcgscan/tcgscan/internal/platform/middleware"
	"github.com/tcgscan/tcgscan/internal/platform/respond"
)

// Handler implements account-related HTTP endpoints.
type Handler struct{}

// NewHandler constructs a new [Handler].
func NewHandler() *Handler {
	return &Handler{}
}

// Routes returns a [chi.Router] configured with account routes.
//
// # Endpoints
//   - GET /me : Returns the acting user's profile. (secured)
func (handler *Handler) Routes(secure func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()
	router.Use(secure)

	router.Get("/me", handler.me)

	return router
}

/*
me returns the profile of the user resolved from the bearer token.

GET /api/v1/users/me

Response:
  - 200: User: Acting user's profile (password hash never serialized)
  - 401: ErrUnauthorized: Missing, invalid, or expired token
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, middleware.CurrentUser(request.Context()))
}
