// Copyright (c) 2026 TCGScan. All rights reserved.

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/tcgscan/tcgscan/internal/auth"
	"github.com/tcgscan/tcgscan/internal/platform/apperr"
	"github.com/tcgscan/tcgscan/internal/platform/ctxkey"
	"github.com/tcgscan/tcgscan/internal/platform/respond"
)

// SessionResolver defines the interface needed to resolve bearer tokens
// into acting users.
//
// # Why an interface?
//
// Defining SessionResolver here decouples the middleware from the `auth`
// service implementation, allowing us to easily inject fakes during unit
// testing.
type SessionResolver interface {
	Resolve(context context.Context, token string) (*auth.User, error)
}

// Authenticate extracts the bearer token from the Authorization header and
// resolves it into the acting user.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, request proceeds as anonymous.
//  3. If present, resolve the token via [SessionResolver] — this verifies
//     the signature and expiry, loads the account, and checks its active flag.
//  4. Inject the resolved [*auth.User] into the request context for downstream use.
//
// A present-but-unresolvable token aborts the request with 401 rather than
// degrading to anonymous.
func Authenticate(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get("Authorization")

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			// ── 3. Session Resolution ─────────────────────────────────────────
			user, err := resolver.Resolve(request.Context(), parts[1])
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := context.WithValue(request.Context(), ctxkey.KeyUser, user)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
//
// # Flow
//  1. Check if a resolved [*auth.User] exists in context.
//  2. If missing, abort with HTTP 401 Unauthorized.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		user := CurrentUser(request.Context())
		if user == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// CurrentUser retrieves the resolved [*auth.User] from the [context.Context].
//
// # Returns
//   - The acting user if the request is authenticated.
//   - nil if the request is anonymous.
func CurrentUser(ctx context.Context) *auth.User {
	user, ok := ctx.Value(ctxkey.KeyUser).(*auth.User)
	if !ok {
		return nil
	}
	return user
}
