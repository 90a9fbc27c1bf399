// Copyright (c) 2026 TCGScan. All rights reserved.

package collection

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tcgscan/tcgscan/internal/platform/middleware"
	requestutil "github.com/tcgscan/tcgscan/internal/platform/request"
	"github.com/tcgscan/tcgscan/internal/platform/respond"
	"github.com/tcgscan/tcgscan/internal/platform/validate"
	"github.com/tcgscan/tcgscan/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements collection-related HTTP endpoints.
type Handler struct {
	collectionService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{collectionService: service}
}

// Routes returns a [chi.Router] configured with collection routes.
//
// All endpoints operate on the authenticated owner's collection only.
//
// # Endpoints
//   - GET    /          : Lists the owner's entries. (secured)
//   - PUT    /cards     : Inserts or replaces an entry. (secured)
//   - DELETE /{entryID} : Removes an entry. (secured)
func (handler *Handler) Routes(secure func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()
	router.Use(secure)

	router.Get("/", handler.list)
	router.Put("/cards", handler.upsert)
	router.Delete("/{entryID}", handler.remove)

	return router
}

// # Request Payloads

type upsertRequest struct {
	CardID    int64   `json:"card_id"`
	Quantity  int     `json:"quantity"`
	IsFoil    bool    `json:"is_foil"`
	Condition *string `json:"condition"`
}

/*
list returns one page of the owner's collection entries.

GET /api/v1/collection?page=&limit=

Response:
  - 200: []OwnedCard with pagination metadata
  - 401: ErrUnauthorized: Missing or invalid token
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	user := middleware.CurrentUser(request.Context())
	params := pagination.FromRequest(request)

	entries, total, err := handler.collectionService.ListEntries(
		request.Context(), user.ID, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, entries, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
upsert records or replaces one holding in the owner's collection.

PUT /api/v1/collection/cards

Description: Idempotent per (card, foil) printing: repeating the call
overwrites quantity and condition rather than stacking entries.

Request:
  - Body: upsertRequest (CardID, Quantity, IsFoil, Condition)

Response:
  - 200: OwnedCard: Persisted entry
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 404: ErrNotFound: Unknown card
*/
func (handler *Handler) upsert(writer http.ResponseWriter, request *http.Request) {
	user := middleware.CurrentUser(request.Context())

	var input upsertRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Custom("card_id", input.CardID <= 0, "A valid card_id is required").
		Range("quantity", input.Quantity, 1, 10_000)

	if input.Condition != nil {
		validator.OneOf("condition", *input.Condition,
			ConditionMint, ConditionNearMint, ConditionPlayed, ConditionDamaged)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry := &OwnedCard{
		UserID:    user.ID,
		CardID:    input.CardID,
		Quantity:  input.Quantity,
		IsFoil:    input.IsFoil,
		Condition: input.Condition,
	}

	saved, err := handler.collectionService.UpsertEntry(request.Context(), entry)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, saved)
}

/*
remove deletes one holding from the owner's collection.

DELETE /api/v1/collection/{entryID}

Response:
  - 204: No content
  - 404: ErrNotFound: Unknown entry, or entry owned by another user
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	user := middleware.CurrentUser(request.Context())

	entryID, err := requestutil.IntParam(request, "entryID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.collectionService.RemoveEntry(request.Context(), entryID, user.ID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
