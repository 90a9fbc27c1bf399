// Copyright (c) 2026 TCGScan. All rights reserved.

package deck

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

// Handler implements deck-related HTTP endpoints.
type Handler struct {
	deckService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{deckService: service}
}

// Routes returns a [chi.Router] configured with deck routes.
//
// # Endpoints
//   - GET    /                         : Lists the owner's decks. (secured)
//   - POST   /                         : Creates a deck. (secured)
//   - GET    /{deckID}                 : Deck with full card list. (secured)
//   - PUT    /{deckID}                 : Renames a deck. (secured)
//   - DELETE /{deckID}                 : Deletes a deck. (secured)
//   - PUT    /{deckID}/cards           : Sets one list line. (secured)
//   - DELETE /{deckID}/cards/{cardID}  : Removes one list line. (secured)
func (handler *Handler) Routes(secure func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()
	router.Use(secure)

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Get("/{deckID}", handler.get)
	router.Put("/{deckID}", handler.rename)
	router.Delete("/{deckID}", handler.remove)
	router.Put("/{deckID}/cards", handler.setCard)
	router.Delete("/{deckID}/cards/{cardID}", handler.removeCard)

	return router
}

// # Request Payloads

type deckRequest struct {
	Name   string  `json:"name"`
	Format *string `json:"format"`
}

type deckCardRequest struct {
	CardID   int64 `json:"card_id"`
	Quantity int   `json:"quantity"`
}

func validateDeck(input deckRequest) error {
	validator := &validate.Validator{}
	validator.Required("name", input.Name).
		MaxLen("name", input.Name, 120)
	return validator.Err()
}

/*
list returns one page of the owner's decks.

GET /api/v1/decks?page=&limit=

Response:
  - 200: []Deck with pagination metadata
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	user := middleware.CurrentUser(request.Context())
	params := pagination.FromRequest(request)

	decks, total, err := handler.deckService.ListDecks(
		request.Context(), user.ID, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, decks, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
create persists a new empty deck owned by the caller.

POST /api/v1/decks

Response:
  - 201: Deck
  - 400: ErrInvalidJSON: Bad input or validation failure
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	user := middleware.CurrentUser(request.Context())

	var input deckRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := validateDeck(input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.deckService.CreateDeck(request.Context(), &Deck{
		Name:    input.Name,
		Format:  input.Format,
		OwnerID: user.ID,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

/*
get returns a deck with its full card list.

GET /api/v1/decks/{deckID}

Response:
  - 200: Deck with Cards
  - 403: ErrForbidden: Deck owned by another user
  - 404: ErrNotFound: Unknown deck
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	user := middleware.CurrentUser(request.Context())

	deckID, err := requestutil.IntParam(request, "deckID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	deck, err := handler.deckService.GetDeck(request.Context(), deckID, user.ID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, deck)
}

/*
rename updates a deck's name and format.

PUT /api/v1/decks/{deckID}

Response:
  - 200: Deck
  - 403: ErrForbidden: Deck owned by another user
  - 404: ErrNotFound: Unknown deck
*/
func (handler *Handler) rename(writer http.ResponseWriter, request *http.Request) {
	user := middleware.CurrentUser(request.Context())

	deckID, err := requestutil.IntParam(request, "deckID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input deckRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := validateDeck(input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	deck, err := handler.deckService.RenameDeck(
		request.Context(), deckID, user.ID, input.Name, input.Format)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, deck)
}

/*
remove deletes a deck and its card list.

DELETE /api/v1/decks/{deckID}

Response:
  - 204: No content
  - 403: ErrForbidden: Deck owned by another user
  - 404: ErrNotFound: Unknown deck
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	user := middleware.CurrentUser(request.Context())

	deckID, err := requestutil.IntParam(request, "deckID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.deckService.DeleteDeck(request.Context(), deckID, user.ID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
setCard inserts or replaces one list line in a deck.

PUT /api/v1/decks/{deckID}/cards

Response:
  - 200: DeckCard
  - 403: ErrForbidden: Deck owned by another user
  - 404: ErrNotFound: Unknown deck or card
*/
func (handler *Handler) setCard(writer http.ResponseWriter, request *http.Request) {
	user := middleware.CurrentUser(request.Context())

	deckID, err := requestutil.IntParam(request, "deckID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input deckCardRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Custom("card_id", input.CardID <= 0, "A valid card_id is required").
		Range("quantity", input.Quantity, 1, 250)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	line, err := handler.deckService.SetCard(request.Context(), deckID, user.ID, &DeckCard{
		CardID:   input.CardID,
		Quantity: input.Quantity,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, line)
}

/*
removeCard deletes one list line from a deck.

DELETE /api/v1/decks/{deckID}/cards/{cardID}

Response:
  - 204: No content
  - 403: ErrForbidden: Deck owned by another user
  - 404: ErrNotFound: Unknown deck or list line
*/
func (handler *Handler) removeCard(writer http.ResponseWriter, request *http.Request) {
	user := middleware.CurrentUser(request.Context())

	deckID, err := requestutil.IntParam(request, "deckID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	cardID, err := requestutil.IntParam(request, "cardID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.deckService.RemoveCard(request.Context(), deckID, user.ID, cardID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
