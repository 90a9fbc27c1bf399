// Copyright (c) 2026 TCGScan. All rights reserved.

package card

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/tcgscan/tcgscan/internal/platform/request"
	"github.com/tcgscan/tcgscan/internal/platform/respond"
	"github.com/tcgscan/tcgscan/internal/platform/validate"
	"github.com/tcgscan/tcgscan/pkg/pagination"
	"github.com/tcgscan/tcgscan/pkg/query"
)

// # Definitions & Constructors

// Handler implements catalogue-related HTTP endpoints.
type Handler struct {
	cardService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{cardService: service}
}

// Routes returns a [chi.Router] configured with catalogue routes.
//
// Reads are public; writes are wrapped with the given authentication guard.
//
// # Endpoints
//   - GET    /                       : Lists cards (search, set, rarity filters).
//   - POST   /                       : Creates a card. (secured)
//   - GET    /{cardID}               : Retrieves a single card.
//   - PUT    /{cardID}               : Updates a card. (secured)
//   - GET    /{cardID}/prices        : Card price history.
//   - GET    /{cardID}/prices/latest : Newest snapshot per source.
//   - POST   /{cardID}/prices        : Records a price snapshot. (secured)
//   - GET    /{cardID}/legalities    : Format legality statuses.
//   - PUT    /{cardID}/legalities    : Upserts a format status. (secured)
func (handler *Handler) Routes(secure func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Get("/", handler.list)
	router.Get("/{cardID}", handler.get)
	router.Get("/{cardID}/prices", handler.priceHistory)
	router.Get("/{cardID}/prices/latest", handler.latestPrices)
	router.Get("/{cardID}/legalities", handler.legalities)

	// Authenticated endpoints
	router.Group(func(protected chi.Router) {
		protected.Use(secure)
		protected.Post("/", handler.create)
		protected.Put("/{cardID}", handler.update)
		protected.Post("/{cardID}/prices", handler.recordPrice)
		protected.Put("/{cardID}/legalities", handler.setLegality)
	})

	return router
}

// # Request Payloads

type cardRequest struct {
	Name            string  `json:"name"`
	SetName         *string `json:"set_name"`
	SetCode         *string `json:"set_code"`
	CollectorNumber *string `json:"collector_number"`
	ImageURL        *string `json:"image_url"`
	ManaCost        *string `json:"mana_cost"`
	TypeLine        *string `json:"type_line"`
	Rarity          *string `json:"rarity"`
	OracleText      *string `json:"oracle_text"`
}

type priceSnapshotRequest struct {
	Source  string   `json:"source"`
	USD     *float64 `json:"usd"`
	USDFoil *float64 `json:"usd_foil"`
}

type legalityRequest struct {
	Format string `json:"format"`
	Status string `json:"status"`
}

// validateCard checks fields shared by create and update.
func validateCard(input cardRequest) error {
	validator := &validate.Validator{}
	validator.Required("name", input.Name).
		MaxLen("name", input.Name, 255)

	if input.SetCode != nil {
		validator.MaxLen("set_code", *input.SetCode, 16)
	}

	return validator.Err()
}

// applyCard copies request fields onto a card entity.
func applyCard(card *Card, input cardRequest) {
	card.Name = input.Name
	card.SetName = input.SetName
	card.SetCode = input.SetCode
	card.CollectorNumber = input.CollectorNumber
	card.ImageURL = input.ImageURL
	card.ManaCost = input.ManaCost
	card.TypeLine = input.TypeLine
	card.Rarity = input.Rarity
	card.OracleText = input.OracleText
}

/*
list returns one page of catalogue cards.

GET /api/v1/cards?q=&set=&rarity=&page=&limit=

Description: Supports diacritic-insensitive name search via "q", filtering
by comma-separated set codes via "set", and by a single rarity.

Response:
  - 200: []Card with pagination metadata
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	filter := ListFilter{
		NameQuery: request.URL.Query().Get("q"),
		SetCodes:  query.StringSlice(request.URL.Query().Get("set")),
		Rarity:    request.URL.Query().Get("rarity"),
		Limit:     params.Limit,
		Offset:    params.Offset(),
	}

	cards, total, err := handler.cardService.ListCards(request.Context(), filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, cards, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
get retrieves a single card by its identifier.

GET /api/v1/cards/{cardID}

Response:
  - 200: Card
  - 404: ErrNotFound: Unknown card
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	cardID, err := requestutil.IntParam(request, "cardID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	card, err := handler.cardService.GetCard(request.Context(), cardID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, card)
}

/*
create adds a new card to the catalogue.

POST /api/v1/cards

Response:
  - 201: Card: Created entity
  - 400: ErrInvalidJSON: Bad input or validation failure
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input cardRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := validateCard(input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	card := &Card{}
	applyCard(card, input)

	created, err := handler.cardService.CreateCard(request.Context(), card)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

/*
update replaces a card's metadata.

PUT /api/v1/cards/{cardID}

Response:
  - 200: Card: Updated entity
  - 404: ErrNotFound: Unknown card
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	cardID, err := requestutil.IntParam(request, "cardID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input cardRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := validateCard(input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	card := &Card{ID: cardID}
	applyCard(card, input)

	updated, err := handler.cardService.UpdateCard(request.Context(), card)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

/*
recordPrice appends a price snapshot for a card.

POST /api/v1/cards/{cardID}/prices

Response:
  - 201: PriceSnapshot
  - 404: ErrNotFound: Unknown card
*/
func (handler *Handler) recordPrice(writer http.ResponseWriter, request *http.Request) {
	cardID, err := requestutil.IntParam(request, "cardID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input priceSnapshotRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required("source", input.Source)
	validator.Custom("price", input.USD == nil && input.USDFoil == nil,
		"At least one price is required")

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	snapshot := &PriceSnapshot{
		CardID:  cardID,
		Source:  input.Source,
		USD:     input.USD,
		USDFoil: input.USDFoil,
	}

	created, err := handler.cardService.RecordPrice(request.Context(), snapshot)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

/*
priceHistory returns a card's price snapshots, newest first.

GET /api/v1/cards/{cardID}/prices?limit=

Response:
  - 200: []PriceSnapshot
  - 404: ErrNotFound: Unknown card
*/
func (handler *Handler) priceHistory(writer http.ResponseWriter, request *http.Request) {
	cardID, err := requestutil.IntParam(request, "cardID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)

	snapshots, err := handler.cardService.PriceHistory(request.Context(), cardID, params.Limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, snapshots)
}

/*
latestPrices returns the newest snapshot per source for a card.

GET /api/v1/cards/{cardID}/prices/latest

Response:
  - 200: []PriceSnapshot
  - 404: ErrNotFound: Unknown card
*/
func (handler *Handler) latestPrices(writer http.ResponseWriter, request *http.Request) {
	cardID, err := requestutil.IntParam(request, "cardID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	snapshots, err := handler.cardService.LatestPrices(request.Context(), cardID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, snapshots)
}

/*
setLegality upserts a card's status for one play format.

PUT /api/v1/cards/{cardID}/legalities

Response:
  - 200: Legality
  - 404: ErrNotFound: Unknown card
*/
func (handler *Handler) setLegality(writer http.ResponseWriter, request *http.Request) {
	cardID, err := requestutil.IntParam(request, "cardID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input legalityRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required("format", input.Format)
	validator.OneOf("status", input.Status,
		StatusLegal, StatusNotLegal, StatusBanned, StatusRestricted)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	legality := &Legality{
		CardID: cardID,
		Format: input.Format,
		Status: input.Status,
	}

	if err := handler.cardService.SetLegality(request.Context(), legality); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, legality)
}

/*
legalities returns all known format statuses for a card.

GET /api/v1/cards/{cardID}/legalities

Response:
  - 200: []Legality
  - 404: ErrNotFound: Unknown card
*/
func (handler *Handler) legalities(writer http.ResponseWriter, request *http.Request) {
	cardID, err := requestutil.IntParam(request, "cardID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	legalities, err := handler.cardService.Legalities(request.Context(), cardID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, legalities)
}
