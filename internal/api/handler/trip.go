package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/metroconnect/metroconnect/internal/api/models"
	"github.com/metroconnect/metroconnect/internal/api/response"
	"github.com/metroconnect/metroconnect/internal/trip"
)

// TripHandler handles trip endpoints.
type TripHandler struct {
	tripService *trip.Service
	log         zerolog.Logger
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(tripService *trip.Service, log zerolog.Logger) *TripHandler {
	return &TripHandler{tripService: tripService, log: log}
}

// ListTrips handles GET /v1/me/trips - the caller's upcoming and repeating trips.
func (h *TripHandler) ListTrips(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	trips, err := h.tripService.ListUpcoming(r.Context(), userID)
	if err != nil {
		internalError(w, r, h.log, err, "failed to list trips")
		return
	}

	response.JSON(w, r, http.StatusOK, trips)
}

// CreateTrip handles POST /v1/me/trips - post a new trip.
func (h *TripHandler) CreateTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var input models.TripInput
	if !decodeBody(w, r, &input) {
		return
	}

	created, err := h.tripService.Create(r.Context(), userID, &input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Created(w, r, fmt.Sprintf("/v1/me/trips/%s", created.ID), created)
}

// UpdateTrip handles PUT /v1/me/trips/{tripId} - replace a trip.
func (h *TripHandler) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	tripID := chi.URLParam(r, "tripId")
	if tripID == "" {
		response.BadRequest(w, r, "tripId is required", nil)
		return
	}

	var input models.TripInput
	if !decodeBody(w, r, &input) {
		return
	}

	updated, err := h.tripService.Update(r.Context(), userID, tripID, &input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, updated)
}

// DeleteTrip handles DELETE /v1/me/trips/{tripId} - delete a trip.
func (h *TripHandler) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	tripID := chi.URLParam(r, "tripId")
	if tripID == "" {
		response.BadRequest(w, r, "tripId is required", nil)
		return
	}

	if err := h.tripService.Delete(r.Context(), userID, tripID); err != nil {
		h.writeError(w, r, err)
		return
	}

	response.NoContent(w, r)
}

// ListPersonTrips handles GET /v1/people/{userId}/trips - a connection's upcoming trips.
func (h *TripHandler) ListPersonTrips(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	ownerID := chi.URLParam(r, "userId")
	if ownerID == "" {
		response.BadRequest(w, r, "userId is required", nil)
		return
	}

	trips, err := h.tripService.ListForConnection(r.Context(), userID, ownerID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, trips)
}

// Search handles GET /v1/search - find other commuters' matching trips.
func (h *TripHandler) Search(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	params := r.URL.Query()
	results, err := h.tripService.Search(r.Context(), userID, models.SearchQuery{
		StartStation: params.Get("start_station"),
		EndStation:   params.Get("end_station"),
		TravelDate:   params.Get("travel_date"),
		TravelTime:   params.Get("travel_time"),
		GenderFilter: params.Get("gender_filter"),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, results.Items)
}

func (h *TripHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *trip.ValidationError
	switch {
	case errors.As(err, &validationErr):
		response.BadRequest(w, r, "validation failed", validationErr.Errors)
	case errors.Is(err, trip.ErrTripNotFound):
		response.NotFound(w, r, "trip not found")
	case errors.Is(err, trip.ErrNotConnected):
		response.Forbidden(w, r, "you can only view the trips of your connections")
	default:
		internalError(w, r, h.log, err, "trip request failed")
	}
}
