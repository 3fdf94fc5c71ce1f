package handler

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/metroconnect/metroconnect/internal/api/models"
	"github.com/metroconnect/metroconnect/internal/api/response"
	"github.com/metroconnect/metroconnect/internal/connection"
	"github.com/metroconnect/metroconnect/internal/profile"
)

// ProfileHandler handles profile and people endpoints.
type ProfileHandler struct {
	profileService    *profile.Service
	connectionService *connection.Service
	log               zerolog.Logger
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService *profile.Service, connectionService *connection.Service, log zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileService:    profileService,
		connectionService: connectionService,
		log:               log,
	}
}

// GetProfile handles GET /v1/me/profile - the caller's full profile.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	p, err := h.profileService.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			response.NotFound(w, r, "profile not found")
			return
		}
		internalError(w, r, h.log, err, "failed to load profile")
		return
	}

	response.JSON(w, r, http.StatusOK, p)
}

// UpdateProfile handles PATCH /v1/me/profile - update or onboard the caller's profile.
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var input models.ProfileInput
	if !decodeBody(w, r, &input) {
		return
	}

	p, err := h.profileService.Update(r.Context(), userID, &input)
	if err != nil {
		var validationErr *profile.ValidationError
		if errors.As(err, &validationErr) {
			response.BadRequest(w, r, "validation failed", validationErr.Errors)
			return
		}
		internalError(w, r, h.log, err, "failed to update profile")
		return
	}

	response.JSON(w, r, http.StatusOK, p)
}

// SearchPeople handles GET /v1/people?q= - find other users by name.
func (h *ProfileHandler) SearchPeople(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	people, err := h.connectionService.SearchPeople(r.Context(), userID, r.URL.Query().Get("q"))
	if err != nil {
		var validationErr *profile.ValidationError
		if errors.As(err, &validationErr) {
			response.BadRequest(w, r, "validation failed", validationErr.Errors)
			return
		}
		internalError(w, r, h.log, err, "failed to search people")
		return
	}

	response.JSON(w, r, http.StatusOK, people)
}
