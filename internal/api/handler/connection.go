package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/metroconnect/metroconnect/internal/api/models"
	"github.com/metroconnect/metroconnect/internal/api/response"
	"github.com/metroconnect/metroconnect/internal/connection"
)

// ConnectionHandler handles connection and chat endpoints.
type ConnectionHandler struct {
	connectionService *connection.Service
	log               zerolog.Logger
}

// NewConnectionHandler creates a new ConnectionHandler.
func NewConnectionHandler(connectionService *connection.Service, log zerolog.Logger) *ConnectionHandler {
	return &ConnectionHandler{connectionService: connectionService, log: log}
}

// ListConnections handles GET /v1/connections - received, sent and accepted connections.
func (h *ConnectionHandler) ListConnections(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	overview, err := h.connectionService.Overview(r.Context(), userID)
	if err != nil {
		internalError(w, r, h.log, err, "failed to list connections")
		return
	}

	response.JSON(w, r, http.StatusOK, overview)
}

// CreateConnection handles POST /v1/connections - send a connection request.
func (h *ConnectionHandler) CreateConnection(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var input models.ConnectionCreateRequest
	if !decodeBody(w, r, &input) {
		return
	}

	created, err := h.connectionService.Request(r.Context(), userID, &input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Created(w, r, fmt.Sprintf("/v1/connections/%s", created.ID), created)
}

// UpdateConnection handles PATCH /v1/connections/{connectionId} - accept or decline a request.
func (h *ConnectionHandler) UpdateConnection(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	connectionID := chi.URLParam(r, "connectionId")
	if connectionID == "" {
		response.BadRequest(w, r, "connectionId is required", nil)
		return
	}

	var input models.ConnectionUpdateRequest
	if !decodeBody(w, r, &input) {
		return
	}

	updated, err := h.connectionService.Respond(r.Context(), userID, connectionID, &input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, updated)
}

// ListMessages handles GET /v1/connections/{connectionId}/messages - chat history.
func (h *ConnectionHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	msgs, err := h.connectionService.Messages(r.Context(), userID, chi.URLParam(r, "connectionId"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, msgs)
}

// SendMessage handles POST /v1/connections/{connectionId}/messages - post a chat message.
func (h *ConnectionHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	connectionID := chi.URLParam(r, "connectionId")

	var input models.MessageCreateRequest
	if !decodeBody(w, r, &input) {
		return
	}

	msg, err := h.connectionService.SendMessage(r.Context(), userID, connectionID, &input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Created(w, r, fmt.Sprintf("/v1/connections/%s/messages/%s", connectionID, msg.ID), msg)
}

func (h *ConnectionHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *connection.ValidationError
	switch {
	case errors.As(err, &validationErr):
		response.BadRequest(w, r, "validation failed", validationErr.Errors)
	case errors.Is(err, connection.ErrConnectionNotFound):
		response.NotFound(w, r, "connection not found")
	case errors.Is(err, connection.ErrUserNotFound):
		response.NotFound(w, r, "user not found")
	case errors.Is(err, connection.ErrConnectionExists):
		response.Conflict(w, r, "a connection with this user already exists")
	case errors.Is(err, connection.ErrNotRecipient):
		response.Forbidden(w, r, "only the recipient can respond to a connection request")
	case errors.Is(err, connection.ErrNotPending):
		response.BadRequest(w, r, "connection request is no longer pending", nil)
	default:
		internalError(w, r, h.log, err, "connection request failed")
	}
}
