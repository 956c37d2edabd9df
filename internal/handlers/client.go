package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/founder-command-center/internal/dto"
	"github.com/yukikurage/founder-command-center/internal/services"
	"go.uber.org/zap"
)

// ClientHandler serves the caller's clients.
type ClientHandler struct {
	clientService *services.ClientService
	log           *zap.Logger
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(clientService *services.ClientService, log *zap.Logger) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
		log:           log,
	}
}

// List returns the caller's clients, newest first
func (h *ClientHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	clients, err := h.clientService.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToClientDTOs(clients))
}

// Create adds a client owned by the caller
func (h *ClientHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var payload dto.ClientPayload
	if !bindPayload(c, &payload) {
		return
	}

	client, err := h.clientService.Create(c.Request.Context(), userID, payload)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToClientDTO(*client))
}

// Get returns one of the caller's clients
func (h *ClientHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	client, err := h.clientService.Get(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToClientDTO(*client))
}

// Update changes the fields present in the body. Serves PUT and PATCH.
func (h *ClientHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var payload dto.ClientPayload
	if !bindPayload(c, &payload) {
		return
	}

	client, err := h.clientService.Update(c.Request.Context(), userID, id, payload)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToClientDTO(*client))
}

// Delete removes a client and its tasks
func (h *ClientHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.clientService.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}
