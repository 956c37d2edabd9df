package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/founder-command-center/internal/dto"
	"github.com/yukikurage/founder-command-center/internal/services"
	"go.uber.org/zap"
)

// WorkerHandler serves the caller's workers.
type WorkerHandler struct {
	workerService *services.WorkerService
	log           *zap.Logger
}

// NewWorkerHandler creates a new WorkerHandler.
func NewWorkerHandler(workerService *services.WorkerService, log *zap.Logger) *WorkerHandler {
	return &WorkerHandler{
		workerService: workerService,
		log:           log,
	}
}

// List returns the caller's workers by name
func (h *WorkerHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	workers, err := h.workerService.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkerDTOs(workers))
}

// Create adds a worker owned by the caller
func (h *WorkerHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var payload dto.WorkerPayload
	if !bindPayload(c, &payload) {
		return
	}

	worker, err := h.workerService.Create(c.Request.Context(), userID, payload)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToWorkerDTO(*worker))
}

// Get returns one of the caller's workers
func (h *WorkerHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	worker, err := h.workerService.Get(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkerDTO(*worker))
}

// Update changes the fields present in the body. Serves PUT and PATCH.
func (h *WorkerHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var payload dto.WorkerPayload
	if !bindPayload(c, &payload) {
		return
	}

	worker, err := h.workerService.Update(c.Request.Context(), userID, id, payload)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkerDTO(*worker))
}

// Delete removes a worker, unassigning its tasks
func (h *WorkerHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.workerService.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}
