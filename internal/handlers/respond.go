package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/founder-command-center/internal/constants"
	apierrors "github.com/yukikurage/founder-command-center/internal/errors"
	"github.com/yukikurage/founder-command-center/internal/middleware"
	"github.com/yukikurage/founder-command-center/internal/services"
	"go.uber.org/zap"
)

// respondError maps service errors to API errors. Anything unknown is
// logged and answered with a generic 500.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		apierrors.ValidationFailed(c, validationErr.Fields)
	case errors.Is(err, services.ErrNotFound):
		apierrors.NotFound(c, "")
	case errors.Is(err, services.ErrUnauthenticated),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.Unauthorized(c, "")
	case errors.Is(err, services.ErrMissingCredentials):
		apierrors.MissingField(c, "Username and password are required")
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c)
	case errors.Is(err, services.ErrAccountDisabled):
		apierrors.AccountDisabled(c)
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrUsernameTaken):
		apierrors.BadRequest(c, err.Error())
	default:
		log.Error("Request failed",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		_ = c.Error(err)
		apierrors.InternalError(c, "")
	}
}

// pathID parses the :id parameter. Malformed ids cannot name a row, so they
// are answered like missing ones.
func pathID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.NotFound(c, "")
		return 0, false
	}
	return id, true
}

// currentUserID returns the id set by RequireAuth
func currentUserID(c *gin.Context) (uint64, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return 0, false
	}
	return userID, true
}

func bindPayload(c *gin.Context, payload any) bool {
	if err := c.ShouldBindJSON(payload); err != nil {
		apierrors.BadRequest(c, "")
		return false
	}
	return true
}
