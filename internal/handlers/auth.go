package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/founder-command-center/internal/constants"
	"github.com/yukikurage/founder-command-center/internal/dto"
	apierrors "github.com/yukikurage/founder-command-center/internal/errors"
	"github.com/yukikurage/founder-command-center/internal/metrics"
	"github.com/yukikurage/founder-command-center/internal/middleware"
	"github.com/yukikurage/founder-command-center/internal/services"
	"go.uber.org/zap"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
	csrf        *middleware.CSRF
	sessions    sessions.Store
	log         *zap.Logger
}

// NewAuthHandler creates a new AuthHandler. store must be the store behind
// the sessions middleware.
func NewAuthHandler(authService *services.AuthService, csrf *middleware.CSRF, store sessions.Store, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		csrf:        csrf,
		sessions:    store,
		log:         log,
	}
}

// CSRFToken issues the anti-forgery token of the current session.
func (h *AuthHandler) CSRFToken(c *gin.Context) {
	token, err := h.csrf.Issue(c, false)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if err := sessions.Default(c).Save(); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"csrfToken": token})
}

// Login authenticates a user and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	var req LoginRequest
	if !bindPayload(c, &req) {
		return
	}

	user, err := h.authService.Login(c.Request.Context(), services.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		metrics.ObserveLogin(loginResult(err))
		respondError(c, h.log, err)
		return
	}

	token, err := h.csrf.Rotate(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	sessionID, err := middleware.RenewSession(c, h.sessions, map[string]any{
		constants.SessionKeyUserID:    user.ID,
		constants.SessionKeyCSRFToken: token,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	metrics.ObserveLogin(metrics.LoginSuccess)

	h.log.Info("User logged in", zap.Uint64("user_id", user.ID), zap.String("request_id", middleware.GetRequestID(c)))
	c.JSON(http.StatusOK, gin.H{
		"message":   "Login successful",
		"user":      dto.ToUserDTO(*user),
		"sessionid": sessionID,
	})
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearSession(sessions.Default(c))
	c.SetCookie(constants.CSRFCookieName, "", -1, "/", "", false, false)

	c.JSON(http.StatusOK, gin.H{
		"message": "Logout successful",
	})
}

// Check returns the authenticated user.
func (h *AuthHandler) Check(c *gin.Context) {
	user, ok := middleware.GetUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"user":          dto.ToUserDTO(*user),
	})
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, services.ErrMissingCredentials):
		return metrics.LoginMissing
	case errors.Is(err, services.ErrInvalidCredentials):
		return metrics.LoginInvalid
	case errors.Is(err, services.ErrAccountDisabled):
		return metrics.LoginDisabled
	default:
		return metrics.LoginError
	}
}
