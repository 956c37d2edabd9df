package middleware

import (
	"context"
	"errors"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/founder-command-center/internal/constants"
	apierrors "github.com/yukikurage/founder-command-center/internal/errors"
	"github.com/yukikurage/founder-command-center/internal/models"
	"github.com/yukikurage/founder-command-center/internal/services"
)

// UserLoader resolves the user bound to a session.
type UserLoader interface {
	CurrentUser(ctx context.Context, id uint64) (*models.User, error)
}

// RequireAuth checks if the user is authenticated via session. Sessions of
// deleted or deactivated users are cleared.
func RequireAuth(users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID, ok := SessionUserID(session)
		if !ok {
			apierrors.Unauthorized(c, "")
			return
		}

		user, err := users.CurrentUser(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, services.ErrUnauthenticated) {
				ClearSession(session)
				apierrors.Unauthorized(c, "")
				return
			}
			_ = c.Error(err)
			apierrors.InternalError(c, "")
			return
		}

		// Store user in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}
}

// SessionUserID reads the user id stored at login
func SessionUserID(session sessions.Session) (uint64, bool) {
	switch v := session.Get(constants.SessionKeyUserID).(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// ClearSession drops every session value and expires the cookie
func ClearSession(session sessions.Session) {
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	_ = session.Save()
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	id, ok := userID.(uint64)
	return id, ok
}

// GetUser retrieves the current user from context
func GetUser(c *gin.Context) (*models.User, bool) {
	user, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}
	u, ok := user.(*models.User)
	return u, ok
}

// RenewSession replaces the current session with a fresh one holding values,
// so an identifier handed out before login does not carry into the
// authenticated session. It returns the new server-side id, which is empty
// for cookie sessions.
func RenewSession(c *gin.Context, store sessions.Store, values map[string]any) (string, error) {
	if current := sessions.Default(c); current.ID() != "" {
		ClearSession(current)
	}

	req := c.Request.Clone(c.Request.Context())
	req.Header.Del("Cookie")
	fresh, err := store.New(req, constants.SessionCookieName)
	if err != nil {
		return "", err
	}
	for key, value := range values {
		fresh.Values[key] = value
	}
	if err := store.Save(req, c.Writer, fresh); err != nil {
		return "", err
	}
	return fresh.ID, nil
}
