package middleware

import (
	"crypto/subtle"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/founder-command-center/internal/constants"
	apierrors "github.com/yukikurage/founder-command-center/internal/errors"
	"github.com/yukikurage/founder-command-center/internal/utils"
)

// CSRF issues per-session anti-forgery tokens and checks them on unsafe
// requests.
type CSRF struct {
	trustedOrigins []string
	secure         bool
	maxAge         int
}

// NewCSRF creates a CSRF guard. The token cookie lives as long as the session.
func NewCSRF(trustedOrigins []string, secure bool, maxAge int) *CSRF {
	return &CSRF{
		trustedOrigins: trustedOrigins,
		secure:         secure,
		maxAge:         maxAge,
	}
}

// Issue stores a token in the session and mirrors it into the script
// readable cookie. The existing token is reused unless rotate is set.
// Callers save the session.
func (m *CSRF) Issue(c *gin.Context, rotate bool) (string, error) {
	session := sessions.Default(c)
	token, _ := session.Get(constants.SessionKeyCSRFToken).(string)
	if token == "" || rotate {
		var err error
		token, err = utils.GenerateToken()
		if err != nil {
			return "", err
		}
		session.Set(constants.SessionKeyCSRFToken, token)
	}

	m.setCookie(c, token)
	return token, nil
}

// Rotate generates a new token and mirrors it into the cookie without
// touching the session. Callers store it under SessionKeyCSRFToken.
func (m *CSRF) Rotate(c *gin.Context) (string, error) {
	token, err := utils.GenerateToken()
	if err != nil {
		return "", err
	}
	m.setCookie(c, token)
	return token, nil
}

func (m *CSRF) setCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(constants.CSRFCookieName, token, m.maxAge, "/", "", m.secure, false)
}

// Require rejects POST, PUT, PATCH and DELETE requests that do not echo the
// session token in the X-CSRFToken header or that come from an untrusted
// origin.
func (m *CSRF) Require() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
			c.Next()
			return
		}

		if origin := c.GetHeader("Origin"); origin != "" && !m.originAllowed(origin, c.Request.Host) {
			apierrors.CSRFFailed(c, "Origin checking failed - "+origin+" does not match any trusted origins.")
			return
		}

		expected, _ := sessions.Default(c).Get(constants.SessionKeyCSRFToken).(string)
		got := c.GetHeader(constants.CSRFHeaderName)
		if expected == "" || got == "" {
			apierrors.CSRFFailed(c, "CSRF token missing.")
			return
		}
		if subtle.ConstantTimeCompare([]byte(expected), []byte(got)) != 1 {
			apierrors.CSRFFailed(c, "CSRF token incorrect.")
			return
		}

		c.Next()
	}
}

func (m *CSRF) originAllowed(origin, host string) bool {
	for _, trusted := range m.trustedOrigins {
		if strings.EqualFold(strings.TrimSuffix(trusted, "/"), origin) {
			return true
		}
	}

	parsed, err := url.Parse(origin)
	if err != nil || parsed.Host == "" {
		return false
	}
	return strings.EqualFold(parsed.Host, host)
}
