package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/founder-command-center/internal/constants"
	"github.com/yukikurage/founder-command-center/internal/models"
	"github.com/yukikurage/founder-command-center/internal/services"
)

type fakeUsers map[uint64]*models.User

func (f fakeUsers) CurrentUser(_ context.Context, id uint64) (*models.User, error) {
	if id == 99 {
		return nil, errors.New("database is down")
	}
	user, ok := f[id]
	if !ok || !user.IsActive {
		return nil, services.ErrUnauthenticated
	}
	return user, nil
}

func newSessionRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("secret"))))
	r.GET("/login/:id", func(c *gin.Context) {
		session := sessions.Default(c)
		var id uint64
		switch c.Param("id") {
		case "1":
			id = 1
		case "2":
			id = 2
		case "99":
			id = 99
		}
		session.Set(constants.SessionKeyUserID, id)
		if err := session.Save(); err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusOK)
	})
	return r
}

func loginCookies(t *testing.T, r *gin.Engine, id string) []*http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login/"+id, nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Result().Cookies()
}

func TestRequireAuth(t *testing.T) {
	users := fakeUsers{
		1: {ID: 1, Username: "alice", IsActive: true},
		2: {ID: 2, Username: "bob", IsActive: false},
	}
	r := newSessionRouter()
	r.GET("/me", RequireAuth(users), func(c *gin.Context) {
		user, ok := GetUser(c)
		require.True(t, ok)
		id, ok := GetUserID(c)
		require.True(t, ok)
		assert.Equal(t, user.ID, id)
		c.String(http.StatusOK, user.Username)
	})

	t.Run("no session", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("active user", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		for _, c := range loginCookies(t, r, "1") {
			req.AddCookie(c)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "alice", w.Body.String())
	})

	t.Run("deactivated user clears session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		for _, c := range loginCookies(t, r, "2") {
			req.AddCookie(c)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var cleared bool
		for _, c := range w.Result().Cookies() {
			if c.Name == constants.SessionCookieName && c.MaxAge < 0 {
				cleared = true
			}
		}
		assert.True(t, cleared)
	})

	t.Run("lookup failure", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		for _, c := range loginCookies(t, r, "99") {
			req.AddCookie(c)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestCSRF(t *testing.T) {
	csrf := NewCSRF([]string{"http://localhost:3000"}, false, 3600)
	r := newSessionRouter()
	r.GET("/csrf", func(c *gin.Context) {
		token, err := csrf.Issue(c, false)
		require.NoError(t, err)
		require.NoError(t, sessions.Default(c).Save())
		c.String(http.StatusOK, token)
	})
	guarded := r.Group("/", csrf.Require())
	guarded.GET("/thing", func(c *gin.Context) { c.Status(http.StatusOK) })
	guarded.POST("/thing", func(c *gin.Context) { c.Status(http.StatusCreated) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/csrf", nil))
	require.Equal(t, http.StatusOK, w.Code)
	token := w.Body.String()
	require.Len(t, token, 64)
	cookies := w.Result().Cookies()

	var csrfCookie *http.Cookie
	for _, c := range cookies {
		if c.Name == constants.CSRFCookieName {
			csrfCookie = c
		}
	}
	require.NotNil(t, csrfCookie)
	assert.Equal(t, token, csrfCookie.Value)
	assert.False(t, csrfCookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, csrfCookie.SameSite)

	send := func(method, header, origin string) int {
		req := httptest.NewRequest(method, "/thing", nil)
		for _, c := range cookies {
			req.AddCookie(c)
		}
		if header != "" {
			req.Header.Set(constants.CSRFHeaderName, header)
		}
		if origin != "" {
			req.Header.Set("Origin", origin)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send(http.MethodGet, "", ""))
	assert.Equal(t, http.StatusForbidden, send(http.MethodPost, "", ""))
	assert.Equal(t, http.StatusForbidden, send(http.MethodPost, "wrong", ""))
	assert.Equal(t, http.StatusCreated, send(http.MethodPost, token, ""))
	assert.Equal(t, http.StatusCreated, send(http.MethodPost, token, "http://localhost:3000"))
	assert.Equal(t, http.StatusCreated, send(http.MethodPost, token, "http://example.com"))
	assert.Equal(t, http.StatusForbidden, send(http.MethodPost, token, "http://evil.test"))
}

func TestCSRF_IssueReusesUnlessRotated(t *testing.T) {
	csrf := NewCSRF(nil, false, 3600)
	r := newSessionRouter()
	r.GET("/csrf", func(c *gin.Context) {
		token, err := csrf.Issue(c, c.Query("rotate") == "1")
		require.NoError(t, err)
		require.NoError(t, sessions.Default(c).Save())
		c.String(http.StatusOK, token)
	})

	get := func(path string, cookies []*http.Cookie) (string, []*http.Cookie) {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		for _, c := range cookies {
			req.AddCookie(c)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		return w.Body.String(), w.Result().Cookies()
	}

	first, cookies := get("/csrf", nil)
	again, _ := get("/csrf", cookies)
	assert.Equal(t, first, again)

	rotated, _ := get("/csrf?rotate=1", cookies)
	assert.NotEqual(t, first, rotated)
}

func TestAllowedHosts(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		allowed []string
		host    string
		want    int
	}{
		{"exact", []string{"localhost"}, "localhost:8000", http.StatusOK},
		{"ip", []string{"127.0.0.1"}, "127.0.0.1", http.StatusOK},
		{"ipv6", []string{"::1"}, "[::1]:8000", http.StatusOK},
		{"case insensitive", []string{"api.example.com"}, "API.example.com", http.StatusOK},
		{"suffix matches domain", []string{".example.com"}, "example.com", http.StatusOK},
		{"suffix matches subdomain", []string{".example.com"}, "api.example.com", http.StatusOK},
		{"wildcard", []string{"*"}, "anything.test", http.StatusOK},
		{"rejected", []string{"localhost"}, "evil.test", http.StatusBadRequest},
		{"suffix is not substring", []string{".example.com"}, "badexample.com", http.StatusBadRequest},
		{"empty list", nil, "localhost", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(AllowedHosts(tt.allowed))
			r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Host = tt.host
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(constants.RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(constants.RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(constants.RequestIDHeader))
}
