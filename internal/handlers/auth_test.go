package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/founder-command-center/internal/constants"
	"github.com/yukikurage/founder-command-center/internal/database"
	"github.com/yukikurage/founder-command-center/internal/dto"
	"github.com/yukikurage/founder-command-center/internal/middleware"
	"github.com/yukikurage/founder-command-center/internal/repository"
	"github.com/yukikurage/founder-command-center/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type authTestEnv struct {
	db          *gorm.DB
	handler     *AuthHandler
	authService *services.AuthService
	router      *gin.Engine
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open("sqlite", ":memory:?_foreign_keys=on", logger.Silent)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, zap.NewNop()))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})
	return db
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	return setupAuthTestEnvWithStore(t, cookie.NewStore([]byte("secret")))
}

func setupAuthTestEnvWithStore(t *testing.T, store sessions.Store) authTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := openTestDB(t)
	authService := services.NewAuthService(repository.NewUserRepository(db))
	handler := NewAuthHandler(authService, middleware.NewCSRF(nil, false, 3600), store, zap.NewNop())

	r := gin.New()
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.GET("/api/auth/csrf/", handler.CSRFToken)
	r.POST("/api/auth/login/", handler.Login)
	authed := r.Group("/api/auth", middleware.RequireAuth(authService))
	authed.POST("/logout/", handler.Logout)
	authed.GET("/check/", handler.Check)

	return authTestEnv{
		db:          db,
		handler:     handler,
		authService: authService,
		router:      r,
	}
}

func (env authTestEnv) createUser(t *testing.T, username string, inactive bool) {
	t.Helper()
	_, err := env.authService.CreateUser(context.Background(), services.CreateUserInput{
		Username:  username,
		Password:  "supersecret",
		Email:     username + "@example.com",
		FirstName: "First",
		LastName:  "Last",
		Inactive:  inactive,
	})
	require.NoError(t, err)
}

func (env authTestEnv) login(t *testing.T, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Code
}

func TestAuthHandler_CSRFToken(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/csrf/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var response struct {
		CSRFToken string `json:"csrfToken"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotEmpty(t, response.CSRFToken)

	var names []string
	for _, c := range w.Result().Cookies() {
		names = append(names, c.Name)
	}
	assert.Contains(t, names, constants.CSRFCookieName)
	assert.Contains(t, names, constants.SessionCookieName)
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupAuthTestEnv(t)
	env.createUser(t, "existing", false)

	w := env.login(t, map[string]string{
		"username": "existing",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Message string      `json:"message"`
		User    dto.UserDTO `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Login successful", response.Message)
	assert.Equal(t, "existing", response.User.Username)
	assert.Equal(t, "existing@example.com", response.User.Email)
	assert.Equal(t, "First", response.User.FirstName)

	var session, csrf *http.Cookie
	for _, c := range w.Result().Cookies() {
		switch c.Name {
		case constants.SessionCookieName:
			session = c
		case constants.CSRFCookieName:
			csrf = c
		}
	}
	require.NotNil(t, session, "expected session cookie to be set")
	require.NotNil(t, csrf, "expected csrf cookie to be set")
	assert.False(t, csrf.HttpOnly)
}

// lastCookie returns the cookie the browser keeps when name is set more than
// once in a response.
func lastCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	var found *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			found = c
		}
	}
	return found
}

func TestAuthHandler_LoginRenewsSession(t *testing.T) {
	store := newMemoryStore()
	env := setupAuthTestEnvWithStore(t, store)
	env.createUser(t, "existing", false)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/csrf/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	anonymous := lastCookie(w, constants.SessionCookieName)
	require.NotNil(t, anonymous)
	require.True(t, store.has(anonymous.Value))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login/", bytes.NewReader([]byte(`{"username":"existing","password":"supersecret"}`)))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(anonymous)
	login := httptest.NewRecorder()
	env.router.ServeHTTP(login, req)
	require.Equal(t, http.StatusOK, login.Code)

	var response struct {
		SessionID string `json:"sessionid"`
	}
	require.NoError(t, json.Unmarshal(login.Body.Bytes(), &response))
	authenticated := lastCookie(login, constants.SessionCookieName)
	require.NotNil(t, authenticated)
	assert.Equal(t, authenticated.Value, response.SessionID)
	assert.NotEqual(t, anonymous.Value, authenticated.Value)
	assert.False(t, store.has(anonymous.Value), "pre-login session must be dropped")

	check := func(c *http.Cookie) int {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/check/", nil)
		req.AddCookie(c)
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)
		return w.Code
	}
	assert.Equal(t, http.StatusUnauthorized, check(anonymous))
	assert.Equal(t, http.StatusOK, check(authenticated))
}

func TestAuthHandler_LoginFailures(t *testing.T) {
	env := setupAuthTestEnv(t)
	env.createUser(t, "existing", false)
	env.createUser(t, "disabled", true)

	tests := []struct {
		name    string
		payload any
		status  int
		code    string
	}{
		{"missing password", map[string]string{"username": "existing"}, http.StatusBadRequest, "MISSING_FIELD"},
		{"empty body", map[string]string{}, http.StatusBadRequest, "MISSING_FIELD"},
		{"wrong password", map[string]string{"username": "existing", "password": "nope-nope"}, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"unknown user", map[string]string{"username": "ghost", "password": "supersecret"}, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"disabled account", map[string]string{"username": "disabled", "password": "supersecret"}, http.StatusUnauthorized, "ACCOUNT_DISABLED"},
		{"not json", "just a string", http.StatusBadRequest, "INVALID_INPUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.login(t, tt.payload)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, errorCode(t, w))
		})
	}
}

func TestAuthHandler_Check(t *testing.T) {
	env := setupAuthTestEnv(t)
	env.createUser(t, "current-user", false)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/check/", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)

	login := env.login(t, map[string]string{"username": "current-user", "password": "supersecret"})
	require.Equal(t, http.StatusOK, login.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/check/", nil)
	for _, c := range login.Result().Cookies() {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Authenticated bool        `json:"authenticated"`
		User          dto.UserDTO `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.Authenticated)
	assert.Equal(t, "current-user", response.User.Username)
}

func TestAuthHandler_Logout(t *testing.T) {
	env := setupAuthTestEnv(t)
	env.createUser(t, "leaving", false)

	login := env.login(t, map[string]string{"username": "leaving", "password": "supersecret"})
	require.Equal(t, http.StatusOK, login.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout/", nil)
	for _, c := range login.Result().Cookies() {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// The browser would now drop the expired session cookie.
	var expired bool
	for _, c := range w.Result().Cookies() {
		if c.Name == constants.SessionCookieName && c.MaxAge < 0 {
			expired = true
		}
	}
	assert.True(t, expired)

	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/auth/logout/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_CheckWithoutMiddleware(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	env.handler.Check(c)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}
