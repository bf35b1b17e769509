package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/foliolabs/core/internal/config"
	"github.com/foliolabs/core/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	testEmail    = "owner@example.com"
	testPassword = "correct horse battery staple"
)

func testConfig(t *testing.T) *config.AppConfig {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := &config.AppConfig{Env: "development"}
	cfg.Admin.Email = testEmail
	cfg.Admin.PasswordBcrypt = string(hash)
	return cfg
}

func loginRouter(cfg *config.AppConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	svc := NewService(cfg)
	svc.delay = 0 // no slow-down penalty in tests
	h := NewHandler(cfg, svc, zap.NewNop())
	public := r.Group("/api/admin")
	gated := r.Group("/api/admin", middleware.AdminGate(cfg))
	h.RegisterRoutes(public, gated)
	return r
}

func postLogin(r *gin.Engine, body interface{}) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoginSuccess(t *testing.T) {
	cfg := testConfig(t)
	r := loginRouter(cfg)

	w := postLogin(r, gin.H{"email": testEmail, "password": testPassword})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, testEmail, resp.Email)

	var sessionCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie, "login must set the session cookie")
	assert.True(t, sessionCookie.HttpOnly)
	assert.Equal(t, resp.Token, sessionCookie.Value)
}

func TestLoginWrongPassword(t *testing.T) {
	cfg := testConfig(t)
	r := loginRouter(cfg)

	w := postLogin(r, gin.H{"email": testEmail, "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid email or password")
}

func TestLoginWrongEmail(t *testing.T) {
	cfg := testConfig(t)
	r := loginRouter(cfg)

	w := postLogin(r, gin.H{"email": "other@example.com", "password": testPassword})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginFailsClosedWhenUnconfigured(t *testing.T) {
	cfg := &config.AppConfig{Env: "development"}
	r := loginRouter(cfg)

	w := postLogin(r, gin.H{"email": testEmail, "password": testPassword})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginValidatesPayload(t *testing.T) {
	cfg := testConfig(t)
	r := loginRouter(cfg)

	w := postLogin(r, gin.H{"email": "not-an-email"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestSessionAndLogout(t *testing.T) {
	cfg := testConfig(t)
	r := loginRouter(cfg)

	login := postLogin(r, gin.H{"email": testEmail, "password": testPassword})
	require.Equal(t, http.StatusOK, login.Code)
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(login.Body.Bytes(), &resp))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/session", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), testEmail)

	req = httptest.NewRequest(http.MethodPost, "/api/admin/logout", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var cleared *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			cleared = c
		}
	}
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
}
