package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/foliolabs/core/internal/config"
	"github.com/foliolabs/core/internal/pkg/jwt"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adminEmail = "owner@example.com"

func adminCfg() *config.AppConfig {
	cfg := &config.AppConfig{}
	cfg.Admin.Email = adminEmail
	return cfg
}

func gateRouter(cfg *config.AppConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api/admin", AdminGate(cfg))
	api.GET("/posts", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": CurrentAdminEmail(c)})
	})

	pages := r.Group("/admin", AdminGatePage(cfg))
	pages.GET("/posts", func(c *gin.Context) {
		c.String(http.StatusOK, "admin page")
	})
	return r
}

func signedToken(t *testing.T, email string) string {
	t.Helper()
	token, err := jwt.Sign(email, time.Hour)
	require.NoError(t, err)
	return token
}

func TestAdminGateRejectsAnonymous(t *testing.T) {
	r := gateRouter(adminCfg())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/posts", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":0`)
}

func TestAdminGateAcceptsBearerToken(t *testing.T) {
	r := gateRouter(adminCfg())

	req := httptest.NewRequest(http.MethodGet, "/api/admin/posts", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, adminEmail))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), adminEmail)
}

func TestAdminGateAcceptsSessionCookie(t *testing.T) {
	r := gateRouter(adminCfg())

	req := httptest.NewRequest(http.MethodGet, "/api/admin/posts", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: signedToken(t, adminEmail)})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminGateRejectsMismatchedEmail(t *testing.T) {
	r := gateRouter(adminCfg())

	req := httptest.NewRequest(http.MethodGet, "/api/admin/posts", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "someone-else@example.com"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminGateFailsClosedWithoutAdminEmail(t *testing.T) {
	r := gateRouter(&config.AppConfig{})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/posts", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, adminEmail))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminGatePageRedirectsToLogin(t *testing.T) {
	r := gateRouter(adminCfg())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/posts", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, LoginPath, w.Header().Get("Location"))
}

func TestAdminGatePagePassesAuthenticated(t *testing.T) {
	r := gateRouter(adminCfg())

	req := httptest.NewRequest(http.MethodGet, "/admin/posts", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: signedToken(t, adminEmail)})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin page", w.Body.String())
}

func TestNormalizeToken(t *testing.T) {
	assert.Equal(t, "abc", normalizeToken("Bearer abc"))
	assert.Equal(t, "abc", normalizeToken("bearer abc"))
	assert.Equal(t, "abc", normalizeToken("  abc  "))
}
