package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/foliolabs/core/internal/config"
	"github.com/foliolabs/core/internal/pkg/jwt"
	"github.com/foliolabs/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

const (
	// SessionCookie carries the admin session token for browser requests.
	SessionCookie = "folio_session"

	ContextKeyEmail = "admin_email"

	// LoginPath is where page-level gates send unauthenticated visitors.
	LoginPath = "/admin/login"
)

// AdminGate enforces the single-operator authorization check on API routes:
// the session email must match the configured admin email exactly. A missing
// or unconfigured admin email fails closed.
func AdminGate(cfg *config.AppConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, err := AuthenticateAdmin(cfg, c)
		if err != nil {
			response.Unauthorized(c)
			return
		}
		c.Set(ContextKeyEmail, email)
		c.Next()
	}
}

// AdminGatePage is the page flavor of the gate: instead of a JSON 401 it
// redirects to the login page, matching browser navigation semantics.
func AdminGatePage(cfg *config.AppConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, err := AuthenticateAdmin(cfg, c)
		if err != nil {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		c.Set(ContextKeyEmail, email)
		c.Next()
	}
}

// OptionalAdmin sets the admin identity when a valid session is present but
// never blocks the request. Public routes use it so the page cache can skip
// responses personalized for the logged-in admin.
func OptionalAdmin(cfg *config.AppConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if email, err := AuthenticateAdmin(cfg, c); err == nil {
			c.Set(ContextKeyEmail, email)
		}
		c.Next()
	}
}

// AuthenticateAdmin resolves the request's session identity and compares it
// byte-for-byte against the configured admin email. This is the only access
// control in the system, so every admin entry point goes through it.
func AuthenticateAdmin(cfg *config.AppConfig, c *gin.Context) (string, error) {
	if cfg == nil || cfg.Admin.Email == "" {
		return "", errors.New("admin identity is not configured")
	}

	token := extractToken(c)
	if token == "" {
		return "", errors.New("session token is required")
	}

	claims, err := jwt.Parse(token)
	if err != nil {
		return "", err
	}
	if claims.Email != cfg.Admin.Email {
		return "", errors.New("session email does not match the admin email")
	}
	return claims.Email, nil
}

// CurrentAdminEmail extracts the authenticated admin email from context.
func CurrentAdminEmail(c *gin.Context) string {
	v, _ := c.Get(ContextKeyEmail)
	email, _ := v.(string)
	return email
}

// IsAuthenticated reports whether the request passed an admin gate.
func IsAuthenticated(c *gin.Context) bool {
	return CurrentAdminEmail(c) != ""
}

func extractToken(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); auth != "" {
		return normalizeToken(auth)
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return normalizeToken(cookie)
	}
	return ""
}

// normalizeToken trims spaces and strips an optional Bearer prefix.
func normalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}
