package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/foliolabs/core/internal/config"
	"github.com/foliolabs/core/internal/middleware"
	"github.com/foliolabs/core/internal/pkg/jwt"
	"github.com/foliolabs/core/internal/pkg/response"
	"github.com/foliolabs/core/internal/pkg/validate"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// sessionTTL is how long a login stays valid.
const sessionTTL = 7 * 24 * time.Hour

// Handler serves admin session endpoints.
type Handler struct {
	cfg *config.AppConfig
	svc *Service
	log *zap.Logger
}

func NewHandler(cfg *config.AppConfig, svc *Service, log *zap.Logger) *Handler {
	return &Handler{cfg: cfg, svc: svc, log: log}
}

// RegisterRoutes mounts login outside the gate and session/logout behind it.
func (h *Handler) RegisterRoutes(public, gated *gin.RouterGroup) {
	public.POST("/login", h.login)
	gated.GET("/session", h.session)
	gated.POST("/logout", h.logout)
}

type loginDTO struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// login POST /api/admin/login
func (h *Handler) login(c *gin.Context) {
	var dto loginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if fields := validate.Struct(&dto); fields != nil {
		response.UnprocessableEntity(c, "validation failed", fields)
		return
	}

	if err := h.svc.Authenticate(dto.Email, dto.Password); err != nil {
		if errors.Is(err, ErrBadCredentials) {
			h.log.Warn("admin login rejected", zap.String("email", dto.Email))
			response.UnauthorizedMsg(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}

	token, err := jwt.Sign(dto.Email, sessionTTL)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	h.setSessionCookie(c, token, int(sessionTTL.Seconds()))
	h.log.Info("admin login", zap.String("email", dto.Email))

	response.OK(c, gin.H{
		"token": token,
		"email": dto.Email,
	})
}

// session GET /api/admin/session  [gate]
func (h *Handler) session(c *gin.Context) {
	response.OK(c, gin.H{
		"email":         middleware.CurrentAdminEmail(c),
		"authenticated": true,
	})
}

// logout POST /api/admin/logout  [gate]
func (h *Handler) logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	response.OK(c, gin.H{"ok": true})
}

func (h *Handler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", !h.cfg.IsDev(), true)
}
