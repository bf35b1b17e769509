package admin

import (
	"github.com/foliolabs/core/internal/config"
	"github.com/foliolabs/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

// Settings exposes a masked view of the running configuration so the
// dashboard can show what is wired up without ever shipping a secret.
type Settings struct {
	cfg *config.AppConfig
}

func NewSettings(cfg *config.AppConfig) *Settings {
	return &Settings{cfg: cfg}
}

func (s *Settings) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/settings", s.show)
}

func (s *Settings) show(c *gin.Context) {
	response.OK(c, gin.H{
		"env": s.cfg.Env,
		"site": gin.H{
			"base_url": s.cfg.Site.BaseURL,
			"title":    s.cfg.Site.Title,
		},
		"admin_configured":    s.cfg.Admin.Email != "" && s.cfg.Admin.PasswordBcrypt != "",
		"database_configured": s.cfg.DSN != "",
		"redis_configured":    s.cfg.RedisURL != "",
		"storage_configured":  s.cfg.Storage.Configured(),
		"storage_bucket":      s.cfg.Storage.Bucket,
	})
}
