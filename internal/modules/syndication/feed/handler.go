package feed

import (
	"net/http"
	"time"

	"github.com/foliolabs/core/internal/config"
	"github.com/foliolabs/core/internal/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler serves the RSS feed on /rss.xml and its /feed.xml alias.
type Handler struct {
	cfg *config.AppConfig
	db  *gorm.DB
	log *zap.Logger
}

func NewHandler(cfg *config.AppConfig, db *gorm.DB, log *zap.Logger) *Handler {
	return &Handler{cfg: cfg, db: db, log: log}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/rss.xml", h.serve)
	r.GET("/feed.xml", h.serve)
}

func (h *Handler) serve(c *gin.Context) {
	var posts []models.PostModel
	if err := h.db.
		Where("published_at IS NOT NULL").
		Order("published_at DESC").
		Find(&posts).Error; err != nil {
		h.log.Error("feed query failed", zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}

	xml := Build(Channel{
		Title:       h.cfg.Site.Title,
		Link:        h.cfg.Site.BaseURL,
		Description: h.cfg.Site.Description,
	}, posts, time.Now())

	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(xml))
}
