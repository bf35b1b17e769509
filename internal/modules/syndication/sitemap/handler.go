package sitemap

import (
	"net/http"
	"time"

	"github.com/foliolabs/core/internal/config"
	"github.com/foliolabs/core/internal/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler serves /sitemap.xml.
type Handler struct {
	cfg *config.AppConfig
	db  *gorm.DB
	log *zap.Logger
}

func NewHandler(cfg *config.AppConfig, db *gorm.DB, log *zap.Logger) *Handler {
	return &Handler{cfg: cfg, db: db, log: log}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/sitemap.xml", h.serve)
}

func (h *Handler) serve(c *gin.Context) {
	var posts []models.PostModel
	if err := h.db.
		Select("slug", "updated_at", "published_at").
		Where("published_at IS NOT NULL").
		Order("published_at DESC").
		Find(&posts).Error; err != nil {
		h.log.Error("sitemap post query failed", zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}

	var projects []models.ProjectModel
	if err := h.db.
		Select("slug", "updated_at").
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		h.log.Error("sitemap project query failed", zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}

	xml := Build(h.cfg.Site.BaseURL, posts, projects, time.Now())
	c.Data(http.StatusOK, "application/xml; charset=utf-8", []byte(xml))
}
