package media

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/foliolabs/core/internal/config"
	"github.com/foliolabs/core/internal/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves the media upload endpoint. Unlike the content API this
// endpoint speaks a flat {error} / {url, filename, size, type} shape so
// upload clients never have to unwrap an envelope.
type Handler struct {
	cfg      *config.AppConfig
	uploader Uploader
	log      *zap.Logger
}

// NewHandler wires the upload endpoint. uploader may be nil when storage
// is not configured; uploads then fail with a 500 instead of at boot.
func NewHandler(cfg *config.AppConfig, uploader Uploader, log *zap.Logger) *Handler {
	return &Handler{cfg: cfg, uploader: uploader, log: log}
}

// RegisterRoutes mounts POST /upload. The handler authenticates itself
// rather than sitting behind the admin gate so that rejections carry the
// flat error shape.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/upload", h.upload)
}

func (h *Handler) upload(c *gin.Context) {
	if _, err := middleware.AuthenticateAdmin(h.cfg, c); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}

	contentType := file.Header.Get("Content-Type")
	if !IsAllowedType(contentType) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("File type %q is not allowed. Allowed types: %s", contentType, AllowedTypeList()),
		})
		return
	}

	if file.Size > MaxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File too large. Maximum size is 5MB"})
		return
	}

	if h.uploader == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage is not configured"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	defer src.Close()

	payload, err := io.ReadAll(io.LimitReader(src, MaxUploadSize+1))
	if err != nil {
		h.log.Error("read upload body failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read upload"})
		return
	}
	if int64(len(payload)) > MaxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File too large. Maximum size is 5MB"})
		return
	}

	filename := BuildFilename(file.Filename, time.Now())

	url, err := h.uploader.Upload(c.Request.Context(), filename, payload, contentType)
	if err != nil {
		h.log.Error("media upload failed",
			zap.String("filename", filename),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload to storage"})
		return
	}

	h.log.Info("media uploaded",
		zap.String("filename", filename),
		zap.Int("size", len(payload)),
		zap.String("type", contentType))

	c.JSON(http.StatusOK, gin.H{
		"url":      url,
		"filename": filename,
		"size":     len(payload),
		"type":     contentType,
	})
}
