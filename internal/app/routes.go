package app

import (
	"github.com/foliolabs/core/internal/middleware"
	"github.com/foliolabs/core/internal/modules/admin"
	"github.com/foliolabs/core/internal/modules/auth"
	"github.com/foliolabs/core/internal/modules/content/post"
	"github.com/foliolabs/core/internal/modules/content/project"
	"github.com/foliolabs/core/internal/modules/storage/media"
	"github.com/foliolabs/core/internal/modules/syndication/feed"
	"github.com/foliolabs/core/internal/modules/syndication/sitemap"
	"github.com/foliolabs/core/internal/pkg/response"
	"github.com/foliolabs/core/internal/pkg/revalidate"
	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(uploader media.Uploader) {
	r := a.router
	cfg := a.cfg

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	pageCache := middleware.PageCache(a.rc.Raw(), middleware.PageCacheOptions{
		Disable: cfg.IsDev(),
	})

	revalidator := revalidate.NewService(a.rc.Raw(), a.logger)

	postHandler := post.NewHandler(post.NewService(a.db), revalidator)
	projectHandler := project.NewHandler(project.NewService(a.db), revalidator)
	authHandler := auth.NewHandler(cfg, auth.NewService(cfg), a.logger)

	// Root-level syndication, cached like any other public render.
	root := r.Group("", middleware.OptionalAdmin(cfg), pageCache)
	sitemap.NewHandler(cfg, a.db, a.logger).RegisterRoutes(root)
	feed.NewHandler(cfg, a.db, a.logger).RegisterRoutes(root)

	// Public content API. OptionalAdmin runs first so the page cache never
	// serves the admin a stale render.
	api := r.Group("/api", middleware.OptionalAdmin(cfg), pageCache)
	postHandler.RegisterPublicRoutes(api)
	projectHandler.RegisterPublicRoutes(api)

	// Upload authenticates inside the handler to keep its flat error shape.
	media.NewHandler(cfg, uploader, a.logger).RegisterRoutes(r.Group("/api"))

	// Admin API. Login lives outside the gate, everything else behind it.
	adminPublic := r.Group("/api/admin")
	adminAPI := r.Group("/api/admin", middleware.AdminGate(cfg))
	authHandler.RegisterRoutes(adminPublic, adminAPI)
	postHandler.RegisterAdminRoutes(adminAPI)
	projectHandler.RegisterAdminRoutes(adminAPI)
	admin.NewSettings(cfg).RegisterRoutes(adminAPI)

	// Admin HTML pages with the redirecting gate.
	admin.NewPages(cfg).RegisterRoutes(r)
}
