package project

import (
	"errors"

	"github.com/foliolabs/core/internal/pkg/pagination"
	"github.com/foliolabs/core/internal/pkg/response"
	"github.com/foliolabs/core/internal/pkg/revalidate"
	"github.com/foliolabs/core/internal/pkg/validate"
	"github.com/gin-gonic/gin"
)

// Handler handles project HTTP requests.
type Handler struct {
	svc   *Service
	cache *revalidate.Service
}

func NewHandler(svc *Service, cache *revalidate.Service) *Handler {
	return &Handler{svc: svc, cache: cache}
}

// RegisterPublicRoutes mounts the public read paths.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	projects := rg.Group("/projects")
	projects.GET("", h.list)
	projects.GET("/:slug", h.getBySlug)
}

// RegisterAdminRoutes mounts the gated CRUD surface.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	projects := rg.Group("/projects")
	projects.GET("", h.listAdmin)
	projects.GET("/:id", h.getByID)
	projects.POST("", h.create)
	projects.PUT("/:id", h.update)
	projects.DELETE("/:id", h.delete)
}

// list GET /api/projects
func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)

	var lq ListQuery
	if err := c.ShouldBindQuery(&lq); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	items, pag, err := h.svc.List(q, ListFilter{Type: lq.Type, Search: lq.Search})
	if err != nil {
		response.InternalError(c, err)
		return
	}

	out := make([]projectResponse, len(items))
	for i, p := range items {
		out[i] = toResponse(&p)
	}
	response.Paged(c, out, pag)
}

// getBySlug GET /api/projects/:slug
func (h *Handler) getBySlug(c *gin.Context) {
	p, err := h.svc.GetBySlug(c.Param("slug"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if p == nil {
		response.NotFoundMsg(c, "project not found")
		return
	}
	response.OK(c, toResponse(p))
}

// listAdmin GET /api/admin/projects  [gate]
func (h *Handler) listAdmin(c *gin.Context) {
	q := pagination.FromContext(c)

	items, pag, err := h.svc.List(q, ListFilter{Search: c.Query("q")})
	if err != nil {
		response.InternalError(c, err)
		return
	}

	out := make([]projectResponse, len(items))
	for i, p := range items {
		out[i] = toResponse(&p)
	}
	response.Paged(c, out, pag)
}

// getByID GET /api/admin/projects/:id  [gate]
func (h *Handler) getByID(c *gin.Context) {
	p, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if p == nil {
		response.NotFoundMsg(c, "project not found")
		return
	}
	response.OK(c, toResponse(p))
}

// create POST /api/admin/projects  [gate]
func (h *Handler) create(c *gin.Context) {
	dto, ok := h.bindAndValidate(c)
	if !ok {
		return
	}

	p, err := h.svc.Create(dto)
	if err != nil {
		if errors.Is(err, ErrSlugTaken) {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}

	h.cache.Paths(revalidate.ProjectPaths(p.Slug)...)
	response.Created(c, toResponse(p))
}

// update PUT /api/admin/projects/:id  [gate]
func (h *Handler) update(c *gin.Context) {
	dto, ok := h.bindAndValidate(c)
	if !ok {
		return
	}

	old, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if old == nil {
		response.NotFoundMsg(c, "project not found")
		return
	}
	oldSlug := old.Slug

	p, err := h.svc.Update(c.Param("id"), dto)
	if err != nil {
		if errors.Is(err, ErrSlugTaken) {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}

	paths := revalidate.ProjectPaths(p.Slug)
	if oldSlug != p.Slug {
		paths = append(paths, revalidate.ProjectPaths(oldSlug)...)
	}
	h.cache.Paths(paths...)
	response.OK(c, toResponse(p))
}

// delete DELETE /api/admin/projects/:id  [gate]
func (h *Handler) delete(c *gin.Context) {
	p, err := h.svc.Delete(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if p == nil {
		response.NotFoundMsg(c, "project not found")
		return
	}

	h.cache.Paths(revalidate.ProjectPaths(p.Slug)...)
	response.NoContent(c)
}

// bindAndValidate decodes the payload and enforces the schema before any
// storage access.
func (h *Handler) bindAndValidate(c *gin.Context) (*ProjectDTO, bool) {
	var dto ProjectDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return nil, false
	}
	if fields := validate.Struct(&dto); fields != nil {
		response.UnprocessableEntity(c, "validation failed", fields)
		return nil, false
	}
	return &dto, true
}
