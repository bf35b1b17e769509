package post

import (
	"errors"

	"github.com/foliolabs/core/internal/pkg/pagination"
	"github.com/foliolabs/core/internal/pkg/response"
	"github.com/foliolabs/core/internal/pkg/revalidate"
	"github.com/foliolabs/core/internal/pkg/validate"
	"github.com/gin-gonic/gin"
)

// Handler handles post HTTP requests.
type Handler struct {
	svc   *Service
	cache *revalidate.Service
}

func NewHandler(svc *Service, cache *revalidate.Service) *Handler {
	return &Handler{svc: svc, cache: cache}
}

// RegisterPublicRoutes mounts the published-only read paths.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	posts := rg.Group("/posts")
	posts.GET("", h.listPublished)
	posts.GET("/:slug", h.getBySlug)
}

// RegisterAdminRoutes mounts the gated CRUD surface. The gate middleware is
// applied by the caller on the whole group.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	posts := rg.Group("/posts")
	posts.GET("", h.listAll)
	posts.GET("/:id", h.getByID)
	posts.POST("", h.create)
	posts.PUT("/:id", h.update)
	posts.PATCH("/:id/publish", h.togglePublish)
	posts.DELETE("/:id", h.delete)
}

// listPublished GET /api/posts
func (h *Handler) listPublished(c *gin.Context) {
	q := pagination.FromContext(c)

	var lq ListQuery
	if err := c.ShouldBindQuery(&lq); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	posts, pag, err := h.svc.List(q, ListFilter{
		PublishedOnly: true,
		Tag:           lq.Tag,
		Search:        lq.Search,
	})
	if err != nil {
		response.InternalError(c, err)
		return
	}

	items := make([]postResponse, len(posts))
	for i, p := range posts {
		items[i] = toResponse(&p)
	}
	response.Paged(c, items, pag)
}

// getBySlug GET /api/posts/:slug
// A draft slug is indistinguishable from a missing one.
func (h *Handler) getBySlug(c *gin.Context) {
	post, err := h.svc.GetBySlug(c.Param("slug"), false)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if post == nil {
		response.NotFoundMsg(c, "post not found")
		return
	}
	response.OK(c, toResponse(post))
}

// listAll GET /api/admin/posts  [gate]
func (h *Handler) listAll(c *gin.Context) {
	q := pagination.FromContext(c)

	posts, pag, err := h.svc.List(q, ListFilter{Search: c.Query("q")})
	if err != nil {
		response.InternalError(c, err)
		return
	}

	items := make([]postResponse, len(posts))
	for i, p := range posts {
		items[i] = toResponse(&p)
	}
	response.Paged(c, items, pag)
}

// getByID GET /api/admin/posts/:id  [gate]
func (h *Handler) getByID(c *gin.Context) {
	post, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if post == nil {
		response.NotFoundMsg(c, "post not found")
		return
	}
	response.OK(c, toResponse(post))
}

// create POST /api/admin/posts  [gate]
func (h *Handler) create(c *gin.Context) {
	dto, ok := h.bindAndValidate(c)
	if !ok {
		return
	}

	post, err := h.svc.Create(dto)
	if err != nil {
		if errors.Is(err, ErrSlugTaken) {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}

	h.cache.Paths(revalidate.PostPaths(post.Slug)...)
	response.Created(c, toResponse(post))
}

// update PUT /api/admin/posts/:id  [gate]
func (h *Handler) update(c *gin.Context) {
	dto, ok := h.bindAndValidate(c)
	if !ok {
		return
	}

	oldPost, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if oldPost == nil {
		response.NotFoundMsg(c, "post not found")
		return
	}
	oldSlug := oldPost.Slug

	post, err := h.svc.Update(c.Param("id"), dto)
	if err != nil {
		if errors.Is(err, ErrSlugTaken) {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}

	paths := revalidate.PostPaths(post.Slug)
	if oldSlug != post.Slug {
		paths = append(paths, revalidate.PostPaths(oldSlug)...)
	}
	h.cache.Paths(paths...)
	response.OK(c, toResponse(post))
}

// togglePublish PATCH /api/admin/posts/:id/publish  [gate]
// Only flips published_at between null and now; never touches content.
func (h *Handler) togglePublish(c *gin.Context) {
	post, err := h.svc.TogglePublish(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if post == nil {
		response.NotFoundMsg(c, "post not found")
		return
	}

	h.cache.Paths(revalidate.PostPaths(post.Slug)...)
	response.OK(c, toResponse(post))
}

// delete DELETE /api/admin/posts/:id  [gate]
func (h *Handler) delete(c *gin.Context) {
	post, err := h.svc.Delete(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if post == nil {
		response.NotFoundMsg(c, "post not found")
		return
	}

	h.cache.Paths(revalidate.PostPaths(post.Slug)...)
	response.NoContent(c)
}

// bindAndValidate decodes the payload and enforces the schema before any
// storage access. On failure it writes the field-level 422 and returns
// ok=false.
func (h *Handler) bindAndValidate(c *gin.Context) (*PostDTO, bool) {
	var dto PostDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return nil, false
	}
	if fields := validate.Struct(&dto); fields != nil {
		response.UnprocessableEntity(c, "validation failed", fields)
		return nil, false
	}
	if _, err := dto.PublishedTime(); err != nil {
		response.UnprocessableEntity(c, "validation failed", []response.FieldError{
			{Field: "published_at", Message: err.Error()},
		})
		return nil, false
	}
	return &dto, true
}
