package post

import (
	"fmt"
	"time"

	"github.com/foliolabs/core/internal/models"
)

// PostDTO is the request body for creating or updating a post. Create and
// update share the full schema; partial patches are not supported.
type PostDTO struct {
	Title          string   `json:"title"           validate:"required"`
	Slug           string   `json:"slug"            validate:"required,slug"`
	Excerpt        string   `json:"excerpt"         validate:"required"`
	ContentMDX     string   `json:"content_mdx"     validate:"required"`
	Tags           []string `json:"tags"`
	CoverImageURL  string   `json:"cover_image_url" validate:"omitempty,url"`
	ReadingMinutes int      `json:"reading_minutes" validate:"gte=0"`
	PublishedAt    *string  `json:"published_at"` // RFC3339 string or null
}

// PublishedTime parses the published_at field. Nil means draft.
func (d *PostDTO) PublishedTime() (*time.Time, error) {
	if d.PublishedAt == nil || *d.PublishedAt == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *d.PublishedAt)
	if err != nil {
		return nil, fmt.Errorf("published_at must be an ISO 8601 timestamp")
	}
	return &t, nil
}

// ListQuery holds the public listing filters.
type ListQuery struct {
	Tag    string `form:"tag"`
	Search string `form:"q"`
}

// postResponse is the API response shape for a post.
type postResponse struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Slug           string     `json:"slug"`
	Excerpt        string     `json:"excerpt"`
	ContentMDX     string     `json:"content_mdx"`
	Tags           []string   `json:"tags"`
	ReadingMinutes int        `json:"reading_minutes"`
	CoverImageURL  string     `json:"cover_image_url,omitempty"`
	PublishedAt    *time.Time `json:"published_at"`
	Created        time.Time  `json:"created_at"`
	Modified       time.Time  `json:"updated_at"`
}

func toResponse(p *models.PostModel) postResponse {
	tags := []string(p.Tags)
	if tags == nil {
		tags = []string{}
	}
	return postResponse{
		ID:             p.ID,
		Title:          p.Title,
		Slug:           p.Slug,
		Excerpt:        p.Excerpt,
		ContentMDX:     p.ContentMDX,
		Tags:           tags,
		ReadingMinutes: p.ReadingMinutes,
		CoverImageURL:  p.CoverImageURL,
		PublishedAt:    p.PublishedAt,
		Created:        p.CreatedAt,
		Modified:       p.UpdatedAt,
	}
}
