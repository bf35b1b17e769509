package project

import (
	"time"

	"github.com/foliolabs/core/internal/models"
)

// ProjectDTO is the request body for creating or updating a project.
type ProjectDTO struct {
	Title         string   `json:"title"           validate:"required"`
	Slug          string   `json:"slug"            validate:"required,slug"`
	Summary       string   `json:"summary"         validate:"required"`
	Type          string   `json:"type"            validate:"required,oneof=WEB LLM AIVIDEO"`
	TechStack     []string `json:"tech_stack"`
	RepoURL       string   `json:"repo_url"        validate:"omitempty,url"`
	LiveURL       string   `json:"live_url"        validate:"omitempty,url"`
	VideoURL      string   `json:"video_url"       validate:"omitempty,url"`
	CoverImageURL string   `json:"cover_image_url" validate:"omitempty,url"`
	ContentMDX    string   `json:"content_mdx"`
	Featured      bool     `json:"featured"`
}

// ListQuery holds the public listing filters.
type ListQuery struct {
	Type   string `form:"type"`
	Search string `form:"q"`
}

type projectResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Summary       string    `json:"summary"`
	Type          string    `json:"type"`
	TechStack     []string  `json:"tech_stack"`
	RepoURL       string    `json:"repo_url,omitempty"`
	LiveURL       string    `json:"live_url,omitempty"`
	VideoURL      string    `json:"video_url,omitempty"`
	CoverImageURL string    `json:"cover_image_url,omitempty"`
	ContentMDX    string    `json:"content_mdx,omitempty"`
	Featured      bool      `json:"featured"`
	Created       time.Time `json:"created_at"`
	Modified      time.Time `json:"updated_at"`
}

func toResponse(p *models.ProjectModel) projectResponse {
	stack := []string(p.TechStack)
	if stack == nil {
		stack = []string{}
	}
	return projectResponse{
		ID:            p.ID,
		Title:         p.Title,
		Slug:          p.Slug,
		Summary:       p.Summary,
		Type:          p.Type,
		TechStack:     stack,
		RepoURL:       p.RepoURL,
		LiveURL:       p.LiveURL,
		VideoURL:      p.VideoURL,
		CoverImageURL: p.CoverImageURL,
		ContentMDX:    p.ContentMDX,
		Featured:      p.Featured,
		Created:       p.CreatedAt,
		Modified:      p.UpdatedAt,
	}
}
