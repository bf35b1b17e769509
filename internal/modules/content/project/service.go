package project

import (
	"errors"
	"strings"

	"github.com/foliolabs/core/internal/models"
	"github.com/foliolabs/core/internal/pkg/pagination"
	"github.com/foliolabs/core/internal/pkg/response"
	"gorm.io/gorm"
)

// ErrSlugTaken is returned when a create collides with an existing slug.
var ErrSlugTaken = errors.New("slug already exists")

// Service handles project persistence.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ListFilter narrows a project listing.
type ListFilter struct {
	Type   string
	Search string
}

// List returns projects featured-first, then newest-first. Projects have no
// draft state, so the public and admin listings share this query.
func (s *Service) List(q pagination.Query, f ListFilter) ([]models.ProjectModel, response.Pagination, error) {
	tx := s.db.Model(&models.ProjectModel{}).Order("featured DESC, created_at DESC")

	if typ := strings.TrimSpace(f.Type); typ != "" {
		tx = tx.Where("type = ?", strings.ToUpper(typ))
	}
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		like := "%" + term + "%"
		tx = tx.Where("LOWER(title) LIKE ? OR LOWER(summary) LIKE ? OR LOWER(tech_stack) LIKE ?", like, like, like)
	}

	var items []models.ProjectModel
	pag, err := pagination.Paginate(tx, q, &items)
	return items, pag, err
}

// GetBySlug fetches a single project by slug.
func (s *Service) GetBySlug(slug string) (*models.ProjectModel, error) {
	var p models.ProjectModel
	if err := s.db.First(&p, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// GetByID fetches a single project by ID.
func (s *Service) GetByID(id string) (*models.ProjectModel, error) {
	var p models.ProjectModel
	if err := s.db.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// Create inserts a new project. Slug collisions are rejected before the insert.
func (s *Service) Create(dto *ProjectDTO) (*models.ProjectModel, error) {
	var count int64
	if err := s.db.Model(&models.ProjectModel{}).Where("slug = ?", dto.Slug).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugTaken
	}

	p := models.ProjectModel{
		Title:         dto.Title,
		Slug:          dto.Slug,
		Summary:       dto.Summary,
		Type:          dto.Type,
		TechStack:     stackOrEmpty(dto.TechStack),
		RepoURL:       dto.RepoURL,
		LiveURL:       dto.LiveURL,
		VideoURL:      dto.VideoURL,
		CoverImageURL: dto.CoverImageURL,
		ContentMDX:    dto.ContentMDX,
		Featured:      dto.Featured,
	}
	if err := s.db.Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Update replaces the editable fields of a project by ID. Returns (nil, nil)
// when the project does not exist.
func (s *Service) Update(id string, dto *ProjectDTO) (*models.ProjectModel, error) {
	p, err := s.GetByID(id)
	if err != nil || p == nil {
		return p, err
	}

	if dto.Slug != p.Slug {
		var count int64
		if err := s.db.Model(&models.ProjectModel{}).
			Where("slug = ? AND id <> ?", dto.Slug, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrSlugTaken
		}
	}

	updates := map[string]interface{}{
		"title":           dto.Title,
		"slug":            dto.Slug,
		"summary":         dto.Summary,
		"type":            dto.Type,
		"tech_stack":      stackOrEmpty(dto.TechStack),
		"repo_url":        dto.RepoURL,
		"live_url":        dto.LiveURL,
		"video_url":       dto.VideoURL,
		"cover_image_url": dto.CoverImageURL,
		"content_mdx":     dto.ContentMDX,
		"featured":        dto.Featured,
	}
	if err := s.db.Model(p).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// Delete removes a project by id.
func (s *Service) Delete(id string) (*models.ProjectModel, error) {
	p, err := s.GetByID(id)
	if err != nil || p == nil {
		return p, err
	}
	if err := s.db.Delete(&models.ProjectModel{}, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func stackOrEmpty(stack []string) models.StringSlice {
	if stack == nil {
		return models.StringSlice{}
	}
	return models.StringSlice(stack)
}
