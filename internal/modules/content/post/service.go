package post

import (
	"errors"
	"strings"
	"time"

	"github.com/foliolabs/core/internal/models"
	"github.com/foliolabs/core/internal/modules/markdown"
	"github.com/foliolabs/core/internal/pkg/pagination"
	"github.com/foliolabs/core/internal/pkg/response"
	"gorm.io/gorm"
)

// ErrSlugTaken is returned when a create collides with an existing slug.
var ErrSlugTaken = errors.New("slug already exists")

// Service handles post persistence.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ListFilter narrows a post listing. PublishedOnly is set on public paths;
// Tag and Search match case-insensitively.
type ListFilter struct {
	PublishedOnly bool
	Tag           string
	Search        string
}

// List returns a paginated, newest-first list of posts.
func (s *Service) List(q pagination.Query, f ListFilter) ([]models.PostModel, response.Pagination, error) {
	tx := s.db.Model(&models.PostModel{}).Order("created_at DESC")

	if f.PublishedOnly {
		tx = tx.Where("published_at IS NOT NULL")
	}
	if tag := strings.ToLower(strings.TrimSpace(f.Tag)); tag != "" {
		// Tags live in a JSON array column, so an exact element match means
		// matching the quoted form; a bare substring would let "go" hit "golang".
		tx = tx.Where("LOWER(tags) LIKE ? ESCAPE '!'", `%"`+escapeLike(tag)+`"%`)
	}
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		like := "%" + term + "%"
		tx = tx.Where("LOWER(title) LIKE ? OR LOWER(excerpt) LIKE ?", like, like)
	}

	var posts []models.PostModel
	pag, err := pagination.Paginate(tx, q, &posts)
	return posts, pag, err
}

// GetBySlug fetches a single post by slug. Unless includeDrafts is set, an
// unpublished post behaves exactly like a missing one.
func (s *Service) GetBySlug(slug string, includeDrafts bool) (*models.PostModel, error) {
	tx := s.db.Where("slug = ?", slug)
	if !includeDrafts {
		tx = tx.Where("published_at IS NOT NULL")
	}
	var post models.PostModel
	if err := tx.First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// GetByID fetches a single post by ID.
func (s *Service) GetByID(id string) (*models.PostModel, error) {
	var post models.PostModel
	if err := s.db.First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// Create inserts a new post. Slug collisions are rejected before the insert.
func (s *Service) Create(dto *PostDTO) (*models.PostModel, error) {
	var count int64
	if err := s.db.Model(&models.PostModel{}).Where("slug = ?", dto.Slug).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugTaken
	}

	publishedAt, err := dto.PublishedTime()
	if err != nil {
		return nil, err
	}

	post := models.PostModel{
		Title:          dto.Title,
		Slug:           dto.Slug,
		Excerpt:        dto.Excerpt,
		ContentMDX:     dto.ContentMDX,
		Tags:           tagsOrEmpty(dto.Tags),
		ReadingMinutes: resolveReadingMinutes(dto),
		CoverImageURL:  dto.CoverImageURL,
		PublishedAt:    publishedAt,
	}
	if err := s.db.Create(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// Update replaces the editable fields of a post by ID. Returns (nil, nil)
// when the post does not exist.
func (s *Service) Update(id string, dto *PostDTO) (*models.PostModel, error) {
	post, err := s.GetByID(id)
	if err != nil || post == nil {
		return post, err
	}

	if dto.Slug != post.Slug {
		var count int64
		if err := s.db.Model(&models.PostModel{}).
			Where("slug = ? AND id <> ?", dto.Slug, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrSlugTaken
		}
	}

	publishedAt, err := dto.PublishedTime()
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"title":           dto.Title,
		"slug":            dto.Slug,
		"excerpt":         dto.Excerpt,
		"content_mdx":     dto.ContentMDX,
		"tags":            tagsOrEmpty(dto.Tags),
		"reading_minutes": resolveReadingMinutes(dto),
		"cover_image_url": dto.CoverImageURL,
		"published_at":    publishedAt,
	}
	if err := s.db.Model(post).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// TogglePublish flips a post between draft and live. It touches only the
// published_at column. Returns (nil, nil) when the post does not exist.
func (s *Service) TogglePublish(id string) (*models.PostModel, error) {
	post, err := s.GetByID(id)
	if err != nil || post == nil {
		return post, err
	}

	next := togglePublishedAt(post.PublishedAt, time.Now().UTC())
	if err := s.db.Model(post).Update("published_at", next).Error; err != nil {
		return nil, err
	}
	post.PublishedAt = next
	return post, nil
}

// Delete removes a post by id. Deleting a missing id is reported as not found.
func (s *Service) Delete(id string) (*models.PostModel, error) {
	post, err := s.GetByID(id)
	if err != nil || post == nil {
		return post, err
	}
	if err := s.db.Delete(&models.PostModel{}, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// togglePublishedAt maps draft→live (stamped now) and live→draft. Toggling
// twice restores the original nullness, not the original timestamp.
func togglePublishedAt(current *time.Time, now time.Time) *time.Time {
	if current != nil {
		return nil
	}
	return &now
}

// resolveReadingMinutes honors a client-supplied value and derives one from
// the word count when absent.
func resolveReadingMinutes(dto *PostDTO) int {
	if dto.ReadingMinutes > 0 {
		return dto.ReadingMinutes
	}
	return markdown.ReadingMinutes(dto.ContentMDX)
}

// escapeLike neutralizes LIKE wildcards in user input. '!' is the escape
// character because a literal backslash is not portable across MySQL and
// the sqlite driver the tests run on.
func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}

func tagsOrEmpty(tags []string) models.StringSlice {
	if tags == nil {
		return models.StringSlice{}
	}
	return models.StringSlice(tags)
}
