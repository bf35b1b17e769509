package models

import "time"

// PostModel is a blog post. A post is live iff PublishedAt is non-nil;
// a nil PublishedAt marks a draft.
type PostModel struct {
	Base
	Title          string      `json:"title"           gorm:"not null"`
	Slug           string      `json:"slug"            gorm:"uniqueIndex;not null"`
	Excerpt        string      `json:"excerpt"         gorm:"type:text"`
	ContentMDX     string      `json:"content_mdx"     gorm:"column:content_mdx;type:longtext"`
	Tags           StringSlice `json:"tags"            gorm:"type:longtext"`
	ReadingMinutes int         `json:"reading_minutes" gorm:"default:0"`
	CoverImageURL  string      `json:"cover_image_url"`
	PublishedAt    *time.Time  `json:"published_at"    gorm:"index"`
}

func (PostModel) TableName() string { return "posts" }

// IsPublished reports whether the post is visible on public read paths.
func (p PostModel) IsPublished() bool { return p.PublishedAt != nil }
