package models

// Project type enum values.
const (
	ProjectTypeWeb     = "WEB"
	ProjectTypeLLM     = "LLM"
	ProjectTypeAIVideo = "AIVIDEO"
)

// ProjectModel is a portfolio project. Projects have no draft concept;
// every row is public.
type ProjectModel struct {
	Base
	Title         string      `json:"title"           gorm:"not null"`
	Slug          string      `json:"slug"            gorm:"uniqueIndex;not null"`
	Summary       string      `json:"summary"         gorm:"type:text"`
	Type          string      `json:"type"            gorm:"not null;index"`
	TechStack     StringSlice `json:"tech_stack"      gorm:"type:longtext"`
	RepoURL       string      `json:"repo_url"`
	LiveURL       string      `json:"live_url"`
	VideoURL      string      `json:"video_url"`
	CoverImageURL string      `json:"cover_image_url"`
	ContentMDX    string      `json:"content_mdx"     gorm:"column:content_mdx;type:longtext"`
	Featured      bool        `json:"featured"        gorm:"default:false;index"`
}

func (ProjectModel) TableName() string { return "projects" }
