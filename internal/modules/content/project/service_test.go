package project

import (
	"fmt"
	"testing"

	"github.com/foliolabs/core/internal/models"
	"github.com/foliolabs/core/internal/pkg/pagination"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testService(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.ProjectModel{}))
	return NewService(db)
}

func seedProject(t *testing.T, svc *Service, slug, typ string, featured bool) *models.ProjectModel {
	t.Helper()
	p, err := svc.Create(&ProjectDTO{
		Title:    "Project " + slug,
		Slug:     slug,
		Summary:  "summary",
		Type:     typ,
		Featured: featured,
	})
	require.NoError(t, err)
	return p
}

func listSlugs(t *testing.T, svc *Service, f ListFilter) []string {
	t.Helper()
	items, _, err := svc.List(pagination.Query{Page: 1, Size: 50}, f)
	require.NoError(t, err)
	slugs := make([]string, len(items))
	for i, p := range items {
		slugs[i] = p.Slug
	}
	return slugs
}

func TestListTypeFilter(t *testing.T) {
	svc := testService(t)
	seedProject(t, svc, "site", models.ProjectTypeWeb, false)
	seedProject(t, svc, "agent", models.ProjectTypeLLM, false)

	assert.Equal(t, []string{"agent"}, listSlugs(t, svc, ListFilter{Type: "LLM"}))
	// Filter value is normalized to the stored uppercase enum.
	assert.Equal(t, []string{"agent"}, listSlugs(t, svc, ListFilter{Type: "llm"}))
	assert.Empty(t, listSlugs(t, svc, ListFilter{Type: "AIVIDEO"}))
}

func TestListFeaturedFirst(t *testing.T) {
	svc := testService(t)
	seedProject(t, svc, "ordinary", models.ProjectTypeWeb, false)
	seedProject(t, svc, "flagship", models.ProjectTypeWeb, true)

	slugs := listSlugs(t, svc, ListFilter{})
	require.Len(t, slugs, 2)
	assert.Equal(t, "flagship", slugs[0])
}

func TestGetBySlugMissing(t *testing.T) {
	svc := testService(t)

	got, err := svc.GetBySlug("nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDeleteReturnsRemovedRow(t *testing.T) {
	svc := testService(t)
	p := seedProject(t, svc, "short-lived", models.ProjectTypeWeb, false)

	deleted, err := svc.Delete(p.ID)
	require.NoError(t, err)
	require.NotNil(t, deleted)
	assert.Equal(t, "short-lived", deleted.Slug)

	got, err := svc.GetByID(p.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
