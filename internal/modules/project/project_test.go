package project

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/folio-space/core/internal/database"
	"github.com/folio-space/core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestCreateWithGallery(t *testing.T) {
	svc := NewService(newTestDB(t))
	ctx := context.Background()

	p, err := svc.Create(ctx, &CreateProjectDTO{
		Title:     "Portfolio Site",
		Category:  "Web",
		TechStack: TechStackInput{"Go", "React"},
		Gallery:   []string{"/img/a.png", "/img/b.png"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, p.ID)
	assert.Len(t, p.Gallery, 2)
	assert.Equal(t, "/img/a.png", p.Gallery[0].ImageURL)
	assert.Equal(t, models.StringArray{"Go", "React"}, p.TechStack)
}

func TestUpdateReplacesGallerySet(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	p, err := svc.Create(ctx, &CreateProjectDTO{
		Title:   "Gallery Project",
		Gallery: []string{"/img/a.png", "/img/b.png"},
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, p.ID, &UpdateProjectDTO{
		Gallery: []string{"/img/b.png", "/img/c.png"},
	})
	require.NoError(t, err)
	require.Len(t, updated.Gallery, 2)

	urls := []string{updated.Gallery[0].ImageURL, updated.Gallery[1].ImageURL}
	assert.ElementsMatch(t, []string{"/img/b.png", "/img/c.png"}, urls)

	var count int64
	require.NoError(t, db.Model(&models.ProjectImageModel{}).
		Where("project_id = ?", p.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestUpdateNilGalleryKeepsRows(t *testing.T) {
	svc := NewService(newTestDB(t))
	ctx := context.Background()

	p, err := svc.Create(ctx, &CreateProjectDTO{
		Title:   "Keep Gallery",
		Gallery: []string{"/img/a.png"},
	})
	require.NoError(t, err)

	title := "Renamed"
	updated, err := svc.Update(ctx, p.ID, &UpdateProjectDTO{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Len(t, updated.Gallery, 1)
}

func TestUpdateEmptyGalleryClears(t *testing.T) {
	svc := NewService(newTestDB(t))
	ctx := context.Background()

	p, err := svc.Create(ctx, &CreateProjectDTO{
		Title:   "Clear Gallery",
		Gallery: []string{"/img/a.png"},
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, p.ID, &UpdateProjectDTO{Gallery: []string{}})
	require.NoError(t, err)
	assert.Empty(t, updated.Gallery)
}

func TestDeleteCascadesGallery(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	p, err := svc.Create(ctx, &CreateProjectDTO{
		Title:   "Doomed",
		Gallery: []string{"/img/a.png", "/img/b.png"},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, p.ID))

	var imgCount int64
	require.NoError(t, db.Model(&models.ProjectImageModel{}).
		Where("project_id = ?", p.ID).Count(&imgCount).Error)
	assert.EqualValues(t, 0, imgCount)

	got, err := svc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDeleteMissingProject(t *testing.T) {
	svc := NewService(newTestDB(t))
	err := svc.Delete(context.Background(), "nope")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListFilters(t *testing.T) {
	svc := NewService(newTestDB(t))
	ctx := context.Background()

	_, err := svc.Create(ctx, &CreateProjectDTO{Title: "One", Category: "Web", Featured: true})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &CreateProjectDTO{Title: "Two", Category: "Mobile"})
	require.NoError(t, err)

	web, err := svc.List(ctx, ListQuery{Category: "Web"})
	require.NoError(t, err)
	require.Len(t, web, 1)
	assert.Equal(t, "One", web[0].Title)

	featured := true
	starred, err := svc.List(ctx, ListQuery{Featured: &featured})
	require.NoError(t, err)
	require.Len(t, starred, 1)
	assert.Equal(t, "One", starred[0].Title)

	all, err := svc.List(ctx, ListQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestTechStackInputAcceptsCommaString(t *testing.T) {
	var dto CreateProjectDTO
	require.NoError(t, json.Unmarshal([]byte(`{"title":"x","tech_stack":"Go, React , Vite"}`), &dto))
	assert.Equal(t, TechStackInput{"Go", "React", "Vite"}, dto.TechStack)

	require.NoError(t, json.Unmarshal([]byte(`{"title":"x","tech_stack":["Go","React"]}`), &dto))
	assert.Equal(t, TechStackInput{"Go", "React"}, dto.TechStack)
}

func TestCanceledContextAbortsRead(t *testing.T) {
	svc := NewService(newTestDB(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.List(ctx, ListQuery{})
	assert.Error(t, err)
}
