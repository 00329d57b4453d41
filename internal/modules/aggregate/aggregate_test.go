package aggregate

import (
	"context"
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

func TestBuildEmptyDatabase(t *testing.T) {
	svc := NewService(newTestDB(t))

	p, err := svc.Build(context.Background())
	require.NoError(t, err)
	assert.Nil(t, p.Profile)
	assert.NotNil(t, p.Skills)
	assert.Empty(t, p.Skills)
	assert.NotNil(t, p.Projects)
	assert.NotNil(t, p.RecentBlogs)
}

func TestBuildSeeded(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.ProfileModel{Name: "Jo", Title: "Engineer"}).Error)
	require.NoError(t, db.Create(&models.SkillModel{Name: "Go", Category: "Backend", Percentage: 90}).Error)

	proj := models.ProjectModel{Title: "Site", Category: "Web"}
	require.NoError(t, db.Create(&proj).Error)
	require.NoError(t, db.Create(&models.ProjectImageModel{ProjectID: proj.ID, ImageURL: "https://cdn.example.com/a.png"}).Error)

	for i := 0; i < 5; i++ {
		require.NoError(t, db.Create(&models.BlogPostModel{Title: fmt.Sprintf("post %d", i)}).Error)
	}

	svc := NewService(db)
	p, err := svc.Build(ctx)
	require.NoError(t, err)

	require.NotNil(t, p.Profile)
	assert.Equal(t, "Jo", p.Profile.Name)
	require.Len(t, p.Skills, 1)
	require.Len(t, p.SkillGroups, 1)
	assert.Equal(t, "Backend", p.SkillGroups[0].Category)
	require.Len(t, p.Projects, 1)
	require.Len(t, p.Projects[0].Gallery, 1)
	assert.Len(t, p.RecentBlogs, 3)
}

func TestBuildToleratesMissingTables(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Migrator().DropTable(&models.SkillModel{}))
	require.NoError(t, db.Migrator().DropTable(&models.BlogPostModel{}))

	require.NoError(t, db.Create(&models.TestimonialModel{Name: "Client", Text: "great"}).Error)

	svc := NewService(db)
	p, err := svc.Build(context.Background())
	require.NoError(t, err)
	assert.Empty(t, p.Skills)
	assert.Empty(t, p.RecentBlogs)
	assert.Len(t, p.Testimonials, 1)
}
