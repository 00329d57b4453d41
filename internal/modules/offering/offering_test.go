package offering

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/folio-space/core/internal/database"
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

func TestFeatureListSplitsCommaString(t *testing.T) {
	svc := NewService(newTestDB(t))

	m, err := svc.Create(context.Background(), &SaveOfferingDTO{
		Title:    "Web Development",
		Features: "Responsive design, SEO , Deployment",
	})
	require.NoError(t, err)

	out := toResponse(m)
	assert.Equal(t, "Responsive design, SEO , Deployment", out.Features)
	assert.Equal(t, []string{"Responsive design", "SEO", "Deployment"}, out.FeatureList)

	m.Features = ""
	assert.Empty(t, toResponse(m).FeatureList)
}

func TestListOrderedByTitle(t *testing.T) {
	svc := NewService(newTestDB(t))
	ctx := context.Background()

	for _, title := range []string{"Web Development", "API Design", "Consulting"} {
		_, err := svc.Create(ctx, &SaveOfferingDTO{Title: title})
		require.NoError(t, err)
	}

	items, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "API Design", items[0].Title)
	assert.Equal(t, "Consulting", items[1].Title)
	assert.Equal(t, "Web Development", items[2].Title)
}

func TestUpdateClearsFeatures(t *testing.T) {
	svc := NewService(newTestDB(t))
	ctx := context.Background()

	m, err := svc.Create(ctx, &SaveOfferingDTO{Title: "Consulting", Features: "Audit,Roadmap"})
	require.NoError(t, err)

	empty := ""
	updated, err := svc.Update(ctx, m.ID, &UpdateOfferingDTO{Features: &empty})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "", updated.Features)
	assert.Equal(t, "Consulting", updated.Title)
}
