package timeline

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

func TestListFiltersByType(t *testing.T) {
	svc := NewService(newTestDB(t))
	ctx := context.Background()

	_, err := svc.Create(ctx, &SaveEntryDTO{Type: models.TimelineExperience, Title: "Engineer"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &SaveEntryDTO{Type: models.TimelineEducation, Title: "BSc"})
	require.NoError(t, err)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	work, err := svc.List(ctx, models.TimelineExperience)
	require.NoError(t, err)
	require.Len(t, work, 1)
	assert.Equal(t, "Engineer", work[0].Title)
}

func TestListOrderedByIndex(t *testing.T) {
	svc := NewService(newTestDB(t))
	ctx := context.Background()

	for _, e := range []SaveEntryDTO{
		{Type: models.TimelineExperience, Title: "third", OrderIndex: 3},
		{Type: models.TimelineExperience, Title: "first", OrderIndex: 1},
		{Type: models.TimelineExperience, Title: "second", OrderIndex: 2},
	} {
		dto := e
		_, err := svc.Create(ctx, &dto)
		require.NoError(t, err)
	}

	items, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "first", items[0].Title)
	assert.Equal(t, "second", items[1].Title)
	assert.Equal(t, "third", items[2].Title)
}

func TestUpdatePartialFields(t *testing.T) {
	svc := NewService(newTestDB(t))
	ctx := context.Background()

	m, err := svc.Create(ctx, &SaveEntryDTO{
		Type: models.TimelineEducation, Title: "BSc", Institution: "MIT", OrderIndex: 1,
	})
	require.NoError(t, err)

	newTitle := "MSc"
	updated, err := svc.Update(ctx, m.ID, &UpdateEntryDTO{Title: &newTitle})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "MSc", updated.Title)
	assert.Equal(t, "MIT", updated.Institution)
	assert.Equal(t, 1, updated.OrderIndex)
}

func TestUpdateMissingEntry(t *testing.T) {
	svc := NewService(newTestDB(t))
	title := "x"
	m, err := svc.Update(context.Background(), "missing", &UpdateEntryDTO{Title: &title})
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestDeleteMissingEntry(t *testing.T) {
	svc := NewService(newTestDB(t))
	err := svc.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
