package blog

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/folio-space/core/internal/database"
	"github.com/folio-space/core/internal/pkg/pagination"
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

func TestRenderHTML(t *testing.T) {
	out := RenderHTML("# Title\n\nSome **bold** text.")
	assert.Contains(t, out, "<h1")
	assert.Contains(t, out, "<strong>bold</strong>")

	out = RenderHTML("a ~~strike~~ and https://example.com")
	assert.Contains(t, out, "<del>strike</del>")
	assert.Contains(t, out, "<a href=\"https://example.com\"")
}

func TestListPaginates(t *testing.T) {
	svc := NewService(newTestDB(t))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := svc.Create(ctx, &SavePostDTO{
			Title:    fmt.Sprintf("post %d", i),
			Category: "dev",
		})
		require.NoError(t, err)
	}

	items, pag, err := svc.List(ctx, pagination.Query{Page: 1, Size: 2}, "")
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.EqualValues(t, 5, pag.Total)
	assert.Equal(t, 3, pag.TotalPage)
	assert.True(t, pag.HasNextPage)

	items, pag, err = svc.List(ctx, pagination.Query{Page: 3, Size: 2}, "")
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.False(t, pag.HasNextPage)
}

func TestListFiltersByCategory(t *testing.T) {
	svc := NewService(newTestDB(t))
	ctx := context.Background()

	_, err := svc.Create(ctx, &SavePostDTO{Title: "go post", Category: "dev"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &SavePostDTO{Title: "trip", Category: "life"})
	require.NoError(t, err)

	items, pag, err := svc.List(ctx, pagination.Query{Page: 1, Size: 10}, "dev")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.EqualValues(t, 1, pag.Total)
	assert.Equal(t, "go post", items[0].Title)
}

func TestUpdatePartialPost(t *testing.T) {
	svc := NewService(newTestDB(t))
	ctx := context.Background()

	m, err := svc.Create(ctx, &SavePostDTO{Title: "draft", Content: "wip", Category: "dev"})
	require.NoError(t, err)

	content := "# Done"
	updated, err := svc.Update(ctx, m.ID, &UpdatePostDTO{Content: &content})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "# Done", updated.Content)
	assert.Equal(t, "draft", updated.Title)
}

func TestDeleteMissingPost(t *testing.T) {
	svc := NewService(newTestDB(t))
	err := svc.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
