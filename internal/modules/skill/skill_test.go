package skill

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

func TestSkillLifecycle(t *testing.T) {
	svc := NewService(newTestDB(t))
	ctx := context.Background()

	created, err := svc.Create(ctx, &CreateSkillDTO{Name: "Rust", Category: "Backend", Percentage: 80})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	items, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Rust", items[0].Name)
	assert.Equal(t, 80, items[0].Percentage)

	pct := 95
	updated, err := svc.Update(ctx, created.ID, &UpdateSkillDTO{Percentage: &pct})
	require.NoError(t, err)
	require.NotNil(t, updated)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 95, got.Percentage)

	require.NoError(t, svc.Delete(ctx, created.ID))

	items, err = svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSkillsOrderedByName(t *testing.T) {
	svc := NewService(newTestDB(t))
	ctx := context.Background()

	for _, name := range []string{"Zig", "Ada", "Go"} {
		_, err := svc.Create(ctx, &CreateSkillDTO{Name: name})
		require.NoError(t, err)
	}

	items, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Ada", items[0].Name)
	assert.Equal(t, "Go", items[1].Name)
	assert.Equal(t, "Zig", items[2].Name)
}

func TestListGrouped(t *testing.T) {
	svc := NewService(newTestDB(t))
	ctx := context.Background()

	seed := []CreateSkillDTO{
		{Name: "Go", Category: "Backend"},
		{Name: "React", Category: "Frontend"},
		{Name: "Rust", Category: "Backend"},
		{Name: "Figma"},
	}
	for i := range seed {
		_, err := svc.Create(ctx, &seed[i])
		require.NoError(t, err)
	}

	groups, err := svc.ListGrouped(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 3)

	byCat := map[string]int{}
	for _, g := range groups {
		byCat[g.Category] = len(g.Skills)
	}
	assert.Equal(t, 2, byCat["Backend"])
	assert.Equal(t, 1, byCat["Frontend"])
	assert.Equal(t, 1, byCat["Other"])
}

func TestUpdateMissingSkill(t *testing.T) {
	svc := NewService(newTestDB(t))
	name := "whatever"
	got, err := svc.Update(context.Background(), "missing", &UpdateSkillDTO{Name: &name})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDeleteMissingSkill(t *testing.T) {
	svc := NewService(newTestDB(t))
	err := svc.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
