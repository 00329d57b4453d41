package message

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

func TestMessageFlow(t *testing.T) {
	svc := NewService(newTestDB(t))
	ctx := context.Background()

	m, err := svc.Submit(ctx, &SubmitMessageDTO{
		Name:    "Visitor",
		Email:   "visitor@example.com",
		Subject: "Hello",
		Message: "Nice site",
	})
	require.NoError(t, err)
	require.NotEmpty(t, m.ID)
	assert.False(t, m.IsRead)

	count, err := svc.UnreadCount(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	require.NoError(t, svc.MarkRead(ctx, m.ID, true))

	count, err = svc.UnreadCount(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	require.NoError(t, svc.MarkRead(ctx, m.ID, false))
	count, err = svc.UnreadCount(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	require.NoError(t, svc.Delete(ctx, m.ID))

	items, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestMarkReadMissing(t *testing.T) {
	svc := NewService(newTestDB(t))
	err := svc.MarkRead(context.Background(), "missing", true)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestMessagesOrderedNewestFirst(t *testing.T) {
	svc := NewService(newTestDB(t))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Submit(ctx, &SubmitMessageDTO{
			Name:    fmt.Sprintf("v%d", i),
			Email:   "v@example.com",
			Message: "hi",
		})
		require.NoError(t, err)
	}

	items, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.False(t, items[0].CreatedAt.Before(items[2].CreatedAt))
}
