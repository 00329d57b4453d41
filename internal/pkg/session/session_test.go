package session

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/folio-space/core/internal/database"
	"github.com/folio-space/core/internal/models"
	jwtpkg "github.com/folio-space/core/internal/pkg/jwt"
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

func TestIssueBindsTokenToSession(t *testing.T) {
	db := newTestDB(t)

	token, sess, err := Issue(db, "user-1", " 203.0.113.9 ", "agent", time.Hour)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "203.0.113.9", sess.IP)

	claims, err := jwtpkg.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, sess.ID, claims.SessionID)

	active, err := IsActive(db, "user-1", sess.ID)
	require.NoError(t, err)
	assert.True(t, active)
}

func TestIsActiveLegacyToken(t *testing.T) {
	active, err := IsActive(newTestDB(t), "user-1", "")
	require.NoError(t, err)
	assert.True(t, active)
}

func TestRevoke(t *testing.T) {
	db := newTestDB(t)

	_, sess, err := Issue(db, "user-1", "", "", time.Hour)
	require.NoError(t, err)

	require.NoError(t, Revoke(db, "user-1", sess.ID))

	active, err := IsActive(db, "user-1", sess.ID)
	require.NoError(t, err)
	assert.False(t, active)

	err = Revoke(db, "user-1", sess.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRevokeAllExceptKeepsCurrent(t *testing.T) {
	db := newTestDB(t)

	_, keep, err := Issue(db, "user-1", "", "", time.Hour)
	require.NoError(t, err)
	_, other, err := Issue(db, "user-1", "", "", time.Hour)
	require.NoError(t, err)

	require.NoError(t, RevokeAllExcept(db, "user-1", keep.ID))

	sessions, err := ListActive(db, "user-1")
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, keep.ID, sessions[0].ID)

	active, err := IsActive(db, "user-1", other.ID)
	require.NoError(t, err)
	assert.False(t, active)
}

func TestPurgeStale(t *testing.T) {
	db := newTestDB(t)

	_, live, err := Issue(db, "user-1", "", "", time.Hour)
	require.NoError(t, err)

	stale := models.UserSession{UserID: "user-1", ExpiresAt: time.Now().Add(-48 * time.Hour)}
	require.NoError(t, db.Create(&stale).Error)

	n, err := PurgeStale(db, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	var count int64
	require.NoError(t, db.Model(&models.UserSession{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	active, err := IsActive(db, "user-1", live.ID)
	require.NoError(t, err)
	assert.True(t, active)
}
