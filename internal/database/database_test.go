package database

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/folio-space/core/internal/models"
	gomysql "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestIsMissingTable(t *testing.T) {
	assert.False(t, IsMissingTable(nil))
	assert.False(t, IsMissingTable(errors.New("connection refused")))
	assert.False(t, IsMissingTable(&gomysql.MySQLError{Number: 1062, Message: "duplicate entry"}))

	assert.True(t, IsMissingTable(&gomysql.MySQLError{Number: 1146, Message: "table 'folio.skills' doesn't exist"}))
	assert.True(t, IsMissingTable(fmt.Errorf("query: %w", &gomysql.MySQLError{Number: 1146})))
	assert.True(t, IsMissingTable(errors.New("no such table: skills")))
}

func TestMigrateCreatesSchema(t *testing.T) {
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	for _, table := range []string{"users", "profile", "skills", "projects", "project_images", "blogs", "file_references"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	var count int64
	require.NoError(t, db.Model(&models.SkillModel{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
