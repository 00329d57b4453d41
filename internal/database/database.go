package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/folio-space/core/internal/config"
	"github.com/folio-space/core/internal/models"
	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens a MySQL connection and optionally runs auto-migration.
func Connect(cfg *config.AppConfig, autoMigrate bool) (*gorm.DB, error) {
	logLevel := logger.Warn
	if cfg.IsDev() {
		logLevel = logger.Info
	}

	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:               cfg.Database.DSNValue(),
		DefaultStringSize: 191,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	if autoMigrate {
		if err := Migrate(db); err != nil {
			return nil, fmt.Errorf("migration failed: %w", err)
		}
	}

	return db, nil
}

// Migrate runs GORM auto-migration for all models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.UserModel{},
		&models.UserSession{},
		&models.APIToken{},
		&models.ProfileModel{},
		&models.SkillModel{},
		&models.ProjectModel{},
		&models.ProjectImageModel{},
		&models.ProjectCategoryModel{},
		&models.OfferingModel{},
		&models.WhyChooseMeModel{},
		&models.TimelineModel{},
		&models.TestimonialModel{},
		&models.SocialLinkModel{},
		&models.BlogPostModel{},
		&models.ContactMessageModel{},
		&models.FileReferenceModel{},
		&models.OptionModel{},
	)
}

// IsMissingTable reports whether err means a backing table does not exist, so
// handlers can answer with the schema_missing shape instead of a plain 500.
// MySQL raises error 1146; SQLite (used in tests) reports "no such table".
func IsMissingTable(err error) bool {
	if err == nil {
		return false
	}
	var my *gomysql.MySQLError
	if errors.As(err, &my) {
		return my.Number == 1146
	}
	return strings.Contains(err.Error(), "no such table")
}
