package config

import (
	"github.com/sirupsen/logrus"

	"newsdesk/global"
	"newsdesk/models"
)

// MigrateDB runs database migrations
func MigrateDB() {
	err := global.DB.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Article{},
		&models.Bookmark{},
		&models.Comment{},
	)
	if err != nil {
		logrus.Fatalf("Failed to migrate database: %v", err)
	}
	logrus.Info("Database migration completed successfully")
}
