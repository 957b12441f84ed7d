package migration

import (
	"fmt"

	"volunteerhub-backend/entities"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Migrate creates the uuid extension, then every table in dependency order.
func Migrate(db *gorm.DB, log *zap.Logger) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		return fmt.Errorf("error creating uuid-ossp extension: %w", err)
	}

	models := []struct {
		name  string
		model any
	}{
		{"user", &entities.User{}},
		{"event", &entities.Event{}},
		{"registration", &entities.Registration{}},
		{"post", &entities.Post{}},
		{"post like", &entities.PostLike{}},
		{"comment", &entities.Comment{}},
		{"notification", &entities.Notification{}},
		{"push subscription", &entities.PushSubscription{}},
		{"blood donation", &entities.BloodDonation{}},
		{"membership", &entities.Membership{}},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m.model); err != nil {
			return fmt.Errorf("error migrating %s table: %w", m.name, err)
		}
	}

	log.Info("database migration complete", zap.Int("tables", len(models)))
	return nil
}
