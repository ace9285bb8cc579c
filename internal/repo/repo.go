package repo

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mindstore/backoffice/internal/apperr"
	"github.com/mindstore/backoffice/internal/models"
)

type GormRepo struct {
	DB *gorm.DB
}

// Migrate creates the schema and seeds the fixed Role rows.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Admin{},
		&models.Category{},
		&models.Rating{},
		&models.Product{},
	); err != nil {
		return err
	}

	roles := []models.Role{
		{ID: models.RoleUserID, Name: models.RoleUserName},
		{ID: models.RoleAdminID, Name: models.RoleAdminName},
	}
	for _, r := range roles {
		if err := db.Where("id = ?", r.ID).FirstOrCreate(&r).Error; err != nil {
			return err
		}
	}
	return nil
}

// notFound rewrites a missing-row error into the entity-specific
// NotFound condition; other storage errors pass through.
func notFound(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(msg)
	}
	return err
}
