package repo

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/mindstore/backoffice/internal/models"
)

func (r *GormRepo) UserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.DB.WithContext(ctx).Preload("Role").First(&user, id).Error
	if err != nil {
		return nil, notFound(err, "User not found")
	}
	return &user, nil
}

func (r *GormRepo) AdminByID(ctx context.Context, id uint) (*models.Admin, error) {
	var admin models.Admin
	err := r.DB.WithContext(ctx).Preload("Role").First(&admin, id).Error
	if err != nil {
		return nil, notFound(err, "Admin not found")
	}
	return &admin, nil
}

func (r *GormRepo) RoleByID(ctx context.Context, id uint) (*models.Role, error) {
	var role models.Role
	err := r.DB.WithContext(ctx).First(&role, id).Error
	if err != nil {
		return nil, notFound(err, "Role not found")
	}
	return &role, nil
}

// EmailInUse checks both person tables; email is unique across users
// and admins together. The exclude ids skip the record being updated
// in its own table; zero excludes nothing.
func (r *GormRepo) EmailInUse(ctx context.Context, email string, excludeUserID, excludeAdminID uint) (bool, error) {
	var count int64
	q := r.DB.WithContext(ctx).Model(&models.User{}).Where("email = ?", email)
	if excludeUserID != 0 {
		q = q.Where("id <> ?", excludeUserID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}

	q = r.DB.WithContext(ctx).Model(&models.Admin{}).Where("email = ?", email)
	if excludeAdminID != 0 {
		q = q.Where("id <> ?", excludeAdminID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormRepo) ListUsers(ctx context.Context, column string, desc bool, offset, limit int) ([]models.User, error) {
	var items []models.User
	err := r.DB.WithContext(ctx).
		Preload("Role").
		Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: desc}).
		Offset(offset).Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) UsersByName(ctx context.Context, name string) ([]models.User, error) {
	var items []models.User
	err := r.DB.WithContext(ctx).
		Preload("Role").
		Where("name = ?", name).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CreateUser(ctx context.Context, user *models.User) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Create(user).Error
}

func (r *GormRepo) SaveUser(ctx context.Context, user *models.User) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Save(user).Error
}

func (r *GormRepo) CreateAdmin(ctx context.Context, admin *models.Admin) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Create(admin).Error
}

func (r *GormRepo) SaveAdmin(ctx context.Context, admin *models.Admin) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Save(admin).Error
}
