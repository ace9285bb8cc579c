package repo

import (
	"context"

	"github.com/mindstore/backoffice/internal/models"
)

func (r *GormRepo) CategoryByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	err := r.DB.WithContext(ctx).First(&category, id).Error
	if err != nil {
		return nil, notFound(err, "Category not found")
	}
	return &category, nil
}

func (r *GormRepo) CategoryByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	err := r.DB.WithContext(ctx).Where("name = ?", name).First(&category).Error
	if err != nil {
		return nil, notFound(err, "Category not found")
	}
	return &category, nil
}
