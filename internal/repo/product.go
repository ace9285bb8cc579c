package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mindstore/backoffice/internal/models"
)

func (r *GormRepo) ProductByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := r.DB.WithContext(ctx).
		Preload("Category").Preload("Rating").
		First(&product, id).Error
	if err != nil {
		return nil, notFound(err, "Product not found")
	}
	return &product, nil
}

func (r *GormRepo) ProductByTitle(ctx context.Context, title string) (*models.Product, error) {
	var product models.Product
	err := r.DB.WithContext(ctx).
		Preload("Category").Preload("Rating").
		Where("title = ?", title).First(&product).Error
	if err != nil {
		return nil, notFound(err, "Product not found")
	}
	return &product, nil
}

// TitleTaken reports whether another product already uses the title.
// excludeID skips the record being updated; zero excludes nothing.
func (r *GormRepo) TitleTaken(ctx context.Context, title string, excludeID uint) (bool, error) {
	var count int64
	q := r.DB.WithContext(ctx).Model(&models.Product{}).Where("title = ?", title)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListProducts returns one sorted page. The column must already be
// allow-listed by the caller.
func (r *GormRepo) ListProducts(ctx context.Context, column string, desc bool, offset, limit int) ([]models.Product, error) {
	var items []models.Product
	err := r.DB.WithContext(ctx).
		Preload("Category").Preload("Rating").
		Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: desc}).
		Offset(offset).Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) SearchProductsByTitle(ctx context.Context, title string) ([]models.Product, error) {
	var items []models.Product
	err := r.DB.WithContext(ctx).
		Preload("Category").Preload("Rating").
		Where("title LIKE ?", "%"+title+"%").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// CreateProduct persists the product together with its freshly created
// Rating in one transaction.
func (r *GormRepo) CreateProduct(ctx context.Context, product *models.Product) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&product.Rating).Error; err != nil {
			return err
		}
		product.RatingID = product.Rating.ID
		return tx.Omit(clause.Associations).Create(product).Error
	})
}

func (r *GormRepo) SaveProduct(ctx context.Context, product *models.Product) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Save(product).Error
}

// DeleteProduct removes the product and its owned rating atomically.
func (r *GormRepo) DeleteProduct(ctx context.Context, product *models.Product) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Product{}, product.ID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if product.RatingID == 0 {
			return nil
		}
		return tx.Delete(&models.Rating{}, product.RatingID).Error
	})
}

// IsDuplicate reports a unique-index violation surfaced by the driver.
func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
