package postgres

import (
	"context"
	"errors"

	"github.com/showcasehq/voting-service/internal/domain"
	"gorm.io/gorm"
)

type categoryRepository struct {
	db *gorm.DB
}

func (r *categoryRepository) Create(ctx context.Context, name string) (domain.Category, error) {
	rec := categoryModel{Name: name}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.Category{}, domain.ErrConflict
		}
		return domain.Category{}, storeErr(err)
	}
	return toDomainCategory(rec), nil
}

func (r *categoryRepository) GetByID(ctx context.Context, categoryID int64) (domain.Category, error) {
	var rec categoryModel
	if err := r.db.WithContext(ctx).Where("category_id = ?", categoryID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Category{}, domain.ErrNotFound
		}
		return domain.Category{}, storeErr(err)
	}
	return toDomainCategory(rec), nil
}

func (r *categoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	var rows []categoryModel
	if err := r.db.WithContext(ctx).Order("category_id asc").Find(&rows).Error; err != nil {
		return nil, storeErr(err)
	}
	out := make([]domain.Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomainCategory(row))
	}
	return out, nil
}
