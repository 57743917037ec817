package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/showcasehq/voting-service/internal/domain"
	"github.com/showcasehq/voting-service/internal/ports"
	"gorm.io/gorm"
)

// userRepository mirrors identity records consumed from the identity
// service's event stream. Rows are never created from HTTP requests.
type userRepository struct {
	db *gorm.DB
}

func (r *userRepository) Upsert(ctx context.Context, params ports.CreateUserParams) (domain.User, error) {
	rec := userModel{
		UserID:    params.UserID,
		Email:     params.Email,
		FirstName: params.FirstName,
		LastName:  params.LastName,
		CreatedAt: params.CreatedAt,
	}
	err := r.db.WithContext(ctx).Create(&rec).Error
	if err != nil {
		if !isUniqueViolation(err) {
			return domain.User{}, storeErr(err)
		}
		// Replayed registration event: refresh the mirror and
		// clear any soft delete.
		updates := map[string]any{
			"email":      params.Email,
			"first_name": params.FirstName,
			"last_name":  params.LastName,
			"deleted_at": nil,
		}
		if err := r.db.WithContext(ctx).Model(&userModel{}).Where("user_id = ?", params.UserID).Updates(updates).Error; err != nil {
			return domain.User{}, storeErr(err)
		}
		return r.GetByID(ctx, params.UserID)
	}
	return toDomainUser(rec), nil
}

func (r *userRepository) GetByID(ctx context.Context, userID uuid.UUID) (domain.User, error) {
	var rec userModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, storeErr(err)
	}
	return toDomainUser(rec), nil
}

func (r *userRepository) SoftDelete(ctx context.Context, userID uuid.UUID, deletedAt time.Time) error {
	res := r.db.WithContext(ctx).Model(&userModel{}).
		Where("user_id = ? AND deleted_at IS NULL", userID).
		Update("deleted_at", deletedAt)
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
