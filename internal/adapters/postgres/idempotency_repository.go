package postgres

import (
	"context"
	"time"

	"github.com/showcasehq/voting-service/internal/domain"
	"github.com/showcasehq/voting-service/internal/ports"
	"gorm.io/gorm"
)

type idempotencyRepository struct {
	db *gorm.DB
}

func (r *idempotencyRepository) Reserve(ctx context.Context, key, requestHash string, expiresAt time.Time) error {
	rec := voteIdempotencyModel{
		IdempotencyKey: key,
		RequestHash:    requestHash,
		ExpiresAt:      expiresAt,
		CreatedAt:      time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrIdempotencyConflict
		}
		return storeErr(err)
	}
	return nil
}

var _ ports.IdempotencyRepository = (*idempotencyRepository)(nil)
