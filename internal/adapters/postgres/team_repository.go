package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/showcasehq/voting-service/internal/domain"
	"github.com/showcasehq/voting-service/internal/ports"
	"gorm.io/gorm"
)

type teamRepository struct {
	db *gorm.DB
}

func (r *teamRepository) Create(ctx context.Context, params ports.CreateTeamParams) (domain.Team, error) {
	rec := teamModel{
		TeamID:    uuid.New(),
		Name:      params.Name,
		CreatedAt: params.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.Team{}, domain.ErrConflict
		}
		return domain.Team{}, storeErr(err)
	}
	return toDomainTeam(rec), nil
}

func (r *teamRepository) GetByID(ctx context.Context, teamID uuid.UUID) (domain.Team, error) {
	var rec teamModel
	if err := r.db.WithContext(ctx).Where("team_id = ?", teamID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Team{}, domain.ErrNotFound
		}
		return domain.Team{}, storeErr(err)
	}
	return toDomainTeam(rec), nil
}

func (r *teamRepository) List(ctx context.Context) ([]domain.Team, error) {
	var rows []teamModel
	if err := r.db.WithContext(ctx).Order("name asc").Find(&rows).Error; err != nil {
		return nil, storeErr(err)
	}
	out := make([]domain.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomainTeam(row))
	}
	return out, nil
}
