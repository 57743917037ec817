package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/showcasehq/voting-service/internal/domain"
	"github.com/showcasehq/voting-service/internal/ports"
	"gorm.io/gorm"
)

type projectRepository struct {
	db *gorm.DB
}

func (r *projectRepository) Create(ctx context.Context, params ports.CreateProjectParams) (domain.Project, error) {
	rec := projectModel{
		ProjectID:   uuid.New(),
		TeamID:      params.TeamID,
		Name:        params.Name,
		Summary:     params.Summary,
		Description: params.Description,
		ImageURL:    params.ImageURL,
		CreatedAt:   params.CreatedAt,
		UpdatedAt:   params.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if isForeignKeyViolation(err) {
			return domain.Project{}, domain.ErrNotFound
		}
		if isUniqueViolation(err) {
			return domain.Project{}, domain.ErrConflict
		}
		return domain.Project{}, storeErr(err)
	}
	return toDomainProject(rec), nil
}

func (r *projectRepository) GetByID(ctx context.Context, projectID uuid.UUID) (domain.Project, error) {
	var rec projectModel
	if err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Project{}, domain.ErrNotFound
		}
		return domain.Project{}, storeErr(err)
	}
	return toDomainProject(rec), nil
}

func (r *projectRepository) List(ctx context.Context, campaignID *uuid.UUID) ([]domain.Project, error) {
	q := r.db.WithContext(ctx).Model(&projectModel{}).Order("projects.name asc")
	if campaignID != nil {
		q = q.Joins("JOIN project_campaigns pc ON pc.project_id = projects.project_id").
			Where("pc.campaign_id = ?", *campaignID)
	}
	var rows []projectModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, storeErr(err)
	}
	out := make([]domain.Project, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomainProject(row))
	}
	return out, nil
}
