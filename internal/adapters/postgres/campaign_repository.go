package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/showcasehq/voting-service/internal/domain"
	"github.com/showcasehq/voting-service/internal/ports"
	"gorm.io/gorm"
)

type campaignRepository struct {
	db *gorm.DB
}

func (r *campaignRepository) Create(ctx context.Context, params ports.CreateCampaignParams) (domain.Campaign, error) {
	rec := campaignModel{
		CampaignID:  uuid.New(),
		OrganizerID: params.OrganizerID,
		Name:        params.Name,
		Summary:     params.Summary,
		Description: params.Description,
		FlyerURL:    params.FlyerURL,
		DateFrom:    params.DateFrom,
		DateTo:      params.DateTo,
		IsActive:    params.IsActive,
		CreatedAt:   params.CreatedAt,
		UpdatedAt:   params.CreatedAt,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&rec).Error; err != nil {
			return err
		}
		for _, categoryID := range params.CategoryIDs {
			link := campaignCategoryModel{CampaignID: rec.CampaignID, CategoryID: categoryID}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Campaign{}, domain.ErrNotFound
		}
		if isUniqueViolation(err) {
			return domain.Campaign{}, domain.ErrConflict
		}
		return domain.Campaign{}, storeErr(err)
	}
	return r.GetByID(ctx, rec.CampaignID)
}

func (r *campaignRepository) GetByID(ctx context.Context, campaignID uuid.UUID) (domain.Campaign, error) {
	var rec campaignModel
	if err := r.db.WithContext(ctx).Where("campaign_id = ?", campaignID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Campaign{}, domain.ErrNotFound
		}
		return domain.Campaign{}, storeErr(err)
	}
	byCampaign, err := r.loadCategories(ctx, []uuid.UUID{campaignID})
	if err != nil {
		return domain.Campaign{}, err
	}
	return toDomainCampaign(rec, byCampaign[campaignID]), nil
}

func (r *campaignRepository) List(ctx context.Context) ([]domain.Campaign, error) {
	var rows []campaignModel
	if err := r.db.WithContext(ctx).Order("date_from desc, created_at desc").Find(&rows).Error; err != nil {
		return nil, storeErr(err)
	}
	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.CampaignID)
	}
	byCampaign, err := r.loadCategories(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Campaign, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomainCampaign(row, byCampaign[row.CampaignID]))
	}
	return out, nil
}

func (r *campaignRepository) loadCategories(ctx context.Context, campaignIDs []uuid.UUID) (map[uuid.UUID][]categoryModel, error) {
	out := make(map[uuid.UUID][]categoryModel, len(campaignIDs))
	if len(campaignIDs) == 0 {
		return out, nil
	}
	type linkedCategory struct {
		CampaignID uuid.UUID `gorm:"column:campaign_id"`
		CategoryID int64     `gorm:"column:category_id"`
		Name       string    `gorm:"column:name"`
	}
	var rows []linkedCategory
	err := r.db.WithContext(ctx).
		Table("campaign_categories cc").
		Select("cc.campaign_id, c.category_id, c.name").
		Joins("JOIN categories c ON c.category_id = cc.category_id").
		Where("cc.campaign_id IN ?", campaignIDs).
		Order("c.category_id asc").
		Scan(&rows).Error
	if err != nil {
		return nil, storeErr(err)
	}
	for _, row := range rows {
		out[row.CampaignID] = append(out[row.CampaignID], categoryModel{CategoryID: row.CategoryID, Name: row.Name})
	}
	return out, nil
}
