package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/showcasehq/voting-service/internal/domain"
	"github.com/showcasehq/voting-service/internal/ports"
	"gorm.io/gorm"
)

type membershipRepository struct {
	db *gorm.DB
}

func (r *membershipRepository) Join(ctx context.Context, params ports.JoinCampaignParams) (domain.Membership, error) {
	rec := membershipModel{
		MembershipID: uuid.New(),
		ProjectID:    params.ProjectID,
		CampaignID:   params.CampaignID,
		CategoryID:   params.CategoryID,
		JoinedAt:     params.JoinedAt,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.Membership{}, domain.ErrConflict
		}
		if isForeignKeyViolation(err) {
			return domain.Membership{}, domain.ErrNotFound
		}
		return domain.Membership{}, storeErr(err)
	}
	var category *categoryModel
	if rec.CategoryID != nil {
		var c categoryModel
		if err := r.db.WithContext(ctx).Where("category_id = ?", *rec.CategoryID).Take(&c).Error; err == nil {
			category = &c
		}
	}
	return toDomainMembership(rec, category), nil
}

func (r *membershipRepository) Find(ctx context.Context, projectID, campaignID uuid.UUID) (ports.MembershipReadModel, error) {
	var rec membershipModel
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND campaign_id = ?", projectID, campaignID).
		Take(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.MembershipReadModel{}, domain.ErrNotFound
		}
		return ports.MembershipReadModel{}, storeErr(err)
	}

	var campaign campaignModel
	if err := r.db.WithContext(ctx).Where("campaign_id = ?", campaignID).Take(&campaign).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.MembershipReadModel{}, domain.ErrNotFound
		}
		return ports.MembershipReadModel{}, storeErr(err)
	}
	var offered []categoryModel
	err = r.db.WithContext(ctx).
		Joins("JOIN campaign_categories cc ON cc.category_id = categories.category_id").
		Where("cc.campaign_id = ?", campaignID).
		Order("categories.category_id asc").
		Find(&offered).Error
	if err != nil {
		return ports.MembershipReadModel{}, storeErr(err)
	}

	var category *categoryModel
	if rec.CategoryID != nil {
		for i := range offered {
			if offered[i].CategoryID == *rec.CategoryID {
				category = &offered[i]
				break
			}
		}
		// The membership's category may have been retired from the
		// campaign's offered set; resolve it directly in that case.
		if category == nil {
			var c categoryModel
			if err := r.db.WithContext(ctx).Where("category_id = ?", *rec.CategoryID).Take(&c).Error; err == nil {
				category = &c
			}
		}
	}
	return ports.MembershipReadModel{
		Membership: toDomainMembership(rec, category),
		Campaign:   toDomainCampaign(campaign, offered),
	}, nil
}
