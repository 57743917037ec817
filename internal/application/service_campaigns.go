package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/showcasehq/voting-service/internal/domain"
	"github.com/showcasehq/voting-service/internal/ports"
)

func (s *Service) CreateCampaign(ctx context.Context, req CreateCampaignRequest, idempotencyKey string) (CampaignView, error) {
	if err := domain.ValidateName(req.Name); err != nil {
		return CampaignView{}, err
	}
	if err := domain.ValidateSummary(req.Summary); err != nil {
		return CampaignView{}, err
	}
	organizerID, err := uuid.Parse(req.OrganizerRef)
	if err != nil {
		return CampaignView{}, fmt.Errorf("%w: invalid organizer_ref", domain.ErrInvalidInput)
	}
	dateFrom, err := time.Parse(dateLayout, req.DateFrom)
	if err != nil {
		return CampaignView{}, fmt.Errorf("%w: date_from must be YYYY-MM-DD", domain.ErrInvalidInput)
	}
	dateTo, err := time.Parse(dateLayout, req.DateTo)
	if err != nil {
		return CampaignView{}, fmt.Errorf("%w: date_to must be YYYY-MM-DD", domain.ErrInvalidInput)
	}
	if err := domain.ValidateDateWindow(dateFrom, dateTo); err != nil {
		return CampaignView{}, err
	}
	if err := s.reserveIdempotency(ctx, idempotencyKey, req); err != nil {
		return CampaignView{}, err
	}

	storeCtx, cancel := s.storeCtx(ctx)
	defer cancel()
	if _, err := s.teams.GetByID(storeCtx, organizerID); err != nil {
		return CampaignView{}, err
	}
	for _, categoryID := range req.CategoryIDs {
		if _, err := s.categories.GetByID(storeCtx, categoryID); err != nil {
			return CampaignView{}, err
		}
	}

	campaign, err := s.campaigns.Create(storeCtx, ports.CreateCampaignParams{
		OrganizerID: organizerID,
		Name:        req.Name,
		Summary:     req.Summary,
		Description: req.Description,
		FlyerURL:    req.FlyerURL,
		DateFrom:    dateFrom,
		DateTo:      dateTo,
		IsActive:    req.IsActive,
		CategoryIDs: req.CategoryIDs,
		CreatedAt:   s.nowFn(),
	})
	if err != nil {
		return CampaignView{}, err
	}
	return s.toCampaignView(campaign), nil
}

func (s *Service) GetCampaign(ctx context.Context, campaignRef string) (CampaignView, error) {
	campaignID, err := uuid.Parse(campaignRef)
	if err != nil {
		return CampaignView{}, fmt.Errorf("%w: invalid campaign_ref", domain.ErrInvalidInput)
	}
	storeCtx, cancel := s.storeCtx(ctx)
	defer cancel()
	campaign, err := s.campaigns.GetByID(storeCtx, campaignID)
	if err != nil {
		return CampaignView{}, err
	}
	return s.toCampaignView(campaign), nil
}

func (s *Service) ListCampaigns(ctx context.Context) ([]CampaignView, error) {
	storeCtx, cancel := s.storeCtx(ctx)
	defer cancel()
	campaigns, err := s.campaigns.List(storeCtx)
	if err != nil {
		return nil, err
	}
	out := make([]CampaignView, 0, len(campaigns))
	for _, c := range campaigns {
		out = append(out, s.toCampaignView(c))
	}
	return out, nil
}

func (s *Service) CreateCategory(ctx context.Context, req CreateCategoryRequest) (CategoryView, error) {
	if err := domain.ValidateCategoryName(req.Name); err != nil {
		return CategoryView{}, err
	}
	storeCtx, cancel := s.storeCtx(ctx)
	defer cancel()
	category, err := s.categories.Create(storeCtx, req.Name)
	if err != nil {
		return CategoryView{}, err
	}
	return toCategoryView(category), nil
}

func (s *Service) ListCategories(ctx context.Context) ([]CategoryView, error) {
	storeCtx, cancel := s.storeCtx(ctx)
	defer cancel()
	categories, err := s.categories.List(storeCtx)
	if err != nil {
		return nil, err
	}
	out := make([]CategoryView, 0, len(categories))
	for _, c := range categories {
		out = append(out, toCategoryView(c))
	}
	return out, nil
}
