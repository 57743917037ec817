package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/showcasehq/voting-service/internal/domain"
	"github.com/showcasehq/voting-service/internal/ports"
)

// CastVote runs the full admission protocol: eligibility validation,
// then the atomic ledger insert. The validator's duplicate pre-check is
// advisory; the ledger's uniqueness constraints are the source of truth.
func (s *Service) CastVote(ctx context.Context, voterID uuid.UUID, req CastVoteRequest, idempotencyKey string) (CastVoteResponse, error) {
	if err := s.checkVoteBurst(ctx, voterID); err != nil {
		return CastVoteResponse{}, err
	}
	if err := s.reserveIdempotency(ctx, idempotencyKey, req); err != nil {
		return CastVoteResponse{}, err
	}

	validated, err := s.validateVote(ctx, voterID, req)
	if err != nil {
		return CastVoteResponse{}, err
	}

	storeCtx, cancel := s.storeCtx(ctx)
	defer cancel()
	vote, err := s.ledger.Admit(storeCtx, ports.AdmitVoteParams{
		VoterID:      voterID,
		MembershipID: validated.Membership.MembershipID,
		IsOverall:    validated.Scope.IsOverall(),
		CreatedAt:    s.nowFn(),
	})
	if err != nil {
		return CastVoteResponse{}, err
	}

	// Best effort: an admitted vote is never rolled back over a lost
	// event, but the loss is logged for the outbox backlog audit.
	if err := s.enqueueVoteCast(ctx, voterID, vote, validated); err != nil {
		s.logger.WarnContext(ctx, "vote.cast enqueue failed",
			"module", "voting",
			"layer", "application",
			"vote_ref", vote.VoteID.String(),
			"error", err.Error(),
		)
	}
	s.invalidateLeaderboards(ctx)

	return CastVoteResponse{VoteRef: vote.VoteID.String(), CreatedAt: vote.CreatedAt}, nil
}

// validateVote is the eligibility validator of the admission protocol.
// It resolves the membership, checks the campaign window and category
// rules, and returns the immutable validated request.
func (s *Service) validateVote(ctx context.Context, voterID uuid.UUID, req CastVoteRequest) (domain.ValidatedVote, error) {
	projectID, err := uuid.Parse(req.ProjectRef)
	if err != nil {
		return domain.ValidatedVote{}, fmt.Errorf("%w: invalid project_ref", domain.ErrInvalidInput)
	}
	campaignID, err := uuid.Parse(req.CampaignRef)
	if err != nil {
		return domain.ValidatedVote{}, fmt.Errorf("%w: invalid campaign_ref", domain.ErrInvalidInput)
	}

	storeCtx, cancel := s.storeCtx(ctx)
	defer cancel()
	rm, err := s.memberships.Find(storeCtx, projectID, campaignID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ValidatedVote{}, domain.ErrNotParticipating
		}
		return domain.ValidatedVote{}, err
	}
	if !rm.Campaign.IsOpen(s.nowFn()) {
		return domain.ValidatedVote{}, domain.ErrCampaignClosed
	}

	var scope domain.VoteScope
	if req.IsOverall {
		// Overall votes are not category-scoped; a supplied category
		// is ignored.
		scope = domain.OverallScope()
	} else {
		if req.CategoryID == nil {
			return domain.ValidatedVote{}, domain.ErrCategoryRequired
		}
		if !rm.Campaign.OffersCategory(*req.CategoryID) {
			return domain.ValidatedVote{}, domain.ErrCategoryNotInCampaign
		}
		if rm.Membership.Category == nil {
			return domain.ValidatedVote{}, fmt.Errorf("%w: membership has no category", domain.ErrCategoryRequired)
		}
		scope = domain.CategoryScope(*rm.Membership.Category)
	}

	// Advisory pre-check only: the authoritative guard is the ledger's
	// unique index at insertion.
	var categoryID *int64
	if cat, ok := scope.Category(); ok {
		categoryID = &cat.CategoryID
	}
	exists, err := s.ledger.Exists(storeCtx, voterID, scope.IsOverall(), categoryID)
	if err != nil {
		return domain.ValidatedVote{}, err
	}
	if exists {
		return domain.ValidatedVote{}, domain.ErrDuplicateVote
	}

	return domain.ValidatedVote{Membership: rm.Membership, Scope: scope}, nil
}

func (s *Service) MyVotes(ctx context.Context, voterID uuid.UUID) ([]VoteView, error) {
	storeCtx, cancel := s.storeCtx(ctx)
	defer cancel()
	rows, err := s.ledger.ListByVoter(storeCtx, voterID)
	if err != nil {
		return nil, err
	}
	out := make([]VoteView, 0, len(rows))
	for _, row := range rows {
		out = append(out, VoteView{
			Project:   row.ProjectName,
			Campaign:  row.CampaignName,
			Category:  row.CategoryName,
			IsOverall: row.IsOverall,
			CreatedAt: row.CreatedAt,
		})
	}
	return out, nil
}

func (s *Service) checkVoteBurst(ctx context.Context, voterID uuid.UUID) error {
	if s.cache == nil {
		return nil
	}
	n, err := s.cache.IncrWithTTL(ctx, "votes:burst:"+voterID.String(), s.cfg.VoteBurstWindow)
	if err != nil {
		// The limiter is advisory; a cache outage must not block voting.
		return nil
	}
	if n > int64(s.cfg.VoteBurstLimit) {
		return domain.ErrRateLimitExceeded
	}
	return nil
}
