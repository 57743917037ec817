package application

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/showcasehq/voting-service/internal/domain"
	"github.com/showcasehq/voting-service/internal/ports"
)

const leaderboardCacheVersion = "v1"

// Leaderboard computes ranked standings over the vote ledger. The
// candidate counts come from a single grouped read, the ordering is
// deterministic (total desc, overall desc, project name asc), and rank
// is the 1-based position after that sort. Unknown filter refs yield an
// empty board, never an error.
func (s *Service) Leaderboard(ctx context.Context, req LeaderboardRequest) ([]LeaderboardEntry, error) {
	limit := req.Limit
	if limit <= 0 || limit > s.cfg.LeaderboardLimit {
		limit = s.cfg.LeaderboardLimit
	}

	filter := ports.TallyFilter{CategoryID: req.CategoryID}
	if req.CampaignRef != "" {
		campaignID, err := uuid.Parse(req.CampaignRef)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid campaign_ref", domain.ErrInvalidInput)
		}
		filter.CampaignID = &campaignID
	}

	cacheKey := leaderboardCacheKey(filter, limit)
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, cacheKey); err == nil && raw != "" {
			var cached []LeaderboardEntry
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return cached, nil
			}
		}
	}

	storeCtx, cancel := s.storeCtx(ctx)
	defer cancel()
	rows, err := s.ledger.Tally(storeCtx, filter)
	if err != nil {
		return nil, err
	}

	sortTally(rows)
	if len(rows) > limit {
		rows = rows[:limit]
	}

	entries := make([]LeaderboardEntry, 0, len(rows))
	for i, row := range rows {
		entries = append(entries, LeaderboardEntry{
			Rank:          i + 1,
			ProjectRef:    row.ProjectID.String(),
			ProjectName:   row.ProjectName,
			TeamName:      row.TeamName,
			CampaignName:  row.CampaignName,
			CategoryName:  row.CategoryName,
			TotalVotes:    row.TotalVotes,
			OverallVotes:  row.OverallVotes,
			CategoryVotes: row.CategoryVotes,
		})
	}

	if s.cache != nil {
		if raw, err := json.Marshal(entries); err == nil {
			_ = s.cache.Set(ctx, cacheKey, string(raw), s.cfg.LeaderboardCacheTTL)
		}
	}
	return entries, nil
}

// ProjectStats aggregates a project's counts across all of its
// memberships. An unknown project yields zero counts, not an error.
func (s *Service) ProjectStats(ctx context.Context, projectRef string) (ProjectStatsResponse, error) {
	projectID, err := uuid.Parse(projectRef)
	if err != nil {
		return ProjectStatsResponse{}, fmt.Errorf("%w: invalid project_ref", domain.ErrInvalidInput)
	}

	storeCtx, cancel := s.storeCtx(ctx)
	defer cancel()
	rows, err := s.ledger.ProjectTally(storeCtx, projectID)
	if err != nil {
		return ProjectStatsResponse{}, err
	}

	resp := ProjectStatsResponse{ProjectRef: projectID.String()}
	for _, row := range rows {
		resp.OverallVotes += row.OverallVotes
		resp.CategoryVotes += row.CategoryVotes
		resp.TotalVotes += row.TotalVotes
		if row.CategoryName != nil && row.CategoryVotes > 0 {
			if resp.VotesByCategory == nil {
				resp.VotesByCategory = make(map[string]int64)
			}
			resp.VotesByCategory[*row.CategoryName] += row.CategoryVotes
		}
	}
	return resp, nil
}

// sortTally orders rows descending by total votes, tie-broken by
// overall votes descending and finally project name ascending, so
// repeated identical queries produce identical sequences.
func sortTally(rows []domain.TallyRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].TotalVotes != rows[j].TotalVotes {
			return rows[i].TotalVotes > rows[j].TotalVotes
		}
		if rows[i].OverallVotes != rows[j].OverallVotes {
			return rows[i].OverallVotes > rows[j].OverallVotes
		}
		return rows[i].ProjectName < rows[j].ProjectName
	})
}

func leaderboardCacheKey(filter ports.TallyFilter, limit int) string {
	campaign := "all"
	if filter.CampaignID != nil {
		campaign = filter.CampaignID.String()
	}
	category := "all"
	if filter.CategoryID != nil {
		category = fmt.Sprintf("%d", *filter.CategoryID)
	}
	return fmt.Sprintf("leaderboard:%s:%s:%s:%d", leaderboardCacheVersion, campaign, category, limit)
}

// invalidateLeaderboards drops the default-filter cache entries after an
// admission. Filtered variants simply age out within the TTL.
func (s *Service) invalidateLeaderboards(ctx context.Context) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Delete(ctx, leaderboardCacheKey(ports.TallyFilter{}, s.cfg.LeaderboardLimit))
}
