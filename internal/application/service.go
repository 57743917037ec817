package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/showcasehq/voting-service/internal/ports"
)

type Service struct {
	cfg         Config
	logger      *slog.Logger
	users       ports.UserRepository
	teams       ports.TeamRepository
	categories  ports.CategoryRepository
	campaigns   ports.CampaignRepository
	projects    ports.ProjectRepository
	memberships ports.MembershipRepository
	ledger      ports.VoteLedger
	outbox      ports.OutboxRepository
	eventDedup  ports.EventDedupRepository
	idempotency ports.IdempotencyRepository
	cache       ports.Cache
	verifier    ports.TokenVerifier
	nowFn       func() time.Time
}

type Dependencies struct {
	Config      Config
	Logger      *slog.Logger
	Users       ports.UserRepository
	Teams       ports.TeamRepository
	Categories  ports.CategoryRepository
	Campaigns   ports.CampaignRepository
	Projects    ports.ProjectRepository
	Memberships ports.MembershipRepository
	Ledger      ports.VoteLedger
	Outbox      ports.OutboxRepository
	EventDedup  ports.EventDedupRepository
	Idempotency ports.IdempotencyRepository
	Cache       ports.Cache
	Verifier    ports.TokenVerifier
}

func NewService(deps Dependencies) *Service {
	cfg := deps.Config
	if cfg.ServiceName == "" {
		cfg.ServiceName = "voting-service"
	}
	if cfg.StoreTimeout <= 0 {
		cfg.StoreTimeout = 5 * time.Second
	}
	if cfg.LeaderboardLimit <= 0 {
		cfg.LeaderboardLimit = 20
	}
	if cfg.LeaderboardCacheTTL <= 0 {
		cfg.LeaderboardCacheTTL = 30 * time.Second
	}
	if cfg.VoteBurstLimit <= 0 {
		cfg.VoteBurstLimit = 30
	}
	if cfg.VoteBurstWindow <= 0 {
		cfg.VoteBurstWindow = time.Minute
	}
	if cfg.IdempotencyTTL <= 0 {
		cfg.IdempotencyTTL = 24 * time.Hour
	}
	if cfg.EventDedupTTL <= 0 {
		cfg.EventDedupTTL = 7 * 24 * time.Hour
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		cfg:         cfg,
		logger:      logger,
		users:       deps.Users,
		teams:       deps.Teams,
		categories:  deps.Categories,
		campaigns:   deps.Campaigns,
		projects:    deps.Projects,
		memberships: deps.Memberships,
		ledger:      deps.Ledger,
		outbox:      deps.Outbox,
		eventDedup:  deps.EventDedup,
		idempotency: deps.Idempotency,
		cache:       deps.Cache,
		verifier:    deps.Verifier,
		nowFn:       func() time.Time { return time.Now().UTC() },
	}
}

// storeCtx bounds a backing-store operation so no call blocks past the
// configured timeout; expiry surfaces as a retryable store failure.
func (s *Service) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.cfg.StoreTimeout)
}
