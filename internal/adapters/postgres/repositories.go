package postgres

import (
	"github.com/showcasehq/voting-service/internal/ports"
	"gorm.io/gorm"
)

type Repositories struct {
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
}

func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Users:       &userRepository{db: db},
		Teams:       &teamRepository{db: db},
		Categories:  &categoryRepository{db: db},
		Campaigns:   &campaignRepository{db: db},
		Projects:    &projectRepository{db: db},
		Memberships: &membershipRepository{db: db},
		Ledger:      &voteLedger{db: db},
		Outbox:      &outboxRepository{db: db},
		EventDedup:  &eventDedupRepository{db: db},
		Idempotency: &idempotencyRepository{db: db},
	}
}
