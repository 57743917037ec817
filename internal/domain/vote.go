package domain

import (
	"time"

	"github.com/google/uuid"
)

// VoteScope is the tagged variant for a vote's reach: either a single
// platform-wide overall vote, or a vote scoped to one category. The
// category payload is present if and only if the scope is a category
// scope; the unexported fields and constructors keep that invariant.
type VoteScope struct {
	overall  bool
	category *Category
}

func OverallScope() VoteScope {
	return VoteScope{overall: true}
}

func CategoryScope(category Category) VoteScope {
	c := category
	return VoteScope{category: &c}
}

func (s VoteScope) IsOverall() bool { return s.overall }

func (s VoteScope) Category() (Category, bool) {
	if s.category == nil {
		return Category{}, false
	}
	return *s.category, true
}

// ValidatedVote is the immutable output of eligibility validation,
// ready for ledger admission.
type ValidatedVote struct {
	Membership Membership
	Scope      VoteScope
}

type Vote struct {
	VoteID       uuid.UUID
	VoterID      uuid.UUID
	MembershipID uuid.UUID
	Scope        VoteScope
	CreatedAt    time.Time
}

// VoteView is a display row for a voter's own ballot history.
type VoteView struct {
	ProjectName  string
	CampaignName string
	CategoryName *string
	IsOverall    bool
	CreatedAt    time.Time
}

// TallyRow is one membership's aggregated counts, produced by a single
// logical read of the ledger.
type TallyRow struct {
	MembershipID  uuid.UUID
	ProjectID     uuid.UUID
	ProjectName   string
	TeamName      string
	CampaignName  string
	CategoryName  *string
	OverallVotes  int64
	CategoryVotes int64
	TotalVotes    int64
}
