package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/showcasehq/voting-service/internal/domain"
	"github.com/showcasehq/voting-service/internal/ports"
	"gorm.io/gorm"
)

// voteLedger is the append-only store of admitted votes. Admission
// relies on the partial unique indexes on the votes table, so the
// uniqueness decision and the insert are one atomic statement and two
// racing requests can never both succeed.
type voteLedger struct {
	db *gorm.DB
}

func (r *voteLedger) Admit(ctx context.Context, params ports.AdmitVoteParams) (domain.Vote, error) {
	rec := voteModel{
		VoteID:       uuid.New(),
		VoterID:      params.VoterID,
		MembershipID: params.MembershipID,
		IsOverall:    params.IsOverall,
		CreatedAt:    params.CreatedAt,
	}
	var category *categoryModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Re-read the membership inside the transaction: it may have
		// been removed since validation, and a category vote takes its
		// effective category from the membership, not the request.
		var m membershipModel
		if err := tx.Where("membership_id = ?", params.MembershipID).Take(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrMembershipGone
			}
			return err
		}
		if !params.IsOverall {
			if m.CategoryID == nil {
				return domain.ErrCategoryRequired
			}
			rec.CategoryID = m.CategoryID
			var c categoryModel
			if err := tx.Where("category_id = ?", *m.CategoryID).Take(&c).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domain.ErrCategoryNotInCampaign
				}
				return err
			}
			category = &c
		}
		if err := tx.Create(&rec).Error; err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicateVote
			}
			if isForeignKeyViolation(err) {
				return domain.ErrMembershipGone
			}
			return err
		}
		return nil
	})
	if err != nil {
		return domain.Vote{}, storeErr(err)
	}
	return toDomainVote(rec, category), nil
}

func (r *voteLedger) Exists(ctx context.Context, voterID uuid.UUID, isOverall bool, categoryID *int64) (bool, error) {
	q := r.db.WithContext(ctx).Model(&voteModel{}).Where("voter_id = ?", voterID)
	if isOverall {
		q = q.Where("is_overall")
	} else {
		q = q.Where("NOT is_overall AND category_id = ?", categoryID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, storeErr(err)
	}
	return count > 0, nil
}

func (r *voteLedger) ListByVoter(ctx context.Context, voterID uuid.UUID) ([]domain.VoteView, error) {
	type voteRow struct {
		ProjectName  string    `gorm:"column:project_name"`
		CampaignName string    `gorm:"column:campaign_name"`
		CategoryName *string   `gorm:"column:category_name"`
		IsOverall    bool      `gorm:"column:is_overall"`
		CreatedAt    time.Time `gorm:"column:created_at"`
	}
	var rows []voteRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.name AS project_name,
		       c.name AS campaign_name,
		       cat.name AS category_name,
		       v.is_overall,
		       v.created_at
		FROM votes v
		JOIN project_campaigns pc ON pc.membership_id = v.membership_id
		JOIN projects p ON p.project_id = pc.project_id
		JOIN campaigns c ON c.campaign_id = pc.campaign_id
		LEFT JOIN categories cat ON cat.category_id = v.category_id
		WHERE v.voter_id = ?
		ORDER BY v.created_at DESC`, voterID).Scan(&rows).Error
	if err != nil {
		return nil, storeErr(err)
	}
	out := make([]domain.VoteView, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.VoteView{
			ProjectName:  row.ProjectName,
			CampaignName: row.CampaignName,
			CategoryName: row.CategoryName,
			IsOverall:    row.IsOverall,
			CreatedAt:    row.CreatedAt,
		})
	}
	return out, nil
}

type tallyRow struct {
	MembershipID  uuid.UUID `gorm:"column:membership_id"`
	ProjectID     uuid.UUID `gorm:"column:project_id"`
	ProjectName   string    `gorm:"column:project_name"`
	TeamName      string    `gorm:"column:team_name"`
	CampaignName  string    `gorm:"column:campaign_name"`
	CategoryName  *string   `gorm:"column:category_name"`
	OverallVotes  int64     `gorm:"column:overall_votes"`
	CategoryVotes int64     `gorm:"column:category_votes"`
}

const tallyQuery = `
	SELECT pc.membership_id,
	       p.project_id,
	       p.name AS project_name,
	       t.name AS team_name,
	       c.name AS campaign_name,
	       cat.name AS category_name,
	       COUNT(v.vote_id) FILTER (WHERE v.is_overall) AS overall_votes,
	       COUNT(v.vote_id) FILTER (WHERE NOT v.is_overall) AS category_votes
	FROM project_campaigns pc
	JOIN projects p ON p.project_id = pc.project_id
	JOIN teams t ON t.team_id = p.team_id
	JOIN campaigns c ON c.campaign_id = pc.campaign_id
	LEFT JOIN categories cat ON cat.category_id = pc.category_id
	LEFT JOIN votes v ON v.membership_id = pc.membership_id
	%s
	GROUP BY pc.membership_id, p.project_id, p.name, t.name, c.name, cat.name`

// Tally is one logical read: every count in the result comes from the
// same statement, so concurrent admissions cannot skew one entry
// relative to another.
func (r *voteLedger) Tally(ctx context.Context, filter ports.TallyFilter) ([]domain.TallyRow, error) {
	where := ""
	args := []any{}
	switch {
	case filter.CampaignID != nil && filter.CategoryID != nil:
		where = "WHERE pc.campaign_id = ? AND pc.category_id = ?"
		args = append(args, *filter.CampaignID, *filter.CategoryID)
	case filter.CampaignID != nil:
		where = "WHERE pc.campaign_id = ?"
		args = append(args, *filter.CampaignID)
	case filter.CategoryID != nil:
		where = "WHERE pc.category_id = ?"
		args = append(args, *filter.CategoryID)
	}
	return r.tally(ctx, where, args...)
}

func (r *voteLedger) ProjectTally(ctx context.Context, projectID uuid.UUID) ([]domain.TallyRow, error) {
	return r.tally(ctx, "WHERE pc.project_id = ?", projectID)
}

func (r *voteLedger) tally(ctx context.Context, where string, args ...any) ([]domain.TallyRow, error) {
	var rows []tallyRow
	query := fmt.Sprintf(tallyQuery, where)
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, storeErr(err)
	}
	out := make([]domain.TallyRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.TallyRow{
			MembershipID:  row.MembershipID,
			ProjectID:     row.ProjectID,
			ProjectName:   row.ProjectName,
			TeamName:      row.TeamName,
			CampaignName:  row.CampaignName,
			CategoryName:  row.CategoryName,
			OverallVotes:  row.OverallVotes,
			CategoryVotes: row.CategoryVotes,
			TotalVotes:    row.OverallVotes + row.CategoryVotes,
		})
	}
	return out, nil
}
