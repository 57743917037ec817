package application

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/showcasehq/voting-service/internal/domain"
	"github.com/showcasehq/voting-service/internal/ports"
)

type voteCastEventData struct {
	VoteRef     string `json:"vote_ref"`
	VoterRef    string `json:"voter_ref"`
	VoterName   string `json:"voter_name,omitempty"`
	ProjectRef  string `json:"project_ref"`
	CampaignRef string `json:"campaign_ref"`
	Category    string `json:"category,omitempty"`
	IsOverall   bool   `json:"is_overall"`
	CastAt      string `json:"cast_at"`
}

// enqueueVoteCast records a vote.cast outbox event after a successful
// admission. Best effort: losing the event never rolls back the vote.
func (s *Service) enqueueVoteCast(ctx context.Context, voterID uuid.UUID, vote domain.Vote, validated domain.ValidatedVote) error {
	occurredAt := s.nowFn()
	data := voteCastEventData{
		VoteRef:     vote.VoteID.String(),
		VoterRef:    voterID.String(),
		ProjectRef:  validated.Membership.ProjectID.String(),
		CampaignRef: validated.Membership.CampaignID.String(),
		IsOverall:   validated.Scope.IsOverall(),
		CastAt:      vote.CreatedAt.Format(time.RFC3339),
	}
	if cat, ok := validated.Scope.Category(); ok {
		data.Category = cat.Name
	}
	// The mirror can lag behind the identity platform; an unknown voter
	// just ships without a name.
	if voter, err := s.users.GetByID(ctx, voterID); err == nil {
		data.VoterName = voter.DisplayName()
	}
	envelope := map[string]any{
		"event_id":       uuid.NewString(),
		"event_type":     "vote.cast",
		"occurred_at":    occurredAt.Format(time.RFC3339),
		"source_service": s.cfg.ServiceName,
		"schema_version": "1.0",
		"partition_key":  voterID.String(),
		"data":           data,
	}
	payload, _ := json.Marshal(envelope)
	return s.outbox.Enqueue(ctx, ports.OutboxEvent{
		EventID:       uuid.New(),
		EventType:     "vote.cast",
		PartitionKey:  voterID.String(),
		Payload:       payload,
		OccurredAt:    occurredAt,
		SchemaVersion: "1.0",
	})
}

type userEventEnvelope struct {
	EventID string `json:"event_id"`
	Data    struct {
		UserID    string `json:"user_id"`
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	} `json:"data"`
}

// HandleUserRegistered mirrors a user from the identity platform into
// the local voter registry so display names resolve without a
// synchronous dependency.
func (s *Service) HandleUserRegistered(ctx context.Context, payload []byte) error {
	var env userEventEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return fmt.Errorf("decode user.registered: %w", err)
	}
	userID, err := uuid.Parse(env.Data.UserID)
	if err != nil {
		return fmt.Errorf("user.registered: invalid user_id %q", env.Data.UserID)
	}
	if err := domain.ValidateEmail(env.Data.Email); err != nil {
		return fmt.Errorf("user.registered: %w", err)
	}
	if env.EventID != "" {
		dup, err := s.eventDedup.IsDuplicate(ctx, env.EventID, s.nowFn())
		if err != nil {
			return err
		}
		if dup {
			return nil
		}
	}
	if _, err := s.users.Upsert(ctx, ports.CreateUserParams{
		UserID:    userID,
		Email:     env.Data.Email,
		FirstName: env.Data.FirstName,
		LastName:  env.Data.LastName,
		CreatedAt: s.nowFn(),
	}); err != nil {
		return err
	}
	if env.EventID != "" {
		return s.eventDedup.MarkProcessed(ctx, env.EventID, "user.registered", s.nowFn().Add(s.cfg.EventDedupTTL))
	}
	return nil
}

func (s *Service) HandleUserDeleted(ctx context.Context, payload []byte) error {
	var env userEventEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return fmt.Errorf("decode user.deleted: %w", err)
	}
	userID, err := uuid.Parse(env.Data.UserID)
	if err != nil {
		return fmt.Errorf("user.deleted: invalid user_id %q", env.Data.UserID)
	}
	if env.EventID != "" {
		dup, err := s.eventDedup.IsDuplicate(ctx, env.EventID, s.nowFn())
		if err != nil {
			return err
		}
		if dup {
			return nil
		}
	}
	if err := s.users.SoftDelete(ctx, userID, s.nowFn()); err != nil {
		return err
	}
	if env.EventID != "" {
		return s.eventDedup.MarkProcessed(ctx, env.EventID, "user.deleted", s.nowFn().Add(s.cfg.EventDedupTTL))
	}
	return nil
}

func hashRequest(v any) string {
	raw, _ := json.Marshal(v)
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

func (s *Service) reserveIdempotency(ctx context.Context, key string, request any) error {
	if key == "" || s.idempotency == nil {
		return nil
	}
	if err := s.idempotency.Reserve(ctx, key, hashRequest(request), s.nowFn().Add(s.cfg.IdempotencyTTL)); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrIdempotencyConflict, err)
	}
	return nil
}
