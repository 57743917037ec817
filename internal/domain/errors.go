package domain

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("resource not found")
	ErrConflict            = errors.New("conflict")
	ErrRateLimitExceeded   = errors.New("rate limit exceeded")
	ErrIdempotencyConflict = errors.New("idempotency conflict")
	ErrStoreUnavailable    = errors.New("storage unavailable")

	// Vote admission rejections. Every rejection carries its own kind so
	// callers can branch without parsing message text.
	ErrNotParticipating      = errors.New("project not participating in campaign")
	ErrCampaignClosed        = errors.New("campaign not open for voting")
	ErrCategoryRequired      = errors.New("category is required for a category vote")
	ErrCategoryNotInCampaign = errors.New("category not offered by campaign")
	ErrDuplicateVote         = errors.New("duplicate vote")
	ErrMembershipGone        = errors.New("membership no longer exists")
)
