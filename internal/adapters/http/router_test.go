package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/showcasehq/voting-service/internal/application"
	"github.com/showcasehq/voting-service/internal/domain"
	"github.com/showcasehq/voting-service/internal/ports"
)

type staticVerifier struct {
	userID string
}

func (v staticVerifier) Verify(_ context.Context, token string) (ports.AuthClaims, error) {
	if token != "good-token" {
		return ports.AuthClaims{}, domain.ErrUnauthorized
	}
	return ports.AuthClaims{UserID: v.userID, Email: "voter@example.com", Role: "voter"}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	svc := application.NewService(application.Dependencies{
		Verifier: staticVerifier{userID: uuid.NewString()},
	})
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewRouter(NewHandler(svc), logger)
}

func TestRouterHealthz(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRouterVotesRequireAuth(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/votes", strings.NewReader(`{}`)))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without credentials, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/votes", strings.NewReader(`{}`))
	req.Header.Set("Authorization", "Bearer wrong-token")
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for rejected token, got %d", rec.Code)
	}
}

func TestRouterCastVoteRejectsMalformedBody(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/votes", strings.NewReader(`{not json`))
	req.Header.Set("Authorization", "Bearer good-token")
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", rec.Code)
	}
}

func TestRouterCreateCampaignRequiresOrganizerTeam(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	// The organizer team ref must come from the request body; the caller's
	// own user ref is never substituted for it.
	body := `{"name":"Demo Day","date_from":"2026-09-01","date_to":"2026-09-02","is_active":true}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/campaigns", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer good-token")
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without an organizer team ref, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "VALIDATION_ERROR") {
		t.Fatalf("expected a validation error code, got %s", rec.Body.String())
	}
}

func TestRouterLeaderboardQueryValidation(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/leaderboard?category=design", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric category, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/leaderboard?limit=0", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-positive limit, got %d", rec.Code)
	}
}
