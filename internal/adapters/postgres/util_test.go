package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/showcasehq/voting-service/internal/domain"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()
	if !isUniqueViolation(gorm.ErrDuplicatedKey) {
		t.Fatalf("translated duplicate-key sentinel must classify as unique violation")
	}
	if !isUniqueViolation(fmt.Errorf("insert vote: %w", gorm.ErrDuplicatedKey)) {
		t.Fatalf("wrapped duplicate-key sentinel must classify as unique violation")
	}
	if !isUniqueViolation(errors.New(`ERROR: duplicate key value violates unique constraint "votes_voter_overall_uniq" (SQLSTATE 23505)`)) {
		t.Fatalf("raw postgres unique-violation text must classify as unique violation")
	}
	if isUniqueViolation(nil) || isUniqueViolation(errors.New("connection refused")) {
		t.Fatalf("unrelated errors must not classify as unique violations")
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	t.Parallel()
	if !isForeignKeyViolation(gorm.ErrForeignKeyViolated) {
		t.Fatalf("translated fk sentinel must classify as foreign key violation")
	}
	if !isForeignKeyViolation(fmt.Errorf("insert vote: %w", gorm.ErrForeignKeyViolated)) {
		t.Fatalf("wrapped fk sentinel must classify as foreign key violation")
	}
	if !isForeignKeyViolation(errors.New(`ERROR: insert or update on table "votes" violates foreign key constraint (SQLSTATE 23503)`)) {
		t.Fatalf("raw postgres fk-violation text must classify as foreign key violation")
	}
	if isForeignKeyViolation(nil) || isForeignKeyViolation(gorm.ErrDuplicatedKey) {
		t.Fatalf("unrelated errors must not classify as foreign key violations")
	}
}

func TestStoreErr(t *testing.T) {
	t.Parallel()
	if err := storeErr(nil); err != nil {
		t.Fatalf("nil must pass through, got %v", err)
	}
	if err := storeErr(context.DeadlineExceeded); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("deadline expiry must map to store unavailable, got %v", err)
	}
	if err := storeErr(errors.New("dial tcp: connection refused")); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("connectivity failure must map to store unavailable, got %v", err)
	}
	if err := storeErr(domain.ErrDuplicateVote); !errors.Is(err, domain.ErrDuplicateVote) {
		t.Fatalf("domain rejections must pass through, got %v", err)
	}
}
