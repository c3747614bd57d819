package userinfra

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/easilyhq/easily/board/user"
	"github.com/easilyhq/easily/pkg/errx"
	"github.com/easilyhq/easily/pkg/kernel"
)

func newTestRepo() *MemoryUserRepository {
	var n int
	gen := func() string {
		n++
		return fmt.Sprintf("u-%d", n)
	}
	clock := kernel.ClockFunc(func() time.Time {
		return time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	})
	return NewMemoryUserRepository(gen, clock)
}

func TestCreateAssignsIDAndNormalizesEmail(t *testing.T) {
	repo := newTestRepo()

	created, err := repo.Create(context.Background(), &user.User{
		Name:  "Ravi",
		Email: kernel.NewEmail("  Ravi@Example.COM "),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID.String() != "u-1" {
		t.Errorf("expected generated id, got %q", created.ID)
	}
	if created.Email.String() != "ravi@example.com" {
		t.Errorf("email not normalized: %q", created.Email)
	}
	if created.CreatedAt.IsZero() {
		t.Error("created-at not defaulted from clock")
	}
}

func TestCreateDuplicateEmailIsConflict(t *testing.T) {
	repo := newTestRepo()

	first, err := repo.Create(context.Background(), &user.User{Name: "Ravi", Email: kernel.NewEmail("ravi@example.com")})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = repo.Create(context.Background(), &user.User{Name: "Other", Email: kernel.NewEmail("RAVI@example.com")})
	if !errx.IsType(err, errx.TypeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	// The losing create must not have touched the store.
	kept, err := repo.FindByEmail(context.Background(), kernel.NewEmail("ravi@example.com"))
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if kept.ID != first.ID || kept.Name != "Ravi" {
		t.Errorf("store changed by rejected create: %+v", kept)
	}
}

func TestFindByEmailCaseInsensitive(t *testing.T) {
	repo := newTestRepo()
	if _, err := repo.Create(context.Background(), &user.User{Name: "Ravi", Email: kernel.NewEmail("ravi@example.com")}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := repo.FindByEmail(context.Background(), kernel.NewEmail("Ravi@EXAMPLE.com"))
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if found.Name != "Ravi" {
		t.Errorf("wrong user: %+v", found)
	}
}

func TestFindUnknown(t *testing.T) {
	repo := newTestRepo()

	if _, err := repo.FindByID(context.Background(), kernel.NewUserID("missing")); !errx.IsType(err, errx.TypeNotFound) {
		t.Errorf("FindByID: expected not-found, got %v", err)
	}
	if _, err := repo.FindByEmail(context.Background(), kernel.NewEmail("missing@example.com")); !errx.IsType(err, errx.TypeNotFound) {
		t.Errorf("FindByEmail: expected not-found, got %v", err)
	}
}
