package seed

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/easilyhq/easily/board/job"
	"github.com/easilyhq/easily/board/job/jobinfra"
	"github.com/easilyhq/easily/pkg/kernel"
)

var testNow = time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

func newSeeder(repo job.Repository) *Seeder {
	clock := kernel.ClockFunc(func() time.Time { return testNow })
	return NewSeeder(repo, clock, rand.New(rand.NewSource(1)))
}

func TestRunSeedsEmptyStoreToTarget(t *testing.T) {
	repo := jobinfra.NewMemoryJobRepository(nil, nil)
	if err := newSeeder(repo).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	all, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != targetCount {
		t.Errorf("expected %d seeded jobs, got %d", targetCount, len(all))
	}

	// Every date bucket must be represented so each window filter shows
	// results.
	posted := map[string]bool{}
	for _, j := range all {
		posted[j.Posted] = true
	}
	for _, bucket := range dateBuckets(testNow) {
		if !posted[bucket] {
			t.Errorf("bucket %s empty after seeding", bucket)
		}
	}
}

func TestRunSkipsWellStockedStore(t *testing.T) {
	repo := jobinfra.NewMemoryJobRepository(nil, nil)
	for i := 0; i < skipThreshold; i++ {
		if _, err := repo.Create(context.Background(), &job.Job{
			Designation: kernel.NewJobDesignation("Existing"),
			Posted:      "2026-08-01",
		}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	if err := newSeeder(repo).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	all, _ := repo.ListAll(context.Background())
	if len(all) != skipThreshold {
		t.Errorf("store should be untouched, got %d jobs", len(all))
	}
}

func TestRunTopsUpPartialStore(t *testing.T) {
	repo := jobinfra.NewMemoryJobRepository(nil, nil)
	for i := 0; i < 10; i++ {
		if _, err := repo.Create(context.Background(), &job.Job{
			Designation: kernel.NewJobDesignation("Existing"),
			Posted:      "2026-08-01",
		}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	if err := newSeeder(repo).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	all, _ := repo.ListAll(context.Background())
	if len(all) != targetCount {
		t.Errorf("expected top-up to %d, got %d", targetCount, len(all))
	}
}
