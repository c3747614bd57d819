package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/easilyhq/easily/board/job"
	"github.com/easilyhq/easily/pkg/kernel"
	"github.com/easilyhq/easily/pkg/logx"
)

// Seeding thresholds: skip when the store already holds plenty of jobs,
// otherwise top up toward the target for good filter coverage.
const (
	skipThreshold = 150
	targetCount   = 260
)

// SeedRecruiterID marks seeded jobs; no real account owns them
const SeedRecruiterID = "seed"

var logos = []string{
	"images/google.png",
	"images/micro.png",
	"images/amz.png",
	"images/ibm.png",
	"images/orc.png",
	"images/flip.png",
	"images/sales.png",
}

var salaries = []string{"₹6–10 LPA", "₹10–18 LPA", "₹20–30 LPA"}

var openings = []int{1, 2, 3, 5}

var levels = []string{"Internship", "Entry level", "Associate", "Mid-Senior", "Director"}

var types = []string{"Full-time", "Part-time", "Contract", "Remote"}

type company struct {
	name      string
	location  string
	founded   int
	employees string
}

var companies = []company{
	{"Google", "Bangalore", 1998, "100k+"},
	{"Microsoft", "Hyderabad", 1975, "200k+"},
	{"Amazon", "Pune", 1994, "1.5M+"},
	{"IBM", "Noida", 1911, "300k+"},
	{"Oracle", "Mumbai", 1977, "130k+"},
	{"Flipkart", "Bangalore", 2007, "30k+"},
	{"Salesforce", "Gurgaon", 1999, "70k+"},
}

type role struct {
	designation string
	category    string
	skills      []string
}

var roles = []role{
	{"Frontend Developer", "Tech", []string{"React", "JavaScript", "CSS", "HTML"}},
	{"Backend Developer", "Tech", []string{"NodeJs", "Express", "MongoDB", "SQL"}},
	{"Full Stack Engineer", "Tech", []string{"React", "NodeJs", "Express", "SQL"}},
	{"Data Analyst", "Non-Tech", []string{"SQL", "Python", "Data Visualization"}},
	{"Product Manager", "Non-Tech", []string{"Product Management", "Agile"}},
	{"UX designer", "Non-Tech", []string{"Figma", "Prototyping", "User Research"}},
}

// baseSlot pins one job into each date-window bucket so every filter shows
// results immediately after first boot.
type baseSlot struct {
	postedAgo time.Duration
	level     string
	jobType   string
}

var baseSlots = []baseSlot{
	// Past 24 hours
	{6 * time.Hour, "Internship", "Full-time"},
	{12 * time.Hour, "Entry level", "Remote"},
	// Past 3 days
	{2 * 24 * time.Hour, "Associate", "Part-time"},
	{3 * 24 * time.Hour, "Mid-Senior", "Contract"},
	// Past week
	{5 * 24 * time.Hour, "Director", "Full-time"},
	{6 * 24 * time.Hour, "Associate", "Remote"},
	// Past month
	{14 * 24 * time.Hour, "Entry level", "Part-time"},
	{21 * 24 * time.Hour, "Mid-Senior", "Contract"},
}

// Seeder populates the job store with demo postings on startup
type Seeder struct {
	repo  job.Repository
	clock kernel.Clock
	rng   *rand.Rand
}

// NewSeeder creates a seeder. A nil rng falls back to a time-seeded source;
// tests inject a fixed one.
func NewSeeder(repo job.Repository, clock kernel.Clock, rng *rand.Rand) *Seeder {
	if clock == nil {
		clock = kernel.SystemClock
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Seeder{
		repo:  repo,
		clock: clock,
		rng:   rng,
	}
}

// Run seeds the store unless it already holds enough jobs. When empty it
// first plants one job per date bucket, then tops up toward the target
// across companies, roles and buckets.
func (s *Seeder) Run(ctx context.Context) error {
	existing, err := s.count(ctx)
	if err != nil {
		return err
	}
	if existing >= skipThreshold {
		return nil
	}

	now := s.clock.Now()

	if existing == 0 {
		for idx, slot := range baseSlots {
			c := companies[idx%len(companies)]
			r := roles[idx%len(roles)]
			j := s.buildJob(c, r, now.Add(-slot.postedAgo).Format("2006-01-02"), now)
			j.Experience = kernel.NewExperienceLevel(slot.level)
			j.Type = kernel.NewJobType(slot.jobType)
			j.Featured = idx%3 == 0
			if _, err := s.repo.Create(ctx, j); err != nil {
				return err
			}
		}
	}

	buckets := dateBuckets(now)

	afterBase, err := s.count(ctx)
	if err != nil {
		return err
	}
	toAdd := targetCount - afterBase

	created := 0
outer:
	for c := 0; c < len(companies); c++ {
		for r := 0; r < len(roles); r++ {
			for b := 0; b < len(buckets); b++ {
				if toAdd <= 0 {
					break outer
				}
				j := s.buildJob(companies[c], roles[r], buckets[b], now)
				j.Experience = kernel.NewExperienceLevel(pick(s.rng, levels))
				j.Type = kernel.NewJobType(pick(s.rng, types))
				j.Featured = (c+r+b)%4 == 0
				if _, err := s.repo.Create(ctx, j); err != nil {
					return err
				}
				toAdd--
				created++
			}
		}
	}

	logx.Infof("Seeded %d jobs", created)
	return nil
}

func (s *Seeder) buildJob(c company, r role, posted string, now time.Time) *job.Job {
	skills := make([]kernel.Skill, 0, len(r.skills))
	for _, sk := range r.skills {
		skills = append(skills, kernel.NewSkill(sk))
	}
	return &job.Job{
		RecruiterID:        kernel.NewUserID(SeedRecruiterID),
		Category:           kernel.NewJobCategory(r.category),
		Designation:        kernel.NewJobDesignation(r.designation),
		Location:           kernel.NewJobLocation(c.location),
		CompanyName:        kernel.NewCompanyName(c.name),
		CompanyFounded:     c.founded,
		CompanyDescription: fmt.Sprintf("%s is hiring %s in %s.", c.name, r.designation, c.location),
		Employees:          c.employees,
		Salary:             kernel.NewSalaryRange(pick(s.rng, salaries)),
		NumberOfOpenings:   pick(s.rng, openings),
		ApplyBy:            now.AddDate(0, 0, 20).Format("2006-01-02"),
		SkillsRequired:     skills,
		Logo:               kernel.NewLogoPath(pick(s.rng, logos)),
		Posted:             posted,
	}
}

func (s *Seeder) count(ctx context.Context) (int, error) {
	page, err := s.repo.List(ctx, "", kernel.PaginationOptions{Page: 1, PageSize: 1})
	if err != nil {
		return 0, err
	}
	return page.Page.Total, nil
}

// dateBuckets spreads postings over every date window the filters cover
func dateBuckets(now time.Time) []string {
	ago := func(d time.Duration) string {
		return now.Add(-d).Format("2006-01-02")
	}
	return []string{
		// within 24h
		ago(6 * time.Hour),
		ago(12 * time.Hour),
		ago(20 * time.Hour),
		// within 3 days
		ago(1 * 24 * time.Hour),
		ago(2 * 24 * time.Hour),
		ago(3 * 24 * time.Hour),
		// within week
		ago(5 * 24 * time.Hour),
		ago(6 * 24 * time.Hour),
		// within month
		ago(14 * 24 * time.Hour),
		ago(21 * 24 * time.Hour),
	}
}

func pick[T any](rng *rand.Rand, values []T) T {
	return values[rng.Intn(len(values))]
}
