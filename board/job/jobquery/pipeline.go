package jobquery

import (
	"sort"
	"strings"
	"time"

	"github.com/easilyhq/easily/board/job"
	"github.com/easilyhq/easily/pkg/kernel"
)

// SortMode selects the ordering of the filtered result set
type SortMode string

const (
	SortRecent     SortMode = "recent"
	SortRelevant   SortMode = "relevant"
	SortSalaryHigh SortMode = "salary-high"
	SortSalaryLow  SortMode = "salary-low"
)

// ParseSortMode maps a raw sort parameter to a mode, defaulting to recent
func ParseSortMode(s string) SortMode {
	switch SortMode(s) {
	case SortRelevant, SortSalaryHigh, SortSalaryLow:
		return SortMode(s)
	default:
		return SortRecent
	}
}

// DateWindow is a named relative recency range
type DateWindow string

const (
	WindowNone  DateWindow = ""
	Window24h   DateWindow = "24h"
	Window3d    DateWindow = "3d"
	WindowWeek  DateWindow = "week"
	WindowMonth DateWindow = "month"
)

// ParseDateWindow maps a raw date parameter to a window; unknown values
// mean unrestricted
func ParseDateWindow(s string) DateWindow {
	switch DateWindow(s) {
	case Window24h, Window3d, WindowWeek, WindowMonth:
		return DateWindow(s)
	default:
		return WindowNone
	}
}

// Reserved location tokens that match every located job
var locationWildcards = map[string]bool{
	"india":  true,
	"bharat": true,
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Params are the already-validated, typed inputs of the listing pipeline.
// The HTTP boundary normalizes raw query strings into this shape before the
// pipeline ever sees them.
type Params struct {
	Query    string
	Window   DateWindow
	Levels   []kernel.ExperienceLevel
	Types    []kernel.JobType
	Location string
	Sort     SortMode
	Page     int
	Limit    int
}

func (p Params) withDefaults() Params {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Sort == "" {
		p.Sort = SortRecent
	}
	p.Location = strings.ToLower(strings.TrimSpace(p.Location))
	return p
}

// Run filters, sorts and paginates the full candidate set. Text search and
// structured filters are ANDed in a single pass: text is an OR over the
// expanded query terms against each job's composite blob, the structured
// predicates are independent. Returns the requested page and the total
// after filtering (counted before slicing, so pages partition the set).
func Run(jobs []job.Job, p Params, now time.Time) ([]job.Job, int) {
	p = p.withDefaults()

	var terms []string
	if p.Query != "" {
		terms = Expand(p.Query)
	}

	filtered := make([]job.Job, 0, len(jobs))
	for _, j := range jobs {
		if !matchesTerms(&j, terms) {
			continue
		}
		if !withinWindow(&j, p.Window, now) {
			continue
		}
		if !matchesLevel(&j, p.Levels) {
			continue
		}
		if !matchesType(&j, p.Types) {
			continue
		}
		if !matchesLocation(&j, p.Location) {
			continue
		}
		filtered = append(filtered, j)
	}

	sortJobs(filtered, p.Sort, p.Query)

	total := len(filtered)
	return paginate(filtered, p.Page, p.Limit), total
}

// ============================================================================
// Predicates
// ============================================================================

func matchesTerms(j *job.Job, terms []string) bool {
	if len(terms) == 0 {
		return true
	}
	blob := j.SearchBlob()
	for _, t := range terms {
		if strings.Contains(blob, t) {
			return true
		}
	}
	return false
}

func withinWindow(j *job.Job, w DateWindow, now time.Time) bool {
	if w == WindowNone {
		return true
	}
	posted := j.PostedAt()
	if posted.IsZero() {
		return false
	}

	// Date-only values get end-of-day leniency: a job posted "today" with no
	// time attached counts as posted as late as possible that day.
	ref := posted
	if !j.PostedHasTime() {
		ref = posted.Add(24*time.Hour - time.Nanosecond)
	}

	var span time.Duration
	switch w {
	case Window24h:
		span = 24 * time.Hour
	case Window3d:
		span = 3 * 24 * time.Hour
	case WindowWeek:
		span = 7 * 24 * time.Hour
	case WindowMonth:
		span = 30 * 24 * time.Hour
	default:
		return true
	}
	return ref.After(now.Add(-span))
}

func matchesLevel(j *job.Job, levels []kernel.ExperienceLevel) bool {
	if len(levels) == 0 {
		return true
	}
	if j.Experience == "" {
		return false
	}
	for _, l := range levels {
		if j.Experience == l {
			return true
		}
	}
	return false
}

func matchesType(j *job.Job, types []kernel.JobType) bool {
	if len(types) == 0 {
		return true
	}
	if j.Type == "" {
		return false
	}
	for _, t := range types {
		if j.Type == t {
			return true
		}
	}
	return false
}

func matchesLocation(j *job.Job, loc string) bool {
	if loc == "" {
		return true
	}
	city := strings.ToLower(string(j.Location))
	if city == "" {
		return false
	}
	if locationWildcards[loc] {
		return true
	}
	return strings.Contains(city, loc)
}

// ============================================================================
// Ordering
// ============================================================================

func sortJobs(jobs []job.Job, mode SortMode, query string) {
	switch mode {
	case SortSalaryHigh:
		sort.SliceStable(jobs, func(a, b int) bool {
			return NormalizeSalary(string(jobs[a].Salary)) > NormalizeSalary(string(jobs[b].Salary))
		})
	case SortSalaryLow:
		sort.SliceStable(jobs, func(a, b int) bool {
			return NormalizeSalary(string(jobs[a].Salary)) < NormalizeSalary(string(jobs[b].Salary))
		})
	case SortRelevant:
		term := strings.ToLower(strings.TrimSpace(query))
		sort.SliceStable(jobs, func(a, b int) bool {
			as, bs := relevanceRank(&jobs[a], term), relevanceRank(&jobs[b], term)
			if as != bs {
				return as < bs
			}
			return jobs[a].PostedAt().After(jobs[b].PostedAt())
		})
	default:
		sort.SliceStable(jobs, func(a, b int) bool {
			return jobs[a].PostedAt().After(jobs[b].PostedAt())
		})
	}
}

// relevanceRank partitions jobs into text hits (0) and misses (1). An empty
// query makes every job a hit, degenerating relevance into recent-first.
func relevanceRank(j *job.Job, term string) int {
	if term == "" {
		return 0
	}
	if strings.Contains(j.RelevanceBlob(), term) {
		return 0
	}
	return 1
}

func paginate(jobs []job.Job, page, limit int) []job.Job {
	start := (page - 1) * limit
	if start >= len(jobs) {
		return []job.Job{}
	}
	end := start + limit
	if end > len(jobs) {
		end = len(jobs)
	}
	return jobs[start:end]
}

// ============================================================================
// Projection
// ============================================================================

// ProjectCard maps a job onto its listing card shape, substituting display
// defaults for any missing optional field. The logo path is normalized to be
// absolutely rooted.
func ProjectCard(j *job.Job, now time.Time) job.JobCard {
	card := job.JobCard{
		ID:             j.ID,
		Designation:    j.Designation,
		CompanyName:    j.CompanyName,
		Location:       j.Location,
		Experience:     j.Experience,
		Salary:         j.Salary,
		Employees:      j.Employees,
		Posted:         j.Posted,
		SkillsRequired: j.SkillsRequired,
		Logo:           rootedLogo(j.Logo),
		Featured:       j.Featured,
	}
	if card.Experience == "" {
		card.Experience = job.DefaultExperience
	}
	if card.Salary == "" {
		card.Salary = job.PlaceholderValue
	}
	if card.Employees == "" {
		card.Employees = job.PlaceholderHeadcnt
	}
	if card.Posted == "" {
		card.Posted = now.Format("2006-01-02")
	}
	if card.SkillsRequired == nil {
		card.SkillsRequired = []kernel.Skill{}
	}
	return card
}

// ProjectCards maps a page of jobs onto card shapes
func ProjectCards(jobs []job.Job, now time.Time) []job.JobCard {
	cards := make([]job.JobCard, 0, len(jobs))
	for i := range jobs {
		cards = append(cards, ProjectCard(&jobs[i], now))
	}
	return cards
}

func rootedLogo(logo kernel.LogoPath) kernel.LogoPath {
	if logo == "" {
		return job.DefaultLogo
	}
	if strings.HasPrefix(string(logo), "/") {
		return logo
	}
	return "/" + logo
}
