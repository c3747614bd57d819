package jobinfra

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/easilyhq/easily/board/job"
	"github.com/easilyhq/easily/board/job/jobquery"
	"github.com/easilyhq/easily/pkg/kernel"
)

// MemoryJobRepository implements job.Repository over an ordered in-memory
// slice. Fiber serves requests concurrently, so every operation takes the
// store lock; reads hand out copies rather than aliases into the store.
type MemoryJobRepository struct {
	mu    sync.RWMutex
	jobs  []*job.Job
	newID kernel.IDGenerator
	clock kernel.Clock
}

// NewMemoryJobRepository creates an in-memory job store. A nil generator or
// clock falls back to uuid/wall-clock; tests inject both.
func NewMemoryJobRepository(newID kernel.IDGenerator, clock kernel.Clock) *MemoryJobRepository {
	if newID == nil {
		newID = uuid.NewString
	}
	if clock == nil {
		clock = kernel.SystemClock
	}
	return &MemoryJobRepository{
		newID: newID,
		clock: clock,
	}
}

// ============================================================================
// Jobs
// ============================================================================

// Create stores a new job, defaulting ID, posting date and applicant list
func (r *MemoryJobRepository) Create(ctx context.Context, j *job.Job) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := cloneJob(j)
	if stored.ID.IsEmpty() {
		stored.ID = kernel.NewJobID(r.newID())
	}
	if stored.Posted == "" {
		stored.Posted = r.clock.Now().Format("2006-01-02")
	}
	if stored.Applicants == nil {
		stored.Applicants = []job.Applicant{}
	}

	r.jobs = append(r.jobs, stored)

	out := cloneJob(stored)
	return out, nil
}

// GetByID retrieves a job by ID
func (r *MemoryJobRepository) GetByID(ctx context.Context, id kernel.JobID) (*job.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	j := r.find(id)
	if j == nil {
		return nil, job.ErrJobNotFound().WithDetail("job_id", id.String())
	}
	return cloneJob(j), nil
}

// Update shallow-merges the present fields onto the stored job
func (r *MemoryJobRepository) Update(ctx context.Context, id kernel.JobID, fields job.UpdateJobRequest) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	j := r.find(id)
	if j == nil {
		return nil, job.ErrJobNotFound().WithDetail("job_id", id.String())
	}

	if fields.Category != nil {
		j.Category = *fields.Category
	}
	if fields.Designation != nil {
		j.Designation = *fields.Designation
	}
	if fields.Location != nil {
		j.Location = *fields.Location
	}
	if fields.CompanyName != nil {
		j.CompanyName = *fields.CompanyName
	}
	if fields.CompanyFounded != nil {
		j.CompanyFounded = *fields.CompanyFounded
	}
	if fields.CompanyDescription != nil {
		j.CompanyDescription = *fields.CompanyDescription
	}
	if fields.Employees != nil {
		j.Employees = *fields.Employees
	}
	if fields.Salary != nil {
		j.Salary = *fields.Salary
	}
	if fields.NumberOfOpenings != nil {
		j.NumberOfOpenings = *fields.NumberOfOpenings
	}
	if fields.ApplyBy != nil {
		j.ApplyBy = *fields.ApplyBy
	}
	if fields.Experience != nil {
		j.Experience = *fields.Experience
	}
	if fields.Type != nil {
		j.Type = *fields.Type
	}
	if fields.SkillsRequired != nil {
		// Array fields are replaced whole, never merged.
		j.SkillsRequired = append([]kernel.Skill{}, *fields.SkillsRequired...)
	}
	if fields.Logo != nil {
		j.Logo = *fields.Logo
	}
	if fields.Featured != nil {
		j.Featured = *fields.Featured
	}

	return cloneJob(j), nil
}

// Delete deletes a job by ID
func (r *MemoryJobRepository) Delete(ctx context.Context, id kernel.JobID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, j := range r.jobs {
		if j.ID == id {
			r.jobs = append(r.jobs[:i], r.jobs[i+1:]...)
			return nil
		}
	}
	return job.ErrJobNotFound().WithDetail("job_id", id.String())
}

// List retrieves jobs sorted by posting date descending with an optional
// coarse text filter and store-side pagination. The sort is stable, so jobs
// sharing a posting date keep insertion order across calls.
func (r *MemoryJobRepository) List(ctx context.Context, query string, pagination kernel.PaginationOptions) (*kernel.Paginated[job.Job], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := r.sortedSnapshot()

	if query != "" {
		terms := jobquery.Expand(query)
		kept := list[:0]
		for _, j := range list {
			blob := j.SearchBlob()
			for _, t := range terms {
				if strings.Contains(blob, t) {
					kept = append(kept, j)
					break
				}
			}
		}
		list = kept
	}

	page := pagination.Page
	if page < 1 {
		page = 1
	}
	size := pagination.PageSize
	if size < 1 {
		size = jobquery.DefaultLimit
	}

	total := len(list)
	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	return kernel.NewPaginated(list[start:end], page, size, total), nil
}

// ListAll retrieves every job sorted by posting date descending
func (r *MemoryJobRepository) ListAll(ctx context.Context) ([]job.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedSnapshot(), nil
}

// CountByRecruiter counts jobs posted by a recruiter
func (r *MemoryJobRepository) CountByRecruiter(ctx context.Context, userID kernel.UserID) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, j := range r.jobs {
		if j.RecruiterID == userID {
			count++
		}
	}
	return count, nil
}

// ============================================================================
// Applicants
// ============================================================================

// AddApplicant appends an applicant to the job's list, assigning an ID
func (r *MemoryJobRepository) AddApplicant(ctx context.Context, jobID kernel.JobID, applicant job.Applicant) (*job.Applicant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	j := r.find(jobID)
	if j == nil {
		return nil, job.ErrJobNotFound().WithDetail("job_id", jobID.String())
	}

	if applicant.ID.IsEmpty() {
		applicant.ID = kernel.NewApplicantID(r.newID())
	}
	if applicant.AppliedAt == "" {
		applicant.AppliedAt = r.clock.Now().Format("2006-01-02")
	}
	if applicant.Status == "" {
		applicant.Status = job.ApplicantStatusSubmitted
	}

	j.Applicants = append(j.Applicants, applicant)

	out := applicant
	return &out, nil
}

// ListApplicants pages a job's applicants in insertion order. An unknown job
// yields an empty result rather than an error.
func (r *MemoryJobRepository) ListApplicants(ctx context.Context, jobID kernel.JobID, pagination kernel.PaginationOptions) (*kernel.Paginated[job.Applicant], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	page := pagination.Page
	if page < 1 {
		page = 1
	}
	size := pagination.PageSize
	if size < 1 {
		size = jobquery.DefaultLimit
	}

	j := r.find(jobID)
	if j == nil {
		return kernel.NewPaginated([]job.Applicant{}, page, size, 0), nil
	}

	total := len(j.Applicants)
	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	items := append([]job.Applicant{}, j.Applicants[start:end]...)
	return kernel.NewPaginated(items, page, size, total), nil
}

// GetApplicant retrieves one applicant of a job
func (r *MemoryJobRepository) GetApplicant(ctx context.Context, jobID kernel.JobID, applicantID kernel.ApplicantID) (*job.Applicant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	j := r.find(jobID)
	if j == nil {
		return nil, job.ErrJobNotFound().WithDetail("job_id", jobID.String())
	}
	for _, a := range j.Applicants {
		if a.ID == applicantID {
			out := a
			return &out, nil
		}
	}
	return nil, job.ErrApplicantNotFound().WithDetail("applicant_id", applicantID.String())
}

// UpdateApplicant shallow-merges fields onto an applicant
func (r *MemoryJobRepository) UpdateApplicant(ctx context.Context, jobID kernel.JobID, applicantID kernel.ApplicantID, fields job.UpdateApplicantRequest) (*job.Applicant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	j := r.find(jobID)
	if j == nil {
		return nil, job.ErrJobNotFound().WithDetail("job_id", jobID.String())
	}
	for i := range j.Applicants {
		if j.Applicants[i].ID != applicantID {
			continue
		}
		a := &j.Applicants[i]
		if fields.Name != nil {
			a.Name = *fields.Name
		}
		if fields.Email != nil {
			a.Email = *fields.Email
		}
		if fields.Contact != nil {
			a.Contact = *fields.Contact
		}
		if fields.Status != nil {
			a.Status = *fields.Status
		}
		out := *a
		return &out, nil
	}
	return nil, job.ErrApplicantNotFound().WithDetail("applicant_id", applicantID.String())
}

// RemoveApplicant deletes one applicant from a job's list
func (r *MemoryJobRepository) RemoveApplicant(ctx context.Context, jobID kernel.JobID, applicantID kernel.ApplicantID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	j := r.find(jobID)
	if j == nil {
		return job.ErrJobNotFound().WithDetail("job_id", jobID.String())
	}
	for i, a := range j.Applicants {
		if a.ID == applicantID {
			j.Applicants = append(j.Applicants[:i], j.Applicants[i+1:]...)
			return nil
		}
	}
	return job.ErrApplicantNotFound().WithDetail("applicant_id", applicantID.String())
}

// ============================================================================
// Helpers
// ============================================================================

// find must be called with the lock held
func (r *MemoryJobRepository) find(id kernel.JobID) *job.Job {
	for _, j := range r.jobs {
		if j.ID == id {
			return j
		}
	}
	return nil
}

// sortedSnapshot copies every job ordered by posting date descending,
// insertion order preserved for equal dates. Must be called with the lock held.
func (r *MemoryJobRepository) sortedSnapshot() []job.Job {
	out := make([]job.Job, 0, len(r.jobs))
	for _, j := range r.jobs {
		out = append(out, *cloneJob(j))
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].PostedAt().After(out[b].PostedAt())
	})
	return out
}

func cloneJob(j *job.Job) *job.Job {
	out := *j
	if j.SkillsRequired != nil {
		out.SkillsRequired = append([]kernel.Skill{}, j.SkillsRequired...)
	}
	if j.Applicants != nil {
		out.Applicants = append([]job.Applicant{}, j.Applicants...)
	}
	return &out
}

var _ job.Repository = (*MemoryJobRepository)(nil)
