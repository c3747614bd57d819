package jobsrv

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/easilyhq/easily/board/job"
	"github.com/easilyhq/easily/board/job/jobquery"
	"github.com/easilyhq/easily/board/notify"
	"github.com/easilyhq/easily/pkg/errx"
	"github.com/easilyhq/easily/pkg/fsx"
	"github.com/easilyhq/easily/pkg/kernel"
	"github.com/easilyhq/easily/pkg/logx"
)

// applyByDays is how far out the application deadline defaults when a job
// was posted without one.
const applyByDays = 14

// JobService provides business operations for jobs and applications
type JobService struct {
	jobRepo job.Repository
	files   fsx.FileSystem
	mail    notify.MailQueue
	clock   kernel.Clock
}

// NewJobService creates a new instance of the job service
func NewJobService(
	jobRepo job.Repository,
	files fsx.FileSystem,
	mail notify.MailQueue,
	clock kernel.Clock,
) *JobService {
	if clock == nil {
		clock = kernel.SystemClock
	}
	return &JobService{
		jobRepo: jobRepo,
		files:   files,
		mail:    mail,
		clock:   clock,
	}
}

// ============================================================================
// Listing
// ============================================================================

// ListJobs runs the full listing pipeline over the job set: text search with
// query expansion, date/level/type/location filters, ordering and pagination,
// projected onto card DTOs.
func (s *JobService) ListJobs(ctx context.Context, params jobquery.Params) (*job.PaginatedJobCards, error) {
	all, err := s.jobRepo.ListAll(ctx)
	if err != nil {
		return nil, errx.Wrap(err, "failed to load jobs", errx.TypeInternal)
	}

	now := s.clock.Now()
	pageJobs, total := jobquery.Run(all, params, now)
	cards := jobquery.ProjectCards(pageJobs, now)

	pageNo := params.Page
	if pageNo < 1 {
		pageNo = jobquery.DefaultPage
	}
	limit := params.Limit
	if limit < 1 {
		limit = jobquery.DefaultLimit
	}
	return kernel.NewPaginated(cards, pageNo, limit, total), nil
}

// MyPostings lists every job the recruiter has posted, newest first, with
// the recruiter's total posting count.
func (s *JobService) MyPostings(ctx context.Context, recruiterID kernel.UserID) (*job.RecruiterPostings, error) {
	total, err := s.jobRepo.CountByRecruiter(ctx, recruiterID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to count postings", errx.TypeInternal)
	}

	all, err := s.jobRepo.ListAll(ctx)
	if err != nil {
		return nil, errx.Wrap(err, "failed to load jobs", errx.TypeInternal)
	}

	now := s.clock.Now()
	cards := []job.JobCard{}
	for i := range all {
		if all[i].RecruiterID == recruiterID {
			cards = append(cards, jobquery.ProjectCard(&all[i], now))
		}
	}
	return &job.RecruiterPostings{Jobs: cards, Total: total}, nil
}

// GetJob retrieves a single job projected onto the detail shape
func (s *JobService) GetJob(ctx context.Context, jobID kernel.JobID) (*job.JobDetail, error) {
	jobEntity, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	detail := s.toDetail(jobEntity)
	return detail, nil
}

// ============================================================================
// Recruiter operations
// ============================================================================

// CreateJob creates a new job posting owned by the recruiter
func (s *JobService) CreateJob(ctx context.Context, req job.CreateJobRequest, recruiterID kernel.UserID) (*job.Job, error) {
	if missing := req.Validate(); len(missing) > 0 {
		return nil, job.ErrInvalidJob().WithDetail("missing_fields", strings.Join(missing, ", "))
	}

	openings := req.NumberOfOpenings
	if openings < 1 {
		openings = 1
	}

	newJob := &job.Job{
		RecruiterID:        recruiterID,
		Category:           req.Category,
		Designation:        req.Designation,
		Location:           req.Location,
		CompanyName:        req.CompanyName,
		CompanyFounded:     req.CompanyFounded,
		CompanyDescription: req.CompanyDescription,
		Employees:          req.Employees,
		Salary:             req.Salary,
		NumberOfOpenings:   openings,
		ApplyBy:            req.ApplyBy,
		Experience:         req.Experience,
		Type:               req.Type,
		SkillsRequired:     []kernel.Skill(req.SkillsRequired),
		Logo:               req.Logo,
		Posted:             req.Posted,
		Featured:           req.Featured,
	}

	created, err := s.jobRepo.Create(ctx, newJob)
	if err != nil {
		return nil, errx.Wrap(err, "failed to create job", errx.TypeInternal)
	}
	return created, nil
}

// UpdateJob updates a job the recruiter owns
func (s *JobService) UpdateJob(ctx context.Context, jobID kernel.JobID, req job.UpdateJobRequest, recruiterID kernel.UserID) (*job.Job, error) {
	if err := s.requireOwner(ctx, jobID, recruiterID); err != nil {
		return nil, err
	}
	return s.jobRepo.Update(ctx, jobID, req)
}

// DeleteJob deletes a job the recruiter owns
func (s *JobService) DeleteJob(ctx context.Context, jobID kernel.JobID, recruiterID kernel.UserID) error {
	if err := s.requireOwner(ctx, jobID, recruiterID); err != nil {
		return err
	}
	return s.jobRepo.Delete(ctx, jobID)
}

// UploadLogo stores a company logo for a job the recruiter owns and records
// its path on the job
func (s *JobService) UploadLogo(ctx context.Context, jobID kernel.JobID, recruiterID kernel.UserID, name string, data []byte) (*job.Job, error) {
	if err := s.requireOwner(ctx, jobID, recruiterID); err != nil {
		return nil, err
	}

	base := path.Base(name)
	if base == "." || base == "/" || base == "" {
		base = "logo"
	}
	stored := s.files.Join("logos", jobID.String(), fmt.Sprintf("%d-%s", s.clock.Now().UnixNano(), base))
	if err := s.files.WriteFile(ctx, stored, data); err != nil {
		return nil, job.ErrUploadFailed().WithDetail("file", base).WithCause(err)
	}

	logo := kernel.NewLogoPath(stored)
	return s.jobRepo.Update(ctx, jobID, job.UpdateJobRequest{Logo: &logo})
}

// ============================================================================
// Applications
// ============================================================================

// Apply records a seeker's application. The resume upload is optional; the
// confirmation email is queued off the request path and its failure never
// fails the application.
func (s *JobService) Apply(ctx context.Context, jobID kernel.JobID, req job.ApplyRequest, resumeName string, resume []byte) (*job.Applicant, error) {
	if missing := req.Validate(); len(missing) > 0 {
		return nil, job.ErrInvalidApplicant().WithDetail("missing_fields", strings.Join(missing, ", "))
	}

	jobEntity, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	applicant := job.Applicant{
		Name:    req.Name,
		Email:   req.Email.Normalized(),
		Contact: req.Contact,
	}

	if len(resume) > 0 {
		stored, err := s.storeResume(ctx, jobID, resumeName, resume)
		if err != nil {
			return nil, err
		}
		applicant.ResumePath = stored
	}

	created, err := s.jobRepo.AddApplicant(ctx, jobID, applicant)
	if err != nil {
		return nil, err
	}

	s.queueConfirmation(ctx, jobEntity, created)
	return created, nil
}

// ListApplicants pages a job's applicants for the posting recruiter
func (s *JobService) ListApplicants(ctx context.Context, jobID kernel.JobID, recruiterID kernel.UserID, pagination kernel.PaginationOptions) (*job.PaginatedApplicants, error) {
	if err := s.requireOwner(ctx, jobID, recruiterID); err != nil {
		return nil, err
	}
	return s.jobRepo.ListApplicants(ctx, jobID, pagination)
}

// UpdateApplicant updates an applicant of a job the recruiter owns
func (s *JobService) UpdateApplicant(ctx context.Context, jobID kernel.JobID, applicantID kernel.ApplicantID, req job.UpdateApplicantRequest, recruiterID kernel.UserID) (*job.Applicant, error) {
	if err := s.requireOwner(ctx, jobID, recruiterID); err != nil {
		return nil, err
	}
	return s.jobRepo.UpdateApplicant(ctx, jobID, applicantID, req)
}

// RemoveApplicant removes an applicant from a job the recruiter owns
func (s *JobService) RemoveApplicant(ctx context.Context, jobID kernel.JobID, applicantID kernel.ApplicantID, recruiterID kernel.UserID) error {
	if err := s.requireOwner(ctx, jobID, recruiterID); err != nil {
		return err
	}
	return s.jobRepo.RemoveApplicant(ctx, jobID, applicantID)
}

// MyApplications lists every application the seeker has filed, newest first,
// optionally filtered by a raw substring over designation and company name.
// The filter does not expand synonyms; "front" matches front-end titles but
// not React-only postings.
func (s *JobService) MyApplications(ctx context.Context, email kernel.Email, query string) ([]job.ApplicationSummary, error) {
	all, err := s.jobRepo.ListAll(ctx)
	if err != nil {
		return nil, errx.Wrap(err, "failed to load jobs", errx.TypeInternal)
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	seeker := email.Normalized()

	summaries := []job.ApplicationSummary{}
	for i := range all {
		j := &all[i]
		if needle != "" {
			hay := strings.ToLower(j.Designation.String() + " " + j.CompanyName.String())
			if !strings.Contains(hay, needle) {
				continue
			}
		}
		for _, a := range j.Applicants {
			if a.Email.Normalized() != seeker {
				continue
			}
			summaries = append(summaries, job.ApplicationSummary{
				JobID:       j.ID,
				Designation: j.Designation,
				CompanyName: j.CompanyName,
				Location:    j.Location,
				Salary:      j.Salary,
				Status:      a.Status,
				AppliedAt:   a.AppliedAt,
				ResumePath:  a.ResumePath,
				Logo:        jobquery.ProjectCard(j, s.clock.Now()).Logo,
			})
		}
	}

	sort.SliceStable(summaries, func(a, b int) bool {
		return summaries[a].AppliedAt > summaries[b].AppliedAt
	})
	return summaries, nil
}

// ============================================================================
// Helper Methods
// ============================================================================

func (s *JobService) requireOwner(ctx context.Context, jobID kernel.JobID, recruiterID kernel.UserID) error {
	jobEntity, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return err
	}
	if !jobEntity.IsOwnedBy(recruiterID) {
		return job.ErrNotOwner().
			WithDetail("job_id", jobID.String()).
			WithDetail("user_id", recruiterID.String())
	}
	return nil
}

func (s *JobService) storeResume(ctx context.Context, jobID kernel.JobID, name string, data []byte) (string, error) {
	base := path.Base(name)
	if base == "." || base == "/" || base == "" {
		base = "resume"
	}
	stored := s.files.Join("resumes", jobID.String(), fmt.Sprintf("%d-%s", s.clock.Now().UnixNano(), base))
	if err := s.files.WriteFile(ctx, stored, data); err != nil {
		return "", job.ErrUploadFailed().WithDetail("file", base).WithCause(err)
	}
	return stored, nil
}

func (s *JobService) queueConfirmation(ctx context.Context, jobEntity *job.Job, applicant *job.Applicant) {
	if s.mail == nil {
		return
	}
	email := &notify.ApplicationEmail{
		To:          applicant.Email,
		Applicant:   applicant.Name,
		JobID:       jobEntity.ID,
		Designation: jobEntity.Designation,
		CompanyName: jobEntity.CompanyName,
		AppliedAt:   applicant.AppliedAt,
	}
	if err := s.mail.Enqueue(ctx, email); err != nil {
		// Email is best-effort; the application already succeeded.
		logx.Warnf("Failed to queue confirmation email for %s: %v", applicant.Email, err)
	}
}

func (s *JobService) toDetail(j *job.Job) *job.JobDetail {
	detail := &job.JobDetail{Job: *j}

	if detail.ApplyBy == "" {
		detail.ApplyBy = s.clock.Now().AddDate(0, 0, applyByDays).Format("2006-01-02")
	}
	if detail.CompanyDescription == "" {
		detail.CompanyDescription = job.DefaultCompanyBlurb
	}
	if detail.Experience == "" {
		detail.Experience = job.DefaultExperience
	}
	if detail.Salary == "" {
		detail.Salary = job.PlaceholderValue
	}
	if detail.Employees == "" {
		detail.Employees = job.PlaceholderHeadcnt
	}
	detail.Logo = jobquery.ProjectCard(j, s.clock.Now()).Logo

	detail.CompanyFoundedDisplay = job.PlaceholderValue
	if detail.CompanyFounded > 0 {
		detail.CompanyFoundedDisplay = strconv.Itoa(detail.CompanyFounded)
	}
	return detail
}
