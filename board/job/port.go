package job

import (
	"context"

	"github.com/easilyhq/easily/pkg/kernel"
)

type Repository interface {
	// Create stores a new job. A missing ID, posting date or applicant list
	// is defaulted by the store (injected generator/clock); the stored record
	// is returned.
	Create(ctx context.Context, job *Job) (*Job, error)

	// GetByID retrieves a job by ID
	GetByID(ctx context.Context, id kernel.JobID) (*Job, error)

	// Update shallow-merges the present fields onto the stored job. Array
	// fields are replaced whole.
	Update(ctx context.Context, id kernel.JobID, fields UpdateJobRequest) (*Job, error)

	// Delete deletes a job by ID
	Delete(ctx context.Context, id kernel.JobID) error

	// List retrieves jobs sorted by posting date descending (stable), with an
	// optional coarse text filter (OR over expanded query terms) and
	// store-side pagination.
	List(ctx context.Context, query string, pagination kernel.PaginationOptions) (*kernel.Paginated[Job], error)

	// ListAll retrieves every job sorted by posting date descending, for the
	// listing pipeline which filters, re-sorts and paginates itself.
	ListAll(ctx context.Context) ([]Job, error)

	// AddApplicant appends an applicant to the job's list, assigning an ID
	AddApplicant(ctx context.Context, jobID kernel.JobID, applicant Applicant) (*Applicant, error)

	// ListApplicants pages through a job's applicants in insertion order.
	// An unknown job yields an empty result, not an error.
	ListApplicants(ctx context.Context, jobID kernel.JobID, pagination kernel.PaginationOptions) (*kernel.Paginated[Applicant], error)

	// GetApplicant retrieves one applicant of a job
	GetApplicant(ctx context.Context, jobID kernel.JobID, applicantID kernel.ApplicantID) (*Applicant, error)

	// UpdateApplicant shallow-merges fields onto an applicant
	UpdateApplicant(ctx context.Context, jobID kernel.JobID, applicantID kernel.ApplicantID, fields UpdateApplicantRequest) (*Applicant, error)

	// RemoveApplicant deletes one applicant from a job's list
	RemoveApplicant(ctx context.Context, jobID kernel.JobID, applicantID kernel.ApplicantID) error

	// CountByRecruiter counts jobs posted by a recruiter
	CountByRecruiter(ctx context.Context, userID kernel.UserID) (int64, error)
}
