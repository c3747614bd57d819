package job

import (
	"encoding/json"
	"strings"

	"github.com/easilyhq/easily/pkg/kernel"
)

// Display defaults substituted for missing optional fields when projecting
// jobs into card/detail shapes.
const (
	DefaultExperience   = "0-1 yrs"
	PlaceholderValue    = "—"
	PlaceholderHeadcnt  = "— employees"
	DefaultLogo         = "/images/google.png"
	DefaultCompanyBlurb = "Easily connects talented professionals with top companies. We value innovation and growth."
)

// SkillList accepts either a JSON array of strings or a single
// comma-separated string, the two shapes the forms and the API send.
type SkillList []kernel.Skill

func (s *SkillList) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		out := make(SkillList, 0, len(arr))
		for _, v := range arr {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, kernel.Skill(v))
			}
		}
		*s = out
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = ParseSkills(raw)
	return nil
}

// ParseSkills splits a comma-separated skills string, dropping blanks
func ParseSkills(raw string) SkillList {
	parts := strings.Split(raw, ",")
	out := make(SkillList, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, kernel.Skill(p))
		}
	}
	return out
}

// CreateJobRequest - DTO for posting a new job
type CreateJobRequest struct {
	Category           kernel.JobCategory     `json:"job_category"`
	Designation        kernel.JobDesignation  `json:"job_designation"`
	Location           kernel.JobLocation     `json:"job_location"`
	CompanyName        kernel.CompanyName     `json:"company_name"`
	CompanyFounded     int                    `json:"company_founded,omitempty"`
	CompanyDescription string                 `json:"company_description,omitempty"`
	Employees          string                 `json:"employees,omitempty"`
	Salary             kernel.SalaryRange     `json:"salary"`
	NumberOfOpenings   int                    `json:"number_of_openings,omitempty"`
	ApplyBy            string                 `json:"apply_by,omitempty"`
	Experience         kernel.ExperienceLevel `json:"experience,omitempty"`
	Type               kernel.JobType         `json:"job_type,omitempty"`
	SkillsRequired     SkillList              `json:"skills_required,omitempty"`
	Logo               kernel.LogoPath        `json:"logo,omitempty"`
	Posted             string                 `json:"job_posted,omitempty"`
	Featured           bool                   `json:"featured,omitempty"`
}

// Validate reports the missing required fields, if any
func (r *CreateJobRequest) Validate() []string {
	var missing []string
	if r.Category == "" {
		missing = append(missing, "job_category")
	}
	if r.Designation == "" {
		missing = append(missing, "job_designation")
	}
	if r.Location == "" {
		missing = append(missing, "job_location")
	}
	if r.CompanyName == "" {
		missing = append(missing, "company_name")
	}
	if r.Salary == "" {
		missing = append(missing, "salary")
	}
	return missing
}

// UpdateJobRequest - DTO for updating an existing job. Present fields fully
// replace the stored value; array fields are replaced whole, never merged.
type UpdateJobRequest struct {
	Category           *kernel.JobCategory     `json:"job_category,omitempty"`
	Designation        *kernel.JobDesignation  `json:"job_designation,omitempty"`
	Location           *kernel.JobLocation     `json:"job_location,omitempty"`
	CompanyName        *kernel.CompanyName     `json:"company_name,omitempty"`
	CompanyFounded     *int                    `json:"company_founded,omitempty"`
	CompanyDescription *string                 `json:"company_description,omitempty"`
	Employees          *string                 `json:"employees,omitempty"`
	Salary             *kernel.SalaryRange     `json:"salary,omitempty"`
	NumberOfOpenings   *int                    `json:"number_of_openings,omitempty"`
	ApplyBy            *string                 `json:"apply_by,omitempty"`
	Experience         *kernel.ExperienceLevel `json:"experience,omitempty"`
	Type               *kernel.JobType         `json:"job_type,omitempty"`
	SkillsRequired     *SkillList              `json:"skills_required,omitempty"`
	Logo               *kernel.LogoPath        `json:"logo,omitempty"`
	Featured           *bool                   `json:"featured,omitempty"`
}

// ApplyRequest - DTO for a seeker applying to a job
type ApplyRequest struct {
	Name    string       `json:"name"`
	Email   kernel.Email `json:"email"`
	Contact string       `json:"contact"`
}

// Validate reports the missing required fields, if any
func (r *ApplyRequest) Validate() []string {
	var missing []string
	if r.Name == "" {
		missing = append(missing, "name")
	}
	if r.Email == "" {
		missing = append(missing, "email")
	}
	if r.Contact == "" {
		missing = append(missing, "contact")
	}
	return missing
}

// UpdateApplicantRequest - DTO for a recruiter updating an applicant
type UpdateApplicantRequest struct {
	Name    *string       `json:"name,omitempty"`
	Email   *kernel.Email `json:"email,omitempty"`
	Contact *string       `json:"contact,omitempty"`
	Status  *string       `json:"status,omitempty"`
}

// JobCard - listing projection with defaults substituted for missing fields
type JobCard struct {
	ID             kernel.JobID           `json:"id"`
	Designation    kernel.JobDesignation  `json:"job_designation"`
	CompanyName    kernel.CompanyName     `json:"company_name"`
	Location       kernel.JobLocation     `json:"job_location"`
	Experience     kernel.ExperienceLevel `json:"experience"`
	Salary         kernel.SalaryRange     `json:"salary"`
	Employees      string                 `json:"employees"`
	Posted         string                 `json:"job_posted"`
	SkillsRequired []kernel.Skill         `json:"skills_required"`
	Logo           kernel.LogoPath        `json:"logo"`
	Featured       bool                   `json:"featured"`
}

// JobDetail - single-job projection for the details endpoint
type JobDetail struct {
	Job

	CompanyFoundedDisplay string `json:"company_founded_display"`
}

// ApplicationSummary - one row of a seeker's "my applications" listing
type ApplicationSummary struct {
	JobID       kernel.JobID          `json:"job_id"`
	Designation kernel.JobDesignation `json:"job_designation"`
	CompanyName kernel.CompanyName    `json:"company_name"`
	Location    kernel.JobLocation    `json:"job_location"`
	Salary      kernel.SalaryRange    `json:"salary"`
	Status      string                `json:"status"`
	AppliedAt   string                `json:"applied_at"`
	ResumePath  string                `json:"resume_path,omitempty"`
	Logo        kernel.LogoPath       `json:"logo"`
}

// RecruiterPostings - a recruiter's own jobs with their total count
type RecruiterPostings struct {
	Jobs  []JobCard `json:"jobs"`
	Total int64     `json:"total"`
}

// Response type aliases
type PaginatedJobCards = kernel.Paginated[JobCard]
type PaginatedApplicants = kernel.Paginated[Applicant]
type PaginatedApplications = kernel.Paginated[ApplicationSummary]
