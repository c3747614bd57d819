package job

import (
	"strings"
	"time"

	"github.com/easilyhq/easily/pkg/kernel"
)

// Applicant statuses are free text; "Submitted" is the initial value.
const ApplicantStatusSubmitted = "Submitted"

// dateOnlyLen is the length of a bare "YYYY-MM-DD" posting date. Anything
// longer is treated as carrying a time-of-day component.
const dateOnlyLen = 10

type Job struct {
	ID                 kernel.JobID           `json:"id"`
	RecruiterID        kernel.UserID          `json:"recruiter_id"`
	Category           kernel.JobCategory     `json:"job_category"`
	Designation        kernel.JobDesignation  `json:"job_designation"`
	Location           kernel.JobLocation     `json:"job_location"`
	CompanyName        kernel.CompanyName     `json:"company_name"`
	CompanyFounded     int                    `json:"company_founded,omitempty"`
	CompanyDescription string                 `json:"company_description,omitempty"`
	Employees          string                 `json:"employees,omitempty"`
	Salary             kernel.SalaryRange     `json:"salary,omitempty"`
	NumberOfOpenings   int                    `json:"number_of_openings"`
	ApplyBy            string                 `json:"apply_by,omitempty"`
	Experience         kernel.ExperienceLevel `json:"experience,omitempty"`
	Type               kernel.JobType         `json:"job_type,omitempty"`
	SkillsRequired     []kernel.Skill         `json:"skills_required"`
	Logo               kernel.LogoPath        `json:"logo,omitempty"`
	Posted             string                 `json:"job_posted"`
	Featured           bool                   `json:"featured"`
	Applicants         []Applicant            `json:"applicants"`
}

type Applicant struct {
	ID         kernel.ApplicantID `json:"id"`
	Name       string             `json:"name"`
	Email      kernel.Email       `json:"email"`
	Contact    string             `json:"contact"`
	ResumePath string             `json:"resume_path,omitempty"`
	AppliedAt  string             `json:"applied_at"`
	Status     string             `json:"status"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsOwnedBy checks whether the given recruiter posted this job
func (j *Job) IsOwnedBy(userID kernel.UserID) bool {
	return j.RecruiterID == userID
}

// PostedAt parses the posting date. The zero time means unparseable; such
// jobs fail every date-window filter and sort after every dated job.
func (j *Job) PostedAt() time.Time {
	return parseFlexibleDate(j.Posted)
}

// PostedHasTime reports whether the posting date carries a time-of-day
// component. Date-only values get end-of-day leniency in window filters.
func (j *Job) PostedHasTime() bool {
	return len(j.Posted) > dateOnlyLen
}

// SearchBlob is the lowercased composite text the search filter matches
// expanded terms against: designation, company, location, category,
// experience and skills.
func (j *Job) SearchBlob() string {
	parts := []string{
		string(j.Designation),
		string(j.CompanyName),
		string(j.Location),
		string(j.Category),
		string(j.Experience),
	}
	for _, s := range j.SkillsRequired {
		parts = append(parts, string(s))
	}
	return joinNonEmpty(parts)
}

// RelevanceBlob is the narrower composite used only for relevance ordering:
// designation, company and skills.
func (j *Job) RelevanceBlob() string {
	parts := []string{
		string(j.Designation),
		string(j.CompanyName),
	}
	for _, s := range j.SkillsRequired {
		parts = append(parts, string(s))
	}
	return joinNonEmpty(parts)
}

func joinNonEmpty(parts []string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.ToLower(strings.Join(kept, " "))
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseFlexibleDate(s string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
