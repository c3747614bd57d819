package notify

import (
	"fmt"

	"github.com/easilyhq/easily/pkg/kernel"
)

// MaxSendAttempts bounds retry of a failing email before it is dropped
const MaxSendAttempts = 3

// RetryDelaySeconds is the delay before a failed email is retried
const RetryDelaySeconds = 60

// ApplicationEmail is the confirmation sent to a seeker after applying.
// It is the queue payload; attempts are tracked across retries.
type ApplicationEmail struct {
	To          kernel.Email          `json:"to"`
	Applicant   string                `json:"applicant"`
	JobID       kernel.JobID          `json:"job_id"`
	Designation kernel.JobDesignation `json:"job_designation"`
	CompanyName kernel.CompanyName    `json:"company_name"`
	AppliedAt   string                `json:"applied_at"`
	Attempts    int                   `json:"attempts"`
}

// Subject renders the email subject line
func (e *ApplicationEmail) Subject() string {
	return fmt.Sprintf("Application received: %s at %s", e.Designation, e.CompanyName)
}

// Body renders the plain-text email body
func (e *ApplicationEmail) Body() string {
	return fmt.Sprintf(
		"Hi %s,\n\nYour application for %s at %s was received on %s.\n\nThe recruiter will reach out if your profile is a match.\n\n— Easily",
		e.Applicant, e.Designation, e.CompanyName, e.AppliedAt,
	)
}
