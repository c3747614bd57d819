package user

import (
	"time"

	"github.com/easilyhq/easily/pkg/kernel"
)

// User is a registered account. Recruiters and seekers share the same shape;
// what distinguishes a recruiter is holding a session when calling the
// recruiter-only routes.
type User struct {
	ID           kernel.UserID `json:"id"`
	Name         string        `json:"name"`
	Email        kernel.Email  `json:"email"`
	Mobile       string        `json:"mobile,omitempty"`
	PasswordHash string        `json:"-"`
	CreatedAt    time.Time     `json:"created_at"`
}
