package user

import "github.com/easilyhq/easily/pkg/kernel"

// RegisterRequest - DTO for creating an account
type RegisterRequest struct {
	Name     string       `json:"name"`
	Email    kernel.Email `json:"email"`
	Password string       `json:"password"`
	Mobile   string       `json:"mobile,omitempty"`
}

// Validate reports the missing required fields, if any
func (r *RegisterRequest) Validate() []string {
	var missing []string
	if r.Name == "" {
		missing = append(missing, "name")
	}
	if r.Email == "" {
		missing = append(missing, "email")
	}
	if r.Password == "" {
		missing = append(missing, "password")
	}
	return missing
}

// LoginRequest - DTO for opening a session
type LoginRequest struct {
	Email    kernel.Email `json:"email"`
	Password string       `json:"password"`
}

// UserResponse - public projection of an account
type UserResponse struct {
	ID     kernel.UserID `json:"id"`
	Name   string        `json:"name"`
	Email  kernel.Email  `json:"email"`
	Mobile string        `json:"mobile,omitempty"`
}

// SessionResponse - result of register/login: the session token plus the
// account it belongs to
type SessionResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ToResponse projects a user onto its public shape
func ToResponse(u *User) UserResponse {
	return UserResponse{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Mobile: u.Mobile,
	}
}
