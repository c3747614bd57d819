package usersrv

import (
	"context"
	"strings"

	"github.com/easilyhq/easily/board/user"
	"github.com/easilyhq/easily/board/user/userauth"
	"github.com/easilyhq/easily/pkg/errx"
	"github.com/easilyhq/easily/pkg/kernel"
)

// UserService provides account and session operations
type UserService struct {
	userRepo  user.Repository
	passwords user.PasswordService
	tokens    *userauth.TokenService
}

// NewUserService creates a new instance of the user service
func NewUserService(
	userRepo user.Repository,
	passwords user.PasswordService,
	tokens *userauth.TokenService,
) *UserService {
	return &UserService{
		userRepo:  userRepo,
		passwords: passwords,
		tokens:    tokens,
	}
}

// Register creates an account and opens a session for it. A duplicate email
// is a conflict; the password is stored only as a hash.
func (s *UserService) Register(ctx context.Context, req user.RegisterRequest) (*user.SessionResponse, error) {
	if missing := req.Validate(); len(missing) > 0 {
		return nil, user.ErrInvalidUser().WithDetail("missing_fields", strings.Join(missing, ", "))
	}

	hash, err := s.passwords.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	created, err := s.userRepo.Create(ctx, &user.User{
		Name:         req.Name,
		Email:        req.Email,
		Mobile:       req.Mobile,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	return s.openSession(created)
}

// Login verifies credentials and opens a session. An unknown email and a
// wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, req user.LoginRequest) (*user.SessionResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, user.ErrInvalidCredentials()
	}

	account, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, user.ErrInvalidCredentials()
	}

	if err := s.passwords.Verify(account.PasswordHash, req.Password); err != nil {
		return nil, user.ErrInvalidCredentials()
	}

	return s.openSession(account)
}

// Me retrieves the account behind a session
func (s *UserService) Me(ctx context.Context, userID kernel.UserID) (*user.UserResponse, error) {
	account, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := user.ToResponse(account)
	return &resp, nil
}

func (s *UserService) openSession(account *user.User) (*user.SessionResponse, error) {
	token, err := s.tokens.Generate(account.ID, account.Email)
	if err != nil {
		return nil, errx.Wrap(err, "failed to open session", errx.TypeInternal)
	}
	return &user.SessionResponse{
		Token: token,
		User:  user.ToResponse(account),
	}, nil
}
