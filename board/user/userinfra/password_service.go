package userinfra

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/easilyhq/easily/board/user"
	"github.com/easilyhq/easily/pkg/errx"
)

// BcryptPasswordService hashes passwords with bcrypt. Plaintext is never
// stored or compared directly.
type BcryptPasswordService struct {
	cost int
}

// NewBcryptPasswordService creates a password service with the given cost;
// anything below bcrypt's minimum falls back to the default cost.
func NewBcryptPasswordService(cost int) *BcryptPasswordService {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordService{cost: cost}
}

// Hash derives the storable hash of a password
func (s *BcryptPasswordService) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", errx.Wrap(err, "failed to hash password", errx.TypeInternal)
	}
	return string(hash), nil
}

// Verify checks a password against its stored hash
func (s *BcryptPasswordService) Verify(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return user.ErrInvalidCredentials()
	}
	return nil
}

var _ user.PasswordService = (*BcryptPasswordService)(nil)
