package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
)

// PasswordHasher defines hashing strategy for credentials.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error
}

// BcryptHasher uses bcrypt to hash passwords.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates BcryptHasher with provided cost, zero means bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash returns bcrypt hash for provided password.
// Passwords beyond bcrypt's 72 byte limit are rejected as invalid input.
func (h *BcryptHasher) Hash(password string) (string, error) {
	encoded, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", domainErrors.Validationf("password longer than 72 bytes")
		}
		return "", err
	}
	return string(encoded), nil
}

// Compare checks password against stored hash. A mismatch yields ErrInvalidCredentials.
func (h *BcryptHasher) Compare(hash string, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return domainErrors.ErrInvalidCredentials
	}
	return err
}
