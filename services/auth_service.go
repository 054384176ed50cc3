package services

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// AuthService is the static-password gate: one shared admin password, checked
// against a bcrypt hash kept in memory. Successful logins get a signed token
// from the handler; there are no user accounts.
type AuthService interface {
	CheckPassword(password string) error
}

type authService struct {
	passwordHash []byte
}

func NewAuthService(adminPassword string) (AuthService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}
	return &authService{passwordHash: hash}, nil
}

func (s *authService) CheckPassword(password string) error {
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return ErrAuthInvalidPassword
	}
	return nil
}
