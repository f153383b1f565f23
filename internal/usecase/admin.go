package usecase

import (
	"fmt"

	domainErrors "github.com/maisonforma/storefront/internal/domain/errors"
	"github.com/maisonforma/storefront/internal/pkg/auth"
)

// AdminSubject is the token subject issued to the back office operator.
const AdminSubject = "admin"

// AdminAuth authenticates the back office operator against the configured
// bcrypt credential and issues session tokens.
type AdminAuth struct {
	strategy     auth.Strategy
	hasher       auth.PasswordHasher
	passwordHash string
}

// NewAdminAuth constructs AdminAuth. An empty passwordHash disables login.
func NewAdminAuth(strategy auth.Strategy, hasher auth.PasswordHasher, passwordHash string) *AdminAuth {
	return &AdminAuth{strategy: strategy, hasher: hasher, passwordHash: passwordHash}
}

// Login verifies the operator password and returns a session token.
func (a *AdminAuth) Login(password string) (string, error) {
	if a.passwordHash == "" {
		return "", fmt.Errorf("admin login disabled: %w", domainErrors.ErrUnauthorized)
	}
	if err := a.hasher.Compare(a.passwordHash, password); err != nil {
		return "", fmt.Errorf("password mismatch: %w", domainErrors.ErrUnauthorized)
	}
	return a.strategy.IssueToken(AdminSubject)
}

// ParseToken validates a session token and confirms the admin subject.
func (a *AdminAuth) ParseToken(token string) (string, error) {
	subject, err := a.strategy.ParseToken(token)
	if err != nil {
		return "", fmt.Errorf("parse token: %w", domainErrors.ErrUnauthorized)
	}
	if subject != AdminSubject {
		return "", fmt.Errorf("subject %q: %w", subject, domainErrors.ErrUnauthorized)
	}
	return subject, nil
}
