package usecase

import (
	"errors"
	"testing"

	domainErrors "github.com/maisonforma/storefront/internal/domain/errors"
	"github.com/maisonforma/storefront/internal/pkg/auth"
)

func newTestAdminAuth(t *testing.T, password string) *AdminAuth {
	t.Helper()
	hasher := auth.NewBcryptHasher(bcryptMinTestCost)
	hash := ""
	if password != "" {
		var err error
		hash, err = hasher.Hash(password)
		if err != nil {
			t.Fatalf("hash password: %v", err)
		}
	}
	strategy := auth.NewHMACStrategy("test-secret", auth.Options{})
	return NewAdminAuth(strategy, hasher, hash)
}

// bcrypt.MinCost keeps the hashing in tests cheap.
const bcryptMinTestCost = 4

func TestAdminLogin(t *testing.T) {
	admin := newTestAdminAuth(t, "correct horse")

	token, err := admin.Login("correct horse")
	if err != nil {
		t.Fatalf("login returned error: %v", err)
	}
	if token == "" {
		t.Fatal("expected a session token")
	}

	subject, err := admin.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token returned error: %v", err)
	}
	if subject != AdminSubject {
		t.Errorf("expected subject %q, got %q", AdminSubject, subject)
	}
}

func TestAdminLoginWrongPassword(t *testing.T) {
	admin := newTestAdminAuth(t, "correct horse")
	if _, err := admin.Login("battery staple"); !errors.Is(err, domainErrors.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAdminLoginDisabledWithoutHash(t *testing.T) {
	admin := newTestAdminAuth(t, "")
	if _, err := admin.Login("anything"); !errors.Is(err, domainErrors.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized when no hash is configured, got %v", err)
	}
}

func TestAdminParseTokenRejectsOtherSubjects(t *testing.T) {
	admin := newTestAdminAuth(t, "correct horse")

	strategy := auth.NewHMACStrategy("test-secret", auth.Options{})
	token, err := strategy.IssueToken("intruder")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := admin.ParseToken(token); !errors.Is(err, domainErrors.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for foreign subject, got %v", err)
	}
}

func TestAdminParseTokenRejectsGarbage(t *testing.T) {
	admin := newTestAdminAuth(t, "correct horse")
	if _, err := admin.ParseToken("not-a-token"); !errors.Is(err, domainErrors.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAdminParseTokenRejectsForeignSecret(t *testing.T) {
	admin := newTestAdminAuth(t, "correct horse")

	other := auth.NewHMACStrategy("other-secret", auth.Options{})
	token, err := other.IssueToken(AdminSubject)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := admin.ParseToken(token); !errors.Is(err, domainErrors.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for token signed with another secret, got %v", err)
	}
}
