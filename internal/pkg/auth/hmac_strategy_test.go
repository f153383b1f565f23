package auth

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"
)

func TestHMACStrategyRoundTrip(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})

	token, err := strategy.IssueToken("admin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	subject, err := strategy.ParseToken(token)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if subject != "admin" {
		t.Fatalf("expected subject admin, got %q", subject)
	}
}

func TestHMACStrategyRejectsInvalidSubject(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})
	if _, err := strategy.IssueToken(""); err == nil {
		t.Fatal("expected error for empty subject")
	}
	if _, err := strategy.IssueToken("with:colon"); err == nil {
		t.Fatal("expected error for subject containing separator")
	}
}

func TestHMACStrategyRejectsTamperedToken(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})
	token, err := strategy.IssueToken("admin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw, _ := base64.StdEncoding.DecodeString(token)
	forged := strings.Replace(string(raw), "admin", "other", 1)
	tampered := base64.StdEncoding.EncodeToString([]byte(forged))

	if _, err := strategy.ParseToken(tampered); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestHMACStrategyRejectsGarbage(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})

	for _, token := range []string{"", "!!!", base64.StdEncoding.EncodeToString([]byte("a:b"))} {
		if _, err := strategy.ParseToken(token); err != ErrInvalidToken {
			t.Fatalf("expected ErrInvalidToken for %q, got %v", token, err)
		}
	}
}

func TestHMACStrategyRejectsExpiredToken(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{TTL: time.Nanosecond})
	token, err := strategy.IssueToken("admin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	time.Sleep(2 * time.Second)
	if _, err := strategy.ParseToken(token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestHMACStrategyName(t *testing.T) {
	if name := NewHMACStrategy("secret", Options{}).Name(); name != "hmac" {
		t.Fatalf("unexpected strategy name %q", name)
	}
}
