package auth

import (
	"testing"
	"time"

	"voice-mentor/internal/config"
)

func TestIssueAndVerifyAccessToken(t *testing.T) {
	m, err := NewManager(config.AuthConfig{
		JWTSecret:       "secret",
		JWTIssuer:       "issuer",
		JWTAudience:     "aud",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	})
	if err != nil {
		t.Fatalf("manager: %v", err)
	}

	now := time.Unix(1700000000, 0).UTC()
	pair, err := m.IssuePair(now, "user-1", "ada@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected token strings")
	}

	claims, err := m.Verify(pair.AccessToken, TokenTypeAccess, now.Add(1*time.Minute))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "ada@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	refresh, err := m.Verify(pair.RefreshToken, TokenTypeRefresh, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("verify refresh: %v", err)
	}
	if refresh.Email != "" {
		t.Fatalf("refresh token must not carry email")
	}
}

func TestVerifyRejectsWrongTokenType(t *testing.T) {
	m, _ := NewManager(config.AuthConfig{JWTSecret: "secret", AccessTokenTTL: time.Minute, RefreshTokenTTL: time.Hour})
	p, err := m.IssuePair(time.Now(), "u", "e@x.io")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := m.Verify(p.RefreshToken, TokenTypeAccess, time.Now()); err == nil {
		t.Fatalf("expected token_type mismatch")
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	m, _ := NewManager(config.AuthConfig{JWTSecret: "secret", AccessTokenTTL: time.Minute, RefreshTokenTTL: time.Hour})
	now := time.Unix(1700000000, 0).UTC()
	p, _ := m.IssuePair(now, "u", "e@x.io")
	if _, err := m.Verify(p.AccessToken, TokenTypeAccess, now.Add(2*time.Minute)); err == nil {
		t.Fatalf("expected expiry error")
	}
}

func TestVerifyRejectsOtherSecretAndAudience(t *testing.T) {
	a, _ := NewManager(config.AuthConfig{JWTSecret: "a", JWTAudience: "web", AccessTokenTTL: time.Minute, RefreshTokenTTL: time.Hour})
	b, _ := NewManager(config.AuthConfig{JWTSecret: "b", JWTAudience: "web", AccessTokenTTL: time.Minute, RefreshTokenTTL: time.Hour})
	c, _ := NewManager(config.AuthConfig{JWTSecret: "a", JWTAudience: "mobile", AccessTokenTTL: time.Minute, RefreshTokenTTL: time.Hour})

	now := time.Now()
	p, _ := a.IssuePair(now, "u", "e@x.io")
	if _, err := b.Verify(p.AccessToken, TokenTypeAccess, now); err == nil {
		t.Fatalf("expected signature error")
	}
	if _, err := c.Verify(p.AccessToken, TokenTypeAccess, now); err == nil {
		t.Fatalf("expected audience error")
	}
}

func TestNewManagerRequiresSecret(t *testing.T) {
	if _, err := NewManager(config.AuthConfig{}); err == nil {
		t.Fatalf("expected error")
	}
}
