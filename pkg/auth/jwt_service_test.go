package auth

import (
	"errors"
	"testing"
	"time"
)

const testSigningKey = "this-is-a-32-character-test-key!!"

func TestNewServiceRejectsShortSigningKey(t *testing.T) {
	_, err := NewService(ServiceConfig{SigningKey: "too-short"})
	if !errors.Is(err, ErrInvalidSecretLength) {
		t.Fatalf("expected ErrInvalidSecretLength, got %v", err)
	}
}

func TestNewServiceAppliesDefaults(t *testing.T) {
	s, err := NewService(ServiceConfig{SigningKey: testSigningKey})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	if s.config.Issuer != "sovdgw" {
		t.Errorf("Issuer = %s, want sovdgw", s.config.Issuer)
	}
	if s.TokenTTL() != time.Hour {
		t.Errorf("TokenTTL() = %v, want 1h", s.TokenTTL())
	}
}

func TestIssueAndValidateTokenRoundTrips(t *testing.T) {
	s, err := NewService(ServiceConfig{SigningKey: testSigningKey, TokenTTL: time.Minute})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	token, expiresAt, err := s.IssueToken("diag-tool", []string{"diagnostics:read"})
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}
	if token == "" {
		t.Fatal("IssueToken() returned empty token")
	}
	if !expiresAt.After(time.Now()) {
		t.Error("expiresAt should be in the future")
	}

	claims, err := s.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.ClientID != "diag-tool" {
		t.Errorf("ClientID = %s, want diag-tool", claims.ClientID)
	}
	if !claims.HasScope("diagnostics:read") {
		t.Error("expected claims to carry the diagnostics:read scope")
	}
	if claims.HasScope("diagnostics:write") {
		t.Error("did not expect an unissued scope to be present")
	}
}

func TestValidateTokenRejectsExpiredToken(t *testing.T) {
	s, err := NewService(ServiceConfig{SigningKey: testSigningKey, TokenTTL: -time.Minute})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	token, _, err := s.IssueToken("diag-tool", nil)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}

	_, err = s.ValidateToken(token)
	if !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestValidateTokenRejectsTokenSignedWithDifferentKey(t *testing.T) {
	s1, _ := NewService(ServiceConfig{SigningKey: testSigningKey})
	s2, _ := NewService(ServiceConfig{SigningKey: "a-completely-different-32-char-key!"})

	token, _, err := s1.IssueToken("diag-tool", nil)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}

	_, err = s2.ValidateToken(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	s, _ := NewService(ServiceConfig{SigningKey: testSigningKey})

	_, err := s.ValidateToken("not-a-jwt-at-all")
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
