package server

import (
	"testing"
	"time"

	"supplycore/pkg/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokenService("test-secret", time.Hour)
	user := domain.User{
		Base: domain.Base{ID: "USR-2024-6001"},
		Name: "Dana Whitfield",
		Role: domain.RoleAdmin,
	}
	signed, err := tokens.Sign(user)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	claims, err := tokens.Validate(signed)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Sub != user.ID || claims.Name != user.Name || claims.Role != string(user.Role) {
		t.Fatalf("claims: %+v", claims)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	signed, err := NewTokenService("secret-a", time.Hour).Sign(domain.User{Base: domain.Base{ID: "U1"}})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := NewTokenService("secret-b", time.Hour).Validate(signed); err == nil {
		t.Fatal("token signed with another secret accepted")
	}
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	tokens := NewTokenService("test-secret", -time.Minute)
	signed, err := tokens.Sign(domain.User{Base: domain.Base{ID: "U1"}})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := tokens.Validate(signed); err == nil {
		t.Fatal("expired token accepted")
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	tokens := NewTokenService("test-secret", time.Hour)
	if _, err := tokens.Validate("not-a-jwt"); err == nil {
		t.Fatal("garbage token accepted")
	}
}
