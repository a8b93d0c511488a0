package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	token, err := SignSessionToken("secret", "sid-123", time.Hour)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	sid, err := ParseSessionToken("secret", token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if sid != "sid-123" {
		t.Fatalf("expected sid-123, got %q", sid)
	}
}

func TestSessionTokenWrongSecret(t *testing.T) {
	token, err := SignSessionToken("secret", "sid-123", time.Hour)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	if _, err := ParseSessionToken("other-secret", token); err == nil {
		t.Fatalf("expected verification failure with wrong secret")
	}
}

func TestSessionTokenExpired(t *testing.T) {
	token, err := SignSessionToken("secret", "sid-123", -time.Minute)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	if _, err := ParseSessionToken("secret", token); err == nil {
		t.Fatalf("expected failure for expired token")
	}
}

func TestSessionTokenRejectsOtherAlgorithms(t *testing.T) {
	claims := SessionClaims{
		SessionID: "sid-123",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	if _, err := ParseSessionToken("secret", token); err == nil {
		t.Fatalf("token signed with a non-HS256 method must be rejected")
	}
}

func TestSessionTokenGarbage(t *testing.T) {
	if _, err := ParseSessionToken("secret", "not-a-token"); err == nil {
		t.Fatalf("expected failure for malformed token")
	}
}
