package utils

import (
	"strings"
	"testing"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	InitJWTSecret("unit-test-secret")

	token, err := GenerateAccessToken(42, "ana.reyes@example.com", true)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("user ID = %d, want 42", claims.UserID)
	}
	if claims.Email != "ana.reyes@example.com" {
		t.Errorf("email = %q", claims.Email)
	}
	if !claims.IsStaff {
		t.Error("expected staff claim to survive the round trip")
	}
}

func TestValidateToken_RejectsTamperedToken(t *testing.T) {
	InitJWTSecret("unit-test-secret")

	token, err := GenerateAccessToken(42, "ana.reyes@example.com", false)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	// Flip a character in the signature segment.
	parts := strings.Split(token, ".")
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := ValidateToken(tampered); err == nil {
		t.Fatal("expected validation to fail for a tampered token")
	}
}

func TestValidateToken_RejectsWrongSecret(t *testing.T) {
	InitJWTSecret("first-secret")
	token, err := GenerateAccessToken(1, "ana.reyes@example.com", false)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	InitJWTSecret("second-secret")
	if _, err := ValidateToken(token); err == nil {
		t.Fatal("expected validation to fail after a key change")
	}
	InitJWTSecret("unit-test-secret")
}
