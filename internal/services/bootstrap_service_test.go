package services

import (
	"errors"
	"testing"

	"fitnesshub_backend/internal/models"

	"golang.org/x/crypto/bcrypt"
)

func TestEnsureStaffAccount_RejectsBadConfig(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"malformed email", "front-desk", "Sunlight9"},
		{"weak password", "staff@example.com", "short"},
		{"password without digits", "staff@example.com", "longpassword"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := EnsureStaffAccount(nil, newFakeAuthRepo(), &fakeStaffRepo{}, tc.email, tc.password, "Front", "Desk")
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestEnsureStaffAccount_SkipsExistingAccount(t *testing.T) {
	existing := &models.User{ID: 1, Email: "staff@example.com", IsStaff: true}
	staffRepo := &fakeStaffRepo{}

	err := EnsureStaffAccount(nil, newFakeAuthRepo(existing), staffRepo, "staff@example.com", "Sunlight9", "Front", "Desk")
	if err != nil {
		t.Fatalf("EnsureStaffAccount failed: %v", err)
	}
	if len(staffRepo.created) != 0 {
		t.Errorf("expected no new staff profile, got %d", len(staffRepo.created))
	}
}

func TestCreateStaffAccount(t *testing.T) {
	authRepo := newFakeAuthRepo()
	staffRepo := &fakeStaffRepo{}

	if err := createStaffAccount(nil, authRepo, staffRepo, "staff@example.com", "Sunlight9", "Front", "Desk"); err != nil {
		t.Fatalf("createStaffAccount failed: %v", err)
	}

	user, err := authRepo.FindUserByEmail("staff@example.com")
	if err != nil {
		t.Fatalf("staff user was not created: %v", err)
	}
	if !user.IsStaff || !user.IsActive {
		t.Errorf("staff user flags = staff %v active %v, want both true", user.IsStaff, user.IsActive)
	}
	if user.FirstName != "Front" || user.LastName != "Desk" {
		t.Errorf("unexpected name: %s %s", user.FirstName, user.LastName)
	}

	if len(staffRepo.created) != 1 {
		t.Fatalf("expected one staff profile, got %d", len(staffRepo.created))
	}
	profile := staffRepo.created[0]
	if profile.UserID != user.ID {
		t.Errorf("staff profile user ID = %d, want %d", profile.UserID, user.ID)
	}
	if profile.Position == nil || *profile.Position != defaultStaffPosition {
		t.Errorf("staff profile position = %v, want %q", profile.Position, defaultStaffPosition)
	}
}

func TestCreateStaffAccount_PasswordVerifies(t *testing.T) {
	authRepo := newFakeAuthRepo()

	if err := createStaffAccount(nil, authRepo, &fakeStaffRepo{}, "staff@example.com", "Sunlight9", "Front", "Desk"); err != nil {
		t.Fatalf("createStaffAccount failed: %v", err)
	}

	user, err := authRepo.FindUserByEmail("staff@example.com")
	if err != nil {
		t.Fatalf("staff user was not created: %v", err)
	}
	hash, err := authRepo.GetPasswordHash(user.ID)
	if err != nil {
		t.Fatalf("password hash was not stored: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte("Sunlight9")) != nil {
		t.Error("stored hash does not verify against the configured password")
	}
}
