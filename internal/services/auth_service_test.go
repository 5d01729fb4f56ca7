package services

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"fitnesshub_backend/internal/models"
	"fitnesshub_backend/pkg/utils"
)

func validRegisterRequest() RegisterRequest {
	return RegisterRequest{
		Email:                  "ana.reyes@example.com",
		Password:               "Sunlight9",
		ConfirmPassword:        "Sunlight9",
		FirstName:              "Ana",
		LastName:               "Reyes",
		ContactNumber:          "0917 123 4567",
		EmergencyContactName:   "Maria Reyes",
		EmergencyContactNumber: "0918 765 4321",
	}
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RegisterRequest)
	}{
		{"digits in first name", func(r *RegisterRequest) { r.FirstName = "Ana123" }},
		{"bad email", func(r *RegisterRequest) { r.Email = "not-an-email" }},
		{"short contact number", func(r *RegisterRequest) { r.ContactNumber = "12345" }},
		{"weak password", func(r *RegisterRequest) { r.Password = "short1"; r.ConfirmPassword = "short1" }},
		{"password without digit", func(r *RegisterRequest) { r.Password = "OnlyLetters"; r.ConfirmPassword = "OnlyLetters" }},
		{"mismatched confirmation", func(r *RegisterRequest) { r.ConfirmPassword = "Different9" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewAuthService(newFakeAuthRepo(), newFakeMemberRepo(), &fakeStaffRepo{}, nil, nil)
			req := validRegisterRequest()
			tc.mutate(&req)

			if _, err := svc.Register(req); !errors.Is(err, ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestRegister_RejectsExistingAccount(t *testing.T) {
	existing := &models.User{ID: 1, Email: "ana.reyes@example.com", IsActive: true}
	profile := &models.MemberProfile{ID: 1, UserID: 1, ActivationStatus: models.ActivationApproved}
	svc := NewAuthService(newFakeAuthRepo(existing), newFakeMemberRepo(profile), &fakeStaffRepo{}, nil, nil)

	_, err := svc.Register(validRegisterRequest())
	if !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestRegister_RejectsStaffEmail(t *testing.T) {
	existing := &models.User{ID: 1, Email: "ana.reyes@example.com", IsStaff: true, IsActive: true}
	svc := NewAuthService(newFakeAuthRepo(existing), newFakeMemberRepo(), &fakeStaffRepo{}, nil, nil)

	_, err := svc.Register(validRegisterRequest())
	if !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func seedLoginUser(t *testing.T, password string) (*fakeAuthRepo, *models.User) {
	t.Helper()
	user := &models.User{ID: 1, Email: "ana.reyes@example.com", IsActive: true}
	authRepo := newFakeAuthRepo(user)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	authRepo.hashes[user.ID] = string(hash)
	return authRepo, user
}

func TestLogin(t *testing.T) {
	utils.InitJWTSecret("test-secret")

	t.Run("rejects unknown role", func(t *testing.T) {
		authRepo, _ := seedLoginUser(t, "Sunlight9")
		svc := NewAuthService(authRepo, newFakeMemberRepo(), &fakeStaffRepo{}, nil, nil)
		_, err := svc.Login(LoginRequest{Email: "ana.reyes@example.com", Password: "Sunlight9", Role: "admin"})
		if !errors.Is(err, ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("rejects unknown email", func(t *testing.T) {
		authRepo, _ := seedLoginUser(t, "Sunlight9")
		svc := NewAuthService(authRepo, newFakeMemberRepo(), &fakeStaffRepo{}, nil, nil)
		_, err := svc.Login(LoginRequest{Email: "nobody@example.com", Password: "Sunlight9", Role: RoleMember})
		if !errors.Is(err, ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		authRepo, _ := seedLoginUser(t, "Sunlight9")
		svc := NewAuthService(authRepo, newFakeMemberRepo(), &fakeStaffRepo{}, nil, nil)
		_, err := svc.Login(LoginRequest{Email: "ana.reyes@example.com", Password: "wrong", Role: RoleMember})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("rejects role mismatch", func(t *testing.T) {
		authRepo, _ := seedLoginUser(t, "Sunlight9")
		svc := NewAuthService(authRepo, newFakeMemberRepo(), &fakeStaffRepo{}, nil, nil)
		_, err := svc.Login(LoginRequest{Email: "ana.reyes@example.com", Password: "Sunlight9", Role: RoleStaff})
		if !errors.Is(err, ErrRoleMismatch) {
			t.Errorf("expected ErrRoleMismatch, got %v", err)
		}
	})

	t.Run("rejects inactive account", func(t *testing.T) {
		authRepo, user := seedLoginUser(t, "Sunlight9")
		user.IsActive = false
		svc := NewAuthService(authRepo, newFakeMemberRepo(), &fakeStaffRepo{}, nil, nil)
		_, err := svc.Login(LoginRequest{Email: "ana.reyes@example.com", Password: "Sunlight9", Role: RoleMember})
		if !errors.Is(err, ErrAccountInactive) {
			t.Errorf("expected ErrAccountInactive, got %v", err)
		}
	})

	t.Run("issues a token on success", func(t *testing.T) {
		authRepo, user := seedLoginUser(t, "Sunlight9")
		svc := NewAuthService(authRepo, newFakeMemberRepo(), &fakeStaffRepo{}, nil, nil)
		resp, err := svc.Login(LoginRequest{Email: "ana.reyes@example.com", Password: "Sunlight9", Role: RoleMember})
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if resp.AccessToken == "" {
			t.Error("expected a non-empty access token")
		}
		if resp.User.ID != user.ID {
			t.Errorf("user ID = %d, want %d", resp.User.ID, user.ID)
		}
	})
}

func TestChangePassword(t *testing.T) {
	t.Run("rejects wrong current password", func(t *testing.T) {
		authRepo, _ := seedLoginUser(t, "Sunlight9")
		svc := NewAuthService(authRepo, newFakeMemberRepo(), &fakeStaffRepo{}, nil, nil)
		err := svc.ChangePassword(1, ChangePasswordRequest{CurrentPassword: "wrong", NewPassword: "Moonlight7", ConfirmPassword: "Moonlight7"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("rejects weak new password", func(t *testing.T) {
		authRepo, _ := seedLoginUser(t, "Sunlight9")
		svc := NewAuthService(authRepo, newFakeMemberRepo(), &fakeStaffRepo{}, nil, nil)
		err := svc.ChangePassword(1, ChangePasswordRequest{CurrentPassword: "Sunlight9", NewPassword: "weak", ConfirmPassword: "weak"})
		if !errors.Is(err, ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("stores the new hash", func(t *testing.T) {
		authRepo, _ := seedLoginUser(t, "Sunlight9")
		oldHash := authRepo.hashes[1]
		svc := NewAuthService(authRepo, newFakeMemberRepo(), &fakeStaffRepo{}, nil, nil)
		if err := svc.ChangePassword(1, ChangePasswordRequest{CurrentPassword: "Sunlight9", NewPassword: "Moonlight7", ConfirmPassword: "Moonlight7"}); err != nil {
			t.Fatalf("ChangePassword failed: %v", err)
		}
		if authRepo.hashes[1] == oldHash {
			t.Error("expected the stored hash to change")
		}
		if bcrypt.CompareHashAndPassword([]byte(authRepo.hashes[1]), []byte("Moonlight7")) != nil {
			t.Error("new hash does not match the new password")
		}
	})
}

func TestGetProfile(t *testing.T) {
	t.Run("member gets member profile", func(t *testing.T) {
		user := &models.User{ID: 1, Email: "ana.reyes@example.com", IsActive: true}
		profile := &models.MemberProfile{ID: 5, UserID: 1}
		svc := NewAuthService(newFakeAuthRepo(user), newFakeMemberRepo(profile), &fakeStaffRepo{}, nil, nil)

		resp, err := svc.GetProfile(1)
		if err != nil {
			t.Fatalf("GetProfile failed: %v", err)
		}
		if resp.MemberProfile == nil || resp.MemberProfile.ID != 5 {
			t.Errorf("unexpected member profile: %+v", resp.MemberProfile)
		}
		if resp.StaffProfile != nil {
			t.Error("member response must not carry a staff profile")
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		svc := NewAuthService(newFakeAuthRepo(), newFakeMemberRepo(), &fakeStaffRepo{}, nil, nil)
		if _, err := svc.GetProfile(99); !errors.Is(err, ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})
}
