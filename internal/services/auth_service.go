package services

import (
	"database/sql"
	"errors"
	"fmt"

	"fitnesshub_backend/internal/models"
	"fitnesshub_backend/internal/repositories"
	"fitnesshub_backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrUserNotFound       = errors.New("no account found for this email")
	ErrInvalidCredentials = errors.New("incorrect password")
	ErrAccountInactive    = errors.New("account is awaiting activation by staff")
	ErrRoleMismatch       = errors.New("account does not match the selected role")
	ErrEmailExists        = errors.New("an account with this email already exists")
	ErrTokenGeneration    = errors.New("failed to generate token")
)

// Login roles accepted by the login endpoint.
const (
	RoleMember = "member"
	RoleStaff  = "staff"
)

// --- Data Transfer Objects (DTOs) ---

type RegisterRequest struct {
	Email                  string `json:"email" binding:"required"`
	Password               string `json:"password" binding:"required"`
	ConfirmPassword        string `json:"confirm_password" binding:"required"`
	FirstName              string `json:"first_name" binding:"required"`
	LastName               string `json:"last_name" binding:"required"`
	ContactNumber          string `json:"contact_number" binding:"required"`
	EmergencyContactName   string `json:"emergency_contact_name" binding:"required"`
	EmergencyContactNumber string `json:"emergency_contact_number" binding:"required"`
	MedicalConditions      string `json:"medical_conditions"`
	FitnessGoals           string `json:"fitness_goals"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

type AuthResponse struct {
	User        *models.User `json:"user"`
	AccessToken string       `json:"access_token"`
}

// ProfileResponse is the /auth/me payload. MemberProfile is nil for staff.
type ProfileResponse struct {
	User          *models.User          `json:"user"`
	MemberProfile *models.MemberProfile `json:"member_profile,omitempty"`
	StaffProfile  *models.StaffProfile  `json:"staff_profile,omitempty"`
}

// --- AuthService Interface ---
type AuthService interface {
	Register(req RegisterRequest) (*models.User, error)
	Login(req LoginRequest) (*AuthResponse, error)
	ChangePassword(userID int64, req ChangePasswordRequest) error
	GetProfile(userID int64) (*ProfileResponse, error)
}

type authService struct {
	authRepo            repositories.AuthRepository
	memberRepo          repositories.MemberRepository
	staffRepo           repositories.StaffRepository
	notificationService NotificationService
	db                  *sql.DB
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(
	ar repositories.AuthRepository,
	mr repositories.MemberRepository,
	sr repositories.StaffRepository,
	ns NotificationService,
	db *sql.DB,
) AuthService {
	return &authService{
		authRepo:            ar,
		memberRepo:          mr,
		staffRepo:           sr,
		notificationService: ns,
		db:                  db,
	}
}

func validateRegistration(req RegisterRequest) error {
	if !utils.IsValidPersonName(req.FirstName) {
		return fmt.Errorf("%w: first name may only contain letters, spaces, apostrophes, hyphens and periods", ErrValidation)
	}
	if !utils.IsValidPersonName(req.LastName) {
		return fmt.Errorf("%w: last name may only contain letters, spaces, apostrophes, hyphens and periods", ErrValidation)
	}
	if !utils.IsValidPersonName(req.EmergencyContactName) {
		return fmt.Errorf("%w: emergency contact name may only contain letters, spaces, apostrophes, hyphens and periods", ErrValidation)
	}
	if !utils.IsValidEmail(req.Email) {
		return fmt.Errorf("%w: invalid email address", ErrValidation)
	}
	if !utils.IsValidContactNumber(req.ContactNumber) {
		return fmt.Errorf("%w: contact number must contain 10 to 15 digits", ErrValidation)
	}
	if !utils.IsValidContactNumber(req.EmergencyContactNumber) {
		return fmt.Errorf("%w: emergency contact number must contain 10 to 15 digits", ErrValidation)
	}
	if !utils.IsStrongPassword(req.Password) {
		return fmt.Errorf("%w: password must be at least 8 characters and contain a letter and a digit", ErrValidation)
	}
	if req.Password != req.ConfirmPassword {
		return fmt.Errorf("%w: passwords do not match", ErrValidation)
	}
	return nil
}

// Register creates a pending member account, or overwrites a previously
// rejected one with the fresh submission.
func (s *authService) Register(req RegisterRequest) (*models.User, error) {
	if err := validateRegistration(req); err != nil {
		return nil, err
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	passwordHash := string(hashedBytes)

	user := &models.User{
		Email:                  req.Email,
		FirstName:              req.FirstName,
		LastName:               req.LastName,
		ContactNumber:          &req.ContactNumber,
		EmergencyContactName:   &req.EmergencyContactName,
		EmergencyContactNumber: &req.EmergencyContactNumber,
		MedicalConditions:      utils.NewNullString(req.MedicalConditions),
		FitnessGoals:           utils.NewNullString(req.FitnessGoals),
	}

	existing, err := s.authRepo.FindUserByEmail(req.Email)
	switch {
	case err == nil:
		return s.registerOverRejected(existing, user, passwordHash)
	case errors.Is(err, repositories.ErrNotFound):
		return s.registerNew(user, passwordHash)
	default:
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}
}

func (s *authService) registerNew(user *models.User, passwordHash string) (*models.User, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := s.authRepo.CreateUser(tx, user, passwordHash); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	profile := &models.MemberProfile{UserID: user.ID}
	if _, err := s.memberRepo.CreateProfile(tx, profile); err != nil {
		return nil, fmt.Errorf("failed to create member profile: %w", err)
	}

	if err := s.notificationService.NotifyStaffOfRegistration(tx, user.FullName(), profile.ID, RegistrationNew); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit registration: %w", err)
	}
	return user, nil
}

// registerOverRejected allows a rejected applicant to submit again. The user
// row keeps its ID; everything else is replaced and the profile returns to
// pending.
func (s *authService) registerOverRejected(existing *models.User, user *models.User, passwordHash string) (*models.User, error) {
	if existing.IsStaff {
		return nil, ErrEmailExists
	}
	profile, err := s.memberRepo.GetProfileByUserID(existing.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load member profile: %w", err)
	}
	if profile.ActivationStatus != models.ActivationRejected {
		return nil, ErrEmailExists
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	user.ID = existing.ID
	user.Email = existing.Email
	if err := s.authRepo.OverwriteRegistration(tx, user, passwordHash); err != nil {
		return nil, fmt.Errorf("failed to overwrite registration: %w", err)
	}
	if err := s.memberRepo.SetActivationStatus(tx, profile.ID, models.ActivationPending); err != nil {
		return nil, fmt.Errorf("failed to reset activation status: %w", err)
	}

	if err := s.notificationService.NotifyStaffOfRegistration(tx, user.FullName(), profile.ID, RegistrationReapplication); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit re-registration: %w", err)
	}
	return user, nil
}

// Login checks credentials, the active flag and the requested role, and
// issues an access token.
func (s *authService) Login(req LoginRequest) (*AuthResponse, error) {
	if req.Role != RoleMember && req.Role != RoleStaff {
		return nil, fmt.Errorf("%w: role must be %q or %q", ErrValidation, RoleMember, RoleStaff)
	}

	user, err := s.authRepo.FindUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("login attempt failed: %w", err)
	}

	hash, err := s.authRepo.GetPasswordHash(user.ID)
	if err != nil {
		return nil, fmt.Errorf("login attempt failed: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	if (req.Role == RoleStaff) != user.IsStaff {
		return nil, ErrRoleMismatch
	}
	if !user.IsActive {
		return nil, ErrAccountInactive
	}

	accessToken, err := utils.GenerateAccessToken(user.ID, user.Email, user.IsStaff)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}

	return &AuthResponse{User: user, AccessToken: accessToken}, nil
}

// ChangePassword verifies the current password before storing the new one.
func (s *authService) ChangePassword(userID int64, req ChangePasswordRequest) error {
	hash, err := s.authRepo.GetPasswordHash(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to load credentials: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.CurrentPassword)) != nil {
		return ErrInvalidCredentials
	}
	if !utils.IsStrongPassword(req.NewPassword) {
		return fmt.Errorf("%w: password must be at least 8 characters and contain a letter and a digit", ErrValidation)
	}
	if req.NewPassword != req.ConfirmPassword {
		return fmt.Errorf("%w: passwords do not match", ErrValidation)
	}

	newHashBytes, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.authRepo.UpdatePassword(s.db, userID, string(newHashBytes)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// GetProfile returns the caller's identity plus their role profile.
func (s *authService) GetProfile(userID int64) (*ProfileResponse, error) {
	user, err := s.authRepo.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	resp := &ProfileResponse{User: user}
	if user.IsStaff {
		staffProfile, err := s.staffRepo.GetStaffProfileByUserID(userID)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("failed to load staff profile: %w", err)
		}
		resp.StaffProfile = staffProfile
		return resp, nil
	}

	memberProfile, err := s.memberRepo.GetProfileByUserID(userID)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to load member profile: %w", err)
	}
	resp.MemberProfile = memberProfile
	return resp, nil
}
