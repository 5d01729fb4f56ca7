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

const defaultStaffPosition = "Staff"

// EnsureStaffAccount creates the configured staff login on startup so a
// fresh deployment has an account that can approve registrations. An
// existing account with the same email is left untouched.
func EnsureStaffAccount(db *sql.DB, authRepo repositories.AuthRepository, staffRepo repositories.StaffRepository, email, password, firstName, lastName string) error {
	if !utils.IsValidEmail(email) {
		return fmt.Errorf("%w: invalid staff email address", ErrValidation)
	}
	if !utils.IsStrongPassword(password) {
		return fmt.Errorf("%w: staff password must be at least 8 characters and contain a letter and a digit", ErrValidation)
	}

	_, err := authRepo.FindUserByEmail(email)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrNotFound):
	default:
		return fmt.Errorf("failed to check for staff account: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	if err := createStaffAccount(tx, authRepo, staffRepo, email, password, firstName, lastName); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit staff account: %w", err)
	}
	return nil
}

// createStaffAccount writes the active staff user and its staff profile.
func createStaffAccount(executor repositories.SQLExecutor, authRepo repositories.AuthRepository, staffRepo repositories.StaffRepository, email, password, firstName, lastName string) error {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash staff password: %w", err)
	}

	user := &models.User{
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		IsActive:  true,
		IsStaff:   true,
	}
	if _, err := authRepo.CreateUser(executor, user, string(hashedBytes)); err != nil {
		// Another instance won the startup race; the account exists.
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil
		}
		return fmt.Errorf("failed to create staff user: %w", err)
	}

	position := defaultStaffPosition
	profile := &models.StaffProfile{UserID: user.ID, Position: &position}
	if _, err := staffRepo.CreateStaffProfile(executor, profile); err != nil {
		return fmt.Errorf("failed to create staff profile: %w", err)
	}
	return nil
}
