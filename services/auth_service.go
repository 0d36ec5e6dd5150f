package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"gorm.io/gorm"

	"photostudio-server/models"
	"photostudio-server/utils"
)

var (
	// ErrInvalidCredentials is returned when email or password is wrong
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken is returned when registering an email that already exists
	ErrEmailTaken = errors.New("email already registered")
	// ErrUserInactive is returned when the account has been deactivated
	ErrUserInactive = errors.New("user account is deactivated")
)

// ProfileUpdate carries the fields of a partial profile merge. Nil fields
// are left untouched.
type ProfileUpdate struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
}

// Authenticator is the identity collaborator behind login, registration and
// profile updates. The gorm implementation is used in production; tests
// construct one over their own database.
type Authenticator interface {
	Register(ctx context.Context, email, password, fullName string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uint, update ProfileUpdate) (*models.User, error)
}

// GormAuthenticator verifies credentials against the users table
type GormAuthenticator struct {
	db *gorm.DB
}

func NewGormAuthenticator(db *gorm.DB) *GormAuthenticator {
	return &GormAuthenticator{db: db}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a client account
func (a *GormAuthenticator) Register(ctx context.Context, email, password, fullName string) (*models.User, error) {
	email = normalizeEmail(email)

	var existing models.User
	if err := a.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		FullName:     fullName,
		PasswordHash: hash,
		Role:         models.RoleClient,
		IsActive:     true,
	}
	if err := a.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}

	log.Printf("✅ Registered user %d (%s)", user.ID, user.Email)
	return user, nil
}

// Login verifies the password and returns the user
func (a *GormAuthenticator) Login(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := a.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	return &user, nil
}

// UpdateProfile merges the given fields into the current user
func (a *GormAuthenticator) UpdateProfile(ctx context.Context, userID uint, update ProfileUpdate) (*models.User, error) {
	var user models.User
	err := a.db.WithContext(ctx).First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if update.FullName != nil && strings.TrimSpace(*update.FullName) != "" {
		updates["full_name"] = strings.TrimSpace(*update.FullName)
	}
	if update.Email != nil && strings.TrimSpace(*update.Email) != "" {
		email := normalizeEmail(*update.Email)
		if email != user.Email {
			var existing models.User
			if err := a.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error; err == nil {
				return nil, ErrEmailTaken
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			updates["email"] = email
		}
	}

	if len(updates) > 0 {
		if err := a.db.WithContext(ctx).Model(&user).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return &user, nil
}
