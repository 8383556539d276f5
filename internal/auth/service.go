package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"wastex-backend/internal/models"
	"wastex-backend/internal/pkg/validation"
)

type Service struct {
	DB *gorm.DB
}

// RegisterInput for account creation.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      string
	IDNumber  string
}

// Register creates a buyer or seller account. Admin registration is refused
// outright; admins are seeded.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if in.Role == models.RoleAdmin {
		return nil, ErrAdminRegistration
	}
	if in.Role != models.RoleBuyer && in.Role != models.RoleSeller {
		return nil, ErrInvalidRole
	}
	if !validation.IsValidEmail(in.Email) {
		return nil, ErrInvalidEmail
	}
	if !validation.IsValidPassword(in.Password) {
		return nil, ErrWeakPassword
	}
	if !validation.IsValidName(in.FirstName) {
		return nil, ErrInvalidName
	}

	var existing models.User
	err := s.DB.WithContext(ctx).Where("email = ?", in.Email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Email:        in.Email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         in.Role,
		IDNumber:     in.IDNumber,
	}
	if err := s.DB.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and the blocked flag. Lookup failure and a bad
// password produce the same error.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, ErrEmailPasswordRequired
	}
	var u models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if u.IsBlocked {
		return nil, ErrAccountBlocked
	}
	return &u, nil
}
