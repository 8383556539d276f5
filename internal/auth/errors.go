package auth

import "errors"

var (
	ErrEmailPasswordRequired = errors.New("Email and password are required")
	ErrInvalidCredentials    = errors.New("Invalid credentials")
	ErrAccountBlocked        = errors.New("Account blocked")
	ErrAdminRegistration     = errors.New("Admin accounts cannot be created publicly")
	ErrEmailTaken            = errors.New("Email already registered")
	ErrInvalidEmail          = errors.New("A valid email is required")
	ErrWeakPassword          = errors.New("Password must be at least 8 characters with a letter, number and special character")
	ErrInvalidName           = errors.New("A valid first name is required")
	ErrInvalidRole           = errors.New("Role must be buyer or seller")
	ErrNotAuthenticated      = errors.New("Not authenticated")
)
