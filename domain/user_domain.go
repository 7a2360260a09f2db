package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessRegister    = "user registered successfully"
	MessageSuccessLogin       = "login successful"
	MessageSuccessLogout      = "logout successful"
	MessageSuccessVerifyEmail = "email verified successfully"
	MessageSuccessGetMe       = "success get current user"

	MessageFailedRegister    = "failed to register user"
	MessageFailedLogin       = "failed to login"
	MessageFailedLogout      = "failed to logout"
	MessageFailedVerifyEmail = "failed to verify email"

	ErrEmailAlreadyRegistered  = errors.New("email already registered")
	ErrCredentialsInvalid      = errors.New("invalid email or password")
	ErrVerificationInvalid     = errors.New("verification token invalid or expired")
	ErrCredentialAccountBroken = errors.New("credential account has no password set")
)

type (
	RegisterRequest struct {
		Name     string `json:"name" form:"name" validate:"required"`
		Email    string `json:"email" form:"email" validate:"required,email"`
		Password string `json:"password" form:"password" validate:"required,min=8"`
	}

	LoginRequest struct {
		Email    string `json:"email" form:"email" validate:"required,email"`
		Password string `json:"password" form:"password" validate:"required"`
	}

	SessionUser struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}

	LoginResponse struct {
		Token     string      `json:"token"`
		ExpiresAt time.Time   `json:"expires_at"`
		User      SessionUser `json:"user"`
	}
)
