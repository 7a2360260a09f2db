package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"recipe-box/domain"
	"recipe-box/entities"
	"recipe-box/internal/utils"
	"recipe-box/internal/utils/mailing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	ProviderCredential = "credential"

	sessionDuration      = 7 * 24 * time.Hour
	verificationDuration = 24 * time.Hour
)

type (
	// Mailer abstracts outbound mail so tests can swap in a fake.
	Mailer interface {
		SendMail(toEmail string, subject string, body string) error
	}

	AuthService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.SessionUser, error)
		Login(ctx context.Context, req domain.LoginRequest, ipAddress, userAgent string) (domain.LoginResponse, error)
		Logout(ctx context.Context, token string) error
		GetSession(ctx context.Context, token string) (domain.SessionUser, error)
		VerifyEmail(ctx context.Context, token string) error
	}

	authService struct {
		authRepository AuthRepository
		mailer         Mailer
	}

	smtpMailer struct{}
)

func (smtpMailer) SendMail(toEmail string, subject string, body string) error {
	return mailing.SendMail(toEmail, subject, body)
}

func NewSMTPMailer() Mailer {
	return smtpMailer{}
}

func NewAuthService(authRepository AuthRepository, mailer Mailer) AuthService {
	return &authService{
		authRepository: authRepository,
		mailer:         mailer,
	}
}

func (s *authService) Register(ctx context.Context, req domain.RegisterRequest) (domain.SessionUser, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.authRepository.GetUserByEmail(ctx, email); err == nil {
		return domain.SessionUser{}, domain.ErrEmailAlreadyRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.SessionUser{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.SessionUser{}, err
	}
	hashed := string(hash)

	user := &entities.User{
		ID:    uuid.New(),
		Name:  strings.TrimSpace(req.Name),
		Email: email,
	}
	account := &entities.Account{
		ID:         uuid.New(),
		AccountID:  email,
		ProviderID: ProviderCredential,
		UserID:     user.ID,
		Password:   &hashed,
	}

	if err := s.authRepository.CreateUserWithAccount(ctx, user, account); err != nil {
		return domain.SessionUser{}, err
	}

	// Verification mail is best effort; registration succeeds without it.
	if token, err := randomToken(); err == nil {
		verification := &entities.Verification{
			ID:         uuid.New(),
			Identifier: email,
			Value:      token,
			ExpiresAt:  time.Now().Add(verificationDuration),
		}
		if err := s.authRepository.CreateVerification(ctx, verification); err == nil {
			link := fmt.Sprintf("%s/api/v1/users/verify?token=%s", utils.GetConfig("APP_URL"), token)
			body := fmt.Sprintf("<p>Hi %s,</p><p>Confirm your email address by opening <a href=%q>this link</a>.</p>", user.Name, link)
			_ = s.mailer.SendMail(email, "Verify your email", body)
		}
	}

	return domain.SessionUser{
		ID:    user.ID.String(),
		Name:  user.Name,
		Email: user.Email,
	}, nil
}

func (s *authService) Login(ctx context.Context, req domain.LoginRequest, ipAddress, userAgent string) (domain.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.authRepository.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, domain.ErrCredentialsInvalid
		}
		return domain.LoginResponse{}, err
	}

	account, err := s.authRepository.GetCredentialAccount(ctx, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, domain.ErrCredentialsInvalid
		}
		return domain.LoginResponse{}, err
	}
	if account.Password == nil {
		return domain.LoginResponse{}, domain.ErrCredentialAccountBroken
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*account.Password), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrCredentialsInvalid
	}

	token, err := randomToken()
	if err != nil {
		return domain.LoginResponse{}, err
	}

	session := &entities.Session{
		ID:        uuid.New(),
		Token:     token,
		ExpiresAt: time.Now().Add(sessionDuration),
		IPAddress: ipAddress,
		UserAgent: userAgent,
		UserID:    user.ID,
	}
	if err := s.authRepository.CreateSession(ctx, session); err != nil {
		return domain.LoginResponse{}, err
	}

	return domain.LoginResponse{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		User: domain.SessionUser{
			ID:    user.ID.String(),
			Name:  user.Name,
			Email: user.Email,
		},
	}, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	return s.authRepository.DeleteSession(ctx, token)
}

// GetSession resolves a session token to its user. Expired sessions are
// removed and reported as absent.
func (s *authService) GetSession(ctx context.Context, token string) (domain.SessionUser, error) {
	if token == "" {
		return domain.SessionUser{}, domain.ErrSessionNotFound
	}

	session, err := s.authRepository.GetSessionByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.SessionUser{}, domain.ErrSessionNotFound
		}
		return domain.SessionUser{}, err
	}

	if time.Now().After(session.ExpiresAt) {
		_ = s.authRepository.DeleteSession(ctx, token)
		return domain.SessionUser{}, domain.ErrSessionNotFound
	}
	if session.User == nil {
		return domain.SessionUser{}, domain.ErrSessionNotFound
	}

	return domain.SessionUser{
		ID:    session.User.ID.String(),
		Name:  session.User.Name,
		Email: session.User.Email,
	}, nil
}

func (s *authService) VerifyEmail(ctx context.Context, token string) error {
	verification, err := s.authRepository.ConsumeVerification(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrVerificationInvalid
		}
		return err
	}
	if time.Now().After(verification.ExpiresAt) {
		return domain.ErrVerificationInvalid
	}

	user, err := s.authRepository.GetUserByEmail(ctx, verification.Identifier)
	if err != nil {
		return domain.ErrVerificationInvalid
	}

	return s.authRepository.MarkEmailVerified(ctx, user.ID)
}

func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
