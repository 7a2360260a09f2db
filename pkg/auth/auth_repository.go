package auth

import (
	"context"

	"recipe-box/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	AuthRepository interface {
		CreateUserWithAccount(ctx context.Context, user *entities.User, account *entities.Account) error
		GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
		GetCredentialAccount(ctx context.Context, userID uuid.UUID) (*entities.Account, error)
		CreateSession(ctx context.Context, session *entities.Session) error
		GetSessionByToken(ctx context.Context, token string) (*entities.Session, error)
		DeleteSession(ctx context.Context, token string) error
		CreateVerification(ctx context.Context, verification *entities.Verification) error
		ConsumeVerification(ctx context.Context, value string) (*entities.Verification, error)
		MarkEmailVerified(ctx context.Context, userID uuid.UUID) error
	}

	authRepository struct {
		db *gorm.DB
	}
)

func NewAuthRepository(db *gorm.DB) AuthRepository {
	return &authRepository{db: db}
}

func (r *authRepository) CreateUserWithAccount(ctx context.Context, user *entities.User, account *entities.Account) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return tx.Create(account).Error
	})
}

func (r *authRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *authRepository) GetCredentialAccount(ctx context.Context, userID uuid.UUID) (*entities.Account, error) {
	var account entities.Account
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND provider_id = ?", userID, ProviderCredential).
		First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *authRepository) CreateSession(ctx context.Context, session *entities.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *authRepository) GetSessionByToken(ctx context.Context, token string) (*entities.Session, error) {
	var session entities.Session
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("token = ?", token).
		First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *authRepository) DeleteSession(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Where("token = ?", token).Delete(&entities.Session{}).Error
}

func (r *authRepository) CreateVerification(ctx context.Context, verification *entities.Verification) error {
	return r.db.WithContext(ctx).Create(verification).Error
}

func (r *authRepository) ConsumeVerification(ctx context.Context, value string) (*entities.Verification, error) {
	var verification entities.Verification
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("value = ?", value).First(&verification).Error; err != nil {
			return err
		}
		return tx.Delete(&verification).Error
	})
	if err != nil {
		return nil, err
	}
	return &verification, nil
}

func (r *authRepository) MarkEmailVerified(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("id = ?", userID).
		Update("email_verified", true).Error
}
