package entities

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	Email         string    `gorm:"uniqueIndex;not null" json:"email"`
	EmailVerified bool      `json:"email_verified"`
	Image         *string   `json:"image,omitempty"`

	Recipes  []*Recipe  `gorm:"foreignKey:AuthorID" json:"-"`
	Sessions []*Session `gorm:"foreignKey:UserID" json:"-"`
	Accounts []*Account `gorm:"foreignKey:UserID" json:"-"`
	Timestamp
}

type Session struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Token     string    `gorm:"uniqueIndex;not null" json:"token"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	IPAddress string    `json:"ip_address,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
	UserID    uuid.UUID `gorm:"not null" json:"user_id"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Timestamp
}

type Account struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	AccountID  string    `gorm:"not null" json:"account_id"`
	ProviderID string    `gorm:"not null" json:"provider_id"`
	UserID     uuid.UUID `gorm:"not null" json:"user_id"`
	Password   *string   `json:"-"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Timestamp
}

type Verification struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Identifier string    `gorm:"not null" json:"identifier"`
	Value      string    `gorm:"not null" json:"value"`
	ExpiresAt  time.Time `gorm:"not null" json:"expires_at"`

	Timestamp
}
