package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a registered account. PasswordHash holds a bcrypt hash, never the
// plaintext. SessionToken is the most recently issued session token; it may
// be expired, expiry is checked on use rather than stored. Sponsor is the
// username of the inviter for accounts created via an invite code; it is a
// weak reference and is not re-validated after registration.
type User struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Username     string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"type:varchar(100);not null" json:"password"`
	SessionToken string    `gorm:"type:varchar(1024)" json:"token"`
	Sponsor      string    `gorm:"type:varchar(100);index" json:"sponsor,omitempty"`
	CreatedAt    time.Time `json:"created"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// Profile is the public projection of a user record. It deliberately has no
// password or token fields at all, so they cannot leak through serialization.
type Profile struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	Sponsor  string    `json:"sponsor,omitempty"`
	Created  time.Time `json:"created"`
}

func (u *User) Profile() Profile {
	return Profile{
		ID:       u.ID,
		Username: u.Username,
		Sponsor:  u.Sponsor,
		Created:  u.CreatedAt,
	}
}
