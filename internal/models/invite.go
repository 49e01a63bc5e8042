package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Invite is a referral credential. Code is a signed token and doubles as the
// invite's lookup key. Invites are never mutated after creation and are only
// removed when their sponsor's account is deleted; redeeming one does not
// consume it.
type Invite struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Code      string    `gorm:"type:varchar(1024);uniqueIndex;not null" json:"invite"`
	Sponsor   string    `gorm:"type:varchar(100);index;not null" json:"sponsor"`
	CreatedAt time.Time `json:"created"`
}

func (i *Invite) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return nil
}
