package entity

import (
	"time"
)

type Participant struct {
	CreatedAt time.Time

	UserID int64 `gorm:"primaryKey;autoIncrement:false"`
	User   User  `gorm:"foreignKey:UserID"`

	ChallengeID int64 `gorm:"primaryKey;autoIncrement:false;index"`
}
