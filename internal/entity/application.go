package entity

import (
	"time"

	"github.com/docthru/backend/pkg/enum"
)

type ApplicationStatus string

var (
	ApplicationPending  = enum.New(ApplicationStatus("PENDING"))
	ApplicationAccepted = enum.New(ApplicationStatus("ACCEPTED"))
	ApplicationRejected = enum.New(ApplicationStatus("REJECTED"))
	ApplicationDeleted  = enum.New(ApplicationStatus("DELETED"))
)

// InvalidatingStatuses stamp Application.InvalidatedAt when set by a review.
var InvalidatingStatuses = []ApplicationStatus{ApplicationRejected, ApplicationDeleted}

type Application struct {
	Base

	AuthorID int64 `gorm:"uniqueIndex:idx_application_author_challenge"`
	Author   User  `gorm:"foreignKey:AuthorID"`

	ChallengeID int64     `gorm:"uniqueIndex:idx_application_author_challenge;index"`
	Challenge   Challenge `gorm:"foreignKey:ChallengeID"`

	AppliedAt     time.Time
	AdminStatus   ApplicationStatus `gorm:"type:varchar(16);index"`
	InvalidatedAt *time.Time
	Reason        *string
}
