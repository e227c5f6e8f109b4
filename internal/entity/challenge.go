package entity

import (
	"time"

	"github.com/docthru/backend/pkg/enum"
)

type ChallengeCategory string

var (
	CategoryNextJS   = enum.New(ChallengeCategory("Next.js"))
	CategoryAPI      = enum.New(ChallengeCategory("API"))
	CategoryCareer   = enum.New(ChallengeCategory("Career"))
	CategoryModernJS = enum.New(ChallengeCategory("Modern JS"))
	CategoryWeb      = enum.New(ChallengeCategory("Web"))
)

type DocType string

var (
	DocTypeOfficial = enum.New(DocType("official"))
	DocTypeBlog     = enum.New(DocType("blog"))
)

type Challenge struct {
	Base

	AuthorID int64 `gorm:"index"`
	Author   User  `gorm:"foreignKey:AuthorID"`

	Title          string
	Description    string            `gorm:"type:text"`
	Category       ChallengeCategory `gorm:"type:varchar(32);index"`
	DocType        DocType           `gorm:"type:varchar(16);index"`
	OriginalURL    string
	Deadline       time.Time `gorm:"index"`
	MaxParticipant int
	IsClosed       bool `gorm:"index"`

	Participants []Participant `gorm:"foreignKey:ChallengeID"`
	Works        []Work        `gorm:"foreignKey:ChallengeID"`
}
