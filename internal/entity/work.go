package entity

type Work struct {
	Base

	ChallengeID int64     `gorm:"index"`
	Challenge   Challenge `gorm:"foreignKey:ChallengeID"`

	AuthorID int64  `gorm:"index"`
	Content  string `gorm:"type:text"`
}

type Feedback struct {
	Base

	WorkID int64 `gorm:"index"`
	Work   Work  `gorm:"foreignKey:WorkID"`

	AuthorID int64
	Content  string `gorm:"type:text"`
}
