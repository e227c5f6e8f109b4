package entity

import (
	"time"
)

// Base is embedded by every table keyed by a snowflake id. Snowflake ids grow
// with creation time, so ordering by id is ordering by insertion.
type Base struct {
	ID        int64 `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
