package models

import "time"

// Session maps an opaque cookie token to a user. Rows are deleted on
// logout or lazily when an expired session is read.
type Session struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index" json:"userId"`
	ExpiresAt time.Time `gorm:"index" json:"expiresAt"`
}
