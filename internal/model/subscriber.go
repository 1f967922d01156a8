package model

import "time"

// Subscriber records a chat that pressed /start, so digests survive restarts.
type Subscriber struct {
	ID        uint   `gorm:"primaryKey"`
	ChatID    int64  `gorm:"uniqueIndex"`
	UserID    string `gorm:"index"`
	FirstName string
	CreatedAt time.Time
	UpdatedAt time.Time
}
