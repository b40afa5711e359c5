package model

import "time"

// Post represents an image post in the `posts` table. The image path is
// required at creation; the description is an optional caption capped at
// 500 characters. Posts are soft deleted and filtered out of every read
// path once the flag is set.
type Post struct {
	ID          uint64     `gorm:"primaryKey"`
	UserID      uint64     `gorm:"not null;index"`
	Description *string    `gorm:"size:500"`
	Image       string     `gorm:"size:255;not null"`
	CreatedAt   time.Time  `gorm:"not null;index"`
	UpdatedAt   time.Time  `gorm:"not null"`
	IsDeleted   bool       `gorm:"not null;default:false"`
	DeletedAt   *time.Time `gorm:""`

	User User `gorm:"foreignKey:UserID"`
}
