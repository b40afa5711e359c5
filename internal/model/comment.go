package model

import "time"

// Comment is a user comment on a post, capped at 500 characters after
// trimming. Comments are soft deleted; deleted ones are excluded from
// listings and from the per-post comment count.
type Comment struct {
	ID        uint64     `gorm:"primaryKey"`
	PostID    uint64     `gorm:"not null;index"`
	UserID    uint64     `gorm:"not null;index"`
	Content   string     `gorm:"size:500;not null"`
	CreatedAt time.Time  `gorm:"not null"`
	UpdatedAt time.Time  `gorm:"not null"`
	IsDeleted bool       `gorm:"not null;default:false"`
	DeletedAt *time.Time `gorm:""`
}
