package model

import "time"

// Like is a junction row between a user and a post. The composite
// primary key guarantees at most one like per (user, post) pair; the
// uniqueness constraint is the backstop for concurrent toggles. Likes
// are hard deleted, never soft deleted: presence means liked.
type Like struct {
	UserID    uint64    `gorm:"primaryKey;autoIncrement:false"`
	PostID    uint64    `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time `gorm:"not null"`
}
