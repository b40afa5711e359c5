package model

import "time"

// User represents a registered account as stored in the `users` table.
// The password column only ever holds a bcrypt hash. Soft deletion is
// modelled with an explicit flag plus timestamp so the application layer
// can filter and cascade itself; the email unique index spans deleted
// rows as well, which blocks re-registration of a deleted account's
// address.
type User struct {
	ID         uint64     `gorm:"primaryKey"`
	Name       string     `gorm:"size:255;not null"`
	Email      string     `gorm:"size:255;not null;uniqueIndex"`
	Password   string     `gorm:"size:255;not null"`
	ProfilePic *string    `gorm:"size:255"`
	CreatedAt  time.Time  `gorm:"not null"`
	UpdatedAt  time.Time  `gorm:"not null"`
	IsDeleted  bool       `gorm:"not null;default:false"`
	DeletedAt  *time.Time `gorm:""`
}
