package model

import "time"

// LogEntry is an append-only application log record. Writes are
// best-effort: a failed insert is reported on the console and otherwise
// swallowed, so this table never affects request handling.
type LogEntry struct {
	ID        uint64    `gorm:"primaryKey"`
	Level     string    `gorm:"size:50;not null"`
	Message   string    `gorm:"type:text;not null"`
	Metadata  []byte    `gorm:"type:json"`
	Timestamp time.Time `gorm:"not null"`
}
