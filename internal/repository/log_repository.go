package repository

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/iliyamo/photo-feed/internal/model"
)

type LogRepo struct{ DB *gorm.DB }

func NewLogRepo(db *gorm.DB) *LogRepo { return &LogRepo{DB: db} }

// Append inserts one log entry. The logs table is append-only; nothing
// in the application reads it back.
func (r *LogRepo) Append(ctx context.Context, level, message string, metadata map[string]any) error {
	var meta []byte
	if len(metadata) > 0 {
		b, err := json.Marshal(metadata)
		if err != nil {
			return err
		}
		meta = b
	}
	entry := model.LogEntry{
		Level:     level,
		Message:   message,
		Metadata:  meta,
		Timestamp: time.Now().UTC(),
	}
	return r.DB.WithContext(ctx).Create(&entry).Error
}
