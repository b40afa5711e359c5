package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/iliyamo/photo-feed/internal/model"
	"github.com/iliyamo/photo-feed/internal/utils"
)

type UserRepo struct{ DB *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{DB: db} }

// Create hashes the password and inserts a new user. The email unique
// index is the authority on duplicates; 1062 maps to ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, name, email, password string, profilePic *string, cost int) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return model.User{}, err
	}
	u := model.User{
		Name:       name,
		Email:      email,
		Password:   hash,
		ProfilePic: profilePic,
	}
	if err := r.DB.WithContext(ctx).Create(&u).Error; err != nil {
		if isDuplicate(err) {
			return model.User{}, ErrEmailExists
		}
		return model.User{}, err
	}
	return u, nil
}

// GetByEmail fetches an active user by normalized email. Deleted and
// absent accounts both return ErrNotFound.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.User
	err := r.DB.WithContext(ctx).
		Where("email = ? AND is_deleted = ?", email, false).
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// GetByID fetches an active user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// IsActive reports whether the account exists and is not soft deleted.
// The auth middleware calls this on every authenticated request; the
// result is never cached.
func (r *UserRepo) IsActive(ctx context.Context, id uint64) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Count(&n).Error
	return n > 0, err
}

// SoftDeleteWithPosts marks the user deleted and cascades to every post
// they own, inside one transaction so a crash cannot leave the cascade
// half applied. Likes and comments stay physically intact; they become
// invisible transitively through read-time filtering.
func (r *UserRepo) SoftDeleteWithPosts(ctx context.Context, id uint64) error {
	now := time.Now().UTC()
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.User{}).
			Where("id = ? AND is_deleted = ?", id, false).
			Updates(map[string]any{"is_deleted": true, "deleted_at": now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Model(&model.Post{}).
			Where("user_id = ? AND is_deleted = ?", id, false).
			Updates(map[string]any{"is_deleted": true, "deleted_at": now}).Error
	})
}
