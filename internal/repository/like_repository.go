package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/iliyamo/photo-feed/internal/model"
)

type LikeRepo struct{ DB *gorm.DB }

func NewLikeRepo(db *gorm.DB) *LikeRepo { return &LikeRepo{DB: db} }

// Toggle flips the like state for (userID, postID) and reports the new
// state. The delete-then-insert runs in one transaction; when two
// concurrent toggles race, the composite primary key makes the second
// insert fail with a duplicate error, which is absorbed as "liked"
// instead of surfacing a hard failure.
func (r *LikeRepo) Toggle(ctx context.Context, userID, postID uint64) (bool, error) {
	var liked bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND post_id = ?", userID, postID).
			Delete(&model.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			liked = false
			return nil
		}
		if err := tx.Create(&model.Like{UserID: userID, PostID: postID}).Error; err != nil {
			if isDuplicate(err) {
				liked = true
				return nil
			}
			return err
		}
		liked = true
		return nil
	})
	return liked, err
}

// Count returns the authoritative post-wide like count, re-read after a
// mutation rather than incremented locally.
func (r *LikeRepo) Count(ctx context.Context, postID uint64) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Model(&model.Like{}).
		Where("post_id = ?", postID).
		Count(&n).Error
	return n, err
}
