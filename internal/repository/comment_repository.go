package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/iliyamo/photo-feed/internal/model"
)

type CommentRepo struct{ DB *gorm.DB }

func NewCommentRepo(db *gorm.DB) *CommentRepo { return &CommentRepo{DB: db} }

// CommentRow is a comment joined with its author for listings.
type CommentRow struct {
	ID             uint64    `json:"id"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"createdAt"`
	UserID         uint64    `json:"userId"`
	UserName       string    `json:"userName"`
	UserProfilePic *string   `json:"userProfilePic"`
}

// Create inserts a comment and returns it joined with the author's
// public fields for the response.
func (r *CommentRepo) Create(ctx context.Context, postID, userID uint64, content string) (CommentRow, error) {
	cm := model.Comment{PostID: postID, UserID: userID, Content: content}
	if err := r.DB.WithContext(ctx).Create(&cm).Error; err != nil {
		return CommentRow{}, err
	}

	row := CommentRow{
		ID:        cm.ID,
		Content:   cm.Content,
		CreatedAt: cm.CreatedAt,
		UserID:    userID,
	}
	var author model.User
	if err := r.DB.WithContext(ctx).
		Select("name, profile_pic").
		Where("id = ?", userID).
		First(&author).Error; err != nil {
		return CommentRow{}, err
	}
	row.UserName = author.Name
	row.UserProfilePic = author.ProfilePic
	return row, nil
}

// List returns one page of a post's visible comments, newest first,
// plus the total count of visible comments on that post.
func (r *CommentRepo) List(ctx context.Context, postID uint64, page, limit int) ([]CommentRow, int64, error) {
	filter := r.DB.WithContext(ctx).
		Model(&model.Comment{}).
		Where("comments.post_id = ? AND comments.is_deleted = ?", postID, false)

	var total int64
	if err := filter.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []CommentRow
	err := r.DB.WithContext(ctx).
		Table("comments").
		Select(`comments.id, comments.content, comments.created_at, comments.user_id,
users.name AS user_name, users.profile_pic AS user_profile_pic`).
		Joins("LEFT JOIN users ON users.id = comments.user_id").
		Where("comments.post_id = ? AND comments.is_deleted = ?", postID, false).
		Order("comments.created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Scan(&rows).Error
	return rows, total, err
}

// SoftDelete marks a comment deleted when authorID wrote it. A comment
// owned by someone else reports ErrNotFound, not a permission error.
func (r *CommentRepo) SoftDelete(ctx context.Context, commentID, authorID uint64) error {
	res := r.DB.WithContext(ctx).
		Model(&model.Comment{}).
		Where("id = ? AND user_id = ? AND is_deleted = ?", commentID, authorID, false).
		Updates(map[string]any{"is_deleted": true, "deleted_at": time.Now().UTC()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
