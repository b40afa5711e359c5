package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/iliyamo/photo-feed/internal/model"
)

type PostRepo struct{ DB *gorm.DB }

func NewPostRepo(db *gorm.DB) *PostRepo { return &PostRepo{DB: db} }

// FeedQuery defines filters and pagination for the post feed.
type FeedQuery struct {
	ViewerID uint64 // whose liked-by-me flag to compute
	Page     int    // 1-based
	Limit    int
	Search   string // case-insensitive substring match on description
}

// PostRow is a feed or detail entry with the engagement values computed
// at query time. Like and comment counts are never denormalized onto the
// posts table.
type PostRow struct {
	ID             uint64    `json:"id"`
	Description    *string   `json:"description"`
	Image          string    `json:"image"`
	CreatedAt      time.Time `json:"createdAt"`
	UserID         uint64    `json:"userId"`
	UserName       string    `json:"userName"`
	UserProfilePic *string   `json:"userProfilePic"`
	LikeCount      int64     `json:"likeCount"`
	CommentCount   int64     `json:"commentCount"`
	LikedByMe      bool      `json:"likedByMe"`
}

// postScan mirrors PostRow for scanning; MySQL returns EXISTS as an
// integer, which database/sql will not convert to bool.
type postScan struct {
	ID             uint64
	Description    *string
	Image          string
	CreatedAt      time.Time
	UserID         uint64
	UserName       string
	UserProfilePic *string
	LikeCount      int64
	CommentCount   int64
	LikedByMe      int64
}

func (s postScan) row() PostRow {
	return PostRow{
		ID:             s.ID,
		Description:    s.Description,
		Image:          s.Image,
		CreatedAt:      s.CreatedAt,
		UserID:         s.UserID,
		UserName:       s.UserName,
		UserProfilePic: s.UserProfilePic,
		LikeCount:      s.LikeCount,
		CommentCount:   s.CommentCount,
		LikedByMe:      s.LikedByMe != 0,
	}
}

const postRowSelect = `p.id, p.description, p.image, p.created_at, p.user_id,
u.name AS user_name, u.profile_pic AS user_profile_pic,
(SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id) AS like_count,
(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id AND c.is_deleted = 0) AS comment_count,
EXISTS(SELECT 1 FROM likes lv WHERE lv.post_id = p.id AND lv.user_id = ?) AS liked_by_me`

// base returns the filtered feed source: non-deleted posts whose owner
// is also non-deleted, optionally narrowed by description search.
func (r *PostRepo) base(ctx context.Context, search string) *gorm.DB {
	q := r.DB.WithContext(ctx).
		Table("posts p").
		Joins("JOIN users u ON u.id = p.user_id AND u.is_deleted = 0").
		Where("p.is_deleted = 0")
	if search != "" {
		q = q.Where("LOWER(p.description) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	return q
}

// Feed returns one page of the feed plus the total count of matching
// posts. Ordering is newest first; posts sharing a creation timestamp
// have no defined relative order across pages.
func (r *PostRepo) Feed(ctx context.Context, q FeedQuery) ([]PostRow, int64, error) {
	var total int64
	if err := r.base(ctx, q.Search).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (q.Page - 1) * q.Limit
	var scans []postScan
	err := r.base(ctx, q.Search).
		Select(postRowSelect, q.ViewerID).
		Order("p.created_at DESC").
		Limit(q.Limit).
		Offset(offset).
		Scan(&scans).Error
	if err != nil {
		return nil, 0, err
	}

	rows := make([]PostRow, 0, len(scans))
	for _, s := range scans {
		rows = append(rows, s.row())
	}
	return rows, total, nil
}

// GetByID fetches a single visible post with its engagement values.
func (r *PostRepo) GetByID(ctx context.Context, postID, viewerID uint64) (PostRow, error) {
	var scans []postScan
	err := r.base(ctx, "").
		Select(postRowSelect, viewerID).
		Where("p.id = ?", postID).
		Limit(1).
		Scan(&scans).Error
	if err != nil {
		return PostRow{}, err
	}
	if len(scans) == 0 {
		return PostRow{}, ErrNotFound
	}
	return scans[0].row(), nil
}

// Exists reports whether the post is present and not soft deleted.
func (r *PostRepo) Exists(ctx context.Context, postID uint64) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ? AND is_deleted = ?", postID, false).
		Count(&n).Error
	return n > 0, err
}

// Create inserts a new post. The image path is required by validation
// before this is reached.
func (r *PostRepo) Create(ctx context.Context, userID uint64, image string, description *string) (model.Post, error) {
	p := model.Post{
		UserID:      userID,
		Image:       image,
		Description: description,
	}
	if err := r.DB.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Post{}, err
	}
	return p, nil
}

// Update applies the given column updates to a post owned by ownerID.
// Someone else's post behaves exactly like a missing one.
func (r *PostRepo) Update(ctx context.Context, postID, ownerID uint64, updates map[string]any) error {
	res := r.DB.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ? AND user_id = ? AND is_deleted = ?", postID, ownerID, false).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SoftDelete marks an owned post deleted. The stored image file is kept
// on disk; likes and comments rows are untouched.
func (r *PostRepo) SoftDelete(ctx context.Context, postID, ownerID uint64) error {
	return r.Update(ctx, postID, ownerID, map[string]any{
		"is_deleted": true,
		"deleted_at": time.Now().UTC(),
	})
}

// ProfilePost is the reduced post shape listed on a profile page.
type ProfilePost struct {
	ID          uint64  `json:"id"`
	Description *string `json:"description"`
	Image       string  `json:"image"`
}

// ListByUser returns the active posts owned by a user, newest first.
func (r *PostRepo) ListByUser(ctx context.Context, userID uint64) ([]ProfilePost, error) {
	var posts []ProfilePost
	err := r.DB.WithContext(ctx).
		Model(&model.Post{}).
		Select("id, description, image").
		Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("created_at DESC").
		Scan(&posts).Error
	return posts, err
}
