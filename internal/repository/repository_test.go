package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/iliyamo/photo-feed/internal/model"
)

const testBcryptCost = 4

// openTestDB returns an isolated in-memory store carrying the production
// schema. The pool is pinned to one connection so the :memory: database
// survives for the whole test.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Post{},
		&model.Like{},
		&model.Comment{},
		&model.LogEntry{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string) model.User {
	t.Helper()
	u := model.User{
		Name:     name,
		Email:    strings.ToLower(name) + "@example.com",
		Password: "not-a-real-hash",
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func seedPost(t *testing.T, db *gorm.DB, userID uint64, description string, createdAt time.Time) model.Post {
	t.Helper()
	p := model.Post{
		UserID:    userID,
		Image:     fmt.Sprintf("/uploads/posts/%d.jpg", createdAt.UnixNano()),
		CreatedAt: createdAt,
	}
	if description != "" {
		p.Description = &description
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func TestUserCreate_DuplicateEmail(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	users := NewUserRepo(db)

	_, err := users.Create(ctx, "Alice", "a@b.com", "secret1", nil, testBcryptCost)
	require.NoError(t, err)

	// Same address modulo normalization must hit the unique index.
	_, err = users.Create(ctx, "Impostor", "  A@B.com ", "secret1", nil, testBcryptCost)
	require.ErrorIs(t, err, ErrEmailExists)
}

func TestSoftDeleteWithPosts_Cascade(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	users := NewUserRepo(db)
	posts := NewPostRepo(db)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	now := time.Now().UTC()
	alicePost := seedPost(t, db, alice.ID, "sunset", now)
	bobPost := seedPost(t, db, bob.ID, "mountains", now.Add(time.Minute))

	require.NoError(t, users.SoftDeleteWithPosts(ctx, alice.ID))

	var row model.User
	require.NoError(t, db.First(&row, alice.ID).Error)
	require.True(t, row.IsDeleted)
	require.NotNil(t, row.DeletedAt)

	var flagged int64
	require.NoError(t, db.Model(&model.Post{}).
		Where("user_id = ? AND is_deleted = ?", alice.ID, true).
		Count(&flagged).Error)
	require.EqualValues(t, 1, flagged, "owned posts must be flagged in the same cascade")

	active, err := users.IsActive(ctx, alice.ID)
	require.NoError(t, err)
	require.False(t, active)

	_, err = users.GetByEmail(ctx, "alice@example.com")
	require.ErrorIs(t, err, ErrNotFound)

	// The unique index spans deleted rows, so the address stays burned.
	_, err = users.Create(ctx, "Alice again", "alice@example.com", "secret1", nil, testBcryptCost)
	require.ErrorIs(t, err, ErrEmailExists)

	rows, total, err := posts.Feed(ctx, FeedQuery{ViewerID: bob.ID, Page: 1, Limit: 10})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	require.Equal(t, bobPost.ID, rows[0].ID)

	_, err = posts.GetByID(ctx, alicePost.ID, bob.ID)
	require.ErrorIs(t, err, ErrNotFound)

	require.ErrorIs(t, users.SoftDeleteWithPosts(ctx, alice.ID), ErrNotFound,
		"an already-deleted account has nothing left to delete")
}

func TestLogAppend(t *testing.T) {
	db := openTestDB(t)
	logs := NewLogRepo(db)

	require.NoError(t, logs.Append(context.Background(), "error", "boom", map[string]any{"path": "/post"}))

	var entry model.LogEntry
	require.NoError(t, db.First(&entry).Error)
	require.Equal(t, "error", entry.Level)
	require.Equal(t, "boom", entry.Message)
	require.Contains(t, string(entry.Metadata), `"path":"/post"`)
}
