package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFeed_ExcludesSoftDeletedPosts(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	posts := NewPostRepo(db)

	u := seedUser(t, db, "alice")
	now := time.Now().UTC()
	keep := seedPost(t, db, u.ID, "keep me", now)
	gone := seedPost(t, db, u.ID, "delete me", now.Add(time.Minute))

	require.NoError(t, posts.SoftDelete(ctx, gone.ID, u.ID))

	rows, total, err := posts.Feed(ctx, FeedQuery{ViewerID: u.ID, Page: 1, Limit: 10})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	require.Equal(t, keep.ID, rows[0].ID)

	_, err = posts.GetByID(ctx, gone.ID, u.ID)
	require.ErrorIs(t, err, ErrNotFound)

	ok, err := posts.Exists(ctx, gone.ID)
	require.NoError(t, err)
	require.False(t, ok)

	listed, err := posts.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, keep.ID, listed[0].ID)
}

func TestFeed_EngagementValues(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	posts := NewPostRepo(db)
	likes := NewLikeRepo(db)
	comments := NewCommentRepo(db)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	p := seedPost(t, db, alice.ID, "morning coffee", time.Now().UTC())

	liked, err := likes.Toggle(ctx, bob.ID, p.ID)
	require.NoError(t, err)
	require.True(t, liked)

	_, err = comments.Create(ctx, p.ID, bob.ID, "looks great")
	require.NoError(t, err)
	removed, err := comments.Create(ctx, p.ID, alice.ID, "thanks")
	require.NoError(t, err)
	require.NoError(t, comments.SoftDelete(ctx, removed.ID, alice.ID))

	// Counts and the liked flag are computed per viewer at read time.
	asBob, err := posts.GetByID(ctx, p.ID, bob.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, asBob.LikeCount)
	require.EqualValues(t, 1, asBob.CommentCount, "deleted comments must not be counted")
	require.True(t, asBob.LikedByMe)
	require.Equal(t, "alice", asBob.UserName)

	asAlice, err := posts.GetByID(ctx, p.ID, alice.ID)
	require.NoError(t, err)
	require.False(t, asAlice.LikedByMe)
}

func TestFeed_PaginationCoversEverything(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	posts := NewPostRepo(db)

	u := seedUser(t, db, "alice")
	base := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	want := map[uint64]bool{}
	for i := 0; i < 5; i++ {
		p := seedPost(t, db, u.ID, "", base.Add(time.Duration(i)*time.Minute))
		want[p.ID] = true
	}

	seen := map[uint64]bool{}
	var newestFirst []uint64
	for page := 1; page <= 3; page++ {
		rows, total, err := posts.Feed(ctx, FeedQuery{ViewerID: u.ID, Page: page, Limit: 2})
		require.NoError(t, err)
		require.EqualValues(t, 5, total, "total counts all matches regardless of page")
		for _, r := range rows {
			require.False(t, seen[r.ID], "post %d appeared on two pages", r.ID)
			seen[r.ID] = true
			newestFirst = append(newestFirst, r.ID)
		}
	}
	require.Len(t, seen, 5, "the union of all pages must be the whole feed")
	for id := range want {
		require.True(t, seen[id])
	}
	for i := 1; i < len(newestFirst); i++ {
		require.Greater(t, newestFirst[i-1], newestFirst[i], "feed must run newest first")
	}
}

func TestFeed_SearchCaseInsensitive(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	posts := NewPostRepo(db)

	u := seedUser(t, db, "alice")
	now := time.Now().UTC()
	match := seedPost(t, db, u.ID, "Sunset at the beach", now)
	seedPost(t, db, u.ID, "Mountain trail", now.Add(time.Minute))

	rows, total, err := posts.Feed(ctx, FeedQuery{ViewerID: u.ID, Page: 1, Limit: 10, Search: "BEACH"})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	require.Equal(t, match.ID, rows[0].ID)
}

func TestPostUpdate_OwnerScoped(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	posts := NewPostRepo(db)

	owner := seedUser(t, db, "alice")
	other := seedUser(t, db, "bob")
	p := seedPost(t, db, owner.ID, "original", time.Now().UTC())

	err := posts.Update(ctx, p.ID, other.ID, map[string]any{"description": "hijacked"})
	require.ErrorIs(t, err, ErrNotFound, "someone else's post behaves like a missing one")

	require.NoError(t, posts.Update(ctx, p.ID, owner.ID, map[string]any{"description": "edited"}))
	row, err := posts.GetByID(ctx, p.ID, owner.ID)
	require.NoError(t, err)
	require.NotNil(t, row.Description)
	require.Equal(t, "edited", *row.Description)

	require.ErrorIs(t, posts.SoftDelete(ctx, p.ID, other.ID), ErrNotFound)
}
