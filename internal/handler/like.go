package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/photo-feed/internal/apperr"
	"github.com/iliyamo/photo-feed/internal/logging"
	"github.com/iliyamo/photo-feed/internal/middleware"
	"github.com/iliyamo/photo-feed/internal/queue"
	"github.com/iliyamo/photo-feed/internal/repository"
)

// LikeHandler serves the like toggle.
type LikeHandler struct {
	Posts *repository.PostRepo
	Likes *repository.LikeRepo
	Log   *logging.Logger
}

func NewLikeHandler(posts *repository.PostRepo, likes *repository.LikeRepo, log *logging.Logger) *LikeHandler {
	return &LikeHandler{Posts: posts, Likes: likes, Log: log}
}

// Toggle flips the requester's like on a post and returns the new state
// together with the authoritative post-wide like count, re-read after
// the mutation. A like cannot attach to a deleted or absent post.
func (h *LikeHandler) Toggle(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return apperr.Unauthorized("Unauthorized")
	}
	postID, err := pathID(c, "postId", "Post ID is required")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	exists, err := h.Posts.Exists(ctx, postID)
	if err != nil {
		return apperr.Internal("Query failed", err)
	}
	if !exists {
		return apperr.NotFound("Post not found")
	}

	liked, err := h.Likes.Toggle(ctx, userID, postID)
	if err != nil {
		return apperr.Internal("Toggle like failed", err)
	}
	count, err := h.Likes.Count(ctx, postID)
	if err != nil {
		return apperr.Internal("Query failed", err)
	}

	eventType := queue.EventPostLiked
	message := "Post liked"
	if !liked {
		eventType = queue.EventPostUnliked
		message = "Post unliked"
	}
	queue.PublishEngagement(queue.EngagementEvent{
		Type:   eventType,
		PostID: postID,
		UserID: userID,
		At:     time.Now().UTC().Format(time.RFC3339),
	})

	return respond(c, http.StatusOK, message, echo.Map{
		"liked":     liked,
		"likeCount": count,
	})
}
