package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/photo-feed/internal/apperr"
	"github.com/iliyamo/photo-feed/internal/logging"
	"github.com/iliyamo/photo-feed/internal/middleware"
	"github.com/iliyamo/photo-feed/internal/queue"
	"github.com/iliyamo/photo-feed/internal/repository"
)

// CommentHandler serves comment creation, listing and deletion.
type CommentHandler struct {
	Posts    *repository.PostRepo
	Comments *repository.CommentRepo
	Log      *logging.Logger
}

func NewCommentHandler(posts *repository.PostRepo, comments *repository.CommentRepo, log *logging.Logger) *CommentHandler {
	return &CommentHandler{Posts: posts, Comments: comments, Log: log}
}

const defaultCommentLimit = 50

type commentPagination struct {
	Page          int   `json:"page"`
	Limit         int   `json:"limit"`
	TotalComments int64 `json:"totalComments"`
	TotalPages    int64 `json:"totalPages"`
}

// Create adds a comment to a visible post. Content was validated and
// trimmed by the pipeline.
func (h *CommentHandler) Create(c echo.Context) error {
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

	row, err := h.Comments.Create(ctx, postID, userID, middleware.Form(c)["content"])
	if err != nil {
		return apperr.Internal("Create comment failed", err)
	}

	queue.PublishEngagement(queue.EngagementEvent{
		Type:      queue.EventCommentCreated,
		PostID:    postID,
		UserID:    userID,
		CommentID: row.ID,
		At:        time.Now().UTC().Format(time.RFC3339),
	})

	return respond(c, http.StatusCreated, "Comment added", row)
}

// List returns one page of a post's visible comments, newest first.
func (h *CommentHandler) List(c echo.Context) error {
	postID, err := pathID(c, "postId", "Post ID is required")
	if err != nil {
		return err
	}
	page, limit := listParams(c, defaultCommentLimit)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	exists, err := h.Posts.Exists(ctx, postID)
	if err != nil {
		return apperr.Internal("Query failed", err)
	}
	if !exists {
		return apperr.NotFound("Post not found")
	}

	rows, total, err := h.Comments.List(ctx, postID, page, limit)
	if err != nil {
		return apperr.Internal("Query failed", err)
	}

	return respondPaged(c, http.StatusOK, "Comments fetched", rows, commentPagination{
		Page:          page,
		Limit:         limit,
		TotalComments: total,
		TotalPages:    totalPages(total, limit),
	})
}

// Delete soft-deletes a comment the requester wrote. Someone else's
// comment reports NotFound rather than a permission error.
func (h *CommentHandler) Delete(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return apperr.Unauthorized("Unauthorized")
	}
	commentID, err := pathID(c, "commentId", "Comment ID is required")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Comments.SoftDelete(ctx, commentID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("Comment not found")
		}
		return apperr.Internal("Delete comment failed", err)
	}

	return respond(c, http.StatusOK, "Comment deleted", echo.Map{"commentId": commentID})
}
