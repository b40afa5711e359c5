package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/photo-feed/internal/apperr"
	"github.com/iliyamo/photo-feed/internal/logging"
	"github.com/iliyamo/photo-feed/internal/middleware"
	"github.com/iliyamo/photo-feed/internal/repository"
)

// PostHandler serves the feed, single-post reads and post mutations.
type PostHandler struct {
	Posts *repository.PostRepo
	Log   *logging.Logger
}

func NewPostHandler(posts *repository.PostRepo, log *logging.Logger) *PostHandler {
	return &PostHandler{Posts: posts, Log: log}
}

const defaultFeedLimit = 10

type postPagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPosts int64 `json:"totalPosts"`
	TotalPages int64 `json:"totalPages"`
}

// Feed returns one page of visible posts, newest first, with like and
// comment counts and the requester's liked flag computed per row.
func (h *PostHandler) Feed(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return apperr.Unauthorized("Unauthorized")
	}
	page, limit := listParams(c, defaultFeedLimit)
	search := strings.TrimSpace(c.QueryParam("search"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, total, err := h.Posts.Feed(ctx, repository.FeedQuery{
		ViewerID: userID,
		Page:     page,
		Limit:    limit,
		Search:   search,
	})
	if err != nil {
		return apperr.Internal("Query failed", err)
	}

	return respondPaged(c, http.StatusOK, "Posts fetched successfully", rows, postPagination{
		Page:       page,
		Limit:      limit,
		TotalPosts: total,
		TotalPages: totalPages(total, limit),
	})
}

// GetOne returns a single visible post with its engagement values. A
// soft-deleted post is a plain 404.
func (h *PostHandler) GetOne(c echo.Context) error {
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

	row, err := h.Posts.GetByID(ctx, postID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("Post not found")
		}
		return apperr.Internal("Query failed", err)
	}
	return respond(c, http.StatusOK, "Post fetched successfully", row)
}

// Create stores a new post. The image arrives either through the upload
// stage or as an explicit path reference in the body; validation has
// already guaranteed one of the two is present.
func (h *PostHandler) Create(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return apperr.Unauthorized("Unauthorized")
	}

	image, _ := c.Get(middleware.CtxImagePath).(string)
	if image == "" {
		image = middleware.Form(c)["image"]
	}
	var description *string
	if d := middleware.Form(c)["description"]; d != "" {
		description = &d
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Posts.Create(ctx, userID, image, description)
	if err != nil {
		return apperr.Internal("Create post failed", err)
	}

	h.Log.Info("post created", map[string]any{"postId": p.ID, "userId": userID})
	return respond(c, http.StatusCreated, "Post created successfully", echo.Map{
		"postId": p.ID,
		"image":  p.Image,
	})
}

// Edit updates the description and/or image of the requester's own
// post. Editing someone else's post reports NotFound.
func (h *PostHandler) Edit(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return apperr.Unauthorized("Unauthorized")
	}
	postID, err := pathID(c, "postId", "Post ID is required")
	if err != nil {
		return err
	}

	updates := map[string]any{}
	image, _ := c.Get(middleware.CtxImagePath).(string)
	if image == "" {
		image = middleware.Form(c)["image"]
	}
	if image != "" {
		updates["image"] = image
	}
	if d := middleware.Form(c)["description"]; d != "" {
		updates["description"] = d
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Posts.Update(ctx, postID, userID, updates); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("Post not found")
		}
		return apperr.Internal("Update post failed", err)
	}

	var respImage any
	if image != "" {
		respImage = image
	}
	return respond(c, http.StatusOK, "Post updated successfully", echo.Map{"image": respImage})
}

// Delete soft-deletes the requester's own post. The stored image file
// stays on disk and likes/comments rows are untouched; the post simply
// disappears from every read path.
func (h *PostHandler) Delete(c echo.Context) error {
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

	if err := h.Posts.SoftDelete(ctx, postID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("Post not found")
		}
		return apperr.Internal("Delete post failed", err)
	}

	h.Log.Info("post deleted", map[string]any{"postId": postID, "userId": userID})
	return respond(c, http.StatusOK, "Post deleted successfully", echo.Map{"postId": postID})
}
