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
	"github.com/iliyamo/photo-feed/internal/repository"
)

// UserHandler serves profile reads and account deletion.
type UserHandler struct {
	Users *repository.UserRepo
	Posts *repository.PostRepo
	Log   *logging.Logger
}

func NewUserHandler(users *repository.UserRepo, posts *repository.PostRepo, log *logging.Logger) *UserHandler {
	return &UserHandler{Users: users, Posts: posts, Log: log}
}

type profileResp struct {
	ID         uint64                   `json:"id"`
	Name       string                   `json:"name"`
	Email      string                   `json:"email"`
	ProfilePic *string                  `json:"profilePic"`
	PostCount  int                      `json:"postCount"`
	Posts      []repository.ProfilePost `json:"posts"`
}

// Profile returns a user's public profile plus their visible posts.
// Deleted accounts are indistinguishable from absent ones.
func (h *UserHandler) Profile(c echo.Context) error {
	userID, err := pathID(c, "userId", "User ID is required")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("User not found")
		}
		return apperr.Internal("Query failed", err)
	}

	posts, err := h.Posts.ListByUser(ctx, userID)
	if err != nil {
		return apperr.Internal("Query failed", err)
	}

	return respond(c, http.StatusOK, "Profile fetched successfully", profileResp{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		ProfilePic: u.ProfilePic,
		PostCount:  len(posts),
		Posts:      posts,
	})
}

// Delete soft-deletes the authenticated user's own account and cascades
// to every post they own. There is no restore.
func (h *UserHandler) Delete(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return apperr.Unauthorized("Unauthorized")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.SoftDeleteWithPosts(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("User not found")
		}
		return apperr.Internal("Delete account failed", err)
	}

	h.Log.Info("account deleted", map[string]any{"userId": userID})
	return respond(c, http.StatusOK, "Account and associated posts deleted successfully", nil)
}
