package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/photo-feed/internal/apperr"
	"github.com/iliyamo/photo-feed/internal/config"
	"github.com/iliyamo/photo-feed/internal/logging"
	"github.com/iliyamo/photo-feed/internal/middleware"
	"github.com/iliyamo/photo-feed/internal/repository"
	"github.com/iliyamo/photo-feed/internal/utils"
)

// AuthHandler bundles dependencies for the signup and signin endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
	Log   *logging.Logger
}

func NewAuthHandler(cfg config.Config, users *repository.UserRepo, log *logging.Logger) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users, Log: log}
}

type signupResp struct {
	UserID     uint64  `json:"userId"`
	UserName   string  `json:"userName"`
	Email      string  `json:"email"`
	ProfilePic *string `json:"profilePic"`
}

type signinResp struct {
	UserID   uint64 `json:"userId"`
	UserName string `json:"userName"`
	Token    string `json:"token"`
}

// Signup creates an account. Input has already been validated and
// normalized by the pipeline; an optional profile picture was stored by
// the upload stage.
func (h *AuthHandler) Signup(c echo.Context) error {
	v := middleware.Form(c)

	var profilePic *string
	if p, ok := c.Get(middleware.CtxProfilePicPath).(string); ok {
		profilePic = &p
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.Create(ctx, v["name"], v["email"], v["password"], profilePic, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return apperr.Conflict("User already exists", apperr.FieldError{
				Field:   "email",
				Message: "This email is already registered",
			})
		}
		return apperr.Internal("Create user failed", err)
	}

	h.Log.Info("user signed up", map[string]any{"userId": u.ID})
	return respond(c, http.StatusCreated, "User created successfully", signupResp{
		UserID:     u.ID,
		UserName:   u.Name,
		Email:      u.Email,
		ProfilePic: u.ProfilePic,
	})
}

// Signin verifies credentials and issues a bearer token valid for the
// configured window (7 days by default).
func (h *AuthHandler) Signin(c echo.Context) error {
	v := middleware.Form(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, v["email"])
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &apperr.Error{
				Kind:    apperr.KindNotFound,
				Message: "User not found",
				Fields: []apperr.FieldError{{
					Field:   "email",
					Message: "No active account found with this email",
				}},
			}
		}
		return apperr.Internal("Query failed", err)
	}
	if !utils.VerifyPassword(u.Password, v["password"]) {
		return apperr.Unauthorized("Invalid password")
	}

	token, _, err := utils.NewToken(h.Cfg.JWTSecret, u.ID, u.Email, h.Cfg.TokenTTLDays)
	if err != nil {
		return apperr.Internal("Issue token failed", err)
	}

	h.Log.Info("user signed in", map[string]any{"userId": u.ID})
	return respond(c, http.StatusOK, "SignIn successful", signinResp{
		UserID:   u.ID,
		UserName: u.Name,
		Token:    token,
	})
}
