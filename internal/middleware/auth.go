// Package middleware contains the reusable stages of the request
// pipeline: authenticate -> parse-upload -> validate -> execute. Each
// stage either calls the next one or returns a typed error that the
// terminal handler turns into the response envelope.
package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/photo-feed/internal/apperr"
	"github.com/iliyamo/photo-feed/internal/utils"
)

// Context keys set by RequireAuth for downstream stages and handlers.
const (
	CtxUserID    = "user_id"
	CtxUserEmail = "user_email"
)

// AccountChecker reports whether a user account still exists and is not
// soft deleted. The user repository satisfies it.
type AccountChecker interface {
	IsActive(ctx context.Context, userID uint64) (bool, error)
}

// RequireAuth validates the Bearer token and then re-checks, against the
// store and on every single request, that the referenced account is
// still active. A formerly valid token for a deleted account fails with
// 401 exactly like a bad token.
func RequireAuth(secret string, accounts AccountChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return apperr.Unauthorized("Authorization header is required")
			}
			scheme, token, ok := strings.Cut(header, " ")
			if !ok || scheme != "Bearer" || token == "" {
				return apperr.Unauthorized("Invalid authorization format. Use: Bearer <token>")
			}

			claims, err := utils.ParseToken(secret, token)
			if err != nil {
				switch err {
				case utils.ErrExpiredToken:
					return apperr.Unauthorized("Token has expired")
				case utils.ErrInvalidSignature:
					return apperr.Unauthorized("Invalid token signature")
				default:
					return apperr.Unauthorized("Invalid token")
				}
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()
			active, err := accounts.IsActive(ctx, claims.UserID)
			if err != nil {
				return apperr.Internal("Database connection not established", err)
			}
			if !active {
				return apperr.Unauthorized("User account has been deleted or does not exist")
			}

			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxUserEmail, claims.Email)
			return next(c)
		}
	}
}

// UserID returns the authenticated user id stored by RequireAuth.
func UserID(c echo.Context) (uint64, bool) {
	id, ok := c.Get(CtxUserID).(uint64)
	return id, ok
}
