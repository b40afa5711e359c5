// Package router maps verbs and paths to their middleware chains. Every
// route follows the same pipeline: authenticate -> parse-upload ->
// validate -> execute, with the stages a given endpoint needs.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/photo-feed/internal/handler"
	"github.com/iliyamo/photo-feed/internal/middleware"
	"github.com/iliyamo/photo-feed/internal/storage"
)

// Deps bundles everything route registration needs.
type Deps struct {
	Auth     *handler.AuthHandler
	Users    *handler.UserHandler
	Posts    *handler.PostHandler
	Likes    *handler.LikeHandler
	Comments *handler.CommentHandler

	JWTSecret string
	Accounts  middleware.AccountChecker
	Store     *storage.ImageStore
	UploadDir string
}

// Register wires up all application routes on the provided Echo
// instance.
func Register(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health)

	// Uploaded images are served read-only under /uploads.
	e.Static("/uploads", d.UploadDir)

	auth := middleware.RequireAuth(d.JWTSecret, d.Accounts)

	user := e.Group("/user")
	user.POST("/signup", d.Auth.Signup,
		middleware.ProfilePicUpload(d.Store),
		middleware.ValidateSignup(),
	)
	user.POST("/signin", d.Auth.Signin,
		middleware.ValidateSignin(),
	)
	user.GET("/profile/:userId", d.Users.Profile, auth)
	user.DELETE("/delete", d.Users.Delete, auth)

	post := e.Group("/post", auth)
	post.GET("", d.Posts.Feed)
	post.POST("/create", d.Posts.Create,
		middleware.PostImageUpload(d.Store),
		middleware.ValidatePostCreate(),
	)
	post.PATCH("/:postId", d.Posts.Edit,
		middleware.PostImageUpload(d.Store),
		middleware.ValidatePostEdit(),
	)
	post.DELETE("/:postId", d.Posts.Delete)
	post.POST("/:postId/like", d.Likes.Toggle)
	post.POST("/:postId/comments", d.Comments.Create,
		middleware.ValidateComment(),
	)
	post.GET("/:postId/comments", d.Comments.List)
	post.DELETE("/comments/:commentId", d.Comments.Delete)
	// Registered last so it does not shadow the /:postId/* routes.
	post.GET("/:postId", d.Posts.GetOne)
}
