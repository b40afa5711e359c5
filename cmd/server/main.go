package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/photo-feed/internal/config"
	"github.com/iliyamo/photo-feed/internal/database"
	"github.com/iliyamo/photo-feed/internal/handler"
	"github.com/iliyamo/photo-feed/internal/logging"
	"github.com/iliyamo/photo-feed/internal/middleware"
	"github.com/iliyamo/photo-feed/internal/queue"
	"github.com/iliyamo/photo-feed/internal/repository"
	"github.com/iliyamo/photo-feed/internal/router"
	"github.com/iliyamo/photo-feed/internal/storage"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	users := repository.NewUserRepo(db)
	posts := repository.NewPostRepo(db)
	likes := repository.NewLikeRepo(db)
	comments := repository.NewCommentRepo(db)
	logs := repository.NewLogRepo(db)

	logg := logging.New(logging.NewStoreSink(logs))

	store, err := storage.NewImageStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	// Redis may be absent; the rate limiter degrades to passthrough.
	rdb := config.NewRedisClient()

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handler.ErrorHandler(cfg.Env, logg)

	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{echo.GET, echo.POST, echo.PATCH, echo.DELETE, echo.OPTIONS},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))
	e.Use(middleware.RateLimit(config.LoadRateLimitConfig(), rdb))

	router.Register(e, router.Deps{
		Auth:      handler.NewAuthHandler(cfg, users, logg),
		Users:     handler.NewUserHandler(users, posts, logg),
		Posts:     handler.NewPostHandler(posts, logg),
		Likes:     handler.NewLikeHandler(posts, likes, logg),
		Comments:  handler.NewCommentHandler(posts, comments, logg),
		JWTSecret: cfg.JWTSecret,
		Accounts:  users,
		Store:     store,
		UploadDir: cfg.UploadDir,
	})

	go queue.StartEngagementConsumer()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
