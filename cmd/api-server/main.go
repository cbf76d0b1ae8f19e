package main

import (
	"fmt"
	"log/slog"
	"os"

	"workhub/database"
	"workhub/internal/api"
	"workhub/internal/api/cache"
	"workhub/internal/api/handler"
	"workhub/internal/api/repository"
	"workhub/internal/api/service"
	"workhub/internal/config"
	"workhub/internal/mailer"

	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("database_connect_failed", "error", err)
		os.Exit(1)
	}

	var listingCache *cache.Cache
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Error("redis_url_invalid", "error", err)
			os.Exit(1)
		}
		if cfg.RedisPassword != "" {
			opts.Password = cfg.RedisPassword
		}
		client := redis.NewClient(opts)
		listingCache = cache.New(client, cfg.CacheTTL)
		logger.Info("cache_enabled", "addr", opts.Addr)
	} else {
		logger.Info("cache_disabled")
	}

	var codeMailer mailer.Mailer
	if cfg.SMTPAddr != "" {
		codeMailer = mailer.NewSMTPMailer(cfg.SMTPAddr, cfg.MailFrom, cfg.SMTPUsername, cfg.SMTPPassword)
	} else {
		codeMailer = mailer.NewLogMailer(logger)
	}

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	genreRepo := repository.NewGenreRepository(db)
	workRepo := repository.NewWorkRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	authService := service.NewAuthService(userRepo, codeMailer, cfg)
	userService := service.NewUserService(userRepo)
	categoryService := service.NewCategoryService(categoryRepo, listingCache, logger)
	genreService := service.NewGenreService(genreRepo, listingCache, logger)
	workService := service.NewWorkService(workRepo, categoryRepo, genreRepo, reviewRepo)
	reviewService := service.NewReviewService(reviewRepo, workRepo)
	commentService := service.NewCommentService(commentRepo, reviewRepo)

	r := api.SetupRouter(cfg, api.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		User:     handler.NewUserHandler(userService),
		Work:     handler.NewWorkHandler(workService),
		Category: handler.NewCategoryHandler(categoryService),
		Genre:    handler.NewGenreHandler(genreService),
		Review:   handler.NewReviewHandler(reviewService),
		Comment:  handler.NewCommentHandler(commentService),
	}, authService)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("server_starting", "addr", addr, "env", cfg.GoEnv)
	if err := r.Run(addr); err != nil {
		logger.Error("server_stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
