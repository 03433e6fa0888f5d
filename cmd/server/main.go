package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"recipehub/docs"

	"github.com/labstack/echo/v4"

	"recipehub/internal/auth"
	"recipehub/internal/cache"
	"recipehub/internal/config"
	"recipehub/internal/db"
	"recipehub/internal/fanout"
	"recipehub/internal/handler"
	"recipehub/internal/idalloc"
	"recipehub/internal/media"
	"recipehub/internal/realtime"
	"recipehub/internal/repository"
	"recipehub/internal/router"
	"recipehub/internal/service"
)

// @title RecipeHub API
// @version 1.0
// @description Recipe sharing API with follows, saved recipes, meal plans, notifications and media.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	logger := cfg.Logger()
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := db.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return err
	}
	if cfg.ResetDB {
		logger.Warn("RESET_DB set, dropping all tables")
		if err := db.Reset(gormDB); err != nil {
			return err
		}
	}
	if err := db.Migrate(gormDB); err != nil {
		return err
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if cacheClient.Enabled() {
		if err := cacheClient.Ping(ctx); err != nil {
			logger.Warn("redis unreachable, continuing without cache", "addr", cfg.RedisAddr, "error", err)
		}
		defer cacheClient.Close()
	}

	store := repository.NewStore(gormDB)
	ids := idalloc.New(cfg.IDMin, cfg.IDMax, cfg.IDMaxAttempts)
	engine := fanout.NewEngine(logger)
	hub := realtime.NewHub(logger)

	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	authService := service.NewAuthService(store.Users(), ids, jwtService, tokenStore)
	userService := service.NewUserService(store.Users(), cacheClient)
	recipeService := service.NewRecipeService(store, ids, engine, hub)
	socialService := service.NewSocialService(store, engine, hub)
	savedService := service.NewSavedService(store)
	mealPlanService := service.NewMealPlanService(store.MealPlans(), store.Users())
	notificationService := service.NewNotificationService(store.Notifications(), store.Users())

	mediaStore, err := newMediaStore(ctx, cfg, cacheClient, service.NewMediaRecorder(userService, recipeService), logger)
	if err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	router.Register(e, logger, jwtService, router.Handlers{
		Auth:         handler.NewAuthHandler(authService, userService),
		User:         handler.NewUserHandler(authService, userService, recipeService, socialService, savedService, mealPlanService, notificationService),
		Recipe:       handler.NewRecipeHandler(recipeService),
		Social:       handler.NewSocialHandler(socialService, savedService),
		MealPlan:     handler.NewMealPlanHandler(mealPlanService),
		Notification: handler.NewNotificationHandler(notificationService),
		Media:        handler.NewMediaHandler(mediaStore),
		WS:           handler.NewWSHandler(hub),
	})

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "https://"), "http://")
	}
	logger.Info("swagger documentation available", "url", "http://"+docs.SwaggerInfo.Host+"/swagger/index.html")

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.ServerPort
		logger.Info("listening", "addr", addr, "db", cfg.DBDriver, "media", cfg.MediaBackend)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// newMediaStore picks the object backend from MEDIA_BACKEND and the file
// counter from Redis when it is configured.
func newMediaStore(ctx context.Context, cfg *config.Config, cacheClient *cache.Client, recorder media.Recorder, logger *slog.Logger) (*media.Store, error) {
	var backend media.Backend
	switch cfg.MediaBackend {
	case "s3":
		s3Backend, err := media.NewS3Backend(ctx, media.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Prefix:    media.PathPrefix,
		})
		if err != nil {
			return nil, err
		}
		backend = s3Backend
	default:
		diskBackend, err := media.NewDiskBackend(cfg.MediaDir)
		if err != nil {
			return nil, err
		}
		backend = diskBackend
	}

	var seq media.Sequencer = media.NewFileSequencer(cfg.MediaCounterFile)
	if cacheClient.Enabled() {
		seq = media.NewRedisSequencer(cacheClient)
	}
	return media.NewStore(backend, seq, recorder, logger), nil
}
