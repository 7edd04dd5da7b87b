// Package main runs the community platform HTTP server with graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/community-platform/backend/config"
	"github.com/community-platform/backend/internal/ads"
	"github.com/community-platform/backend/internal/auth"
	"github.com/community-platform/backend/internal/content"
	"github.com/community-platform/backend/internal/middleware"
	"github.com/community-platform/backend/internal/models"
	"github.com/community-platform/backend/pkg/cache"
	"github.com/community-platform/backend/pkg/database"
	"github.com/community-platform/backend/pkg/redis"
	"github.com/community-platform/backend/pkg/response"
	"github.com/community-platform/backend/pkg/storage"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	client, err := database.NewMongoClient(ctx, cfg.Mongo.URI, logger)
	if err != nil {
		logger.Fatal("mongo", zap.Error(err))
	}
	defer client.Disconnect(ctx)
	db := client.Database(cfg.Mongo.Database)

	if err := database.EnsureIndexes(ctx, db); err != nil {
		logger.Fatal("ensure indexes", zap.Error(err))
	}

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	var uploader *storage.Uploader
	if cfg.Cloudinary.CloudName != "" {
		uploader, err = storage.NewUploader(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret, logger)
		if err != nil {
			logger.Warn("image uploads disabled", zap.Error(err))
		}
	}

	listingCache := cache.New(rdb, time.Duration(cfg.Cache.ListingTTLSeconds)*time.Second, logger)
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours)

	// Auth
	userRepo := auth.NewRepository(db)
	adminCreds := auth.AdminCredentials{Username: cfg.Admin.Username, Password: cfg.Admin.Password}
	authHandler := auth.NewHandler(userRepo, jwtService, adminCreds, logger)

	// Content
	contentRepo := content.NewRepository(db)
	contentHandler := content.NewHandler(contentRepo, listingCache, logger)

	// Ads
	adsRepo := ads.NewRepository(db)
	adsHandler := ads.NewHandler(adsRepo, logger)

	// Admin content management
	adminHandler := content.NewAdminHandler(
		contentRepo, adsRepo, userRepo, uploader, listingCache,
		cfg.Upload.MaxBytes, time.Duration(cfg.Cache.StatsTTLSeconds)*time.Second, logger,
	)

	router := gin.New()
	router.MaxMultipartMemory = cfg.Upload.MaxBytes
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Identify(jwtService))

	// Health
	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	// Public pages
	router.GET("/", contentHandler.Index)
	router.GET("/jobs", contentHandler.Listing(models.TypeJobs))
	router.GET("/workshops", contentHandler.Listing(models.TypeWorkshops))
	router.GET("/courses", contentHandler.Listing(models.TypeCourses))
	router.GET("/hackathons", contentHandler.Listing(models.TypeHackathons))
	router.GET("/websites", contentHandler.Websites)
	router.GET("/our-projects", contentHandler.OurProjects)

	// Auth (rate limited per client IP)
	router.GET("/login", authHandler.LoginPage)
	router.POST("/login", middleware.RateLimit(rdb, "login", 10, time.Minute, logger), authHandler.Login)
	router.GET("/register", authHandler.RegisterPage)
	router.POST("/register", middleware.RateLimit(rdb, "register", 5, time.Minute, logger), authHandler.Register)
	router.GET("/logout", authHandler.Logout)

	// Logged-in pages
	authed := router.Group("")
	authed.Use(middleware.RequireAuthPage())
	{
		authed.GET("/dashboard", func(c *gin.Context) { authHandler.Dashboard(c, middleware.UserID(c)) })
		authed.GET("/roadmaps", contentHandler.Roadmaps)
		authed.GET("/detail/:type/:id", contentHandler.Detail)
	}
	router.POST("/apply/:type/:id", middleware.RequireAuth(), contentHandler.Apply)

	// Admin
	admin := router.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/dashboard", adminHandler.Dashboard)
		admin.GET("/users", authHandler.ListUsers)
		admin.GET("/content/:type", adminHandler.ContentList)
		admin.POST("/add/:type", adminHandler.AddContent)
		admin.GET("/edit/:type/:id", adminHandler.EditContentPage)
		admin.POST("/edit/:type/:id", adminHandler.EditContent)
		admin.POST("/delete/:type/:id", adminHandler.DeleteContent)
	}

	// Ad rotation and tracking
	router.POST("/ad/impression/:id", adsHandler.Impression)
	router.POST("/ad/click/:id", adsHandler.Click)

	// API
	api := router.Group("/api")
	{
		api.GET("/get-ads", adsHandler.GetAds)
		api.GET("/filter/:type", contentHandler.FilterContent)
		api.GET("/search", contentHandler.SearchContent)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
