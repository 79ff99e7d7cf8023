package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Traorelacina/Glory-event/config"
	"github.com/Traorelacina/Glory-event/database"
	"github.com/Traorelacina/Glory-event/middleware"
	"github.com/Traorelacina/Glory-event/routes"
	"github.com/Traorelacina/Glory-event/upload"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	logger.Info("starting application")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	db, err := database.Open(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}
	if err := database.EnsureAdmin(db, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		logger.Fatal("admin bootstrap failed", zap.Error(err))
	}

	if err := os.MkdirAll(cfg.UploadDir, os.ModePerm); err != nil {
		logger.Fatal("failed to create upload folder", zap.String("dir", cfg.UploadDir), zap.Error(err))
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger))

	// Multipart bodies beyond this spill to temp files; the image limit itself
	// is enforced per file.
	r.MaxMultipartMemory = 8 << 20

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: !allowsAnyOrigin(cfg.CORSOrigins),
		MaxAge:           12 * time.Hour,
	}))

	// Serve uploaded images
	r.Static(upload.URLPrefix, cfg.UploadDir)

	routes.SetupRoutes(r, db, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server running", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
}

// Browsers refuse credentialed responses for a wildcard origin.
func allowsAnyOrigin(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
