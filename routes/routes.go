package routes

import (
	"net/http"

	"github.com/Traorelacina/Glory-event/auth"
	"github.com/Traorelacina/Glory-event/config"
	orderControllers "github.com/Traorelacina/Glory-event/controllers/order"
	"github.com/Traorelacina/Glory-event/upload"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up the public, auth and
// admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	store := upload.New(cfg.UploadDir, cfg.MaxUploadBytes)
	hub := orderControllers.NewHub(cfg.CORSOrigins)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// 1️⃣ Public catalog, order and contact forms
	SetupPublicRoutes(api, db, hub)

	// 2️⃣ Admin login (no middleware)
	SetupAuthRoutes(api, db, issuer)

	// 3️⃣ Admin routes (token-protected)
	SetupAdminRoutes(api, db, issuer, cfg.AdminAPIKey, store, hub)
}
