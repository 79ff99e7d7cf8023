package routes

import (
	"github.com/Traorelacina/Glory-event/auth"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupAuthRoutes(api *gin.RouterGroup, db *gorm.DB, issuer *auth.Issuer) {
	api.POST("/admin/login", auth.AdminLoginHandler(db, issuer))
}
