package adminController

import (
	"github.com/Traorelacina/Glory-event/apperror"
	"github.com/Traorelacina/Glory-event/models"
	"github.com/Traorelacina/Glory-event/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func ListAdmins(db *gorm.DB) ([]models.Admin, error) {
	admins := []models.Admin{}
	if err := db.Order("id ASC").Find(&admins).Error; err != nil {
		return nil, apperror.Internal("failed to fetch admins", err)
	}
	return admins, nil
}

func GetAllAdmins(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		admins, err := ListAdmins(db)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, admins)
	}
}
