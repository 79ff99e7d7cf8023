package productcontroller

import (
	"github.com/Traorelacina/Glory-event/apperror"
	"github.com/Traorelacina/Glory-event/models"
	"github.com/Traorelacina/Glory-event/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListProducts returns the whole catalog, newest first. Filtering is left to
// the client.
func ListProducts(db *gorm.DB) ([]models.Product, error) {
	products := []models.Product{}
	if err := db.Order("created_at DESC, id DESC").Find(&products).Error; err != nil {
		return nil, apperror.Internal("failed to fetch products", err)
	}
	return products, nil
}

// GetProducts serves both the public catalog and the admin list.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := ListProducts(db)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, products)
	}
}
