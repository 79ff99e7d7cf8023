package productcontroller

import (
	"errors"

	"github.com/Traorelacina/Glory-event/apperror"
	"github.com/Traorelacina/Glory-event/models"
	"github.com/Traorelacina/Glory-event/response"
	"github.com/Traorelacina/Glory-event/validation"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func GetProduct(db *gorm.DB, id uint) (*models.Product, error) {
	var product models.Product
	if err := db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Produit introuvable")
		}
		return nil, apperror.Internal("failed to load product", err)
	}
	return &product, nil
}

// GetProductByID returns a single product.
// URL param: /produits/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := validation.ParseID(c.Param("id"))
		if err != nil {
			response.Error(c, err)
			return
		}
		product, err := GetProduct(db, id)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, product)
	}
}
