package productcontroller

import (
	"github.com/Traorelacina/Glory-event/apperror"
	"github.com/Traorelacina/Glory-event/models"
	"github.com/Traorelacina/Glory-event/response"
	"github.com/Traorelacina/Glory-event/validation"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DeleteProduct hard-deletes the product. Orders keep their own copy of it,
// and the image file is left in place for them.
func DeleteProduct(db *gorm.DB, id uint) error {
	res := db.Delete(&models.Product{}, id)
	if res.Error != nil {
		return apperror.Internal("failed to delete product", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("Produit introuvable")
	}
	return nil
}

func DeleteProductHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := validation.ParseID(c.Param("id"))
		if err != nil {
			response.Error(c, err)
			return
		}
		if err := DeleteProduct(db, id); err != nil {
			response.Error(c, err)
			return
		}
		zap.L().Info("product deleted", zap.Uint("id", id))
		response.Message(c, "Produit supprimé")
	}
}
