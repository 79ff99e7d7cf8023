package productcontroller

import (
	"mime/multipart"

	"github.com/Traorelacina/Glory-event/apperror"
	"github.com/Traorelacina/Glory-event/models"
	"github.com/Traorelacina/Glory-event/response"
	"github.com/Traorelacina/Glory-event/upload"
	"github.com/Traorelacina/Glory-event/validation"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UpdateProduct applies a partial update with the same rules as create.
// Existing order lines are snapshots and are not touched.
func UpdateProduct(db *gorm.DB, store *upload.Storage, id uint, in ProductInput, image *multipart.FileHeader) (*models.Product, error) {
	product, err := GetProduct(db, id)
	if err != nil {
		return nil, err
	}

	v := validation.Violations{}
	applyInput(product, in, false, v)
	if err := resolveSlug(db, product, false, v); err != nil {
		return nil, err
	}
	if image != nil {
		store.Check("image", image, v)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	if image != nil {
		path, err := store.Save(image, imageSubdir)
		if err != nil {
			return nil, apperror.Internal("failed to save product image", err)
		}
		product.Image = path
	}

	if err := db.Save(product).Error; err != nil {
		if image != nil {
			store.Remove(product.Image)
		}
		return nil, writeError("failed to update product", err)
	}
	// The previous upload stays on disk; older order lines may point at it.
	return product, nil
}

func UpdateProductHandler(db *gorm.DB, store *upload.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := validation.ParseID(c.Param("id"))
		if err != nil {
			response.Error(c, err)
			return
		}
		in, image, err := bindProductInput(c)
		if err != nil {
			response.Error(c, err)
			return
		}
		product, err := UpdateProduct(db, store, id, in, image)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, product)
	}
}
