package productcontroller

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/Traorelacina/Glory-event/apperror"
	"github.com/Traorelacina/Glory-event/models"
	"github.com/Traorelacina/Glory-event/response"
	"github.com/Traorelacina/Glory-event/upload"
	"github.com/Traorelacina/Glory-event/validation"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const imageSubdir = "produits"

// ProductInput carries the fields sent on create or update. A nil field was
// not sent; on update it keeps the stored value. Invalid holds the fields
// that could not be decoded, reported together with every other violation.
type ProductInput struct {
	Name        *string
	Slug        *string
	Description *string
	Price       *string
	Image       *string
	Category    *string
	InStock     *bool
	Featured    *bool

	Invalid validation.Violations
}

// bindProductInput reads a multipart/urlencoded form or a JSON body. Only a
// form can carry an image file. Per-field decoding problems land in
// ProductInput.Invalid; only an unreadable body is an error.
func bindProductInput(c *gin.Context) (ProductInput, *multipart.FileHeader, error) {
	in := ProductInput{Invalid: validation.Violations{}}
	switch c.ContentType() {
	case "multipart/form-data", "application/x-www-form-urlencoded":
		formString := func(key string) *string {
			if s, ok := c.GetPostForm(key); ok {
				return &s
			}
			return nil
		}
		formBool := func(key string) *bool {
			s, ok := c.GetPostForm(key)
			if !ok || s == "" {
				return nil
			}
			b, err := strconv.ParseBool(s)
			if err != nil {
				in.Invalid.Add(key, "must be a boolean")
				return nil
			}
			return &b
		}
		in.Name = formString("name")
		in.Slug = formString("slug")
		in.Description = formString("description")
		in.Price = formString("price")
		in.Image = formString("image")
		in.Category = formString("category")
		in.InStock = formBool("in_stock")
		in.Featured = formBool("featured")

		fh, err := c.FormFile("image")
		if err != nil {
			fh = nil
		}
		return in, fh, nil
	default:
		var body map[string]json.RawMessage
		if err := c.ShouldBindJSON(&body); err != nil {
			return in, nil, validation.FromBindError(err)
		}
		// null counts as not sent
		field := func(key string, dst any, msg string) bool {
			raw, ok := body[key]
			if !ok || string(raw) == "null" {
				return false
			}
			if err := json.Unmarshal(raw, dst); err != nil {
				in.Invalid.Add(key, msg)
				return false
			}
			return true
		}
		jsonString := func(key string) *string {
			var s string
			if field(key, &s, "must be a string") {
				return &s
			}
			return nil
		}
		jsonBool := func(key string) *bool {
			var b bool
			if field(key, &b, "must be a boolean") {
				return &b
			}
			return nil
		}
		in.Name = jsonString("name")
		in.Slug = jsonString("slug")
		in.Description = jsonString("description")
		in.Image = jsonString("image")
		in.Category = jsonString("category")
		in.InStock = jsonBool("in_stock")
		in.Featured = jsonBool("featured")
		var price json.Number
		if field("price", &price, "must be a number") {
			s := price.String()
			in.Price = &s
		}
		return in, nil, nil
	}
}

// applyInput copies the sent fields onto p and collects every violation.
// Required fields must be present on create and non-blank whenever sent.
// It reports whether the slug was derived from the name.
func applyInput(p *models.Product, in ProductInput, creating bool, v validation.Violations) (derivedSlug bool) {
	for field, msg := range in.Invalid {
		v.Add(field, msg)
	}
	text := func(field string, value *string, max int, dst *string) {
		if value == nil {
			if creating {
				v.Add(field, "is required")
			}
			return
		}
		validation.Required(field, *value, v)
		if max > 0 {
			validation.MaxLen(field, *value, max, v)
		}
		*dst = strings.TrimSpace(*value)
	}
	text("name", in.Name, 255, &p.Name)
	text("description", in.Description, 0, &p.Description)
	text("category", in.Category, 100, &p.Category)

	if in.Price != nil {
		p.Price = validation.Price("price", *in.Price, v)
	} else if creating {
		v.Add("price", "is required")
	}

	if in.Slug != nil && strings.TrimSpace(*in.Slug) != "" {
		p.Slug = validation.Slugify(*in.Slug)
	} else if creating {
		p.Slug = validation.Slugify(p.Name)
		derivedSlug = true
	}
	if p.Slug == "" && p.Name != "" {
		v.Add("slug", "could not be derived from name")
	}
	// leaves room for a "-N" suffix in the 255-character column
	validation.MaxLen("slug", p.Slug, 250, v)

	if in.Image != nil {
		p.Image = strings.TrimSpace(*in.Image)
	}
	if in.InStock != nil {
		p.InStock = *in.InStock
	}
	if in.Featured != nil {
		p.Featured = *in.Featured
	}
	return derivedSlug
}

func slugTaken(db *gorm.DB, slug string, selfID uint) (bool, error) {
	var count int64
	q := db.Model(&models.Product{}).Where("slug = ?", slug)
	if selfID != 0 {
		q = q.Where("id <> ?", selfID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, apperror.Internal("failed to check slug", err)
	}
	return count > 0, nil
}

// resolveSlug makes p.Slug unique. A slug the client chose is rejected when
// taken; one derived from the name gets a numeric suffix instead
// ("vase-dore", "vase-dore-2", ...).
func resolveSlug(db *gorm.DB, p *models.Product, derived bool, v validation.Violations) error {
	if p.Slug == "" {
		return nil
	}
	base := p.Slug
	for n := 2; ; n++ {
		taken, err := slugTaken(db, p.Slug, p.ID)
		if err != nil {
			return err
		}
		if !taken {
			return nil
		}
		if !derived {
			v.Add("slug", "has already been taken")
			return nil
		}
		p.Slug = fmt.Sprintf("%s-%d", base, n)
	}
}

// writeError maps a failed insert or update. A unique slug violation that
// slipped past resolveSlug under concurrent writes is still a client error.
func writeError(msg string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.Validation("Les données fournies sont invalides", map[string]string{"slug": "has already been taken"})
	}
	return apperror.Internal(msg, err)
}

// CreateProduct validates every field at once and stores the image only when
// nothing is wrong.
func CreateProduct(db *gorm.DB, store *upload.Storage, in ProductInput, image *multipart.FileHeader) (*models.Product, error) {
	product := models.Product{InStock: true}
	v := validation.Violations{}
	derived := applyInput(&product, in, true, v)
	if err := resolveSlug(db, &product, derived, v); err != nil {
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

	if err := db.Create(&product).Error; err != nil {
		if image != nil {
			store.Remove(product.Image)
		}
		return nil, writeError("failed to create product", err)
	}
	return &product, nil
}

func CreateProductHandler(db *gorm.DB, store *upload.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		in, image, err := bindProductInput(c)
		if err != nil {
			response.Error(c, err)
			return
		}
		product, err := CreateProduct(db, store, in, image)
		if err != nil {
			response.Error(c, err)
			return
		}
		zap.L().Info("product created", zap.Uint("id", product.ID), zap.String("slug", product.Slug))
		response.Created(c, product)
	}
}
