package adminController

import (
	"errors"
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

const portfolioSubdir = "portfolio"

type PortfolioInput struct {
	Title       string
	Category    string
	Description string
	Featured    bool
}

// CreatePortfolioEntry stores the image and the entry. The image is required
// and saved only once every field is valid.
func CreatePortfolioEntry(db *gorm.DB, store *upload.Storage, in PortfolioInput, image *multipart.FileHeader) (*models.PortfolioEntry, error) {
	v := validation.Violations{}
	validation.Required("title", in.Title, v)
	validation.MaxLen("title", in.Title, 255, v)
	validation.Required("category", in.Category, v)
	validation.MaxLen("category", in.Category, 100, v)
	if image == nil {
		v.Add("image", "is required")
	} else {
		store.Check("image", image, v)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	path, err := store.Save(image, portfolioSubdir)
	if err != nil {
		return nil, apperror.Internal("failed to save portfolio image", err)
	}
	entry := models.PortfolioEntry{
		Title:       strings.TrimSpace(in.Title),
		Category:    strings.TrimSpace(in.Category),
		Description: in.Description,
		Image:       path,
		Featured:    in.Featured,
	}
	if err := db.Create(&entry).Error; err != nil {
		store.Remove(path)
		return nil, apperror.Internal("failed to create portfolio entry", err)
	}
	return &entry, nil
}

func ListPortfolio(db *gorm.DB) ([]models.PortfolioEntry, error) {
	entries := []models.PortfolioEntry{}
	if err := db.Order("created_at DESC, id DESC").Find(&entries).Error; err != nil {
		return nil, apperror.Internal("failed to list portfolio", err)
	}
	return entries, nil
}

// DeletePortfolioEntry removes the record and its image file.
func DeletePortfolioEntry(db *gorm.DB, store *upload.Storage, id uint) error {
	var entry models.PortfolioEntry
	if err := db.First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("Réalisation introuvable")
		}
		return apperror.Internal("failed to load portfolio entry", err)
	}
	if err := db.Delete(&entry).Error; err != nil {
		return apperror.Internal("failed to delete portfolio entry", err)
	}
	if err := store.Remove(entry.Image); err != nil {
		zap.L().Warn("failed to remove portfolio image", zap.String("image", entry.Image), zap.Error(err))
	}
	return nil
}

func UploadPortfolioEntry(db *gorm.DB, store *upload.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		in := PortfolioInput{
			Title:       c.PostForm("title"),
			Category:    c.PostForm("category"),
			Description: c.PostForm("description"),
		}
		if raw := c.PostForm("featured"); raw != "" {
			featured, err := strconv.ParseBool(raw)
			if err != nil {
				response.Error(c, apperror.Validation("Les données fournies sont invalides", map[string]string{"featured": "must be a boolean"}))
				return
			}
			in.Featured = featured
		}
		image, err := c.FormFile("image")
		if err != nil {
			image = nil
		}

		entry, err := CreatePortfolioEntry(db, store, in, image)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Created(c, entry)
	}
}

// GetPortfolio serves both the public gallery and the admin list.
func GetPortfolio(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := ListPortfolio(db)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, entries)
	}
}

func DeletePortfolioHandler(db *gorm.DB, store *upload.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := validation.ParseID(c.Param("id"))
		if err != nil {
			response.Error(c, err)
			return
		}
		if err := DeletePortfolioEntry(db, store, id); err != nil {
			response.Error(c, err)
			return
		}
		response.Message(c, "Réalisation supprimée")
	}
}
