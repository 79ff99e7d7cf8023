package adminController

import (
	"strings"

	"github.com/Traorelacina/Glory-event/apperror"
	"github.com/Traorelacina/Glory-event/models"
	"github.com/Traorelacina/Glory-event/response"
	"github.com/Traorelacina/Glory-event/validation"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateServiceRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Slug        string `json:"slug" binding:"max=255"`
	Description string `json:"description"`
	Icon        string `json:"icon" binding:"max=100"`
	Image       string `json:"image"`
}

func CreateService(db *gorm.DB, req CreateServiceRequest) (*models.Service, error) {
	v := validation.Violations{}
	validation.Required("title", req.Title, v)

	slug := validation.Slugify(req.Slug)
	if slug == "" {
		slug = validation.Slugify(req.Title)
	}
	if slug == "" && strings.TrimSpace(req.Title) != "" {
		v.Add("slug", "could not be derived from title")
	}
	if slug != "" {
		var count int64
		if err := db.Model(&models.Service{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
			return nil, apperror.Internal("failed to check slug", err)
		}
		if count > 0 {
			v.Add("slug", "has already been taken")
		}
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	service := models.Service{
		Title:       strings.TrimSpace(req.Title),
		Slug:        slug,
		Description: req.Description,
		Icon:        req.Icon,
		Image:       req.Image,
	}
	if err := db.Create(&service).Error; err != nil {
		return nil, apperror.Internal("failed to create service", err)
	}
	return &service, nil
}

func ListServices(db *gorm.DB) ([]models.Service, error) {
	services := []models.Service{}
	if err := db.Order("id ASC").Find(&services).Error; err != nil {
		return nil, apperror.Internal("failed to list services", err)
	}
	return services, nil
}

func DeleteService(db *gorm.DB, id uint) error {
	res := db.Delete(&models.Service{}, id)
	if res.Error != nil {
		return apperror.Internal("failed to delete service", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("Service introuvable")
	}
	return nil
}

func CreateServiceHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateServiceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, validation.FromBindError(err))
			return
		}
		service, err := CreateService(db, req)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Created(c, service)
	}
}

// GetServices serves both the public list and the admin list.
func GetServices(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		services, err := ListServices(db)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, services)
	}
}

func DeleteServiceHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := validation.ParseID(c.Param("id"))
		if err != nil {
			response.Error(c, err)
			return
		}
		if err := DeleteService(db, id); err != nil {
			response.Error(c, err)
			return
		}
		response.Message(c, "Service supprimé")
	}
}
