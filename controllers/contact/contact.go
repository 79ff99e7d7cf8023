package contactController

import (
	"errors"
	"strings"

	"github.com/Traorelacina/Glory-event/apperror"
	"github.com/Traorelacina/Glory-event/models"
	"github.com/Traorelacina/Glory-event/response"
	"github.com/Traorelacina/Glory-event/validation"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// -------- Request Structs --------

type CreateContactRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	Email   string `json:"email" binding:"required,email,max=255"`
	Phone   string `json:"phone" binding:"max=50"`
	Subject string `json:"subject" binding:"required,max=255"`
	Message string `json:"message" binding:"required"`
	Service string `json:"service" binding:"max=100"`
}

// IsRead is a pointer so that an explicit false is told apart from a
// missing field.
type MarkReadRequest struct {
	IsRead *bool `json:"is_read" binding:"required"`
}

// -------- Core Logic --------

// CreateContact stores a message from the public contact form. It always
// starts unread.
func CreateContact(db *gorm.DB, req CreateContactRequest) (*models.Contact, error) {
	v := validation.Violations{}
	validation.Required("name", req.Name, v)
	validation.Required("subject", req.Subject, v)
	validation.Required("message", req.Message, v)
	if err := v.Err(); err != nil {
		return nil, err
	}

	contact := models.Contact{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Phone:   strings.TrimSpace(req.Phone),
		Subject: strings.TrimSpace(req.Subject),
		Message: req.Message,
		Service: strings.TrimSpace(req.Service),
		IsRead:  false,
	}
	if err := db.Create(&contact).Error; err != nil {
		return nil, apperror.Internal("failed to create contact", err)
	}
	return &contact, nil
}

// ListContacts returns every contact, newest first.
func ListContacts(db *gorm.DB) ([]models.Contact, error) {
	contacts := []models.Contact{}
	if err := db.Order("created_at DESC, id DESC").Find(&contacts).Error; err != nil {
		return nil, apperror.Internal("failed to list contacts", err)
	}
	return contacts, nil
}

func RecentContacts(db *gorm.DB, limit int) ([]models.Contact, error) {
	contacts := []models.Contact{}
	if err := db.Order("created_at DESC, id DESC").Limit(limit).Find(&contacts).Error; err != nil {
		return nil, apperror.Internal("failed to list recent contacts", err)
	}
	return contacts, nil
}

// GetContact loads a contact without changing its read state.
func GetContact(db *gorm.DB, id uint) (*models.Contact, error) {
	var contact models.Contact
	if err := db.First(&contact, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Contact introuvable")
		}
		return nil, apperror.Internal("failed to load contact", err)
	}
	return &contact, nil
}

// MarkRead sets is_read to value. Both directions are allowed.
func MarkRead(db *gorm.DB, id uint, value bool) (*models.Contact, error) {
	contact, err := GetContact(db, id)
	if err != nil {
		return nil, err
	}
	if err := db.Model(contact).Update("is_read", value).Error; err != nil {
		return nil, apperror.Internal("failed to update contact", err)
	}
	contact.IsRead = value
	return contact, nil
}

// OpenAndAcknowledge is what an admin opening a message does: load it and
// mark it read.
func OpenAndAcknowledge(db *gorm.DB, id uint) (*models.Contact, error) {
	if _, err := GetContact(db, id); err != nil {
		return nil, err
	}
	return MarkRead(db, id, true)
}

func DeleteContact(db *gorm.DB, id uint) error {
	res := db.Delete(&models.Contact{}, id)
	if res.Error != nil {
		return apperror.Internal("failed to delete contact", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("Contact introuvable")
	}
	return nil
}

// -------- Handlers --------

// Contact form (public)
func CreateContactHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateContactRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, validation.FromBindError(err))
			return
		}
		contact, err := CreateContact(db, req)
		if err != nil {
			response.Error(c, err)
			return
		}
		zap.L().Info("contact received", zap.Uint("id", contact.ID), zap.String("subject", contact.Subject))
		response.Created(c, contact)
	}
}

func GetAllContactsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		contacts, err := ListContacts(db)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, contacts)
	}
}

func GetContactByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := validation.ParseID(c.Param("id"))
		if err != nil {
			response.Error(c, err)
			return
		}
		contact, err := GetContact(db, id)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, contact)
	}
}

func MarkReadHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := validation.ParseID(c.Param("id"))
		if err != nil {
			response.Error(c, err)
			return
		}
		var req MarkReadRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, validation.FromBindError(err))
			return
		}
		contact, err := MarkRead(db, id, *req.IsRead)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, contact)
	}
}

func OpenContactHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := validation.ParseID(c.Param("id"))
		if err != nil {
			response.Error(c, err)
			return
		}
		contact, err := OpenAndAcknowledge(db, id)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, contact)
	}
}

func DeleteContactHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := validation.ParseID(c.Param("id"))
		if err != nil {
			response.Error(c, err)
			return
		}
		if err := DeleteContact(db, id); err != nil {
			response.Error(c, err)
			return
		}
		response.Message(c, "Contact supprimé")
	}
}
