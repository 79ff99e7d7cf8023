package auth

import (
	"errors"
	"strings"

	"github.com/Traorelacina/Glory-event/apperror"
	"github.com/Traorelacina/Glory-event/models"
	"github.com/Traorelacina/Glory-event/response"
	"github.com/Traorelacina/Glory-event/validation"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResult struct {
	Token string       `json:"token"`
	Admin models.Admin `json:"admin"`
}

var errBadCredentials = apperror.Unauthorized("Email ou mot de passe incorrect")

// Login checks the admin credentials and issues a bearer token.
func Login(db *gorm.DB, issuer *Issuer, email, password string) (*LoginResult, error) {
	var admin models.Admin
	err := db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errBadCredentials
	}
	if err != nil {
		return nil, apperror.Internal("failed to load admin", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, errBadCredentials
	}

	token, err := issuer.Issue(admin)
	if err != nil {
		return nil, apperror.Internal("failed to sign token", err)
	}
	return &LoginResult{Token: token, Admin: admin}, nil
}

// AdminLoginHandler handles POST /api/admin/login.
func AdminLoginHandler(db *gorm.DB, issuer *Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, validation.FromBindError(err))
			return
		}
		result, err := Login(db, issuer, req.Email, req.Password)
		if err != nil {
			if apperror.Is(err, apperror.KindAuth) {
				zap.L().Info("admin login rejected", zap.String("email", req.Email), zap.String("ip", c.ClientIP()))
			}
			response.Error(c, err)
			return
		}
		response.OK(c, result)
	}
}

// MeHandler returns the admin behind the current session.
func MeHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := SessionFrom(c)
		if !ok || session.AdminID == 0 {
			response.Error(c, apperror.Unauthorized("Aucun administrateur associé à cette session"))
			return
		}
		var admin models.Admin
		if err := db.First(&admin, session.AdminID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.Error(c, apperror.Unauthorized("Administrateur introuvable"))
				return
			}
			response.Error(c, apperror.Internal("failed to load admin", err))
			return
		}
		response.OK(c, admin)
	}
}
