package database

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Traorelacina/Glory-event/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the configured store, retrying while postgres comes up.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}

	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// unique-index violations surface as gorm.ErrDuplicatedKey
		TranslateError: true,
	}
	var db *gorm.DB
	var err error
	for attempt := 1; attempt <= 5; attempt++ {
		db, err = gorm.Open(dialector, cfg)
		if err == nil {
			break
		}
		zap.L().Warn("database connection failed, retrying", zap.Int("attempt", attempt), zap.Error(err))
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates every table the API uses.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Admin{},
		&models.Product{},
		&models.Order{},
		&models.OrderLine{},
		&models.Contact{},
		&models.Service{},
		&models.PortfolioEntry{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

// EnsureAdmin creates the bootstrap admin account if no admin uses email yet.
// An existing account is left untouched, password included.
func EnsureAdmin(db *gorm.DB, name, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		zap.L().Warn("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin bootstrap")
		return nil
	}

	var existing models.Admin
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	admin := models.Admin{Name: name, Email: email, PasswordHash: string(hash), Role: "admin"}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	zap.L().Info("bootstrap admin created", zap.String("email", email))
	return nil
}
