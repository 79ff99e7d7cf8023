package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Clients read prices as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

type Product struct {
	ID          uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	Slug        string          `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Image       string          `json:"image"`
	Category    string          `gorm:"size:100;not null;index" json:"category"`
	InStock     bool            `gorm:"not null" json:"in_stock"`
	Featured    bool            `gorm:"not null;default:false" json:"featured"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (Product) TableName() string { return "produits" }
