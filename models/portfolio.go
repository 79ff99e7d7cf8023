package models

import "time"

type PortfolioEntry struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Category    string    `gorm:"size:100;not null" json:"category"` // mariage, reunion, professionnel, autre
	Description string    `gorm:"type:text" json:"description"`
	Image       string    `gorm:"not null" json:"image"`
	Featured    bool      `gorm:"not null;default:false" json:"featured"`
	CreatedAt   time.Time `json:"created_at"`
}

func (PortfolioEntry) TableName() string { return "portfolios" }
