package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "en_attente" // Order placed, awaiting handling
	OrderStatusInProcess OrderStatus = "en_cours"   // Being prepared or delivered
	OrderStatusDelivered OrderStatus = "livree"     // Customer received the order
	OrderStatusCancelled OrderStatus = "annulee"    // Cancelled
)

// OrderStatuses lists every accepted status, in lifecycle order.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusInProcess,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

type Order struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Numero        string          `gorm:"size:64;uniqueIndex;not null" json:"numero"`
	ClientName    string          `gorm:"size:255;not null" json:"client_name"`
	ClientEmail   string          `gorm:"size:255;not null;index" json:"client_email"`
	ClientPhone   string          `gorm:"size:50;not null" json:"client_phone"`
	ClientAddress string          `json:"client_address,omitempty"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	Status        OrderStatus     `gorm:"type:VARCHAR(20);not null;default:'en_attente';index" json:"status"`
	Lines         []OrderLine     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"produits"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (Order) TableName() string { return "commandes" }

// OrderLine is a copy of the product as it was when the order was placed.
// ProductID is informational only: the product may since have been edited or deleted.
type OrderLine struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrderID   uint            `gorm:"column:commande_id;index;not null" json:"commande_id"`
	ProductID *uint           `gorm:"column:produit_id" json:"produit_id"`
	Name      string          `gorm:"size:255;not null" json:"name"`
	Image     string          `json:"image"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
}

func (OrderLine) TableName() string { return "commande_produits" }
