package orderControllers

import (
	"errors"
	"fmt"
	"time"

	"github.com/Traorelacina/Glory-event/apperror"
	"github.com/Traorelacina/Glory-event/models"
	"github.com/Traorelacina/Glory-event/response"
	"github.com/Traorelacina/Glory-event/validation"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// -------- Request Structs --------

type PlaceOrderRequest struct {
	ClientName    string           `json:"client_name" binding:"required,max=255"`
	ClientEmail   string           `json:"client_email" binding:"required,email"`
	ClientPhone   string           `json:"client_phone" binding:"required,max=50"`
	ClientAddress string           `json:"client_address"`
	Items         []PlaceOrderItem `json:"produits"`
}

// PlaceOrderItem is checked by PlaceOrder so that every bad line, including
// unknown products, is reported in one response.
type PlaceOrderItem struct {
	ProductID uint `json:"produit_id"`
	Quantity  int  `json:"quantity"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// -------- Helpers --------

// ParseOrderStatus accepts exactly one of the four lifecycle values.
func ParseOrderStatus(status string) (models.OrderStatus, error) {
	switch models.OrderStatus(status) {
	case models.OrderStatusPending,
		models.OrderStatusInProcess,
		models.OrderStatusDelivered,
		models.OrderStatusCancelled:
		return models.OrderStatus(status), nil
	default:
		return "", apperror.Validation("Statut de commande invalide", map[string]string{
			"status": "must be one of: en_attente, en_cours, livree, annulee",
		})
	}
}

// Example: 20250908130500-<uuid4>
func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

func preloadLines(db *gorm.DB) *gorm.DB {
	return db.Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") })
}

// -------- Core Logic --------

// PlaceOrder snapshots every referenced product into an order line and
// stores the order with its server-computed total, all in one transaction.
func PlaceOrder(db *gorm.DB, req PlaceOrderRequest) (*models.Order, error) {
	return placeOrder(db, req, validation.Violations{})
}

// placeOrder adds the item checks to v, which may already hold violations
// found while binding the request.
func placeOrder(db *gorm.DB, req PlaceOrderRequest, v validation.Violations) (*models.Order, error) {
	order := models.Order{
		Numero:        generateOrderRef(),
		ClientName:    req.ClientName,
		ClientEmail:   req.ClientEmail,
		ClientPhone:   req.ClientPhone,
		ClientAddress: req.ClientAddress,
		Status:        models.OrderStatusPending,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		ids := make([]uint, 0, len(req.Items))
		for _, item := range req.Items {
			ids = append(ids, item.ProductID)
		}
		var products []models.Product
		// Hold the rows so a concurrent price edit cannot land between snapshot and insert.
		if err := tx.Clauses(clause.Locking{Strength: "SHARE"}).Where("id IN ?", ids).Find(&products).Error; err != nil {
			return apperror.Internal("failed to load products", err)
		}
		byID := make(map[uint]models.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}

		if len(req.Items) == 0 {
			v.Add("produits", "is required")
		}
		total := decimal.Zero
		for i, item := range req.Items {
			if item.Quantity < 1 {
				v.Add(fmt.Sprintf("produits[%d].quantity", i), "must be at least 1")
			}
			if item.ProductID == 0 {
				v.Add(fmt.Sprintf("produits[%d].produit_id", i), "is required")
				continue
			}
			product, ok := byID[item.ProductID]
			if !ok {
				v.Add(fmt.Sprintf("produits[%d].produit_id", i), "unknown product")
				continue
			}
			productID := product.ID
			subtotal := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
			total = total.Add(subtotal)
			order.Lines = append(order.Lines, models.OrderLine{
				ProductID: &productID,
				Name:      product.Name,
				Image:     product.Image,
				UnitPrice: product.Price,
				Quantity:  item.Quantity,
				Subtotal:  subtotal,
			})
		}
		if err := v.Err(); err != nil {
			return err
		}

		order.Total = total
		if err := tx.Create(&order).Error; err != nil {
			return apperror.Internal("failed to create order", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders returns every order with its lines, newest first.
func ListOrders(db *gorm.DB) ([]models.Order, error) {
	orders := []models.Order{}
	if err := preloadLines(db).Order("created_at DESC, id DESC").Find(&orders).Error; err != nil {
		return nil, apperror.Internal("failed to list orders", err)
	}
	return orders, nil
}

// RecentOrders returns the limit newest orders with their lines.
func RecentOrders(db *gorm.DB, limit int) ([]models.Order, error) {
	orders := []models.Order{}
	if err := preloadLines(db).Order("created_at DESC, id DESC").Limit(limit).Find(&orders).Error; err != nil {
		return nil, apperror.Internal("failed to list recent orders", err)
	}
	return orders, nil
}

func GetOrder(db *gorm.DB, id uint) (*models.Order, error) {
	var order models.Order
	if err := preloadLines(db).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Commande introuvable")
		}
		return nil, apperror.Internal("failed to load order", err)
	}
	return &order, nil
}

// UpdateOrderStatus moves an order to any of the four statuses. There is no
// transition graph: every status can follow every other, including itself.
func UpdateOrderStatus(db *gorm.DB, id uint, status string) (*models.Order, error) {
	newStatus, err := ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}
	order, err := GetOrder(db, id)
	if err != nil {
		return nil, err
	}
	if err := db.Model(order).Update("status", newStatus).Error; err != nil {
		return nil, apperror.Internal("failed to update order status", err)
	}
	order.Status = newStatus
	return order, nil
}

// DeleteOrder removes the order and its lines.
func DeleteOrder(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("commande_id = ?", id).Delete(&models.OrderLine{}).Error; err != nil {
			return apperror.Internal("failed to delete order lines", err)
		}
		res := tx.Delete(&models.Order{}, id)
		if res.Error != nil {
			return apperror.Internal("failed to delete order", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperror.NotFound("Commande introuvable")
		}
		return nil
	})
}

// -------- Handlers --------

// Place order (public)
func PlaceOrderHandler(db *gorm.DB, hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PlaceOrderRequest
		v := validation.Violations{}
		if err := c.ShouldBindJSON(&req); err != nil {
			bindErrs, ok := validation.BindViolations(err)
			if !ok {
				response.Error(c, validation.FromBindError(err))
				return
			}
			v = bindErrs
		}
		order, err := placeOrder(db, req, v)
		if err != nil {
			response.Error(c, err)
			return
		}
		zap.L().Info("order placed", zap.String("numero", order.Numero), zap.String("total", order.Total.StringFixed(2)))
		hub.Broadcast(EventOrderCreated, order)
		response.Created(c, order)
	}
}

func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := ListOrders(db)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, orders)
	}
}

func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := validation.ParseID(c.Param("orderID"))
		if err != nil {
			response.Error(c, err)
			return
		}
		order, err := GetOrder(db, id)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, order)
	}
}

// Update order status (admin)
func UpdateOrderStatusHandler(db *gorm.DB, hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := validation.ParseID(c.Param("orderID"))
		if err != nil {
			response.Error(c, err)
			return
		}
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, validation.FromBindError(err))
			return
		}
		order, err := UpdateOrderStatus(db, id, req.Status)
		if err != nil {
			response.Error(c, err)
			return
		}
		hub.Broadcast(EventOrderStatusUpdated, order)
		response.OK(c, order)
	}
}

func DeleteOrderHandler(db *gorm.DB, hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := validation.ParseID(c.Param("orderID"))
		if err != nil {
			response.Error(c, err)
			return
		}
		if err := DeleteOrder(db, id); err != nil {
			response.Error(c, err)
			return
		}
		hub.Broadcast(EventOrderDeleted, gin.H{"id": id})
		response.Message(c, "Commande supprimée")
	}
}
