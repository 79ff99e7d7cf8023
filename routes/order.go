package routes

import (
	orderControllers "github.com/Traorelacina/Glory-event/controllers/order"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupOrderRoutes(admin *gin.RouterGroup, db *gorm.DB, hub *orderControllers.Hub) {
	orders := admin.Group("/commandes")
	{
		// Fetch all orders
		orders.GET("", orderControllers.GetAllOrdersHandler(db))

		// Download every order line as a workbook
		orders.GET("/export", orderControllers.ExportOrdersToExcel(db))

		orders.GET("/:orderID", orderControllers.GetOrderByIDHandler(db))

		// Update order status (en_attente, en_cours, livree, annulee)
		orders.PUT("/:orderID", orderControllers.UpdateOrderStatusHandler(db, hub))

		orders.DELETE("/:orderID", orderControllers.DeleteOrderHandler(db, hub))
	}
}
