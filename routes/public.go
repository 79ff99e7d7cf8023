package routes

import (
	adminController "github.com/Traorelacina/Glory-event/controllers/admin"
	contactController "github.com/Traorelacina/Glory-event/controllers/contact"
	orderControllers "github.com/Traorelacina/Glory-event/controllers/order"
	productcontroller "github.com/Traorelacina/Glory-event/controllers/product"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupPublicRoutes(api *gin.RouterGroup, db *gorm.DB, hub *orderControllers.Hub) {
	api.GET("/produits", productcontroller.GetProducts(db))
	api.GET("/produits/:id", productcontroller.GetProductByID(db))

	api.POST("/commandes", orderControllers.PlaceOrderHandler(db, hub))
	api.POST("/contacts", contactController.CreateContactHandler(db))

	api.GET("/services", adminController.GetServices(db))
	api.GET("/portfolio", adminController.GetPortfolio(db))
}
