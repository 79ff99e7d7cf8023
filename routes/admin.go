package routes

import (
	"github.com/Traorelacina/Glory-event/auth"
	adminController "github.com/Traorelacina/Glory-event/controllers/admin"
	contactController "github.com/Traorelacina/Glory-event/controllers/contact"
	orderControllers "github.com/Traorelacina/Glory-event/controllers/order"
	productcontroller "github.com/Traorelacina/Glory-event/controllers/product"
	"github.com/Traorelacina/Glory-event/middleware"
	"github.com/Traorelacina/Glory-event/upload"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers all "/api/admin/*" endpoints behind the token gate.
func SetupAdminRoutes(api *gin.RouterGroup, db *gorm.DB, issuer *auth.Issuer, apiKey string, store *upload.Storage, hub *orderControllers.Hub) {
	// websocket endpoint for real-time order updates; the only route that
	// takes the JWT from the query string
	api.GET("/admin/ws/commandes", middleware.ValidateUpgradeToken(issuer, apiKey), orderControllers.OrderWebSocketHandler(hub))

	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.ValidateToken(issuer, apiKey))
	{
		// ─────────── Profile & Accounts ───────────
		adminGroup.GET("/me", auth.MeHandler(db))
		adminGroup.GET("/admins", adminController.GetAllAdmins(db))

		// ─────────── Dashboard ───────────
		dashboard := adminGroup.Group("/dashboard")
		{
			dashboard.GET("", adminController.GetDashboard(db))
			dashboard.GET("/recent-commandes", adminController.GetRecentOrders(db))
			dashboard.GET("/recent-contacts", adminController.GetRecentContacts(db))
		}

		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/produits")
		{
			productAdmin.GET("", productcontroller.GetProducts(db))
			productAdmin.POST("", productcontroller.CreateProductHandler(db, store))
			productAdmin.GET("/export", productcontroller.ExportProductsToExcel(db))
			productAdmin.POST("/import", productcontroller.ImportProductsFromExcel(db))
			productAdmin.PUT("/:id", productcontroller.UpdateProductHandler(db, store))
			productAdmin.DELETE("/:id", productcontroller.DeleteProductHandler(db))
		}

		// ─────────── Orders ───────────
		SetupOrderRoutes(adminGroup, db, hub)

		// ─────────── Contacts ───────────
		contacts := adminGroup.Group("/contacts")
		{
			contacts.GET("", contactController.GetAllContactsHandler(db))
			contacts.GET("/:id", contactController.GetContactByIDHandler(db))
			contacts.PUT("/:id/read", contactController.MarkReadHandler(db))
			contacts.POST("/:id/open", contactController.OpenContactHandler(db))
			contacts.DELETE("/:id", contactController.DeleteContactHandler(db))
		}

		// ─────────── Services & Portfolio ───────────
		services := adminGroup.Group("/services")
		{
			services.GET("", adminController.GetServices(db))
			services.POST("", adminController.CreateServiceHandler(db))
			services.DELETE("/:id", adminController.DeleteServiceHandler(db))
		}
		portfolio := adminGroup.Group("/portfolio")
		{
			portfolio.GET("", adminController.GetPortfolio(db))
			portfolio.POST("", adminController.UploadPortfolioEntry(db, store))
			portfolio.DELETE("/:id", adminController.DeletePortfolioHandler(db, store))
		}
	}
}
