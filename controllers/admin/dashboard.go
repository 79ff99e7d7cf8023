package adminController

import (
	"context"

	"github.com/Traorelacina/Glory-event/apperror"
	contactController "github.com/Traorelacina/Glory-event/controllers/contact"
	orderControllers "github.com/Traorelacina/Glory-event/controllers/order"
	"github.com/Traorelacina/Glory-event/models"
	"github.com/Traorelacina/Glory-event/response"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// RecentLimit is how many rows the dashboard widgets show.
const RecentLimit = 10

type DashboardStats struct {
	TotalServices  int64 `json:"total_services"`
	TotalProducts  int64 `json:"total_produits"`
	TotalOrders    int64 `json:"total_commandes"`
	PendingOrders  int64 `json:"commandes_en_attente"`
	TotalContacts  int64 `json:"total_contacts"`
	TotalPortfolio int64 `json:"total_portfolio"`
}

// GetDashboardStats runs the six counts concurrently. They do not share a
// transaction, so a write landing mid-way can make them disagree slightly.
// Any failed count fails the whole call.
func GetDashboardStats(ctx context.Context, db *gorm.DB) (*DashboardStats, error) {
	var stats DashboardStats
	g, ctx := errgroup.WithContext(ctx)

	count := func(dst *int64, model any, query ...any) {
		g.Go(func() error {
			q := db.WithContext(ctx).Model(model)
			if len(query) > 0 {
				q = q.Where(query[0], query[1:]...)
			}
			return q.Count(dst).Error
		})
	}
	count(&stats.TotalServices, &models.Service{})
	count(&stats.TotalProducts, &models.Product{})
	count(&stats.TotalOrders, &models.Order{})
	count(&stats.PendingOrders, &models.Order{}, "status = ?", models.OrderStatusPending)
	count(&stats.TotalContacts, &models.Contact{})
	count(&stats.TotalPortfolio, &models.PortfolioEntry{})

	if err := g.Wait(); err != nil {
		return nil, apperror.Internal("failed to compute dashboard", err)
	}
	return &stats, nil
}

func GetDashboard(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := GetDashboardStats(c.Request.Context(), db)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, stats)
	}
}

func GetRecentOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := orderControllers.RecentOrders(db, RecentLimit)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, orders)
	}
}

func GetRecentContacts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		contacts, err := contactController.RecentContacts(db, RecentLimit)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, contacts)
	}
}
