package adminController

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Traorelacina/Glory-event/apperror"
	"github.com/Traorelacina/Glory-event/database"
	"github.com/Traorelacina/Glory-event/models"
	"github.com/Traorelacina/Glory-event/upload"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := database.Open("sqlite", "file:"+name+"?mode=memory&cache=shared")
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, database.Migrate(db))
	return db
}

func TestDashboardCountsMatchRows(t *testing.T) {
	db := newTestDB(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&models.Product{
			Name: fmt.Sprintf("Produit %d", i), Slug: fmt.Sprintf("produit-%d", i),
			Description: "d", Category: "decoration", Price: decimal.NewFromInt(100), InStock: true,
		}).Error)
	}
	for i, status := range []models.OrderStatus{models.OrderStatusPending, models.OrderStatusDelivered} {
		require.NoError(t, db.Create(&models.Order{
			Numero: fmt.Sprintf("ref-%d", i), ClientName: "Awa", ClientEmail: "awa@example.com",
			ClientPhone: "0700000000", Total: decimal.Zero, Status: status,
		}).Error)
	}
	for i := 0; i < 5; i++ {
		require.NoError(t, db.Create(&models.Contact{
			Name: "Awa", Email: "awa@example.com", Subject: "Devis", Message: "Bonjour",
		}).Error)
	}
	require.NoError(t, db.Create(&models.PortfolioEntry{Title: "Mariage", Category: "mariage", Image: "/uploads/portfolio/a.png"}).Error)
	_, err := CreateService(db, CreateServiceRequest{Title: "Décoration"})
	require.NoError(t, err)

	stats, err := GetDashboardStats(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, DashboardStats{
		TotalServices:  1,
		TotalProducts:  3,
		TotalOrders:    2,
		PendingOrders:  1,
		TotalContacts:  5,
		TotalPortfolio: 1,
	}, *stats)
}

func TestDashboardEmptyStore(t *testing.T) {
	db := newTestDB(t)

	stats, err := GetDashboardStats(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, DashboardStats{}, *stats)
}

func TestDashboardFailsAsInternal(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Migrator().DropTable(&models.Contact{}))

	_, err := GetDashboardStats(context.Background(), db)
	assert.True(t, apperror.Is(err, apperror.KindInternal))
}

func TestServices(t *testing.T) {
	db := newTestDB(t)

	service, err := CreateService(db, CreateServiceRequest{Title: "Traiteur & Cocktails"})
	require.NoError(t, err)
	assert.Equal(t, "traiteur-cocktails", service.Slug)

	_, err = CreateService(db, CreateServiceRequest{Title: "Traiteur & Cocktails"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	services, err := ListServices(db)
	require.NoError(t, err)
	assert.Len(t, services, 1)

	require.NoError(t, DeleteService(db, service.ID))
	assert.True(t, apperror.Is(DeleteService(db, service.ID), apperror.KindNotFound))
}

func TestPortfolioUploadAndDelete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	dir := t.TempDir()
	store := upload.New(dir, 2<<20)

	r := gin.New()
	r.POST("/portfolio", UploadPortfolioEntry(db, store))
	r.DELETE("/portfolio/:id", DeletePortfolioHandler(db, store))

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	require.NoError(t, mw.WriteField("title", "Mariage à Assinie"))
	require.NoError(t, mw.WriteField("category", "mariage"))
	fw, err := mw.CreateFormFile("image", "assinie.png")
	require.NoError(t, err)
	_, err = fw.Write(pngBytes)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/portfolio", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	entries, err := ListPortfolio(db)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	stored := filepath.Join(dir, "portfolio", filepath.Base(entries[0].Image))
	_, err = os.Stat(stored)
	require.NoError(t, err)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/portfolio/%d", entries[0].ID), nil))
	require.Equal(t, http.StatusOK, w.Code)
	_, err = os.Stat(stored)
	assert.True(t, os.IsNotExist(err))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/portfolio/%d", entries[0].ID), nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPortfolioRequiresImage(t *testing.T) {
	db := newTestDB(t)

	_, err := CreatePortfolioEntry(db, upload.New(t.TempDir(), 2<<20), PortfolioInput{Title: "Gala"}, nil)

	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Fields, "image")
	assert.Contains(t, appErr.Fields, "category")
}
