package productcontroller

import (
	"io"

	"github.com/Traorelacina/Glory-event/apperror"
	"github.com/Traorelacina/Glory-event/models"
	"github.com/Traorelacina/Glory-event/response"
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

// Column order shared by export and import.
var productSheetHeaders = []string{
	"ID", "Name", "Slug", "Description", "Price", "Image", "Category", "InStock", "Featured",
	"CreatedAt", "UpdatedAt",
}

func WriteProductsWorkbook(w io.Writer, products []models.Product) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Produits")
	if err != nil {
		return err
	}

	headerRow := sheet.AddRow()
	for _, h := range productSheetHeaders {
		headerRow.AddCell().SetValue(h)
	}

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetValue(p.ID)
		row.AddCell().SetValue(p.Name)
		row.AddCell().SetValue(p.Slug)
		row.AddCell().SetValue(p.Description)
		row.AddCell().SetString(p.Price.StringFixed(2))
		row.AddCell().SetValue(p.Image)
		row.AddCell().SetValue(p.Category)
		row.AddCell().SetBool(p.InStock)
		row.AddCell().SetBool(p.Featured)
		row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
		row.AddCell().SetValue(p.UpdatedAt.Format("2006-01-02 15:04:05"))
	}

	return file.Write(w)
}

func ExportProductsToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := ListProducts(db)
		if err != nil {
			response.Error(c, err)
			return
		}

		// Set response headers for download
		c.Header("Content-Disposition", "attachment; filename=produits.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := WriteProductsWorkbook(c.Writer, products); err != nil {
			response.Error(c, apperror.Internal("failed to write products workbook", err))
			return
		}
	}
}
