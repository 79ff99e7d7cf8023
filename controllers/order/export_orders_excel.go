package orderControllers

import (
	"io"

	"github.com/Traorelacina/Glory-event/apperror"
	"github.com/Traorelacina/Glory-event/models"
	"github.com/Traorelacina/Glory-event/response"
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

var orderExportHeaders = []string{
	"Numero", "Date", "Client", "Email", "Telephone", "Adresse", "Statut", "Total",
	"Produit", "Quantite", "PrixUnitaire", "SousTotal",
}

// WriteOrdersWorkbook writes one row per order line; orders without lines
// still get a row.
func WriteOrdersWorkbook(w io.Writer, orders []models.Order) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Commandes")
	if err != nil {
		return err
	}

	headerRow := sheet.AddRow()
	for _, h := range orderExportHeaders {
		headerRow.AddCell().SetString(h)
	}

	for _, o := range orders {
		lines := o.Lines
		if len(lines) == 0 {
			lines = []models.OrderLine{{}}
		}
		for _, l := range lines {
			row := sheet.AddRow()
			row.AddCell().SetString(o.Numero)
			row.AddCell().SetString(o.CreatedAt.Format("2006-01-02 15:04:05"))
			row.AddCell().SetString(o.ClientName)
			row.AddCell().SetString(o.ClientEmail)
			row.AddCell().SetString(o.ClientPhone)
			row.AddCell().SetString(o.ClientAddress)
			row.AddCell().SetString(string(o.Status))
			row.AddCell().SetFloat(o.Total.InexactFloat64())
			row.AddCell().SetString(l.Name)
			row.AddCell().SetInt(l.Quantity)
			row.AddCell().SetFloat(l.UnitPrice.InexactFloat64())
			row.AddCell().SetFloat(l.Subtotal.InexactFloat64())
		}
	}

	return file.Write(w)
}

func ExportOrdersToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := ListOrders(db)
		if err != nil {
			response.Error(c, err)
			return
		}

		c.Header("Content-Disposition", "attachment; filename=commandes.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := WriteOrdersWorkbook(c.Writer, orders); err != nil {
			response.Error(c, apperror.Internal("failed to write orders workbook", err))
			return
		}
	}
}
