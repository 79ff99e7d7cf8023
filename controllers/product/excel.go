package productcontroller

import (
	"io"
	"strconv"
	"strings"

	"github.com/Traorelacina/Glory-event/apperror"
	"github.com/Traorelacina/Glory-event/models"
	"github.com/Traorelacina/Glory-event/response"
	"github.com/Traorelacina/Glory-event/validation"
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ImportResult struct {
	Created int `json:"created_count"`
	Updated int `json:"updated_count"`
	Skipped int `json:"skipped_count"`
}

// ImportProducts reads a workbook laid out like the export. A row whose ID
// matches a product updates it, any other row creates one. Rows that fail
// validation are skipped.
func ImportProducts(db *gorm.DB, r io.ReaderAt, size int64) (ImportResult, error) {
	var result ImportResult

	xlFile, err := xlsx.OpenReaderAt(r, size)
	if err != nil {
		return result, apperror.Validation("Fichier Excel illisible", map[string]string{"file": "must be an xlsx workbook"})
	}
	if len(xlFile.Sheets) == 0 || xlFile.Sheets[0].MaxRow < 2 {
		return result, apperror.Validation("Fichier Excel vide", map[string]string{"file": "must contain a header row and at least one product"})
	}

	sheet := xlFile.Sheets[0]
	for i := 1; i < len(sheet.Rows); i++ {
		row := sheet.Rows[i]
		get := func(index int) string {
			if row != nil && index < len(row.Cells) {
				return strings.TrimSpace(row.Cells[index].String())
			}
			return ""
		}
		boolCell := func(index int) *bool {
			b, err := strconv.ParseBool(strings.ToLower(get(index)))
			if err != nil {
				return nil
			}
			return &b
		}
		strPtr := func(index int) *string {
			s := get(index)
			return &s
		}

		in := ProductInput{
			Name:        strPtr(1),
			Description: strPtr(3),
			Price:       strPtr(4),
			Image:       strPtr(5),
			Category:    strPtr(6),
			InStock:     boolCell(7),
			Featured:    boolCell(8),
		}
		if slug := get(2); slug != "" {
			in.Slug = &slug
		}

		product := models.Product{InStock: true}
		updating := false
		if id, err := strconv.ParseUint(get(0), 10, 64); err == nil && id > 0 {
			if existing, err := GetProduct(db, uint(id)); err == nil {
				product = *existing
				updating = true
			}
		}

		v := validation.Violations{}
		derived := applyInput(&product, in, !updating, v)
		if err := resolveSlug(db, &product, derived, v); err != nil {
			return result, err
		}
		if !v.Empty() {
			result.Skipped++
			continue
		}

		if updating {
			if err := db.Save(&product).Error; err != nil {
				zap.L().Warn("product import row failed", zap.Int("row", i+1), zap.Error(err))
				result.Skipped++
				continue
			}
			result.Updated++
			continue
		}
		if err := db.Create(&product).Error; err != nil {
			zap.L().Warn("product import row failed", zap.Int("row", i+1), zap.Error(err))
			result.Skipped++
			continue
		}
		result.Created++
	}
	return result, nil
}

func ImportProductsFromExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		excelFileHeader, err := c.FormFile("file")
		if err != nil {
			response.Error(c, apperror.Validation("Fichier Excel requis", map[string]string{"file": "is required"}))
			return
		}

		file, err := excelFileHeader.Open()
		if err != nil {
			response.Error(c, apperror.Internal("failed to open Excel file", err))
			return
		}
		defer file.Close()

		result, err := ImportProducts(db, file, excelFileHeader.Size)
		if err != nil {
			response.Error(c, err)
			return
		}
		zap.L().Info("products imported",
			zap.Int("created", result.Created),
			zap.Int("updated", result.Updated),
			zap.Int("skipped", result.Skipped),
		)
		response.OK(c, result)
	}
}
