package productControllers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"

	"github.com/hsddev/cake-store/httperr"
	"github.com/hsddev/cake-store/store"
)

// exportProductsToExcel streams the whole catalog as a spreadsheet
// download.
func exportProductsToExcel(st *store.Products) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := st.All(c.Request.Context())
		if err != nil {
			httperr.Abort(c, err)
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Products")
		if err != nil {
			httperr.Abort(c, httperr.Internal("failed to create excel sheet"))
			return
		}

		headers := []string{
			"ID", "Title", "Description", "Price", "PriceAfterDiscount",
			"Quantity", "Sold", "Colors", "Category", "Brand",
			"RatingsAverage", "RatingsQuantity", "CreatedAt", "UpdatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, p := range products {
			row := sheet.AddRow()
			row.AddCell().SetValue(p.ID.Hex())
			row.AddCell().SetValue(p.Title)
			row.AddCell().SetValue(p.Description)
			row.AddCell().SetValue(p.Price)
			row.AddCell().SetValue(p.PriceAfterDiscount)
			row.AddCell().SetValue(p.Quantity)
			row.AddCell().SetValue(p.Sold)
			row.AddCell().SetValue(strings.Join(p.Colors, ","))
			row.AddCell().SetValue(p.Category.Hex())
			row.AddCell().SetValue(p.Brand.Hex())
			row.AddCell().SetValue(p.RatingsAverage)
			row.AddCell().SetValue(p.RatingsQuantity)
			row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
			row.AddCell().SetValue(p.UpdatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			httperr.Abort(c, httperr.Internal("failed to write excel file"))
			return
		}
	}
}
