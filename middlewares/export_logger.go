package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/kitchenlog/utils"
)

func ExportLoggerMiddleware(collection string) gin.HandlerFunc {
	return func(c *gin.Context) {
		format := c.DefaultQuery("format", "pdf")
		utils.InfoLogger.Printf("Generating %s export of %s", format, collection)

		c.Next()

		switch status := c.Writer.Status(); {
		case status == http.StatusOK:
			utils.InfoLogger.Printf("Export of %s delivered (%d bytes)", collection, c.Writer.Size())
		case status == http.StatusUnprocessableEntity:
			utils.InfoLogger.Printf("Export of %s skipped: no matching records", collection)
		default:
			utils.ErrorLogger.Printf("Failed to export %s: status %d", collection, status)
		}
	}
}
