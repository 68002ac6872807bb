package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/foodmarket/food-market-api/services"
)

// respondError writes a normalized service error onto the wire. The
// transport adds nothing: status, code and message all come from the
// service layer.
func respondError(c *gin.Context, err *services.Error) {
	c.JSON(err.Status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    err.Code,
			"message": err.Message,
		},
	})
}
