package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/foodmarket/food-market-api/middleware"
	"github.com/foodmarket/food-market-api/services"
)

// UploadFoodItemImage handles POST /foodItems/:name/image - attaches a PNG
// photo to the authenticated seller's listing. The photo lands in S3; the
// response carries the storage key and a presigned URL.
func UploadFoodItemImage(c *gin.Context) {
	email, err := middleware.GetUserEmail(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NO_FILE",
				"message": "Request must contain an image file in the 'image' field",
			},
		})
		return
	}

	item, svcErr := services.AttachFoodItemImage(c.Request.Context(), email, c.Param("name"), fileHeader)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    item,
	})
}
