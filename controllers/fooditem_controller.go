package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/foodmarket/food-market-api/middleware"
	"github.com/foodmarket/food-market-api/models"
	"github.com/foodmarket/food-market-api/services"
)

// GetFoodItems handles GET /foodItems - lists every listing with the
// seller's identity joined in
func GetFoodItems(c *gin.Context) {
	items, svcErr := services.GetFoodItems(c.Request.Context())
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    items,
	})
}

// GetFoodItemsBySeller handles GET /foodItems/seller/:email
func GetFoodItemsBySeller(c *gin.Context) {
	email := c.Param("email")

	items, svcErr := services.GetFoodItemsBySeller(c.Request.Context(), email)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    items,
	})
}

// GetFoodItemsByName handles GET /foodItems/food/:name
func GetFoodItemsByName(c *gin.Context) {
	name := c.Param("name")

	items, svcErr := services.GetFoodItemsByName(c.Request.Context(), name)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    items,
	})
}

// CreateFoodItem handles POST /foodItems - creates a listing owned by the
// authenticated seller. Any seller field in the body is ignored; the server
// stamps it from the token identity.
func CreateFoodItem(c *gin.Context) {
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

	var req models.FoodItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}
	req.Seller = nil // server-controlled on create

	result, svcErr := services.AddFoodItem(c.Request.Context(), email, req)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    result,
	})
}

// UpdateFoodItem handles PUT /foodItems - replaces the authenticated
// seller's listing with the same name. A seller field in the body is
// rejected outright.
func UpdateFoodItem(c *gin.Context) {
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

	var req models.FoodItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	item, svcErr := services.EditFoodItem(c.Request.Context(), email, req)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    item,
	})
}

// DeleteFoodItem handles DELETE /foodItems/:name - deletes the
// authenticated seller's listing with the given name
func DeleteFoodItem(c *gin.Context) {
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

	result, svcErr := services.DeleteFoodItem(c.Request.Context(), email, c.Param("name"))
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}
