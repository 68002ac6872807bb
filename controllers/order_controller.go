package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/foodmarket/food-market-api/models"
	"github.com/foodmarket/food-market-api/services"
)

// GetOrders handles GET /orders - lists every order with buyer and seller
// identity joined in (admins only; enforced by the route policy)
func GetOrders(c *gin.Context) {
	orders, svcErr := services.GetOrders(c.Request.Context())
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// GetOrdersForUser handles GET /orders/:email - the union of orders where
// the user is buyer or seller (self or admin; enforced by the route policy)
func GetOrdersForUser(c *gin.Context) {
	email := c.Param("email")

	orders, svcErr := services.GetOrdersForUser(c.Request.Context(), email)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// CreateOrder handles POST /orders - runs the order-placement workflow and
// returns the computed order
func CreateOrder(c *gin.Context) {
	var req models.CreateOrderRequest
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

	order, svcErr := services.AddOrder(c.Request.Context(), req)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// ChangeOrderStatus handles PATCH /orders/status - overwrites the order's
// status with the given enum value
func ChangeOrderStatus(c *gin.Context) {
	var req models.ChangeOrderStatusRequest
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

	order, svcErr := services.ChangeOrderStatus(c.Request.Context(), req.ID, req.Status)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}
