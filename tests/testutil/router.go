package testutil

import (
	"github.com/gin-gonic/gin"

	"github.com/foodmarket/food-market-api/controllers"
	"github.com/foodmarket/food-market-api/middleware"
	"github.com/foodmarket/food-market-api/models"
)

// NewRouter builds the application's route table for tests that live
// outside package main. The wiring must stay in lockstep with the
// production router.
func NewRouter() *gin.Engine {
	router := gin.New()

	authenticated := middleware.RequireAuth()
	adminOnly := middleware.RequireRoles(models.RoleAdmin)
	sellerOrAdmin := middleware.RequireRoles(models.RoleAdmin, models.RoleSeller)
	buyerOrAdmin := middleware.RequireRoles(models.RoleAdmin, models.RoleBuyer)
	selfOrAdmin := middleware.RequireSelfOrRoles("email", models.RoleAdmin)

	users := router.Group("/users")
	{
		users.POST("/register/seller", controllers.RegisterSeller)
		users.POST("/register/buyer", controllers.RegisterBuyer)
		users.POST("/login", controllers.Login)
		users.GET("", authenticated, adminOnly, controllers.GetUsers)
		users.GET("/:email", authenticated, controllers.GetUser)
		users.DELETE("/:email", authenticated, adminOnly, controllers.DeleteUser)
	}

	foodItems := router.Group("/foodItems", authenticated)
	{
		foodItems.GET("", controllers.GetFoodItems)
		foodItems.GET("/seller/:email", controllers.GetFoodItemsBySeller)
		foodItems.GET("/food/:name", controllers.GetFoodItemsByName)
		foodItems.POST("", sellerOrAdmin, controllers.CreateFoodItem)
		foodItems.PUT("", sellerOrAdmin, controllers.UpdateFoodItem)
		foodItems.DELETE("/:name", sellerOrAdmin, controllers.DeleteFoodItem)
		foodItems.POST("/:name/image", sellerOrAdmin, controllers.UploadFoodItemImage)
	}

	orders := router.Group("/orders", authenticated)
	{
		orders.GET("", adminOnly, controllers.GetOrders)
		orders.GET("/:email", selfOrAdmin, controllers.GetOrdersForUser)
		orders.POST("", buyerOrAdmin, controllers.CreateOrder)
		orders.PATCH("/status", sellerOrAdmin, controllers.ChangeOrderStatus)
	}

	return router
}
