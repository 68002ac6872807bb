package main

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/foodmarket/food-market-api/controllers"
	"github.com/foodmarket/food-market-api/middleware"
	"github.com/foodmarket/food-market-api/models"
)

// Route policy table. Every protected route names its role allow-list
// here; the handlers never re-check roles themselves.
//
//	GET    /users                   admin
//	GET    /users/:email            any authenticated
//	DELETE /users/:email            admin
//	GET    /foodItems               any authenticated
//	GET    /foodItems/seller/:email any authenticated
//	GET    /foodItems/food/:name    any authenticated
//	POST   /foodItems               admin, seller
//	PUT    /foodItems               admin, seller
//	DELETE /foodItems/:name         admin, seller
//	POST   /foodItems/:name/image   admin, seller
//	GET    /orders                  admin
//	GET    /orders/:email           self, admin
//	POST   /orders                  admin, buyer
//	PATCH  /orders/status           admin, seller
func setupRouter() *gin.Engine {
	router := gin.Default()

	// The session cookie requires credentialed CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = false
	corsConfig.AllowOriginFunc = func(origin string) bool { return true }
	corsConfig.AllowCredentials = true
	corsConfig.AddAllowHeaders("Authorization")
	router.Use(cors.New(corsConfig))

	router.GET("/health", healthCheck)

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

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Food Market API is running",
	})
}
