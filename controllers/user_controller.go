package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/foodmarket/food-market-api/middleware"
	"github.com/foodmarket/food-market-api/models"
	"github.com/foodmarket/food-market-api/services"
)

// GetUsers handles GET /users - lists every user with their food items
// populated (admins only; enforced by the route policy)
func GetUsers(c *gin.Context) {
	users, svcErr := services.GetUsers(c.Request.Context())
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    users,
	})
}

// GetUser handles GET /users/:email - gets a single user. Non-admin
// viewers get the password and role masked out of the result.
func GetUser(c *gin.Context) {
	email := c.Param("email")

	user, svcErr := services.GetUserByEmail(c.Request.Context(), email, middleware.IsAdmin(c))
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
	})
}

// RegisterSeller handles POST /users/register/seller - the endpoint fixes
// the role; it is never taken from the request body
func RegisterSeller(c *gin.Context) {
	registerUser(c, models.RoleSeller)
}

// RegisterBuyer handles POST /users/register/buyer
func RegisterBuyer(c *gin.Context) {
	registerUser(c, models.RoleBuyer)
}

func registerUser(c *gin.Context, role models.Role) {
	var req models.RegisterUserRequest
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

	user, svcErr := services.RegisterUser(c.Request.Context(), req, role)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    user,
	})
}

// Login handles POST /users/login - verifies credentials and hands out the
// session token both as a cookie and in the response body
func Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Email or Password missing!",
			},
		})
		return
	}

	token, user, svcErr := services.Login(c.Request.Context(), req)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	// Cookie mirrors the bearer token so browser clients keep their session
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie("token", token, 24*60*60, "/", "", true, true)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"message": "Login Successful!",
			"token":   token,
			"user":    user,
		},
	})
}

// DeleteUser handles DELETE /users/:email - deletes the user and cascades
// to their food items (admins only; enforced by the route policy)
func DeleteUser(c *gin.Context) {
	email := c.Param("email")

	result, svcErr := services.DeleteUser(c.Request.Context(), email)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}
