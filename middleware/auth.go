package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/foodmarket/food-market-api/models"
	"github.com/foodmarket/food-market-api/services"
)

const (
	emailKey = "user_email"
	roleKey  = "user_role"
)

// RequireAuth is a middleware that checks the validity of the bearer token.
// A request passes only if the token is well-signed AND the user it names
// still exists; identity is attached to the context for the handlers.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NO_AUTHORIZATION",
					"message": "No Authorization Found!",
				},
			})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_TOKEN",
					"message": "Authorization header must be of the form: Bearer <token>",
				},
			})
			return
		}

		claims, svcErr := services.VerifyAccessToken(c.Request.Context(), parts[1])
		if svcErr != nil {
			c.AbortWithStatusJSON(svcErr.Status, gin.H{
				"success": false,
				"error": gin.H{
					"code":    svcErr.Code,
					"message": svcErr.Message,
				},
			})
			return
		}

		c.Set(emailKey, claims.Email)
		c.Set(roleKey, claims.Role)
		c.Next()
	}
}

// RequireRoles is a middleware that lets the request through only when the
// authenticated role is in the allow-list. It must run after RequireAuth.
func RequireRoles(allowed ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, err := GetUserRole(c)
		if err == nil {
			for _, r := range allowed {
				if role == r {
					c.Next()
					return
				}
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Insufficient permissions to access this resource",
			},
		})
	}
}

// RequireSelfOrRoles allows the request when the email path parameter
// matches the authenticated identity, or when the role is in the
// allow-list. Used for "a user may always see their own orders".
func RequireSelfOrRoles(param string, allowed ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, emailErr := GetUserEmail(c)
		if emailErr == nil && c.Param(param) == email {
			c.Next()
			return
		}

		role, roleErr := GetUserRole(c)
		if roleErr == nil {
			for _, r := range allowed {
				if role == r {
					c.Next()
					return
				}
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "User cannot retrieve orders for other users",
			},
		})
	}
}

// GetUserEmail extracts the authenticated email from the Gin context
func GetUserEmail(c *gin.Context) (string, error) {
	email, exists := c.Get(emailKey)
	if !exists {
		return "", &AuthError{Code: "MISSING_IDENTITY", Message: "Identity not found in context"}
	}

	emailStr, ok := email.(string)
	if !ok {
		return "", &AuthError{Code: "INVALID_IDENTITY", Message: "Identity is not a string"}
	}

	return emailStr, nil
}

// GetUserRole extracts the authenticated role from the Gin context
func GetUserRole(c *gin.Context) (models.Role, error) {
	role, exists := c.Get(roleKey)
	if !exists {
		return "", &AuthError{Code: "MISSING_ROLE", Message: "Role not found in context"}
	}

	roleVal, ok := role.(models.Role)
	if !ok {
		return "", &AuthError{Code: "INVALID_ROLE", Message: "Role is not in the expected format"}
	}

	return roleVal, nil
}

// IsAdmin reports whether the authenticated identity has the admin role
func IsAdmin(c *gin.Context) bool {
	role, err := GetUserRole(c)
	return err == nil && role == models.RoleAdmin
}

// AuthError represents an authentication error
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}
