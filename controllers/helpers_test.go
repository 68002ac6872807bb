package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/foodmarket/food-market-api/config"
	"github.com/foodmarket/food-market-api/middleware"
	"github.com/foodmarket/food-market-api/models"
	"github.com/foodmarket/food-market-api/services"
	"github.com/foodmarket/food-market-api/store"
)

// setupTestRouter builds the full route table against an in-memory store
// and a mock image backend. The wiring mirrors the production router so the
// per-route policies get exercised too.
func setupTestRouter(t *testing.T) (*gin.Engine, *services.MockImageService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	config.SetConfig(&config.Config{
		Port:      "8080",
		GoEnv:     "test",
		JWTSecret: "unit-test-secret",
	})
	store.Set(store.NewMemoryStore())

	mockImages := services.NewMockImageService()
	services.SetImageService(mockImages)

	router := gin.New()

	authenticated := middleware.RequireAuth()
	adminOnly := middleware.RequireRoles(models.RoleAdmin)
	sellerOrAdmin := middleware.RequireRoles(models.RoleAdmin, models.RoleSeller)
	buyerOrAdmin := middleware.RequireRoles(models.RoleAdmin, models.RoleBuyer)
	selfOrAdmin := middleware.RequireSelfOrRoles("email", models.RoleAdmin)

	users := router.Group("/users")
	{
		users.POST("/register/seller", RegisterSeller)
		users.POST("/register/buyer", RegisterBuyer)
		users.POST("/login", Login)
		users.GET("", authenticated, adminOnly, GetUsers)
		users.GET("/:email", authenticated, GetUser)
		users.DELETE("/:email", authenticated, adminOnly, DeleteUser)
	}

	foodItems := router.Group("/foodItems", authenticated)
	{
		foodItems.GET("", GetFoodItems)
		foodItems.GET("/seller/:email", GetFoodItemsBySeller)
		foodItems.GET("/food/:name", GetFoodItemsByName)
		foodItems.POST("", sellerOrAdmin, CreateFoodItem)
		foodItems.PUT("", sellerOrAdmin, UpdateFoodItem)
		foodItems.DELETE("/:name", sellerOrAdmin, DeleteFoodItem)
		foodItems.POST("/:name/image", sellerOrAdmin, UploadFoodItemImage)
	}

	orders := router.Group("/orders", authenticated)
	{
		orders.GET("", adminOnly, GetOrders)
		orders.GET("/:email", selfOrAdmin, GetOrdersForUser)
		orders.POST("", buyerOrAdmin, CreateOrder)
		orders.PATCH("/status", sellerOrAdmin, ChangeOrderStatus)
	}

	return router, mockImages
}

func seedUser(t *testing.T, email, password string, role models.Role) *models.User {
	t.Helper()

	hash, err := services.HashPassword(password)
	require.NoError(t, err)

	user, insertErr := store.Get().InsertUser(context.Background(), &models.User{
		Name:     "User " + string(role),
		Email:    email,
		Password: hash,
		Address:  "Address of " + email,
		Role:     role,
	})
	require.NoError(t, insertErr)
	return user
}

func seedFoodItem(t *testing.T, seller, name string, price float64, qty int) *models.FoodItem {
	t.Helper()

	item, err := store.Get().InsertFoodItem(context.Background(), &models.FoodItem{
		Name:        name,
		Seller:      seller,
		Price:       price,
		Quantity:    qty,
		DeliveryFee: 2.50,
	})
	require.NoError(t, err)

	_, err = store.Get().PushFoodItemRef(context.Background(), seller, item.ID)
	require.NoError(t, err)
	return item
}

func bearerFor(t *testing.T, user *models.User) string {
	t.Helper()

	token, err := services.GenerateAccessToken(user)
	require.NoError(t, err)
	return "Bearer " + token
}

// doJSON performs a request with an optional JSON payload and bearer token
func doJSON(t *testing.T, router *gin.Engine, method, path string, payload interface{}, auth string) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// doUpload performs a multipart upload of a single "image" form file
func doUpload(t *testing.T, router *gin.Engine, path, filename string, content []byte, auth string) *httptest.ResponseRecorder {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	return env
}
