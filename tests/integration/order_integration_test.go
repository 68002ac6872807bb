package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	"github.com/foodmarket/food-market-api/config"
	"github.com/foodmarket/food-market-api/models"
	"github.com/foodmarket/food-market-api/services"
	"github.com/foodmarket/food-market-api/store"
	"github.com/foodmarket/food-market-api/tests/testutil"
)

// OrderIntegrationTestSuite exercises the order workflow through the
// HTTP surface against an in-memory store
type OrderIntegrationTestSuite struct {
	suite.Suite
	router     *gin.Engine
	buyerAuth  string
	sellerAuth string
	pizza      *models.FoodItem
	salad      *models.FoodItem
}

// SetupSuite runs once before all tests
func (suite *OrderIntegrationTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	os.Setenv("GO_ENV", "test")
	config.SetConfig(testutil.TestConfig())
}

// SetupTest seeds a seller with stock and a buyer for every test
func (suite *OrderIntegrationTestSuite) SetupTest() {
	store.Set(store.NewMemoryStore())
	services.SetImageService(services.NewMockImageService())
	suite.router = testutil.NewRouter()

	seller := testutil.SeedUser(suite.T(), "Carla", "carla@example.com", "sellerpass", "Market Square 4", models.RoleSeller)
	buyer := testutil.SeedUser(suite.T(), "Ben", "ben@example.com", "buyerpass", "Elm Street 9", models.RoleBuyer)
	suite.sellerAuth = testutil.BearerToken(suite.T(), seller)
	suite.buyerAuth = testutil.BearerToken(suite.T(), buyer)

	suite.pizza = suite.createItem("Pizza", 10.99, 5, 2.50)
	suite.salad = suite.createItem("Salad", 6.50, 3, 2.50)
}

func (suite *OrderIntegrationTestSuite) createItem(name string, price float64, qty int, fee float64) *models.FoodItem {
	w := suite.doJSON(http.MethodPost, "/foodItems", map[string]interface{}{
		"name": name, "price": price, "quantity": qty, "deliveryFee": fee,
	}, suite.sellerAuth)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var env struct {
		Data struct {
			NewItem models.FoodItem `json:"newItem"`
		} `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env))
	return &env.Data.NewItem
}

func (suite *OrderIntegrationTestSuite) doJSON(method, path string, payload interface{}, auth string) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		suite.Require().NoError(err)
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
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *OrderIntegrationTestSuite) placeOrder(lines []map[string]interface{}, orderType string, fee float64) models.Order {
	w := suite.doJSON(http.MethodPost, "/orders", map[string]interface{}{
		"seller":      "carla@example.com",
		"buyer":       "ben@example.com",
		"foodItems":   lines,
		"type":        orderType,
		"deliveryFee": fee,
	}, suite.buyerAuth)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var env struct {
		Data models.Order `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env))
	return env.Data
}

func (suite *OrderIntegrationTestSuite) itemQuantity(name string) int {
	w := suite.doJSON(http.MethodGet, "/foodItems/food/"+name, nil, suite.buyerAuth)
	suite.Require().Equal(http.StatusOK, w.Code)

	var env struct {
		Data []models.FoodItem `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env))
	suite.Require().Len(env.Data, 1)
	return env.Data[0].Quantity
}

// TestOrderComputesPricesServerSide ensures prices come from the catalog,
// not the client
func (suite *OrderIntegrationTestSuite) TestOrderComputesPricesServerSide() {
	order := suite.placeOrder([]map[string]interface{}{
		{"foodItem": suite.pizza.ID.Hex(), "quantity": 2},
		{"foodItem": suite.salad.ID.Hex(), "quantity": 1},
	}, "delivery", 2.50)

	suite.Len(order.FoodItems, 2)
	suite.Equal(21.98, order.FoodItems[0].FoodItemsPrice)
	suite.Equal(6.50, order.FoodItems[1].FoodItemsPrice)
	suite.Equal(30.98, order.TotalPrice)
	suite.Equal(models.OrderStatusPending, order.Status)
	suite.Equal("Elm Street 9", order.Address)
}

// TestPickupOrdersResolveSellerAddress checks the pickup branch
func (suite *OrderIntegrationTestSuite) TestPickupOrdersResolveSellerAddress() {
	order := suite.placeOrder([]map[string]interface{}{
		{"foodItem": suite.pizza.ID.Hex(), "quantity": 1},
	}, "pickup", 0)

	suite.Equal("Market Square 4", order.Address)
}

// TestSequentialOrdersDecrementCumulatively places two orders against the
// same item and checks the stock after each
func (suite *OrderIntegrationTestSuite) TestSequentialOrdersDecrementCumulatively() {
	suite.placeOrder([]map[string]interface{}{
		{"foodItem": suite.pizza.ID.Hex(), "quantity": 2},
	}, "delivery", 2.50)
	suite.Equal(3, suite.itemQuantity("Pizza"))

	suite.placeOrder([]map[string]interface{}{
		{"foodItem": suite.pizza.ID.Hex(), "quantity": 2},
	}, "delivery", 2.50)
	suite.Equal(1, suite.itemQuantity("Pizza"))
}

// TestOrderListingJoinsIdentities verifies the populated order views
func (suite *OrderIntegrationTestSuite) TestOrderListingJoinsIdentities() {
	suite.placeOrder([]map[string]interface{}{
		{"foodItem": suite.pizza.ID.Hex(), "quantity": 1},
	}, "delivery", 2.50)

	w := suite.doJSON(http.MethodGet, "/orders/ben@example.com", nil, suite.buyerAuth)
	suite.Require().Equal(http.StatusOK, w.Code)

	var env struct {
		Data []models.OrderWithUsers `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env))
	suite.Require().Len(env.Data, 1)
	suite.Require().Len(env.Data[0].Buyer, 1)
	suite.Require().Len(env.Data[0].Seller, 1)
	suite.Equal("Ben", env.Data[0].Buyer[0].Name)
	suite.Equal("Carla", env.Data[0].Seller[0].Name)
	suite.NotContains(w.Body.String(), "password")
}

// TestFulfillmentRoundTrip drives an order to fulfilled and back: the
// status field has no transition graph
func (suite *OrderIntegrationTestSuite) TestFulfillmentRoundTrip() {
	order := suite.placeOrder([]map[string]interface{}{
		{"foodItem": suite.pizza.ID.Hex(), "quantity": 1},
	}, "pickup", 0)

	for _, status := range []string{"fulfilled", "pending", "fulfilled"} {
		w := suite.doJSON(http.MethodPatch, "/orders/status", map[string]string{
			"_id": order.ID.Hex(), "status": status,
		}, suite.sellerAuth)
		suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

		var env struct {
			Data models.Order `json:"data"`
		}
		suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env))
		suite.Equal(models.OrderStatus(status), env.Data.Status)
	}
}

// TestOrderIntegrationTestSuite runs the test suite
func TestOrderIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderIntegrationTestSuite))
}
