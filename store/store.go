package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/foodmarket/food-market-api/models"
)

// ErrNotFound is returned when a referenced document does not exist.
var ErrNotFound = errors.New("document not found")

// ErrDuplicate is returned when a write violates a uniqueness constraint.
var ErrDuplicate = errors.New("duplicate document")

// Store is the persistence boundary for users, food items and orders.
// The production implementation is backed by MongoDB; tests swap in an
// in-memory implementation with the same semantics.
type Store interface {
	// Users
	ListUsers(ctx context.Context) ([]models.UserWithItems, error)
	GetUserByEmail(ctx context.Context, email string, includeSensitive bool) (*models.User, error)
	InsertUser(ctx context.Context, user *models.User) (*models.User, error)
	DeleteUser(ctx context.Context, email string) (*models.User, error)
	PushFoodItemRef(ctx context.Context, email string, id primitive.ObjectID) (*models.User, error)
	PullFoodItemRef(ctx context.Context, email string, id primitive.ObjectID) (*models.User, error)

	// Food items
	ListFoodItems(ctx context.Context) ([]models.FoodItemWithSeller, error)
	ListFoodItemsBySeller(ctx context.Context, email string) ([]models.FoodItem, error)
	ListFoodItemsByName(ctx context.Context, name string) ([]models.FoodItem, error)
	GetFoodItemByID(ctx context.Context, id primitive.ObjectID) (*models.FoodItem, error)
	InsertFoodItem(ctx context.Context, item *models.FoodItem) (*models.FoodItem, error)
	ReplaceFoodItem(ctx context.Context, seller, name string, item models.FoodItem) (*models.FoodItem, error)
	DeleteFoodItem(ctx context.Context, seller, name string) (*models.FoodItem, error)
	DeleteFoodItemsBySeller(ctx context.Context, seller string) ([]models.FoodItem, error)
	SetFoodItemQuantity(ctx context.Context, id primitive.ObjectID, quantity int) error
	SetFoodItemImage(ctx context.Context, seller, name, imageKey string) (*models.FoodItem, error)

	// Orders
	InsertOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	ListOrders(ctx context.Context) ([]models.OrderWithUsers, error)
	ListOrdersForUser(ctx context.Context, email string) ([]models.OrderWithUsers, error)
	UpdateOrderStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) (*models.Order, error)
}

var storeInstance Store

// Get returns the active store instance
func Get() Store {
	return storeInstance
}

// Set sets the active store instance (swapped for an in-memory store in tests)
func Set(s Store) {
	storeInstance = s
}
