package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderLine is one purchased food item within an order. FoodItemsPrice is
// computed server-side at order time (unit price x quantity, 2 decimals)
// and is never recomputed afterwards.
type OrderLine struct {
	FoodItem       primitive.ObjectID `bson:"foodItem" json:"foodItem"`
	Quantity       int                `bson:"quantity" json:"quantity"`
	FoodItemsPrice float64            `bson:"foodItemsPrice" json:"foodItemsPrice"`
}

// Order is a purchase snapshot. Buyer and seller are referenced by email;
// address, total price, status and date are all stamped by the order
// workflow, not taken from the client.
type Order struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Seller      string             `bson:"seller" json:"seller"`
	Buyer       string             `bson:"buyer" json:"buyer"`
	FoodItems   []OrderLine        `bson:"foodItems" json:"foodItems"`
	Address     string             `bson:"address" json:"address"`
	Type        OrderType          `bson:"type" json:"type"`
	DeliveryFee float64            `bson:"deliveryFee" json:"deliveryFee"`
	TotalPrice  float64            `bson:"totalPrice" json:"totalPrice"`
	Status      OrderStatus        `bson:"status" json:"status"`
	Date        time.Time          `bson:"date" json:"date"`
}

// OrderWithUsers is an order with buyer and seller identities joined in
// for display, as produced by the order list views.
type OrderWithUsers struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Seller      []UserSummary      `bson:"seller" json:"seller"`
	Buyer       []UserSummary      `bson:"buyer" json:"buyer"`
	FoodItems   []OrderLine        `bson:"foodItems" json:"foodItems"`
	Address     string             `bson:"address" json:"address"`
	Type        OrderType          `bson:"type" json:"type"`
	DeliveryFee float64            `bson:"deliveryFee" json:"deliveryFee"`
	TotalPrice  float64            `bson:"totalPrice" json:"totalPrice"`
	Status      OrderStatus        `bson:"status" json:"status"`
	Date        time.Time          `bson:"date" json:"date"`
}

// OrderLineRequest is one requested line in an order creation request.
type OrderLineRequest struct {
	FoodItem string `json:"foodItem" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

// CreateOrderRequest is the request body for placing an order. Address,
// prices, status and date are intentionally absent: the workflow computes
// them.
type CreateOrderRequest struct {
	Seller      string             `json:"seller" binding:"required,email"`
	Buyer       string             `json:"buyer" binding:"required,email"`
	FoodItems   []OrderLineRequest `json:"foodItems" binding:"required,min=1,dive"`
	Type        OrderType          `json:"type" binding:"required,oneof=pickup delivery"`
	DeliveryFee *float64           `json:"deliveryFee" binding:"required,gte=0"`
}

// ChangeOrderStatusRequest is the request body for the status transition
// endpoint.
type ChangeOrderStatusRequest struct {
	ID     string      `json:"_id" binding:"required"`
	Status OrderStatus `json:"status" binding:"required,oneof=pending fulfilled"`
}
