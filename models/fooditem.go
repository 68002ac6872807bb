package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FoodItem is a seller's listing. The (seller, name) pair is unique; the
// seller field is always stamped from the authenticated identity, never
// taken from a request body.
type FoodItem struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Seller      string             `bson:"seller,omitempty" json:"seller,omitempty"`
	Price       float64            `bson:"price" json:"price"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	DeliveryFee float64            `bson:"deliveryFee" json:"deliveryFee"`
	ImageKey    string             `bson:"imageKey,omitempty" json:"imageKey,omitempty"`
	ImageURL    string             `bson:"-" json:"imageUrl,omitempty"` // computed, presigned URL
}

// FoodItemWithSeller is a food item with the seller's identity joined in,
// as produced by the catalog list view. The seller comes back as an array
// because the join is a lookup on a non-unique-by-schema field.
type FoodItemWithSeller struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Seller      []UserSummary      `bson:"seller" json:"seller"`
	Price       float64            `bson:"price" json:"price"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	DeliveryFee float64            `bson:"deliveryFee" json:"deliveryFee"`
	ImageKey    string             `bson:"imageKey,omitempty" json:"imageKey,omitempty"`
	ImageURL    string             `bson:"-" json:"imageUrl,omitempty"`
}

// FoodItemRequest is the request body for creating or replacing a listing.
// Numeric fields are pointers so that explicit zero values (a free delivery
// fee) survive the required check.
type FoodItemRequest struct {
	Name        string   `json:"name" binding:"required,max=20"`
	Seller      *string  `json:"seller"` // must be absent; rejected if present
	Price       *float64 `json:"price" binding:"required,gt=0"`
	Quantity    *int     `json:"quantity" binding:"required,gte=0"`
	DeliveryFee *float64 `json:"deliveryFee" binding:"required,gte=0"`
}

// FoodItem builds the document described by the request, stamped with the
// given seller email.
func (r FoodItemRequest) FoodItem(seller string) FoodItem {
	return FoodItem{
		Name:        r.Name,
		Seller:      seller,
		Price:       *r.Price,
		Quantity:    *r.Quantity,
		DeliveryFee: *r.DeliveryFee,
	}
}
