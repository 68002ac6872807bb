package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a marketplace account (admin, buyer or seller).
// Email is the business key: food items and orders reference users by email,
// not by ObjectID.
type User struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"_id,omitempty"`
	Name      string               `bson:"name" json:"name"`
	Email     string               `bson:"email" json:"email"`
	Password  string               `bson:"password,omitempty" json:"password,omitempty"`
	Address   string               `bson:"address" json:"address"`
	Role      Role                 `bson:"role,omitempty" json:"role,omitempty"`
	FoodItems []primitive.ObjectID `bson:"foodItems" json:"foodItems"`
}

// Redacted returns a copy of the user with sensitive fields cleared.
// Password is always cleared; role is additionally cleared when the viewer
// is not an admin.
func (u User) Redacted(hideRole bool) User {
	u.Password = ""
	if hideRole {
		u.Role = ""
	}
	return u
}

// UserSummary is the slice of a user document that gets joined into
// food-item and order list views: just enough identity to display.
type UserSummary struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name    string             `bson:"name" json:"name"`
	Email   string             `bson:"email" json:"email"`
	Address string             `bson:"address" json:"address"`
}

// Summary projects the user down to its display identity.
func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Address: u.Address}
}

// UserWithItems is a user with its food-item references resolved to full
// documents, as returned by the admin user listing.
type UserWithItems struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Address   string             `bson:"address" json:"address"`
	Role      Role               `bson:"role" json:"role"`
	FoodItems []FoodItem         `bson:"foodItems" json:"foodItems"`
}

// RegisterUserRequest is the request body for the registration endpoints.
// Role is deliberately absent: it is fixed by the endpoint used.
type RegisterUserRequest struct {
	Name     string `json:"name" binding:"required,max=20"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Address  string `json:"address" binding:"required"`
}

// LoginRequest is the request body for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}
