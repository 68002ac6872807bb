package testutil

import (
	"context"
	"testing"

	"github.com/foodmarket/food-market-api/config"
	"github.com/foodmarket/food-market-api/models"
	"github.com/foodmarket/food-market-api/services"
	"github.com/foodmarket/food-market-api/store"
)

// TestConfig returns a configuration suitable for signing tokens in tests.
func TestConfig() *config.Config {
	return &config.Config{
		Port:      "8080",
		GoEnv:     "test",
		JWTSecret: "test-secret-do-not-use-in-production",
	}
}

// SeedUser inserts a user with a bcrypt-hashed password directly into the
// active store, bypassing the registration endpoint. This is the only way
// tests can create admin accounts.
func SeedUser(t *testing.T, name, email, password, address string, role models.Role) *models.User {
	t.Helper()

	hash, err := services.HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Address:  address,
		Role:     role,
	}
	inserted, err := store.Get().InsertUser(context.Background(), user)
	if err != nil {
		t.Fatalf("Failed to seed user %s: %v", email, err)
	}
	return inserted
}

// BearerToken issues a signed session token for the given user and returns
// it in Authorization header form.
func BearerToken(t *testing.T, user *models.User) string {
	t.Helper()

	token, err := services.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("Failed to generate token for %s: %v", user.Email, err)
	}
	return "Bearer " + token
}
