package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRedacted(t *testing.T) {
	user := User{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "$2a$10$somebcrypthash",
		Address:  "1 Main St",
		Role:     RoleSeller,
	}

	t.Run("password is always removed", func(t *testing.T) {
		redacted := user.Redacted(false)
		assert.Empty(t, redacted.Password)
		assert.Equal(t, RoleSeller, redacted.Role)
	})

	t.Run("role is hidden for non-admin viewers", func(t *testing.T) {
		redacted := user.Redacted(true)
		assert.Empty(t, redacted.Password)
		assert.Empty(t, redacted.Role)
	})

	t.Run("original is not mutated", func(t *testing.T) {
		user.Redacted(true)
		assert.Equal(t, "$2a$10$somebcrypthash", user.Password)
		assert.Equal(t, RoleSeller, user.Role)
	})
}

func TestUserRedactedJSON(t *testing.T) {
	user := User{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "hash",
		Address:  "1 Main St",
		Role:     RoleBuyer,
	}

	// Redacted fields must disappear from the wire form entirely,
	// not serialize as empty strings
	data, err := json.Marshal(user.Redacted(true))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.NotContains(t, decoded, "password")
	assert.NotContains(t, decoded, "role")
	assert.Equal(t, "alice@example.com", decoded["email"])
}

func TestUserSummary(t *testing.T) {
	user := User{
		Name:     "Bob",
		Email:    "bob@example.com",
		Password: "hash",
		Address:  "2 Side St",
		Role:     RoleAdmin,
	}

	summary := user.Summary()
	assert.Equal(t, "Bob", summary.Name)
	assert.Equal(t, "bob@example.com", summary.Email)
	assert.Equal(t, "2 Side St", summary.Address)

	data, err := json.Marshal(summary)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "password")
	assert.NotContains(t, string(data), "role")
}
