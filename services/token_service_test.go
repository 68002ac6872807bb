package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodmarket/food-market-api/models"
	"github.com/foodmarket/food-market-api/store"
)

func TestGenerateAndVerifyAccessToken(t *testing.T) {
	setupServiceTest(t)
	user := seedUser(t, "seller@example.com", "password123", models.RoleSeller)

	token, err := GenerateAccessToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, svcErr := VerifyAccessToken(context.Background(), token)
	require.Nil(t, svcErr)
	assert.Equal(t, "seller@example.com", claims.Email)
	assert.Equal(t, models.RoleSeller, claims.Role)
}

func TestVerifyAccessToken_Garbage(t *testing.T) {
	setupServiceTest(t)

	_, svcErr := VerifyAccessToken(context.Background(), "not-a-token")
	require.NotNil(t, svcErr)
	assert.Equal(t, 401, svcErr.Status)
	assert.Equal(t, "INVALID_TOKEN", svcErr.Code)
}

func TestVerifyAccessToken_WrongSecret(t *testing.T) {
	setupServiceTest(t)
	seedUser(t, "seller@example.com", "password123", models.RoleSeller)

	claims := Claims{
		Email: "seller@example.com",
		Role:  models.RoleSeller,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	_, svcErr := VerifyAccessToken(context.Background(), token)
	require.NotNil(t, svcErr)
	assert.Equal(t, "INVALID_TOKEN", svcErr.Code)
}

func TestVerifyAccessToken_Expired(t *testing.T) {
	setupServiceTest(t)
	seedUser(t, "seller@example.com", "password123", models.RoleSeller)

	claims := Claims{
		Email: "seller@example.com",
		Role:  models.RoleSeller,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret())
	require.NoError(t, err)

	_, svcErr := VerifyAccessToken(context.Background(), token)
	require.NotNil(t, svcErr)
	assert.Equal(t, "INVALID_TOKEN", svcErr.Code)
}

func TestVerifyAccessToken_DeletedUser(t *testing.T) {
	setupServiceTest(t)
	user := seedUser(t, "seller@example.com", "password123", models.RoleSeller)

	token, err := GenerateAccessToken(user)
	require.NoError(t, err)

	// A well-signed token stops working the moment its account is gone
	_, delErr := store.Get().DeleteUser(context.Background(), "seller@example.com")
	require.NoError(t, delErr)

	_, svcErr := VerifyAccessToken(context.Background(), token)
	require.NotNil(t, svcErr)
	assert.Equal(t, 401, svcErr.Status)
	assert.Equal(t, "STALE_TOKEN", svcErr.Code)
	assert.Equal(t, "The account from which the request was made does not exist in the system", svcErr.Message)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2hunter2", hash)

	assert.True(t, CheckPassword(hash, "hunter2hunter2"))
	assert.False(t, CheckPassword(hash, "wrong-password"))
}
