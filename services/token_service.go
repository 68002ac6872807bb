package services

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/foodmarket/food-market-api/config"
	"github.com/foodmarket/food-market-api/models"
	"github.com/foodmarket/food-market-api/store"
)

// Claims holds the typed JWT payload: the user's identity by email plus
// their role at issue time.
type Claims struct {
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
	jwt.RegisteredClaims
}

func jwtSecret() []byte {
	return []byte(config.GetConfig().JWTSecret)
}

// GenerateAccessToken creates a signed session token for the given user.
func GenerateAccessToken(user *models.User) (string, error) {
	claims := Claims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret())
}

// VerifyAccessToken parses and validates a session token, then re-resolves
// the claimed email against the user store. The directory lookup makes a
// deleted user's outstanding tokens invalid immediately, at the cost of one
// read per request.
func VerifyAccessToken(ctx context.Context, tokenString string) (*Claims, *Error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		return jwtSecret(), nil
	})
	if err != nil {
		return nil, ErrUnauthenticated("INVALID_TOKEN", "Invalid JWT")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrUnauthenticated("INVALID_TOKEN", "Invalid JWT")
	}

	if _, err := store.Get().GetUserByEmail(ctx, claims.Email, true); err != nil {
		if err == store.ErrNotFound {
			return nil, ErrUnauthenticated("STALE_TOKEN", "The account from which the request was made does not exist in the system")
		}
		return nil, ErrUnauthenticated("INVALID_TOKEN", "Could not verify token")
	}

	return claims, nil
}

// HashPassword returns a bcrypt hash of the plain-text password.
func HashPassword(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compares a bcrypt hash against the plain-text candidate.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
