package services

import (
	"context"
	"fmt"

	"github.com/foodmarket/food-market-api/models"
	"github.com/foodmarket/food-market-api/store"
)

// DeletedUserResult is the payload returned by a cascading user delete.
type DeletedUserResult struct {
	DeletedUser      models.User       `json:"deletedUser"`
	DeletedFoodItems []models.FoodItem `json:"deletedFoodItems"`
}

// GetUsers returns every user with their food items populated inline.
func GetUsers(ctx context.Context) ([]models.UserWithItems, *Error) {
	users, err := store.Get().ListUsers(ctx)
	if err != nil {
		return nil, ErrServer("Failed to list users")
	}
	return users, nil
}

// GetUserByEmail returns the user with the given email. The password hash
// never leaves this function; the role is included only when includeRole is
// set, which the controllers reserve for admin viewers.
func GetUserByEmail(ctx context.Context, email string, includeRole bool) (*models.User, *Error) {
	user, err := store.Get().GetUserByEmail(ctx, email, true)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, ErrNotFound("USER_NOT_FOUND", fmt.Sprintf("User %s does not exist!", email))
		}
		return nil, ErrServer("Failed to load user")
	}
	redacted := user.Redacted(!includeRole)
	return &redacted, nil
}

// RegisterUser creates a new account. The role comes from the registration
// endpoint used, never from the request body. The email existence check
// here is the primary duplicate guard; the unique index on users.email only
// closes the check-then-insert race window.
func RegisterUser(ctx context.Context, req models.RegisterUserRequest, role models.Role) (*models.User, *Error) {
	if !role.Valid() {
		return nil, ErrBadRequest("INVALID_ROLE", fmt.Sprintf("%s is not a valid role!", role))
	}

	if _, err := store.Get().GetUserByEmail(ctx, req.Email, true); err == nil {
		return nil, ErrConflict("USER_EXISTS", fmt.Sprintf("User %s already exists!", req.Email))
	} else if err != store.ErrNotFound {
		return nil, ErrServer("Failed to check existing users")
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		return nil, ErrServer("Failed to hash password")
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashed,
		Address:  req.Address,
		Role:     role,
	}

	created, err := store.Get().InsertUser(ctx, user)
	if err != nil {
		if err == store.ErrDuplicate {
			return nil, ErrConflict("USER_EXISTS", fmt.Sprintf("User %s already exists!", req.Email))
		}
		return nil, ErrServer("Failed to create user")
	}

	redacted := created.Redacted(false)
	return &redacted, nil
}

// DeleteUser removes the user and cascades to every food item they own
// (including any listing photos). Orders referencing the user are left in
// place: they are historical records.
func DeleteUser(ctx context.Context, email string) (*DeletedUserResult, *Error) {
	if _, svcErr := GetUserByEmail(ctx, email, true); svcErr != nil {
		return nil, svcErr
	}

	deletedItems, err := store.Get().DeleteFoodItemsBySeller(ctx, email)
	if err != nil {
		return nil, ErrServer("Failed to delete user's food items")
	}
	for _, item := range deletedItems {
		deleteImageIfPresent(item.ImageKey)
	}

	deletedUser, err := store.Get().DeleteUser(ctx, email)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, ErrNotFound("USER_NOT_FOUND", fmt.Sprintf("User %s does not exist!", email))
		}
		return nil, ErrServer("Failed to delete user")
	}

	return &DeletedUserResult{
		DeletedUser:      deletedUser.Redacted(false),
		DeletedFoodItems: deletedItems,
	}, nil
}

// Login verifies the credentials and issues a session token. Unknown email
// and wrong password fail differently: 404 versus 401.
func Login(ctx context.Context, req models.LoginRequest) (string, *models.User, *Error) {
	user, err := store.Get().GetUserByEmail(ctx, req.Email, true)
	if err != nil {
		if err == store.ErrNotFound {
			return "", nil, ErrNotFound("USER_NOT_FOUND", fmt.Sprintf("User %s does not exist!", req.Email))
		}
		return "", nil, ErrServer("Failed to load user")
	}

	if !CheckPassword(user.Password, req.Password) {
		return "", nil, ErrUnauthenticated("INVALID_CREDENTIALS", "Incorrect Credentials!")
	}

	token, err := GenerateAccessToken(user)
	if err != nil {
		return "", nil, ErrServer("Failed to generate access token")
	}

	redacted := user.Redacted(false)
	return token, &redacted, nil
}
