package services

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"

	"github.com/foodmarket/food-market-api/models"
	"github.com/foodmarket/food-market-api/store"
	"github.com/foodmarket/food-market-api/utils"
)

// AddFoodItemResult is the payload returned when a listing is created: the
// new item plus the owning user with the item reference appended.
type AddFoodItemResult struct {
	NewItem     models.FoodItem `json:"newItem"`
	UpdatedUser models.User     `json:"updatedUser"`
}

// DeleteFoodItemResult is the payload returned when a listing is deleted.
type DeleteFoodItemResult struct {
	DeletedFoodItem models.FoodItem `json:"deletedFoodItem"`
	UpdatedUser     models.User     `json:"updatedUser"`
}

// GetFoodItems returns every listing with the seller's identity joined in.
func GetFoodItems(ctx context.Context) ([]models.FoodItemWithSeller, *Error) {
	items, err := store.Get().ListFoodItems(ctx)
	if err != nil {
		return nil, ErrServer("Failed to list food items")
	}
	for i := range items {
		items[i].ImageURL = imageURLFor(items[i].ImageKey)
	}
	return items, nil
}

// GetFoodItemsBySeller returns the listings owned by the given seller,
// failing NotFound when no such user exists.
func GetFoodItemsBySeller(ctx context.Context, email string) ([]models.FoodItem, *Error) {
	if _, svcErr := GetUserByEmail(ctx, email, false); svcErr != nil {
		return nil, svcErr
	}

	items, err := store.Get().ListFoodItemsBySeller(ctx, email)
	if err != nil {
		return nil, ErrServer("Failed to list food items")
	}
	for i := range items {
		items[i].ImageURL = imageURLFor(items[i].ImageKey)
	}
	return items, nil
}

// GetFoodItemsByName returns every listing with the given name across all
// sellers, failing NotFound when there are none.
func GetFoodItemsByName(ctx context.Context, name string) ([]models.FoodItem, *Error) {
	items, err := store.Get().ListFoodItemsByName(ctx, name)
	if err != nil {
		return nil, ErrServer("Failed to list food items")
	}
	if len(items) == 0 {
		return nil, ErrNotFound("FOOD_ITEM_NOT_FOUND", fmt.Sprintf("Food Item %s does not exist!", name))
	}
	for i := range items {
		items[i].ImageURL = imageURLFor(items[i].ImageKey)
	}
	return items, nil
}

// FoodItemExistsForSeller reports whether the seller already has a listing
// with the given name. The lookup goes through GetFoodItemsBySeller so a
// missing seller still surfaces as NotFound.
func FoodItemExistsForSeller(ctx context.Context, email, name string) (bool, *Error) {
	items, svcErr := GetFoodItemsBySeller(ctx, email)
	if svcErr != nil {
		return false, svcErr
	}
	for _, item := range items {
		if item.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// AddFoodItem creates a listing for the seller. The seller field is stamped
// from the authenticated identity; the new item's reference is appended to
// the owning user's item list.
func AddFoodItem(ctx context.Context, email string, req models.FoodItemRequest) (*AddFoodItemResult, *Error) {
	exists, svcErr := FoodItemExistsForSeller(ctx, email, req.Name)
	if svcErr != nil {
		return nil, svcErr
	}
	if exists {
		return nil, ErrConflict("FOOD_ITEM_EXISTS", fmt.Sprintf("Item %s already exists for %s!", req.Name, email))
	}

	item := req.FoodItem(email)
	newItem, err := store.Get().InsertFoodItem(ctx, &item)
	if err != nil {
		if err == store.ErrDuplicate {
			return nil, ErrConflict("FOOD_ITEM_EXISTS", fmt.Sprintf("Item %s already exists for %s!", req.Name, email))
		}
		return nil, ErrServer("Failed to create food item")
	}

	updatedUser, err := store.Get().PushFoodItemRef(ctx, email, newItem.ID)
	if err != nil {
		return nil, ErrServer("Failed to update user's food items")
	}

	return &AddFoodItemResult{
		NewItem:     *newItem,
		UpdatedUser: updatedUser.Redacted(false),
	}, nil
}

// EditFoodItem replaces the seller's listing with the same name. Seller
// reassignment is not a supported operation: a seller field in the request
// fails BadRequest before anything else is checked.
func EditFoodItem(ctx context.Context, email string, req models.FoodItemRequest) (*models.FoodItem, *Error) {
	if req.Seller != nil {
		return nil, ErrBadRequest("SELLER_FIELD_FORBIDDEN", "Cannot edit food items with seller field. Remove the seller field from request body!")
	}

	exists, svcErr := FoodItemExistsForSeller(ctx, email, req.Name)
	if svcErr != nil {
		return nil, svcErr
	}
	if !exists {
		return nil, ErrNotFound("FOOD_ITEM_NOT_FOUND", fmt.Sprintf("Item %s does not exist for user %s", req.Name, email))
	}

	updated, err := store.Get().ReplaceFoodItem(ctx, email, req.Name, req.FoodItem(email))
	if err != nil {
		if err == store.ErrNotFound {
			return nil, ErrNotFound("FOOD_ITEM_NOT_FOUND", fmt.Sprintf("Item %s does not exist for user %s", req.Name, email))
		}
		return nil, ErrServer("Failed to update food item")
	}
	updated.ImageURL = imageURLFor(updated.ImageKey)
	return updated, nil
}

// DeleteFoodItem removes the seller's listing and pulls its reference out
// of the owning user's item list. Any listing photo is deleted best-effort.
func DeleteFoodItem(ctx context.Context, email, name string) (*DeleteFoodItemResult, *Error) {
	exists, svcErr := FoodItemExistsForSeller(ctx, email, name)
	if svcErr != nil {
		return nil, svcErr
	}
	if !exists {
		return nil, ErrNotFound("FOOD_ITEM_NOT_FOUND", fmt.Sprintf("Item %s does not exist for user %s", name, email))
	}

	deleted, err := store.Get().DeleteFoodItem(ctx, email, name)
	if err != nil {
		return nil, ErrServer("Failed to delete food item")
	}
	deleteImageIfPresent(deleted.ImageKey)

	updatedUser, err := store.Get().PullFoodItemRef(ctx, email, deleted.ID)
	if err != nil {
		return nil, ErrServer("Failed to update user's food items")
	}

	return &DeleteFoodItemResult{
		DeletedFoodItem: *deleted,
		UpdatedUser:     updatedUser.Redacted(false),
	}, nil
}

// AttachFoodItemImage uploads a listing photo and records its storage key
// on the item. Replacing a photo deletes the previous one best-effort.
func AttachFoodItemImage(ctx context.Context, email, name string, fileHeader *multipart.FileHeader) (*models.FoodItem, *Error) {
	items, svcErr := GetFoodItemsBySeller(ctx, email)
	if svcErr != nil {
		return nil, svcErr
	}
	previousKey := ""
	found := false
	for _, existing := range items {
		if existing.Name == name {
			previousKey = existing.ImageKey
			found = true
			break
		}
	}
	if !found {
		return nil, ErrNotFound("FOOD_ITEM_NOT_FOUND", fmt.Sprintf("Item %s does not exist for user %s", name, email))
	}

	imageService := GetImageService()
	if imageService == nil {
		return nil, ErrServer("Image storage is not configured")
	}

	imageKey, err := imageService.UploadImage(fileHeader)
	if err != nil {
		if uploadErr, ok := err.(*utils.FileUploadError); ok {
			return nil, ErrBadRequest(uploadErr.Code, uploadErr.Message)
		}
		return nil, ErrServer("Failed to upload image")
	}

	if previousKey != "" && previousKey != imageKey {
		deleteImageIfPresent(previousKey)
	}

	item, err := store.Get().SetFoodItemImage(ctx, email, name, imageKey)
	if err != nil {
		return nil, ErrServer("Failed to attach image to food item")
	}
	item.ImageURL = imageURLFor(item.ImageKey)
	return item, nil
}

// imageURLFor resolves a storage key into a presigned URL. An unset key or
// an unconfigured image service yields an empty URL.
func imageURLFor(imageKey string) string {
	if imageKey == "" {
		return ""
	}
	imageService := GetImageService()
	if imageService == nil {
		return ""
	}
	url, err := imageService.GetImageURL(imageKey)
	if err != nil {
		log.Printf("warning: failed to presign image %s: %v", imageKey, err)
		return ""
	}
	return url
}

// deleteImageIfPresent removes a listing photo from storage. Failures are
// logged, not surfaced: the document delete has already happened.
func deleteImageIfPresent(imageKey string) {
	if imageKey == "" {
		return
	}
	imageService := GetImageService()
	if imageService == nil {
		return
	}
	if err := imageService.DeleteImage(imageKey); err != nil {
		log.Printf("warning: failed to delete image %s: %v", imageKey, err)
	}
}
