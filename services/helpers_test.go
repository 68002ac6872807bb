package services

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foodmarket/food-market-api/config"
	"github.com/foodmarket/food-market-api/models"
	"github.com/foodmarket/food-market-api/store"
)

// setupServiceTest points the package globals at throwaway test doubles:
// an in-memory store, a mock image backend and a fixed signing secret.
func setupServiceTest(t *testing.T) *MockImageService {
	t.Helper()

	config.SetConfig(&config.Config{
		Port:      "8080",
		GoEnv:     "test",
		JWTSecret: "unit-test-secret",
	})
	store.Set(store.NewMemoryStore())

	mockImages := NewMockImageService()
	SetImageService(mockImages)
	return mockImages
}

func seedUser(t *testing.T, email, password string, role models.Role) *models.User {
	t.Helper()

	hash, err := HashPassword(password)
	require.NoError(t, err)

	user, insertErr := store.Get().InsertUser(context.Background(), &models.User{
		Name:     "User " + email,
		Email:    email,
		Password: hash,
		Address:  "Address of " + email,
		Role:     role,
	})
	require.NoError(t, insertErr)
	return user
}

func seedFoodItem(t *testing.T, seller, name string, price float64, qty int) *models.FoodItem {
	t.Helper()

	item, err := store.Get().InsertFoodItem(context.Background(), &models.FoodItem{
		Name:        name,
		Seller:      seller,
		Price:       price,
		Quantity:    qty,
		DeliveryFee: 2.50,
	})
	require.NoError(t, err)

	_, err = store.Get().PushFoodItemRef(context.Background(), seller, item.ID)
	require.NoError(t, err)
	return item
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }

// makeFileHeader builds a multipart.FileHeader the way an HTTP upload would
func makeFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
	h.Set("Content-Type", "image/png")
	part, err := writer.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(body, writer.Boundary())
	form, err := reader.ReadForm(int64(len(content)) + 1024)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	require.NotEmpty(t, form.File["image"])
	return form.File["image"][0]
}
