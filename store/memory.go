package store

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/foodmarket/food-market-api/models"
)

// MemoryStore is an in-memory Store used by tests. It mirrors the MongoDB
// implementation's semantics, including the array-shaped user joins and the
// uniqueness behavior of the email index.
type MemoryStore struct {
	mu        sync.RWMutex
	usersByID map[primitive.ObjectID]models.User
	items     map[primitive.ObjectID]models.FoodItem
	orders    map[primitive.ObjectID]models.Order
	orderIDs  []primitive.ObjectID // insertion order
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		usersByID: make(map[primitive.ObjectID]models.User),
		items:     make(map[primitive.ObjectID]models.FoodItem),
		orders:    make(map[primitive.ObjectID]models.Order),
	}
}

func (s *MemoryStore) findUser(email string) (models.User, bool) {
	for _, u := range s.usersByID {
		if u.Email == email {
			return u, true
		}
	}
	return models.User{}, false
}

func (s *MemoryStore) summariesFor(email string) []models.UserSummary {
	if u, ok := s.findUser(email); ok {
		return []models.UserSummary{u.Summary()}
	}
	return []models.UserSummary{}
}

func (s *MemoryStore) ListUsers(ctx context.Context) ([]models.UserWithItems, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := []models.UserWithItems{}
	for _, u := range s.usersByID {
		view := models.UserWithItems{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email,
			Address:   u.Address,
			Role:      u.Role,
			FoodItems: []models.FoodItem{},
		}
		for _, ref := range u.FoodItems {
			if item, ok := s.items[ref]; ok {
				item.Seller = "" // seller is projected out of the populated view
				view.FoodItems = append(view.FoodItems, item)
			}
		}
		users = append(users, view)
	}
	return users, nil
}

func (s *MemoryStore) GetUserByEmail(ctx context.Context, email string, includeSensitive bool) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.findUser(email)
	if !ok {
		return nil, ErrNotFound
	}
	if !includeSensitive {
		u = u.Redacted(true)
	}
	return &u, nil
}

func (s *MemoryStore) InsertUser(ctx context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.findUser(user.Email); exists {
		return nil, ErrDuplicate
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.FoodItems == nil {
		user.FoodItems = []primitive.ObjectID{}
	}
	s.usersByID[user.ID] = *user
	return user, nil
}

func (s *MemoryStore) DeleteUser(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.findUser(email)
	if !ok {
		return nil, ErrNotFound
	}
	delete(s.usersByID, u.ID)
	return &u, nil
}

func (s *MemoryStore) PushFoodItemRef(ctx context.Context, email string, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.findUser(email)
	if !ok {
		return nil, ErrNotFound
	}
	u.FoodItems = append(u.FoodItems, id)
	s.usersByID[u.ID] = u
	return &u, nil
}

func (s *MemoryStore) PullFoodItemRef(ctx context.Context, email string, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.findUser(email)
	if !ok {
		return nil, ErrNotFound
	}
	refs := make([]primitive.ObjectID, 0, len(u.FoodItems))
	for _, ref := range u.FoodItems {
		if ref != id {
			refs = append(refs, ref)
		}
	}
	u.FoodItems = refs
	s.usersByID[u.ID] = u
	return &u, nil
}

func (s *MemoryStore) ListFoodItems(ctx context.Context) ([]models.FoodItemWithSeller, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := []models.FoodItemWithSeller{}
	for _, item := range s.items {
		items = append(items, models.FoodItemWithSeller{
			ID:          item.ID,
			Name:        item.Name,
			Seller:      s.summariesFor(item.Seller),
			Price:       item.Price,
			Quantity:    item.Quantity,
			DeliveryFee: item.DeliveryFee,
			ImageKey:    item.ImageKey,
		})
	}
	return items, nil
}

func (s *MemoryStore) ListFoodItemsBySeller(ctx context.Context, email string) ([]models.FoodItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := []models.FoodItem{}
	for _, item := range s.items {
		if item.Seller == email {
			items = append(items, item)
		}
	}
	return items, nil
}

func (s *MemoryStore) ListFoodItemsByName(ctx context.Context, name string) ([]models.FoodItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := []models.FoodItem{}
	for _, item := range s.items {
		if item.Name == name {
			items = append(items, item)
		}
	}
	return items, nil
}

func (s *MemoryStore) GetFoodItemByID(ctx context.Context, id primitive.ObjectID) (*models.FoodItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &item, nil
}

func (s *MemoryStore) InsertFoodItem(ctx context.Context, item *models.FoodItem) (*models.FoodItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.items {
		if existing.Seller == item.Seller && existing.Name == item.Name {
			return nil, ErrDuplicate
		}
	}
	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	s.items[item.ID] = *item
	return item, nil
}

func (s *MemoryStore) ReplaceFoodItem(ctx context.Context, seller, name string, item models.FoodItem) (*models.FoodItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, existing := range s.items {
		if existing.Seller == seller && existing.Name == name {
			existing.Name = item.Name
			existing.Price = item.Price
			existing.Quantity = item.Quantity
			existing.DeliveryFee = item.DeliveryFee
			s.items[id] = existing
			return &existing, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) DeleteFoodItem(ctx context.Context, seller, name string) (*models.FoodItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, item := range s.items {
		if item.Seller == seller && item.Name == name {
			delete(s.items, id)
			return &item, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) DeleteFoodItemsBySeller(ctx context.Context, seller string) ([]models.FoodItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := []models.FoodItem{}
	for id, item := range s.items {
		if item.Seller == seller {
			deleted = append(deleted, item)
			delete(s.items, id)
		}
	}
	return deleted, nil
}

func (s *MemoryStore) SetFoodItemQuantity(ctx context.Context, id primitive.ObjectID, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return ErrNotFound
	}
	item.Quantity = quantity
	s.items[id] = item
	return nil
}

func (s *MemoryStore) SetFoodItemImage(ctx context.Context, seller, name, imageKey string) (*models.FoodItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, item := range s.items {
		if item.Seller == seller && item.Name == name {
			item.ImageKey = imageKey
			s.items[id] = item
			return &item, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) InsertOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	s.orders[order.ID] = *order
	s.orderIDs = append(s.orderIDs, order.ID)
	return order, nil
}

func (s *MemoryStore) ListOrders(ctx context.Context) ([]models.OrderWithUsers, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := []models.OrderWithUsers{}
	for _, id := range s.orderIDs {
		if o, ok := s.orders[id]; ok {
			orders = append(orders, s.joinOrder(o))
		}
	}
	return orders, nil
}

func (s *MemoryStore) ListOrdersForUser(ctx context.Context, email string) ([]models.OrderWithUsers, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := []models.OrderWithUsers{}
	for _, id := range s.orderIDs {
		o, ok := s.orders[id]
		if ok && (o.Seller == email || o.Buyer == email) {
			orders = append(orders, s.joinOrder(o))
		}
	}
	return orders, nil
}

func (s *MemoryStore) joinOrder(o models.Order) models.OrderWithUsers {
	return models.OrderWithUsers{
		ID:          o.ID,
		Seller:      s.summariesFor(o.Seller),
		Buyer:       s.summariesFor(o.Buyer),
		FoodItems:   o.FoodItems,
		Address:     o.Address,
		Type:        o.Type,
		DeliveryFee: o.DeliveryFee,
		TotalPrice:  o.TotalPrice,
		Status:      o.Status,
		Date:        o.Date,
	}
}

func (s *MemoryStore) UpdateOrderStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	order.Status = status
	s.orders[id] = order
	return &order, nil
}
