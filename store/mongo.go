package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/foodmarket/food-market-api/models"
)

// MongoStore implements Store on top of a MongoDB database with the
// collections users, foodItems and orders.
type MongoStore struct {
	db *mongo.Database
}

// NewMongoStore creates a store backed by the given database handle.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

func (s *MongoStore) users() *mongo.Collection     { return s.db.Collection("users") }
func (s *MongoStore) foodItems() *mongo.Collection { return s.db.Collection("foodItems") }
func (s *MongoStore) orders() *mongo.Collection    { return s.db.Collection("orders") }

// translate maps driver-level errors onto the store error taxonomy.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

// userLookup joins a denormalized email field against the users collection,
// projecting only display identity (name, email, address).
func userLookup(localField string) bson.D {
	return bson.D{{Key: "$lookup", Value: bson.M{
		"from": "users",
		"let":  bson.M{"email": "$" + localField},
		"pipeline": bson.A{
			bson.M{"$match": bson.M{"$expr": bson.M{"$eq": bson.A{"$email", "$$email"}}}},
			bson.M{"$project": bson.M{"name": 1, "email": 1, "address": 1}},
		},
		"as": localField,
	}}}
}

func (s *MongoStore) ListUsers(ctx context.Context) ([]models.UserWithItems, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from": "foodItems",
			"let":  bson.M{"refs": "$foodItems"},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{"$expr": bson.M{"$in": bson.A{"$_id", "$$refs"}}}},
				bson.M{"$project": bson.M{"seller": 0}},
			},
			"as": "foodItems",
		}}},
		{{Key: "$project", Value: bson.M{"password": 0}}},
	}

	cursor, err := s.users().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, translate(err)
	}
	users := []models.UserWithItems{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, translate(err)
	}
	return users, nil
}

func (s *MongoStore) GetUserByEmail(ctx context.Context, email string, includeSensitive bool) (*models.User, error) {
	opts := options.FindOne()
	if !includeSensitive {
		opts.SetProjection(bson.M{"password": 0, "role": 0})
	}

	var user models.User
	err := s.users().FindOne(ctx, bson.M{"email": email}, opts).Decode(&user)
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *MongoStore) InsertUser(ctx context.Context, user *models.User) (*models.User, error) {
	if user.FoodItems == nil {
		user.FoodItems = []primitive.ObjectID{}
	}
	res, err := s.users().InsertOne(ctx, user)
	if err != nil {
		return nil, translate(err)
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	return user, nil
}

func (s *MongoStore) DeleteUser(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.users().FindOneAndDelete(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *MongoStore) PushFoodItemRef(ctx context.Context, email string, id primitive.ObjectID) (*models.User, error) {
	return s.updateUserRefs(ctx, email, bson.M{"$push": bson.M{"foodItems": id}})
}

func (s *MongoStore) PullFoodItemRef(ctx context.Context, email string, id primitive.ObjectID) (*models.User, error) {
	return s.updateUserRefs(ctx, email, bson.M{"$pull": bson.M{"foodItems": id}})
}

func (s *MongoStore) updateUserRefs(ctx context.Context, email string, update bson.M) (*models.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user models.User
	err := s.users().FindOneAndUpdate(ctx, bson.M{"email": email}, update, opts).Decode(&user)
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *MongoStore) ListFoodItems(ctx context.Context) ([]models.FoodItemWithSeller, error) {
	cursor, err := s.foodItems().Aggregate(ctx, mongo.Pipeline{userLookup("seller")})
	if err != nil {
		return nil, translate(err)
	}
	items := []models.FoodItemWithSeller{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, translate(err)
	}
	return items, nil
}

func (s *MongoStore) ListFoodItemsBySeller(ctx context.Context, email string) ([]models.FoodItem, error) {
	return s.findFoodItems(ctx, bson.M{"seller": email})
}

func (s *MongoStore) ListFoodItemsByName(ctx context.Context, name string) ([]models.FoodItem, error) {
	return s.findFoodItems(ctx, bson.M{"name": name})
}

func (s *MongoStore) findFoodItems(ctx context.Context, filter bson.M) ([]models.FoodItem, error) {
	cursor, err := s.foodItems().Find(ctx, filter)
	if err != nil {
		return nil, translate(err)
	}
	items := []models.FoodItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, translate(err)
	}
	return items, nil
}

func (s *MongoStore) GetFoodItemByID(ctx context.Context, id primitive.ObjectID) (*models.FoodItem, error) {
	var item models.FoodItem
	err := s.foodItems().FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (s *MongoStore) InsertFoodItem(ctx context.Context, item *models.FoodItem) (*models.FoodItem, error) {
	res, err := s.foodItems().InsertOne(ctx, item)
	if err != nil {
		return nil, translate(err)
	}
	item.ID = res.InsertedID.(primitive.ObjectID)
	return item, nil
}

func (s *MongoStore) ReplaceFoodItem(ctx context.Context, seller, name string, item models.FoodItem) (*models.FoodItem, error) {
	update := bson.M{"$set": bson.M{
		"name":        item.Name,
		"price":       item.Price,
		"quantity":    item.Quantity,
		"deliveryFee": item.DeliveryFee,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.FoodItem
	err := s.foodItems().FindOneAndUpdate(ctx, bson.M{"seller": seller, "name": name}, update, opts).Decode(&updated)
	if err != nil {
		return nil, translate(err)
	}
	return &updated, nil
}

func (s *MongoStore) DeleteFoodItem(ctx context.Context, seller, name string) (*models.FoodItem, error) {
	var item models.FoodItem
	err := s.foodItems().FindOneAndDelete(ctx, bson.M{"seller": seller, "name": name}).Decode(&item)
	if err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (s *MongoStore) DeleteFoodItemsBySeller(ctx context.Context, seller string) ([]models.FoodItem, error) {
	items, err := s.findFoodItems(ctx, bson.M{"seller": seller})
	if err != nil {
		return nil, err
	}
	if _, err := s.foodItems().DeleteMany(ctx, bson.M{"seller": seller}); err != nil {
		return nil, translate(err)
	}
	return items, nil
}

func (s *MongoStore) SetFoodItemQuantity(ctx context.Context, id primitive.ObjectID, quantity int) error {
	res, err := s.foodItems().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"quantity": quantity}})
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) SetFoodItemImage(ctx context.Context, seller, name, imageKey string) (*models.FoodItem, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var item models.FoodItem
	err := s.foodItems().FindOneAndUpdate(ctx,
		bson.M{"seller": seller, "name": name},
		bson.M{"$set": bson.M{"imageKey": imageKey}},
		opts,
	).Decode(&item)
	if err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (s *MongoStore) InsertOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	res, err := s.orders().InsertOne(ctx, order)
	if err != nil {
		return nil, translate(err)
	}
	order.ID = res.InsertedID.(primitive.ObjectID)
	return order, nil
}

func (s *MongoStore) ListOrders(ctx context.Context) ([]models.OrderWithUsers, error) {
	return s.aggregateOrders(ctx, mongo.Pipeline{userLookup("seller"), userLookup("buyer")})
}

func (s *MongoStore) ListOrdersForUser(ctx context.Context, email string) ([]models.OrderWithUsers, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"$or": bson.A{bson.M{"seller": email}, bson.M{"buyer": email}}}}},
		userLookup("seller"),
		userLookup("buyer"),
	}
	return s.aggregateOrders(ctx, pipeline)
}

func (s *MongoStore) aggregateOrders(ctx context.Context, pipeline mongo.Pipeline) ([]models.OrderWithUsers, error) {
	cursor, err := s.orders().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, translate(err)
	}
	orders := []models.OrderWithUsers{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, translate(err)
	}
	return orders, nil
}

func (s *MongoStore) UpdateOrderStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) (*models.Order, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var order models.Order
	err := s.orders().FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}}, opts).Decode(&order)
	if err != nil {
		return nil, translate(err)
	}
	return &order, nil
}
