package config

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var mongoClient *mongo.Client
var mongoDatabase *mongo.Database

// ConnectDatabase establishes a connection to MongoDB and verifies it with
// a ping.
func ConnectDatabase(cfg *Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURL))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	mongoClient = client
	mongoDatabase = client.Database(cfg.MongoDatabase)

	log.Println("Database connection established successfully")
	return nil
}

// EnsureIndexes creates the uniqueness indexes the application relies on.
// The service layer still performs its own existence checks; these indexes
// close the race window between check and insert.
func EnsureIndexes(ctx context.Context) error {
	db := GetDatabase()
	if db == nil {
		return fmt.Errorf("database not connected")
	}

	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create users.email index: %w", err)
	}

	_, err = db.Collection("foodItems").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "seller", Value: 1}, {Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create foodItems.(seller,name) index: %w", err)
	}

	return nil
}

// GetDatabase returns the database handle
func GetDatabase() *mongo.Database {
	return mongoDatabase
}

// DisconnectDatabase closes the MongoDB connection
func DisconnectDatabase(ctx context.Context) error {
	if mongoClient == nil {
		return nil
	}
	return mongoClient.Disconnect(ctx)
}
