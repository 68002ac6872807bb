package main

import (
	"context"
	"log"
	"time"

	"github.com/foodmarket/food-market-api/config"
	"github.com/foodmarket/food-market-api/services"
	"github.com/foodmarket/food-market-api/store"
)

func main() {
	// Basic logging
	log.Println("Starting Food Market API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := config.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create database indexes: %v", err)
	}
	log.Println("Database indexes ensured successfully")

	store.Set(store.NewMongoStore(config.GetDatabase()))

	// Listing photos need an S3 bucket; without one the API still runs,
	// photo endpoints report storage as unconfigured
	if cfg.AWSS3Bucket != "" {
		s3Service, err := services.InitS3Service()
		if err != nil {
			log.Fatalf("Failed to initialize S3 service: %v", err)
		}
		services.InitImageService(s3Service)
		log.Println("S3 image storage initialized")
	} else {
		log.Println("AWS_S3_BUCKET not set, listing photos are disabled")
	}

	// Initialize Gin router
	router := setupRouter()

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
