package main

import (
	"context"
	"log"

	"bajaj-rental-api-server/config"
	"bajaj-rental-api-server/internal/api/routes"
	"bajaj-rental-api-server/internal/auth"
	"bajaj-rental-api-server/internal/booking"
	"bajaj-rental-api-server/internal/database"
	"bajaj-rental-api-server/internal/s3"
	"bajaj-rental-api-server/internal/socket"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}

	if err := auth.Init(cfg.JWT); err != nil {
		log.Fatalf("Could not initialize auth: %v", err)
	}

	db, err := database.Connect(cfg.Mongo)
	if err != nil {
		log.Fatalf("Could not connect to MongoDB: %v", err)
	}

	if err := database.EnsureIndexes(context.Background(), db); err != nil {
		log.Fatalf("Could not create indexes: %v", err)
	}

	if err := database.SeedAdmin(db, cfg.Seed); err != nil {
		log.Fatalf("Could not seed admin: %v", err)
	}
	if cfg.Seed.Vehicles {
		if err := database.SeedVehicles(db); err != nil {
			log.Fatalf("Could not seed vehicles: %v", err)
		}
	}

	var s3Uploader *s3.Uploader
	if cfg.S3.Bucket != "" {
		s3Uploader, err = s3.NewUploader(cfg.S3)
		if err != nil {
			log.Fatalf("Could not initialize S3 uploader: %v", err)
		}
	} else {
		log.Println("S3 is not configured; image uploads are disabled.")
	}

	wsHub := socket.NewHub()
	store := database.NewStore(db)
	bookingService := booking.New(store, wsHub)

	router := routes.SetupRouter(cfg, db, bookingService, s3Uploader, wsHub)

	log.Printf("Starting API server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
