package database

import (
	"context"
	"log"
	"time"

	"bajaj-rental-api-server/config"
	"bajaj-rental-api-server/internal/auth"
	"bajaj-rental-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SeedAdmin creates the default admin account if it is not present yet.
func SeedAdmin(db *mongo.Database, cfg config.SeedConfig) error {
	userCollection := db.Collection("users")

	count, err := userCollection.CountDocuments(context.Background(), bson.M{"email": cfg.AdminEmail})
	if err != nil {
		return err
	}
	if count > 0 {
		log.Println("Admin already exists. Seeding skipped.")
		return nil
	}

	log.Println("Admin not found. Seeding...")
	hashedPassword, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	now := time.Now()
	admin := models.User{
		Name:      "Admin",
		Email:     cfg.AdminEmail,
		Password:  hashedPassword,
		Role:      models.RoleAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := userCollection.InsertOne(context.Background(), admin); err != nil {
		return err
	}

	log.Println("Admin seeded successfully.")
	return nil
}

// SeedVehicles loads the sample catalog into an empty vehicles collection.
func SeedVehicles(db *mongo.Database) error {
	vehicleCollection := db.Collection("vehicles")

	count, err := vehicleCollection.CountDocuments(context.Background(), bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		log.Println("Vehicles already exist. Seeding skipped.")
		return nil
	}

	log.Println("Seeding sample vehicles...")
	now := time.Now()
	samples := []interface{}{
		models.Vehicle{
			Model:              "Bajaj Pulsar 150",
			RegistrationNumber: "MH-01-AB-1234",
			PricePerDay:        500,
			Description:        "Perfect for city commuting with excellent mileage and comfort.",
			IsAvailable:        true,
			Image:              models.PlaceholderImage,
			CreatedAt:          now,
			UpdatedAt:          now,
		},
		models.Vehicle{
			Model:              "Bajaj Avenger 220",
			RegistrationNumber: "MH-01-CD-5678",
			PricePerDay:        750,
			Description:        "Cruiser bike ideal for long distance travel and highway rides.",
			IsAvailable:        true,
			Image:              models.PlaceholderImage,
			CreatedAt:          now,
			UpdatedAt:          now,
		},
		models.Vehicle{
			Model:              "Bajaj Dominar 400",
			RegistrationNumber: "MH-01-EF-9012",
			PricePerDay:        1200,
			Description:        "High-performance motorcycle with advanced features and power.",
			IsAvailable:        true,
			Image:              models.PlaceholderImage,
			CreatedAt:          now,
			UpdatedAt:          now,
		},
		models.Vehicle{
			Model:              "Bajaj CT 100",
			RegistrationNumber: "MH-01-GH-3456",
			PricePerDay:        300,
			Description:        "Economical and fuel-efficient bike for everyday use.",
			IsAvailable:        true,
			Image:              models.PlaceholderImage,
			CreatedAt:          now,
			UpdatedAt:          now,
		},
		models.Vehicle{
			Model:              "Bajaj Platina 110",
			RegistrationNumber: "MH-01-IJ-7890",
			PricePerDay:        350,
			Description:        "Comfortable commuter bike with excellent suspension.",
			IsAvailable:        true,
			Image:              models.PlaceholderImage,
			CreatedAt:          now,
			UpdatedAt:          now,
		},
	}

	result, err := vehicleCollection.InsertMany(context.Background(), samples)
	if err != nil {
		return err
	}

	log.Printf("Seeded %d sample vehicles.", len(result.InsertedIDs))
	return nil
}
