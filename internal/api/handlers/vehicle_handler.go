package handlers

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"bajaj-rental-api-server/internal/booking"
	"bajaj-rental-api-server/internal/models"
	"bajaj-rental-api-server/internal/s3"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const maxImageSize = 5 << 20 // 5MB

type VehicleHandler struct {
	DB         *mongo.Database
	Service    *booking.Service
	S3Uploader *s3.Uploader // nil when S3 is not configured
}

// GetAllVehicles returns the whole catalog, newest first.
func (h *VehicleHandler) GetAllVehicles(c *gin.Context) {
	collection := h.DB.Collection("vehicles")

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := collection.Find(context.Background(), bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query vehicles"})
		return
	}
	defer cursor.Close(context.Background())

	var vehicles []models.Vehicle
	if err := cursor.All(context.Background(), &vehicles); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode vehicles"})
		return
	}

	if vehicles == nil {
		vehicles = []models.Vehicle{}
	}

	c.JSON(http.StatusOK, vehicles)
}

// GetAvailableVehicles returns the vehicles currently bookable. The read
// goes through the booking service, which owns the availability flag.
func (h *VehicleHandler) GetAvailableVehicles(c *gin.Context) {
	vehicles, err := h.Service.ListAvailable(c.Request.Context())
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	if vehicles == nil {
		vehicles = []models.Vehicle{}
	}

	c.JSON(http.StatusOK, vehicles)
}

// CreateVehicle adds a catalog entry. Multipart form: model,
// registrationNumber, pricePerDay, description and an optional image file.
func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	model := strings.TrimSpace(c.PostForm("model"))
	registrationNumber := strings.TrimSpace(c.PostForm("registrationNumber"))
	priceStr := c.PostForm("pricePerDay")
	description := c.PostForm("description")

	if model == "" || registrationNumber == "" || priceStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "model, registrationNumber and pricePerDay are required"})
		return
	}
	pricePerDay, err := strconv.ParseFloat(priceStr, 64)
	if err != nil || pricePerDay < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pricePerDay must be a non-negative number"})
		return
	}

	collection := h.DB.Collection("vehicles")

	count, err := collection.CountDocuments(context.Background(), bson.M{"registrationNumber": registrationNumber})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error checking for vehicle"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Vehicle with this registration number already exists"})
		return
	}

	imageURL, err := h.uploadImage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	newVehicle := models.Vehicle{
		Model:              model,
		RegistrationNumber: registrationNumber,
		PricePerDay:        pricePerDay,
		IsAvailable:        true,
		Image:              imageURL,
		Description:        description,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	result, err := collection.InsertOne(context.Background(), newVehicle)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create vehicle"})
		return
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		newVehicle.ID = oid
	}

	c.JSON(http.StatusCreated, newVehicle)
}

// UpdateVehicle edits catalog fields. The availability flag is deliberately
// not updatable here; only the booking service writes it.
func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle ID"})
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if model := strings.TrimSpace(c.PostForm("model")); model != "" {
		update["model"] = model
	}
	if reg := strings.TrimSpace(c.PostForm("registrationNumber")); reg != "" {
		update["registrationNumber"] = reg
	}
	if priceStr := c.PostForm("pricePerDay"); priceStr != "" {
		pricePerDay, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || pricePerDay < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "pricePerDay must be a non-negative number"})
			return
		}
		update["pricePerDay"] = pricePerDay
	}
	if description, ok := c.GetPostForm("description"); ok {
		update["description"] = description
	}

	if _, err := c.FormFile("image"); err == nil {
		imageURL, err := h.uploadImage(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		update["image"] = imageURL
	}

	collection := h.DB.Collection("vehicles")
	var vehicle models.Vehicle
	err = collection.FindOneAndUpdate(context.Background(),
		bson.M{"_id": id},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&vehicle)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update vehicle"})
		}
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

// DeleteVehicle removes a catalog entry. Bookings referencing it keep
// working; list views substitute a placeholder for the missing vehicle.
func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle ID"})
		return
	}

	result, err := h.DB.Collection("vehicles").DeleteOne(context.Background(), bson.M{"_id": id})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete vehicle"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vehicle deleted successfully"})
}

// uploadImage pushes the "image" form file to S3 and returns its URL. No
// file at all falls back to the placeholder.
func (h *VehicleHandler) uploadImage(c *gin.Context) (string, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return models.PlaceholderImage, nil
	}

	if fileHeader.Size > maxImageSize {
		return "", fmt.Errorf("image must not exceed %d bytes", maxImageSize)
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("only image files are allowed")
	}
	if h.S3Uploader == nil {
		return "", fmt.Errorf("image storage is not configured")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to read uploaded file: %w", err)
	}
	defer file.Close()

	objectKey := fmt.Sprintf("vehicles/vehicle-%s%s", uuid.New().String()[:8], filepath.Ext(fileHeader.Filename))
	return h.S3Uploader.UploadFile(c.Request.Context(), file, objectKey, contentType)
}
