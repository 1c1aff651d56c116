package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"crimewatch-be/middlewares"
	"crimewatch-be/models"
	"crimewatch-be/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type CitizenController struct {
	users *mongo.Collection
}

func NewCitizenController(db *mongo.Database) *CitizenController {
	return &CitizenController{users: db.Collection("users")}
}

// GetProfile returns a citizen's profile to the citizen themselves or an
// admin.
func (cc *CitizenController) GetProfile(c *gin.Context) {
	claims := middlewares.GetClaims(c)
	citizenID := c.Param("citizen_id")

	if err := utils.Authorize(claims, utils.ResourceUser, utils.ActionRead, &utils.Target{UserID: citizenID}); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	objectID, err := primitive.ObjectIDFromHex(citizenID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid citizen ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var doc bson.M
	if err := cc.users.FindOne(ctx, bson.M{"_id": objectID, "role": models.RoleCitizen}).Decode(&doc); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Citizen not found"})
		return
	}

	c.JSON(http.StatusOK, utils.Sanitize(doc, false))
}

// UpdateProfile modifies a citizen's own profile fields. A supplied password
// is re-hashed before storage.
func (cc *CitizenController) UpdateProfile(c *gin.Context) {
	claims := middlewares.GetClaims(c)
	citizenID := c.Param("citizen_id")

	if err := utils.Authorize(claims, utils.ResourceUser, utils.ActionUpdate, &utils.Target{UserID: citizenID}); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	objectID, err := primitive.ObjectIDFromHex(citizenID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid citizen ID"})
		return
	}

	var input map[string]interface{}
	if err := c.ShouldBindJSON(&input); err != nil || len(input) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No update data provided"})
		return
	}

	allowed := map[string]bool{
		"first_name": true, "last_name": true, "email": true,
		"phone": true, "password": true,
	}
	updates := bson.M{}
	for key, value := range input {
		str, _ := value.(string)
		if !allowed[key] || strings.TrimSpace(str) == "" {
			continue
		}
		if key == "password" {
			hashed, err := models.HashPassword(str)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
				return
			}
			updates["password_hash"] = hashed
			continue
		}
		if key == "email" {
			str = strings.ToLower(str)
		}
		updates[key] = str
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}
	updates["updated_at"] = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := cc.users.UpdateOne(ctx, bson.M{"_id": objectID, "role": models.RoleCitizen}, bson.M{"$set": updates})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Citizen not found"})
		return
	}

	var updated bson.M
	if err := cc.users.FindOne(ctx, bson.M{"_id": objectID}).Decode(&updated); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Profile updated but could not be reloaded"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    utils.Sanitize(updated, false),
	})
}
