package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"crimewatch-be/middlewares"
	"crimewatch-be/models"
	"crimewatch-be/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CaseController struct {
	cases *mongo.Collection
	users *mongo.Collection
}

func NewCaseController(db *mongo.Database) *CaseController {
	return &CaseController{
		cases: db.Collection("cases"),
		users: db.Collection("users"),
	}
}

// caseTarget builds the policy target for a stored case document.
func caseTarget(kase *models.Case) *utils.Target {
	target := &utils.Target{CitizenID: kase.CitizenID.Hex()}
	if kase.AssignedTo != nil {
		target.AssignedOfficer = kase.AssignedTo.Hex()
	}
	return target
}

// Create files a new case for the authenticated citizen. The citizen's name
// and email are denormalized onto the case at creation time.
func (cc *CaseController) Create(c *gin.Context) {
	claims := middlewares.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	if err := utils.Authorize(claims, utils.ResourceCase, utils.ActionCreate, nil); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	var input struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Category    string `json:"category"`
		Location    string `json:"location"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	missing := missingFields([]requiredField{
		{"title", input.Title},
		{"description", input.Description},
		{"category", input.Category},
		{"location", input.Location},
	})
	if len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing fields", "fields": missing})
		return
	}

	citizenID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var citizen models.User
	err = cc.users.FindOne(ctx, bson.M{"_id": citizenID, "role": models.RoleCitizen}).Decode(&citizen)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Citizen not found"})
		return
	}

	kase := models.Case{
		CitizenID:    citizenID,
		CitizenName:  citizen.FullName(),
		CitizenEmail: citizen.Email,
		Title:        input.Title,
		Description:  input.Description,
		Category:     input.Category,
		Location:     input.Location,
		Status:       models.CasePending,
		Priority:     "Normal",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	result, err := cc.cases.InsertOne(ctx, kase)
	if err != nil {
		log.Println("Error creating case:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create case"})
		return
	}
	kase.ID = result.InsertedID.(primitive.ObjectID)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Crime report submitted successfully",
		"case":    utils.Sanitize(asDoc(kase), false),
	})
}

// List returns every case, newest first. Admin only.
func (cc *CaseController) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := cc.cases.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve cases"})
		return
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode cases"})
		return
	}

	c.JSON(http.StatusOK, utils.SanitizeAll(docs, false))
}

// GetByID returns a single case to its owning citizen, an officer with
// access, or an admin.
func (cc *CaseController) GetByID(c *gin.Context) {
	claims := middlewares.GetClaims(c)

	caseID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid case ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var kase models.Case
	if err := cc.cases.FindOne(ctx, bson.M{"_id": caseID}).Decode(&kase); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Case not found"})
		return
	}

	if err := utils.Authorize(claims, utils.ResourceCase, utils.ActionRead, caseTarget(&kase)); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	c.JSON(http.StatusOK, utils.Sanitize(asDoc(kase), false))
}

// CitizenCases lists the cases filed by one citizen, visible to that citizen
// and to admins.
func (cc *CaseController) CitizenCases(c *gin.Context) {
	claims := middlewares.GetClaims(c)
	citizenIDHex := c.Param("citizen_id")

	if err := utils.Authorize(claims, utils.ResourceCase, utils.ActionList, &utils.Target{CitizenID: citizenIDHex}); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	citizenID, err := primitive.ObjectIDFromHex(citizenIDHex)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid citizen ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := cc.cases.Find(ctx, bson.M{"citizen_id": citizenID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve cases"})
		return
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode cases"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"cases": utils.SanitizeAll(docs, false)})
}

// Update modifies case details. The owning citizen, an officer with access,
// or an admin may update; status changes must follow the transition rules.
func (cc *CaseController) Update(c *gin.Context) {
	claims := middlewares.GetClaims(c)

	caseID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid case ID"})
		return
	}

	var input map[string]interface{}
	if err := c.ShouldBindJSON(&input); err != nil || len(input) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No update data provided"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var kase models.Case
	if err := cc.cases.FindOne(ctx, bson.M{"_id": caseID}).Decode(&kase); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Case not found"})
		return
	}

	if err := utils.Authorize(claims, utils.ResourceCase, utils.ActionUpdate, caseTarget(&kase)); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	allowed := map[string]bool{
		"title": true, "description": true, "category": true,
		"location": true, "status": true, "priority": true,
	}
	updates := bson.M{}
	for key, value := range input {
		if allowed[key] {
			updates[key] = value
		}
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	if status, ok := updates["status"].(string); ok {
		if !models.ValidCaseStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		if !models.CanTransition(kase.Status, models.CaseStatus(status)) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status transition"})
			return
		}
	}
	updates["updated_at"] = time.Now()

	if _, err := cc.cases.UpdateOne(ctx, bson.M{"_id": caseID}, bson.M{"$set": updates}); err != nil {
		log.Println("Error updating case:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update case"})
		return
	}

	var updated bson.M
	if err := cc.cases.FindOne(ctx, bson.M{"_id": caseID}).Decode(&updated); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Case updated but could not be reloaded"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Case updated successfully",
		"updated_case": utils.Sanitize(updated, false),
	})
}

// Delete removes a case. Only the owning citizen or an admin may delete.
func (cc *CaseController) Delete(c *gin.Context) {
	claims := middlewares.GetClaims(c)

	caseID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid case ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var kase models.Case
	if err := cc.cases.FindOne(ctx, bson.M{"_id": caseID}).Decode(&kase); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Case not found"})
		return
	}

	if err := utils.Authorize(claims, utils.ResourceCase, utils.ActionDelete, &utils.Target{CitizenID: kase.CitizenID.Hex()}); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	result, err := cc.cases.DeleteOne(ctx, bson.M{"_id": caseID})
	if err != nil {
		log.Println("Error deleting case:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete case"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Case not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Case deleted successfully"})
}
