package controllers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"crimewatch-be/middlewares"
	"crimewatch-be/models"
	"crimewatch-be/storage"
	"crimewatch-be/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OfficerController struct {
	users    *mongo.Collection
	cases    *mongo.Collection
	firs     *mongo.Collection
	evidence *mongo.Collection
	alerts   *mongo.Collection
	blobs    storage.BlobStore
}

func NewOfficerController(db *mongo.Database, blobs storage.BlobStore) *OfficerController {
	return &OfficerController{
		users:    db.Collection("users"),
		cases:    db.Collection("cases"),
		firs:     db.Collection("officer_firs"),
		evidence: db.Collection("evidence"),
		alerts:   db.Collection("notifications"),
		blobs:    blobs,
	}
}

func (oc *OfficerController) findOfficer(ctx context.Context, claims *utils.Claims) (*models.User, error) {
	officerID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, err
	}
	var officer models.User
	err = oc.users.FindOne(ctx, bson.M{"_id": officerID, "role": models.RoleOfficer}).Decode(&officer)
	if err != nil {
		return nil, err
	}
	return &officer, nil
}

// Me returns the logged-in officer's profile.
func (oc *OfficerController) Me(c *gin.Context) {
	claims := middlewares.GetClaims(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	officer, err := oc.findOfficer(ctx, claims)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Officer not found"})
		return
	}

	c.JSON(http.StatusOK, utils.Sanitize(asDoc(officer), false))
}

// UpdateMe modifies the logged-in officer's profile.
func (oc *OfficerController) UpdateMe(c *gin.Context) {
	claims := middlewares.GetClaims(c)

	officerID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var input map[string]interface{}
	if err := c.ShouldBindJSON(&input); err != nil || len(input) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No update data provided"})
		return
	}

	allowed := map[string]bool{
		"first_name": true, "last_name": true, "email": true, "phone": true,
		"badge": true, "department": true, "password": true,
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

	result, err := oc.users.UpdateOne(ctx, bson.M{"_id": officerID, "role": models.RoleOfficer}, bson.M{"$set": updates})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Officer not found"})
		return
	}

	var updated bson.M
	if err := oc.users.FindOne(ctx, bson.M{"_id": officerID}).Decode(&updated); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Profile updated but could not be reloaded"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"officer": utils.Sanitize(updated, false),
	})
}

// Cases lists the cases assigned to the logged-in officer, with optional
// status and priority filters.
func (oc *OfficerController) Cases(c *gin.Context) {
	claims := middlewares.GetClaims(c)

	officerID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	query := bson.M{"assigned_to": officerID}
	if status := c.Query("status"); status != "" {
		query["status"] = status
	}
	if priority := c.Query("priority"); priority != "" {
		query["priority"] = capitalize(strings.ToLower(priority))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := oc.cases.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
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

// CaseByID returns a case when the officer is assigned to it or the case is
// unassigned.
func (oc *OfficerController) CaseByID(c *gin.Context) {
	claims := middlewares.GetClaims(c)

	caseID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid case ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var kase models.Case
	if err := oc.cases.FindOne(ctx, bson.M{"_id": caseID}).Decode(&kase); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Case not found"})
		return
	}

	if err := utils.Authorize(claims, utils.ResourceCase, utils.ActionRead, caseTarget(&kase)); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	c.JSON(http.StatusOK, utils.Sanitize(asDoc(kase), false))
}

// UpdateCase lets an officer change status, priority or notes on a case they
// can access.
func (oc *OfficerController) UpdateCase(c *gin.Context) {
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

	allowed := map[string]bool{"status": true, "priority": true, "officer_notes": true}
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

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var kase models.Case
	if err := oc.cases.FindOne(ctx, bson.M{"_id": caseID}).Decode(&kase); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Case not found"})
		return
	}

	if err := utils.Authorize(claims, utils.ResourceCase, utils.ActionUpdate, caseTarget(&kase)); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
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
	updates["updated_by"] = claims.UserID

	if _, err := oc.cases.UpdateOne(ctx, bson.M{"_id": caseID}, bson.M{"$set": updates}); err != nil {
		log.Println("Error updating case:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update case"})
		return
	}

	var updated bson.M
	if err := oc.cases.FindOne(ctx, bson.M{"_id": caseID}).Decode(&updated); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Case updated but could not be reloaded"})
		return
	}

	c.JSON(http.StatusOK, utils.Sanitize(updated, false))
}

// Team lists all officers except the logged-in one.
func (oc *OfficerController) Team(c *gin.Context) {
	claims := middlewares.GetClaims(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := oc.users.Find(ctx, bson.M{"role": models.RoleOfficer})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve officers"})
		return
	}
	defer cursor.Close(ctx)

	var officers []models.User
	if err := cursor.All(ctx, &officers); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode officers"})
		return
	}

	c.JSON(http.StatusOK, teamRoster(officers, claims.UserID))
}

// teamRoster builds the roster entries for every officer except the caller.
// Presence is not tracked, so status is a constant.
func teamRoster(officers []models.User, selfID string) []gin.H {
	team := make([]gin.H, 0, len(officers))
	for _, officer := range officers {
		if officer.ID.Hex() == selfID {
			continue
		}
		team = append(team, gin.H{
			"id":         officer.ID.Hex(),
			"name":       officer.FullName(),
			"email":      officer.Email,
			"badge":      officer.Badge,
			"department": officer.Department,
			"status":     "Offline",
		})
	}
	return team
}

// Incidents returns FIRs and cases merged into one feed for map plotting.
func (oc *OfficerController) Incidents(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	projection := options.Find().SetProjection(bson.M{
		"title": 1, "category": 1, "location": 1,
		"complainant_name": 1, "citizen_name": 1, "created_at": 1, "status": 1,
	})

	var incidents []gin.H
	collect := func(collection *mongo.Collection, complainantKey string) error {
		cursor, err := collection.Find(ctx, bson.M{}, projection)
		if err != nil {
			return err
		}
		defer cursor.Close(ctx)

		var docs []bson.M
		if err := cursor.All(ctx, &docs); err != nil {
			return err
		}
		for _, raw := range docs {
			doc := utils.Sanitize(raw, false)
			complainant, _ := doc[complainantKey].(string)
			incidents = append(incidents, gin.H{
				"id":          doc["_id"],
				"title":       doc["title"],
				"category":    doc["category"],
				"complainant": complainant,
				"location":    doc["location"],
				"status":      doc["status"],
				"created_at":  doc["created_at"],
			})
		}
		return nil
	}

	if err := collect(oc.firs, "complainant_name"); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve incidents"})
		return
	}
	if err := collect(oc.cases, "citizen_name"); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve incidents"})
		return
	}

	if incidents == nil {
		incidents = []gin.H{}
	}
	c.JSON(http.StatusOK, incidents)
}

// SendAlert broadcasts a notification to all officers.
func (oc *OfficerController) SendAlert(c *gin.Context) {
	claims := middlewares.GetClaims(c)

	var input struct {
		Title   string `json:"title"`
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Both title and message are required"})
		return
	}

	alert := models.Alert{
		Title:   strings.TrimSpace(input.Title),
		Message: strings.TrimSpace(input.Message),
		SentBy:  claims.Email,
		SentAt:  time.Now(),
		Read:    false,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := oc.alerts.InsertOne(ctx, alert); err != nil {
		log.Println("Error inserting alert:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send alert"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Alert sent successfully"})
}

// Alerts returns the latest broadcasts with display-formatted timestamps.
func (oc *OfficerController) Alerts(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := oc.alerts.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "sent_at", Value: -1}}).SetLimit(10))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve alerts"})
		return
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode alerts"})
		return
	}

	c.JSON(http.StatusOK, utils.SanitizeAll(docs, true))
}

// CreateFIR registers a new First Information Report owned by the logged-in
// officer.
func (oc *OfficerController) CreateFIR(c *gin.Context) {
	claims := middlewares.GetClaims(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	officer, err := oc.findOfficer(ctx, claims)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Officer not found"})
		return
	}

	var input struct {
		Title           string `json:"title"`
		Category        string `json:"category"`
		ComplainantName string `json:"complainant_name"`
		Contact         string `json:"contact"`
		Location        string `json:"location"`
		Description     string `json:"description"`
		Priority        string `json:"priority"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	missing := missingFields([]requiredField{
		{"title", input.Title},
		{"category", input.Category},
		{"complainant_name", input.ComplainantName},
		{"contact", input.Contact},
		{"location", input.Location},
		{"description", input.Description},
	})
	if len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields", "fields": missing})
		return
	}

	priority := input.Priority
	if priority == "" {
		priority = models.DefaultFIRPriority
	}

	fir := models.OfficerFIR{
		Title:           input.Title,
		Category:        input.Category,
		ComplainantName: input.ComplainantName,
		Contact:         input.Contact,
		Location:        input.Location,
		Description:     input.Description,
		Priority:        priority,
		OfficerID:       officer.ID,
		OfficerName:     officer.FullName(),
		Status:          models.DefaultFIRStatus,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	result, err := oc.firs.InsertOne(ctx, fir)
	if err != nil {
		log.Println("Error inserting FIR:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create FIR"})
		return
	}
	fir.ID = result.InsertedID.(primitive.ObjectID)

	c.JSON(http.StatusCreated, gin.H{
		"message": "FIR created successfully",
		"fir":     utils.Sanitize(asDoc(fir), true),
	})
}

// ListFIRs returns all FIRs created by the logged-in officer, newest first.
func (oc *OfficerController) ListFIRs(c *gin.Context) {
	claims := middlewares.GetClaims(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	officer, err := oc.findOfficer(ctx, claims)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Officer not found"})
		return
	}

	cursor, err := oc.firs.Find(ctx, bson.M{"officer_id": officer.ID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve FIRs"})
		return
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode FIRs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count": len(docs),
		"officer": gin.H{
			"name":  officer.FullName(),
			"badge": officer.Badge,
			"email": officer.Email,
		},
		"firs": utils.SanitizeAll(docs, true),
	})
}

// GetFIR returns one FIR, only to the officer who created it.
func (oc *OfficerController) GetFIR(c *gin.Context) {
	claims := middlewares.GetClaims(c)

	firID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid FIR ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var fir models.OfficerFIR
	if err := oc.firs.FindOne(ctx, bson.M{"_id": firID}).Decode(&fir); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "FIR not found"})
		return
	}

	if err := utils.Authorize(claims, utils.ResourceFIR, utils.ActionRead, &utils.Target{OfficerID: fir.OfficerID.Hex()}); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	c.JSON(http.StatusOK, utils.Sanitize(asDoc(fir), true))
}

// UpdateFIR lets the owning officer change status, priority or notes.
func (oc *OfficerController) UpdateFIR(c *gin.Context) {
	claims := middlewares.GetClaims(c)

	firID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid FIR ID"})
		return
	}

	var input map[string]interface{}
	if err := c.ShouldBindJSON(&input); err != nil || len(input) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No update data provided"})
		return
	}

	allowed := map[string]bool{"status": true, "priority": true, "officer_notes": true}
	updates := bson.M{}
	for key, value := range input {
		str, _ := value.(string)
		if allowed[key] && strings.TrimSpace(str) != "" {
			updates[key] = str
		}
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var fir models.OfficerFIR
	if err := oc.firs.FindOne(ctx, bson.M{"_id": firID}).Decode(&fir); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "FIR not found"})
		return
	}

	if err := utils.Authorize(claims, utils.ResourceFIR, utils.ActionUpdate, &utils.Target{OfficerID: fir.OfficerID.Hex()}); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	if status, ok := updates["status"].(string); ok {
		if !models.ValidCaseStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		if !models.CanTransition(models.CaseStatus(fir.Status), models.CaseStatus(status)) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status transition"})
			return
		}
	}
	updates["updated_at"] = time.Now()

	if _, err := oc.firs.UpdateOne(ctx, bson.M{"_id": firID}, bson.M{"$set": updates}); err != nil {
		log.Println("Error updating FIR:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update FIR"})
		return
	}

	var updated bson.M
	if err := oc.firs.FindOne(ctx, bson.M{"_id": firID}).Decode(&updated); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "FIR updated but could not be reloaded"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "FIR updated successfully",
		"updated_fir": utils.Sanitize(updated, true),
	})
}

// DeleteFIR removes a FIR owned by the logged-in officer.
func (oc *OfficerController) DeleteFIR(c *gin.Context) {
	claims := middlewares.GetClaims(c)

	firID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid FIR ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var fir models.OfficerFIR
	if err := oc.firs.FindOne(ctx, bson.M{"_id": firID}).Decode(&fir); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "FIR not found"})
		return
	}

	if err := utils.Authorize(claims, utils.ResourceFIR, utils.ActionDelete, &utils.Target{OfficerID: fir.OfficerID.Hex()}); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	if _, err := oc.firs.DeleteOne(ctx, bson.M{"_id": firID}); err != nil {
		log.Println("Error deleting FIR:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete FIR"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "FIR deleted successfully"})
}
