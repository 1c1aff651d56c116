package controllers

import (
	"context"
	"log"
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
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AdminController struct {
	users  *mongo.Collection
	cases  *mongo.Collection
	firs   *mongo.Collection
	alerts *mongo.Collection
}

func NewAdminController(db *mongo.Database) *AdminController {
	return &AdminController{
		users:  db.Collection("users"),
		cases:  db.Collection("cases"),
		firs:   db.Collection("officer_firs"),
		alerts: db.Collection("notifications"),
	}
}

// ListUsers returns all accounts, optionally filtered by role or a name/email
// search term.
func (ac *AdminController) ListUsers(c *gin.Context) {
	query := bson.M{}
	if role := c.Query("role"); role != "" {
		query["role"] = role
	}
	if q := c.Query("q"); q != "" {
		pattern := primitive.Regex{Pattern: q, Options: "i"}
		query["$or"] = []bson.M{
			{"first_name": pattern},
			{"last_name": pattern},
			{"email": pattern},
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := ac.users.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": utils.SanitizeAll(docs, false)})
}

func (ac *AdminController) GetUser(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var doc bson.M
	if err := ac.users.FindOne(ctx, bson.M{"_id": userID}).Decode(&doc); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": utils.Sanitize(doc, false)})
}

// CreateUser lets an admin provision an account with any role.
func (ac *AdminController) CreateUser(c *gin.Context) {
	var input struct {
		FirstName  string `json:"first_name"`
		LastName   string `json:"last_name"`
		Email      string `json:"email"`
		Phone      string `json:"phone"`
		Password   string `json:"password"`
		Role       string `json:"role"`
		Badge      string `json:"badge"`
		Department string `json:"department"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if strings.TrimSpace(input.Email) == "" || !models.ValidRole(input.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	if input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password is required when creating a user"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	email := strings.ToLower(input.Email)
	count, err := ac.users.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
		return
	}

	user := models.User{
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Email:      email,
		Phone:      input.Phone,
		Role:       input.Role,
		Badge:      input.Badge,
		Department: input.Department,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if err := user.SetPassword(input.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	result, err := ac.users.InsertOne(ctx, user)
	if err != nil {
		log.Println("Error inserting user:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}
	user.ID = result.InsertedID.(primitive.ObjectID)

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    utils.Sanitize(asDoc(user), false),
	})
}

// UpdateUser modifies an account. A plaintext password field is hashed before
// it is stored.
func (ac *AdminController) UpdateUser(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	var input map[string]interface{}
	if err := c.ShouldBindJSON(&input); err != nil || len(input) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No update data provided"})
		return
	}

	allowed := map[string]bool{
		"first_name": true, "last_name": true, "email": true, "phone": true,
		"role": true, "badge": true, "department": true, "password": true,
	}
	updates := bson.M{}
	for key, value := range input {
		str, _ := value.(string)
		if !allowed[key] || strings.TrimSpace(str) == "" {
			continue
		}
		switch key {
		case "password":
			hashed, err := models.HashPassword(str)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
				return
			}
			updates["password_hash"] = hashed
		case "email":
			updates[key] = strings.ToLower(str)
		case "role":
			if !models.ValidRole(str) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
				return
			}
			updates[key] = str
		default:
			updates[key] = str
		}
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}
	updates["updated_at"] = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := ac.users.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": updates})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var updated bson.M
	if err := ac.users.FindOne(ctx, bson.M{"_id": userID}).Decode(&updated); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User updated but could not be reloaded"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User updated successfully",
		"user":    utils.Sanitize(updated, false),
	})
}

func (ac *AdminController) DeleteUser(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := ac.users.DeleteOne(ctx, bson.M{"_id": userID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// ListCases returns all cases, optionally filtered by status or a title/
// category search term.
func (ac *AdminController) ListCases(c *gin.Context) {
	query := bson.M{}
	if status := c.Query("status"); status != "" {
		query["status"] = status
	}
	if q := c.Query("q"); q != "" {
		pattern := primitive.Regex{Pattern: q, Options: "i"}
		query["$or"] = []bson.M{
			{"title": pattern},
			{"category": pattern},
			{"location": pattern},
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := ac.cases.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
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

// CreateCase registers a case on behalf of a citizen or as an admin record.
func (ac *AdminController) CreateCase(c *gin.Context) {
	var input struct {
		Title        string `json:"title"`
		Description  string `json:"description"`
		Category     string `json:"category"`
		Location     string `json:"location"`
		Status       string `json:"status"`
		Priority     string `json:"priority"`
		CitizenID    string `json:"citizen_id"`
		CitizenName  string `json:"citizen_name"`
		CitizenEmail string `json:"citizen_email"`
		AssignedTo   string `json:"assigned_to"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	missing := missingFields([]requiredField{
		{"title", input.Title},
		{"category", input.Category},
		{"location", input.Location},
		{"description", input.Description},
	})
	if len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields", "fields": missing})
		return
	}

	status := models.CasePending
	if input.Status != "" {
		if !models.ValidCaseStatus(input.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		status = models.CaseStatus(input.Status)
	}
	priority := input.Priority
	if priority == "" {
		priority = "Normal"
	}

	kase := models.Case{
		CitizenName:  input.CitizenName,
		CitizenEmail: strings.ToLower(input.CitizenEmail),
		Title:        input.Title,
		Description:  input.Description,
		Category:     input.Category,
		Location:     input.Location,
		Status:       status,
		Priority:     priority,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if input.CitizenID != "" {
		citizenID, err := primitive.ObjectIDFromHex(input.CitizenID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid citizen ID"})
			return
		}
		kase.CitizenID = citizenID
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if input.AssignedTo != "" {
		officerID, err := primitive.ObjectIDFromHex(input.AssignedTo)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid officer ID"})
			return
		}
		count, err := ac.users.CountDocuments(ctx, bson.M{"_id": officerID, "role": models.RoleOfficer})
		if err != nil || count == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Officer not found"})
			return
		}
		kase.AssignedTo = &officerID
	}

	result, err := ac.cases.InsertOne(ctx, kase)
	if err != nil {
		log.Println("Error inserting case:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create case"})
		return
	}
	kase.ID = result.InsertedID.(primitive.ObjectID)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Case created successfully",
		"case":    utils.Sanitize(asDoc(kase), false),
	})
}

func (ac *AdminController) GetCase(c *gin.Context) {
	caseID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var doc bson.M
	if err := ac.cases.FindOne(ctx, bson.M{"_id": caseID}).Decode(&doc); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Case not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"case": utils.Sanitize(doc, false)})
}

// UpdateCase lets an admin modify any case field, including reassignment.
func (ac *AdminController) UpdateCase(c *gin.Context) {
	caseID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
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
	if err := ac.cases.FindOne(ctx, bson.M{"_id": caseID}).Decode(&kase); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Case not found"})
		return
	}

	allowed := map[string]bool{
		"title": true, "description": true, "category": true, "location": true,
		"status": true, "priority": true, "officer_notes": true, "assigned_to": true,
	}
	updates := bson.M{}
	for key, value := range input {
		if !allowed[key] {
			continue
		}
		if key == "assigned_to" {
			str, _ := value.(string)
			if str == "" {
				updates[key] = nil
				continue
			}
			officerID, err := primitive.ObjectIDFromHex(str)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid officer ID"})
				return
			}
			count, err := ac.users.CountDocuments(ctx, bson.M{"_id": officerID, "role": models.RoleOfficer})
			if err != nil || count == 0 {
				c.JSON(http.StatusNotFound, gin.H{"error": "Officer not found"})
				return
			}
			updates[key] = officerID
			continue
		}
		updates[key] = value
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
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

	if _, err := ac.cases.UpdateOne(ctx, bson.M{"_id": caseID}, bson.M{"$set": updates}); err != nil {
		log.Println("Error updating case:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update case"})
		return
	}

	var updated bson.M
	if err := ac.cases.FindOne(ctx, bson.M{"_id": caseID}).Decode(&updated); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Case updated but could not be reloaded"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Case updated successfully",
		"updated_case": utils.Sanitize(updated, false),
	})
}

func (ac *AdminController) DeleteCase(c *gin.Context) {
	caseID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := ac.cases.DeleteOne(ctx, bson.M{"_id": caseID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete case"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Case not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Case deleted successfully"})
}

// ListFIRs returns every FIR across all officers, newest first.
func (ac *AdminController) ListFIRs(c *gin.Context) {
	query := bson.M{}
	if status := c.Query("status"); status != "" {
		query["status"] = status
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := ac.firs.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
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
		"firs":  utils.SanitizeAll(docs, true),
	})
}

func (ac *AdminController) GetFIR(c *gin.Context) {
	firID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid FIR ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var doc bson.M
	if err := ac.firs.FindOne(ctx, bson.M{"_id": firID}).Decode(&doc); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "FIR not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"fir": utils.Sanitize(doc, true)})
}

func (ac *AdminController) UpdateFIR(c *gin.Context) {
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
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var fir models.OfficerFIR
	if err := ac.firs.FindOne(ctx, bson.M{"_id": firID}).Decode(&fir); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "FIR not found"})
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

	if _, err := ac.firs.UpdateOne(ctx, bson.M{"_id": firID}, bson.M{"$set": updates}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update FIR"})
		return
	}

	var updated bson.M
	if err := ac.firs.FindOne(ctx, bson.M{"_id": firID}).Decode(&updated); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "FIR updated but could not be reloaded"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "FIR updated successfully",
		"updated_fir": utils.Sanitize(updated, true),
	})
}

func (ac *AdminController) DeleteFIR(c *gin.Context) {
	firID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid FIR ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := ac.firs.DeleteOne(ctx, bson.M{"_id": firID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete FIR"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "FIR not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "FIR deleted successfully"})
}

// ListAlerts returns the latest broadcasts.
func (ac *AdminController) ListAlerts(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := ac.alerts.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "sent_at", Value: -1}}).SetLimit(50))
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

	c.JSON(http.StatusOK, gin.H{"alerts": utils.SanitizeAll(docs, true)})
}

// CreateAlert broadcasts a notification from the admin account.
func (ac *AdminController) CreateAlert(c *gin.Context) {
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

	if _, err := ac.alerts.InsertOne(ctx, alert); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send alert"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Alert sent successfully"})
}

// Stats aggregates platform counters for the admin dashboard.
func (ac *AdminController) Stats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count := func(collection *mongo.Collection, filter bson.M) int64 {
		n, err := collection.CountDocuments(ctx, filter)
		if err != nil {
			log.Println("Error counting documents:", err)
			return 0
		}
		return n
	}

	c.JSON(http.StatusOK, gin.H{
		"users_count":  count(ac.users, bson.M{}),
		"officers":     count(ac.users, bson.M{"role": models.RoleOfficer}),
		"citizens":     count(ac.users, bson.M{"role": models.RoleCitizen}),
		"cases_count":  count(ac.cases, bson.M{}),
		"open_cases":   count(ac.cases, bson.M{"status": models.CasePending}),
		"closed_cases": count(ac.cases, bson.M{"status": models.CaseClosed}),
		"firs_count":   count(ac.firs, bson.M{}),
	})
}
