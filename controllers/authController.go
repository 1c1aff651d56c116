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
)

type AuthController struct {
	users  *mongo.Collection
	tokens *utils.TokenService
}

func NewAuthController(db *mongo.Database, tokens *utils.TokenService) *AuthController {
	return &AuthController{
		users:  db.Collection("users"),
		tokens: tokens,
	}
}

// Register handles POST /api/register/:role for citizen, officer and admin.
func (ac *AuthController) Register(c *gin.Context) {
	role := c.Param("role")
	if !models.ValidRole(role) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown role"})
		return
	}

	var input struct {
		FirstName  string `json:"first_name"`
		LastName   string `json:"last_name"`
		Email      string `json:"email"`
		Phone      string `json:"phone"`
		Password   string `json:"password"`
		Badge      string `json:"badge"`
		Department string `json:"department"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	missing := missingFields([]requiredField{
		{"first_name", input.FirstName},
		{"last_name", input.LastName},
		{"email", input.Email},
		{"phone", input.Phone},
		{"password", input.Password},
	})
	if len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields", "fields": missing})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	email := strings.ToLower(input.Email)
	count, err := ac.users.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		log.Println("Error checking existing user:", err)
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
		Role:       role,
		Badge:      input.Badge,
		Department: input.Department,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if err := user.SetPassword(input.Password); err != nil {
		log.Println("Error hashing password:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	result, err := ac.users.InsertOne(ctx, user)
	if err != nil {
		log.Println("Error inserting user:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}
	user.ID = result.InsertedID.(primitive.ObjectID)

	token, err := ac.tokens.Issue(&user)
	if err != nil {
		log.Println("Error generating token:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": capitalize(role) + " registered successfully",
		"user":    utils.Sanitize(asDoc(user), false),
		"token":   token,
	})
}

// Login handles POST /api/login. Accounts are looked up by email and role.
func (ac *AuthController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	missing := missingFields([]requiredField{
		{"email", input.Email},
		{"password", input.Password},
		{"role", input.Role},
	})
	if len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email, password, and role are required", "fields": missing})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := ac.users.FindOne(ctx, bson.M{
		"email": strings.ToLower(input.Email),
		"role":  input.Role,
	}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "No " + input.Role + " account found for this email"})
		return
	}
	if err != nil {
		log.Println("Error looking up user:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	if !user.ComparePassword(input.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid password"})
		return
	}

	token, err := ac.tokens.Issue(&user)
	if err != nil {
		log.Println("Error generating token:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": capitalize(input.Role) + " login successful",
		"user":    utils.Sanitize(asDoc(user), false),
		"token":   token,
	})
}

// Me returns the authenticated user's record.
func (ac *AuthController) Me(c *gin.Context) {
	claims := middlewares.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
		return
	}

	objectID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var doc bson.M
	if err := ac.users.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": utils.Sanitize(doc, false)})
}

// Profile returns a user's profile, visible to the user themselves and to
// admins.
func (ac *AuthController) Profile(c *gin.Context) {
	claims := middlewares.GetClaims(c)
	userID := c.Param("user_id")

	if err := utils.Authorize(claims, utils.ResourceUser, utils.ActionRead, &utils.Target{UserID: userID}); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized access"})
		return
	}

	objectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var doc bson.M
	if err := ac.users.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, utils.Sanitize(doc, false))
}
