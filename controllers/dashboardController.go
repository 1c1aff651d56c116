package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"crimewatch-be/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type DashboardController struct {
	users *mongo.Collection
	cases *mongo.Collection
}

func NewDashboardController(db *mongo.Database) *DashboardController {
	return &DashboardController{
		users: db.Collection("users"),
		cases: db.Collection("cases"),
	}
}

// Stats serves the public landing-page counters. No authentication required.
func (dc *DashboardController) Stats(c *gin.Context) {
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
		"total_users":    count(dc.users, bson.M{}),
		"officers":       count(dc.users, bson.M{"role": models.RoleOfficer}),
		"total_cases":    count(dc.cases, bson.M{}),
		"pending_cases":  count(dc.cases, bson.M{"status": models.CasePending}),
		"resolved_cases": count(dc.cases, bson.M{"status": models.CaseResolved}),
	})
}
