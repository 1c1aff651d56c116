package main

import (
	"log"
	"net/http"

	"crimewatch-be/config"
	"crimewatch-be/controllers"
	"crimewatch-be/middlewares"
	"crimewatch-be/models"
	"crimewatch-be/routes"
	"crimewatch-be/storage"
	"crimewatch-be/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := config.ConnectDB(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB: ", err)
	}
	log.Println("MongoDB connection established successfully!")

	if err := models.EnsureUserIndexes(db.Collection("users")); err != nil {
		log.Printf("Warning: could not ensure user indexes: %v", err)
	}

	blobs, err := storage.NewGridFSStore(db)
	if err != nil {
		log.Fatal("Failed to initialise blob store: ", err)
	}

	tokens := utils.NewTokenService(cfg.JWTSecret, cfg.TokenLifetime)

	var limiter gin.HandlerFunc
	if cfg.RedisAddr != "" {
		redisClient, err := config.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Fatal("Failed to connect to Redis: ", err)
		}
		log.Println("Redis connection established successfully!")
		limiter = middlewares.ReportRateLimiter(redisClient, cfg.ReportLimitQueue, cfg.ReportDailyLimit)
	} else {
		log.Println("REDIS_ADDRESS not set, report rate limiting disabled")
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOriginFunc:  func(origin string) bool { return true },
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	routes.AuthRoutes(r, controllers.NewAuthController(db, tokens), tokens)
	routes.CaseRoutes(r, controllers.NewCaseController(db), tokens, limiter)
	routes.CitizenRoutes(r, controllers.NewCitizenController(db), tokens)
	routes.OfficerRoutes(r, controllers.NewOfficerController(db, blobs), tokens)
	routes.AdminRoutes(r, controllers.NewAdminController(db), tokens)
	routes.DashboardRoutes(r, controllers.NewDashboardController(db))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
