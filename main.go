package main

import (
	"log"
	"net/http"
	"os"
	"strconv"

	"civicpulse-be/config"
	"civicpulse-be/controllers"
	"civicpulse-be/middlewares"
	"civicpulse-be/routes"
	"civicpulse-be/services"
	"civicpulse-be/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		log.Fatal("Please define the MONGODB_URI environment variable")
	}

	client, err := config.ConnectDB(mongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := config.DisconnectDB(client); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()

	log.Println("MongoDB connection established successfully!")

	st := store.NewMongoStore(client.Database("civicpulse"))
	if err := st.EnsureIndexes(); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	credentialService := services.NewCredentialService(st)
	scoringService := services.NewScoringService(st)
	lifecycleService := services.NewLifecycleService(st, scoringService)
	reviewService := services.NewReviewService(st, scoringService)

	complaintController := controllers.NewComplaintController(lifecycleService)
	officialController := controllers.NewOfficialController(credentialService, scoringService)
	reviewController := controllers.NewReviewController(reviewService, scoringService)

	// Rate limiting is optional: without REDIS_ADDRESS the limiter is a
	// pass-through.
	var redisClient *redis.Client
	if addr := os.Getenv("REDIS_ADDRESS"); addr != "" {
		redisClient, err = config.ConnectRedis(addr, os.Getenv("REDIS_PASSWORD"))
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		log.Println("Connected to Redis")
	}
	submissionLimit := 20
	if v := os.Getenv("SUBMISSION_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			submissionLimit = n
		}
	}
	limiter := middlewares.SubmissionRateLimiter(redisClient, "civicpulse:submissions", submissionLimit)

	r := gin.Default()

	corsOrigin := os.Getenv("CORS_ORIGIN")
	if corsOrigin == "" {
		corsOrigin = "http://localhost:3000"
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{corsOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	routes.ComplaintRoutes(r, complaintController, limiter)
	routes.OfficialRoutes(r, officialController)
	routes.ReviewRoutes(r, reviewController, limiter)

	r.Static("/uploads", "./uploads")

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
