// Seeds the database with demo officials and complaints for local
// development. Wipes the existing collections first.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"civicpulse-be/config"
	"civicpulse-be/models"
	"civicpulse-be/store"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func ptr[T any](v T) *T { return &v }

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017/civicpulse"
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

	db := client.Database("civicpulse")
	if err := store.NewMongoStore(db).EnsureIndexes(); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	officials := db.Collection("officials")
	complaints := db.Collection("complaints")
	reviews := db.Collection("reviews")
	for _, coll := range []*mongo.Collection{officials, complaints, reviews} {
		if _, err := coll.DeleteMany(ctx, bson.M{}); err != nil {
			log.Fatalf("Failed to clear %s: %v", coll.Name(), err)
		}
	}

	now := time.Now()
	demoOfficials := []*models.Official{
		{
			Name: "THANA RAM", Email: "thana@civicpulse.com", Password: "ram123",
			Role: models.RoleWardOfficer, Ward: "Ward 1", Phone: "+1-555-0101",
			Department: "Public Works", IsActive: true, PerformanceScore: 4.2,
		},
		{
			Name: "Sarah Johnson", Email: "sarah.johnson@civicpulse.com", Password: "password123",
			Role: models.RoleWardOfficer, Ward: "Ward 2", Phone: "+1-555-0102",
			Department: "Sanitation", IsActive: true, PerformanceScore: 4.8,
		},
		{
			Name: "Mike Davis", Email: "mike.davis@civicpulse.com", Password: "password123",
			Role: models.RoleWardOfficer, Ward: "Ward 3", Phone: "+1-555-0103",
			Department: "Infrastructure", IsActive: true, PerformanceScore: 3.5,
		},
	}
	for _, o := range demoOfficials {
		if err := o.HashPassword(); err != nil {
			log.Fatalf("Failed to hash password for %s: %v", o.Email, err)
		}
		o.CreatedAt, o.UpdatedAt = now, now
		res, err := officials.InsertOne(ctx, o)
		if err != nil {
			log.Fatalf("Failed to insert official %s: %v", o.Email, err)
		}
		o.ID = res.InsertedID.(primitive.ObjectID)
	}

	demoComplaints := []models.Complaint{
		{
			Title:       "Large Pothole on Main Street",
			Description: "There is a large pothole on Main Street that is causing damage to vehicles. It has been there for over a week and needs immediate attention.",
			IssueType:   models.IssuePothole,
			Location: models.Location{
				Address: "123 Main Street, Downtown",
				Lat:     ptr(40.7128), Lng: ptr(-74.0060), Ward: "Ward 1",
			},
			ImageURL:         ptr("/uploads/demo-pothole.jpg"),
			Status:           models.StatusResolved,
			Priority:         models.PriorityHigh,
			AssignedOfficial: &demoOfficials[0].ID,
			CitizenEmail:     "citizen1@example.com",
			CitizenPhone:     "+1-555-1001",
			SubmittedAt:      now.Add(-5 * 24 * time.Hour),
			ResolvedAt:       ptr(now.Add(-2 * 24 * time.Hour)),
			IsPublic:         true,
			PublicAt:         ptr(now.Add(-2 * 24 * time.Hour)),
		},
		{
			Title:       "Garbage Not Collected",
			Description: "Garbage collection was missed on our street this week. The bins are overflowing and creating a health hazard.",
			IssueType:   models.IssueGarbage,
			Location: models.Location{
				Address: "456 Oak Avenue, Residential Area",
				Lat:     ptr(40.7589), Lng: ptr(-73.9851), Ward: "Ward 2",
			},
			ImageURL:         ptr("/uploads/demo-garbage.jpg"),
			Status:           models.StatusDelayed,
			Priority:         models.PriorityMedium,
			AssignedOfficial: &demoOfficials[1].ID,
			CitizenEmail:     "citizen2@example.com",
			CitizenPhone:     "+1-555-1002",
			SubmittedAt:      now.Add(-4 * 24 * time.Hour),
			IsPublic:         true,
			PublicAt:         ptr(now.Add(-24 * time.Hour)),
		},
		{
			Title:       "Broken Streetlight",
			Description: "Streetlight on the corner of 5th and Elm has been out for several days. The area is very dark at night and unsafe for pedestrians.",
			IssueType:   models.IssueStreetlight,
			Location: models.Location{
				Address: "789 Elm Street, Corner of 5th",
				Lat:     ptr(40.7505), Lng: ptr(-73.9934), Ward: "Ward 3",
			},
			ImageURL:         ptr("/uploads/demo-streetlight.jpg"),
			Status:           models.StatusPending,
			Priority:         models.PriorityMedium,
			AssignedOfficial: &demoOfficials[2].ID,
			CitizenEmail:     "citizen3@example.com",
			CitizenPhone:     "+1-555-1003",
			SubmittedAt:      now.Add(-24 * time.Hour),
		},
		{
			Title:       "Water Leak on Sidewalk",
			Description: "There is a water leak coming from underground that is flooding the sidewalk. Water is pooling and making it difficult to walk.",
			IssueType:   models.IssueWater,
			Location: models.Location{
				Address: "321 Pine Street, Near Park",
				Lat:     ptr(40.7614), Lng: ptr(-73.9776), Ward: "Ward 1",
			},
			ImageURL:         ptr("/uploads/demo-water-leak.jpg"),
			Status:           models.StatusInProgress,
			Priority:         models.PriorityHigh,
			AssignedOfficial: &demoOfficials[0].ID,
			CitizenEmail:     "citizen4@example.com",
			CitizenPhone:     "+1-555-1004",
			SubmittedAt:      now.Add(-2 * 24 * time.Hour),
		},
	}
	docs := make([]interface{}, len(demoComplaints))
	for i := range demoComplaints {
		demoComplaints[i].CreatedAt = now
		demoComplaints[i].UpdatedAt = now
		docs[i] = demoComplaints[i]
	}
	if _, err := complaints.InsertMany(ctx, docs); err != nil {
		log.Fatalf("Failed to insert complaints: %v", err)
	}

	log.Printf("Seeded %d officials and %d complaints", len(demoOfficials), len(demoComplaints))
	log.Println("Demo login: thana@civicpulse.com / ram123")
}
