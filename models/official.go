package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

// Role enum
type Role string

const (
	RoleWardOfficer Role = "ward-officer"
	RoleSupervisor  Role = "supervisor"
	RoleAdmin       Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleWardOfficer, RoleSupervisor, RoleAdmin:
		return true
	}
	return false
}

// Official represents a municipal official responsible for a ward.
// PerformanceScore, TotalComplaints, ResolvedComplaints and
// AverageResolutionTime are caches recomputed from reviews and complaints;
// they are never written outside the scoring service.
type Official struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name                  string             `bson:"name" json:"name"`
	Email                 string             `bson:"email" json:"email"`
	Password              string             `bson:"password,omitempty" json:"-"`
	Role                  Role               `bson:"role" json:"role"`
	Ward                  string             `bson:"ward" json:"ward"`
	Phone                 string             `bson:"phone" json:"phone"`
	Department            string             `bson:"department" json:"department"`
	IsActive              bool               `bson:"isActive" json:"isActive"`
	PerformanceScore      float64            `bson:"performanceScore" json:"performanceScore"`
	TotalComplaints       int64              `bson:"totalComplaints" json:"totalComplaints"`
	ResolvedComplaints    int64              `bson:"resolvedComplaints" json:"resolvedComplaints"`
	AverageResolutionTime float64            `bson:"averageResolutionTime" json:"averageResolutionTime"`
	CreatedAt             time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt             time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (o *Official) HashPassword() error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(o.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	o.Password = string(hashed)
	return nil
}

func (o *Official) ComparePassword(candidate string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(o.Password), []byte(candidate))
	return err == nil
}

// EnsureOfficialIndex creates the unique index on email
func EnsureOfficialIndex(collection *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	_, err := collection.Indexes().CreateOne(ctx, indexModel)
	return err
}
