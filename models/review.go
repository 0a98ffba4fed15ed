package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Review represents a citizen's rating of how a public complaint was handled.
// ResponseTime is in hours, fixed at submission time.
type Review struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Complaint    primitive.ObjectID `bson:"complaint" json:"complaint"`
	Official     primitive.ObjectID `bson:"official" json:"official"`
	CitizenEmail string             `bson:"citizenEmail" json:"citizenEmail"`
	Rating       int                `bson:"rating" json:"rating"`
	Comment      string             `bson:"comment,omitempty" json:"comment,omitempty"`
	ResponseTime float64            `bson:"responseTime" json:"responseTime"`
	IsAnonymous  bool               `bson:"isAnonymous" json:"isAnonymous"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// EnsureReviewIndex creates a unique compound index for (complaint, citizenEmail).
// The index is the final arbiter of the one-review-per-citizen rule; the
// service-level check is only a fast path.
func EnsureReviewIndex(collection *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "complaint", Value: 1}, {Key: "citizenEmail", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	_, err := collection.Indexes().CreateOne(ctx, indexModel)
	return err
}
