package store

import (
	"context"
	"time"

	"civicpulse-be/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements Store on top of the complaints, officials and
// reviews collections.
type MongoStore struct {
	complaints *mongo.Collection
	officials  *mongo.Collection
	reviews    *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		complaints: db.Collection("complaints"),
		officials:  db.Collection("officials"),
		reviews:    db.Collection("reviews"),
	}
}

// EnsureIndexes creates the unique indexes backing the email and
// one-review-per-citizen constraints.
func (s *MongoStore) EnsureIndexes() error {
	if err := models.EnsureOfficialIndex(s.officials); err != nil {
		return err
	}
	return models.EnsureReviewIndex(s.reviews)
}

func mapMongoErr(err error) error {
	switch {
	case err == nil:
		return nil
	case err == mongo.ErrNoDocuments:
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicate
	default:
		return err
	}
}

// Complaints

func (s *MongoStore) InsertComplaint(ctx context.Context, c *models.Complaint) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	_, err := s.complaints.InsertOne(ctx, c)
	return mapMongoErr(err)
}

func (s *MongoStore) ComplaintByID(ctx context.Context, id primitive.ObjectID) (*models.Complaint, error) {
	var c models.Complaint
	err := s.complaints.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		return nil, mapMongoErr(err)
	}
	return &c, nil
}

func (s *MongoStore) UpdateComplaintStatus(ctx context.Context, id primitive.ObjectID, status models.ComplaintStatus, resolvedAt *time.Time) error {
	update := bson.M{"status": status, "updatedAt": time.Now()}
	if resolvedAt != nil {
		update["resolvedAt"] = *resolvedAt
	}
	res, err := s.complaints.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		return mapMongoErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) ListComplaints(ctx context.Context, f ComplaintFilter, page, limit int) ([]models.Complaint, int64, error) {
	filter := bson.M{}
	if f.Ward != "" {
		filter["location.ward"] = f.Ward
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.IssueType != "" {
		filter["issueType"] = f.IssueType
	}

	total, err := s.complaints.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "submittedAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := s.complaints.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var complaints []models.Complaint
	if err := cursor.All(ctx, &complaints); err != nil {
		return nil, 0, err
	}
	return complaints, total, nil
}

func (s *MongoStore) PublicComplaints(ctx context.Context) ([]models.Complaint, error) {
	filter := bson.M{
		"isPublic": true,
		"status":   bson.M{"$in": []models.ComplaintStatus{models.StatusResolved, models.StatusDelayed}},
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "publicAt", Value: -1}})

	cursor, err := s.complaints.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var complaints []models.Complaint
	if err := cursor.All(ctx, &complaints); err != nil {
		return nil, err
	}
	return complaints, nil
}

func (s *MongoStore) PromoteStalePending(ctx context.Context, cutoff, now time.Time) (int64, error) {
	filter := bson.M{
		"status":      models.StatusPending,
		"submittedAt": bson.M{"$lt": cutoff},
		"isPublic":    false,
	}
	update := bson.M{"$set": bson.M{
		"status":    models.StatusDelayed,
		"isPublic":  true,
		"publicAt":  now,
		"updatedAt": now,
	}}
	res, err := s.complaints.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (s *MongoStore) ComplaintsByOfficial(ctx context.Context, officialID primitive.ObjectID) ([]models.Complaint, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: -1}})
	cursor, err := s.complaints.Find(ctx, bson.M{"assignedOfficial": officialID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var complaints []models.Complaint
	if err := cursor.All(ctx, &complaints); err != nil {
		return nil, err
	}
	return complaints, nil
}

func (s *MongoStore) CountComplaintsByOfficial(ctx context.Context, officialID primitive.ObjectID, status *models.ComplaintStatus) (int64, error) {
	filter := bson.M{"assignedOfficial": officialID}
	if status != nil {
		filter["status"] = *status
	}
	return s.complaints.CountDocuments(ctx, filter)
}

// Officials

func (s *MongoStore) InsertOfficial(ctx context.Context, o *models.Official) error {
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	_, err := s.officials.InsertOne(ctx, o)
	return mapMongoErr(err)
}

func (s *MongoStore) OfficialByID(ctx context.Context, id primitive.ObjectID) (*models.Official, error) {
	var o models.Official
	err := s.officials.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	if err != nil {
		return nil, mapMongoErr(err)
	}
	return &o, nil
}

func (s *MongoStore) OfficialByEmail(ctx context.Context, email string) (*models.Official, error) {
	var o models.Official
	err := s.officials.FindOne(ctx, bson.M{"email": email}).Decode(&o)
	if err != nil {
		return nil, mapMongoErr(err)
	}
	return &o, nil
}

// ActiveOfficialByWard returns the active official with the lowest id in the
// ward, which keeps assignment deterministic when a ward has several officers.
func (s *MongoStore) ActiveOfficialByWard(ctx context.Context, ward string) (*models.Official, error) {
	findOptions := options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}})
	var o models.Official
	err := s.officials.FindOne(ctx, bson.M{"ward": ward, "isActive": true}, findOptions).Decode(&o)
	if err != nil {
		return nil, mapMongoErr(err)
	}
	return &o, nil
}

func (s *MongoStore) ActiveOfficials(ctx context.Context, limit int) ([]models.Official, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "performanceScore", Value: -1}})
	if limit > 0 {
		findOptions.SetLimit(int64(limit))
	}
	cursor, err := s.officials.Find(ctx, bson.M{"isActive": true}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var officials []models.Official
	if err := cursor.All(ctx, &officials); err != nil {
		return nil, err
	}
	return officials, nil
}

func (s *MongoStore) UpdateOfficialPerformance(ctx context.Context, id primitive.ObjectID, score float64, total, resolved int64, avgResolutionHours float64) error {
	update := bson.M{"$set": bson.M{
		"performanceScore":      score,
		"totalComplaints":       total,
		"resolvedComplaints":    resolved,
		"averageResolutionTime": avgResolutionHours,
		"updatedAt":             time.Now(),
	}}
	res, err := s.officials.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return mapMongoErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Reviews

func (s *MongoStore) InsertReview(ctx context.Context, r *models.Review) error {
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	_, err := s.reviews.InsertOne(ctx, r)
	return mapMongoErr(err)
}

func (s *MongoStore) HasReview(ctx context.Context, complaintID primitive.ObjectID, citizenEmail string) (bool, error) {
	count, err := s.reviews.CountDocuments(ctx, bson.M{"complaint": complaintID, "citizenEmail": citizenEmail})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *MongoStore) ReviewsByOfficial(ctx context.Context, officialID primitive.ObjectID, page, limit int) ([]models.Review, int64, error) {
	filter := bson.M{"official": officialID}

	total, err := s.reviews.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := s.reviews.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

func (s *MongoStore) AllReviewsByOfficial(ctx context.Context, officialID primitive.ObjectID) ([]models.Review, error) {
	cursor, err := s.reviews.Find(ctx, bson.M{"official": officialID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (s *MongoStore) ReviewsByComplaint(ctx context.Context, complaintID primitive.ObjectID) ([]models.Review, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.reviews.Find(ctx, bson.M{"complaint": complaintID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (s *MongoStore) ListReviews(ctx context.Context, page, limit int) ([]models.Review, int64, error) {
	total, err := s.reviews.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := s.reviews.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}
