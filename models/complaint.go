package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IssueType enum
type IssueType string

const (
	IssueGarbage     IssueType = "garbage"
	IssuePothole     IssueType = "pothole"
	IssueStreetlight IssueType = "streetlight"
	IssueWater       IssueType = "water"
	IssueSewage      IssueType = "sewage"
	IssueRoad        IssueType = "road"
	IssueOther       IssueType = "other"
)

func (t IssueType) Valid() bool {
	switch t {
	case IssueGarbage, IssuePothole, IssueStreetlight, IssueWater, IssueSewage, IssueRoad, IssueOther:
		return true
	}
	return false
}

// ComplaintStatus enum
type ComplaintStatus string

const (
	StatusPending    ComplaintStatus = "pending"
	StatusInProgress ComplaintStatus = "in-progress"
	StatusResolved   ComplaintStatus = "resolved"
	StatusRejected   ComplaintStatus = "rejected"
	StatusDelayed    ComplaintStatus = "delayed"
)

func (s ComplaintStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved, StatusRejected, StatusDelayed:
		return true
	}
	return false
}

// Priority enum
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Location is embedded in a complaint. Ward is required; it drives assignment.
type Location struct {
	Address string   `bson:"address,omitempty" json:"address,omitempty"`
	Lat     *float64 `bson:"lat,omitempty" json:"lat,omitempty"`
	Lng     *float64 `bson:"lng,omitempty" json:"lng,omitempty"`
	Ward    string   `bson:"ward" json:"ward"`
	Area    string   `bson:"area,omitempty" json:"area,omitempty"`
}

// Complaint represents a civic complaint reported by a citizen
type Complaint struct {
	ID               primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title            string              `bson:"title" json:"title"`
	Description      string              `bson:"description" json:"description"`
	IssueType        IssueType           `bson:"issueType" json:"issueType"`
	Location         Location            `bson:"location" json:"location"`
	ImageURL         *string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	CitizenEmail     string              `bson:"citizenEmail,omitempty" json:"citizenEmail,omitempty"`
	CitizenPhone     string              `bson:"citizenPhone,omitempty" json:"citizenPhone,omitempty"`
	Status           ComplaintStatus     `bson:"status" json:"status"`
	Priority         Priority            `bson:"priority" json:"priority"`
	AssignedOfficial *primitive.ObjectID `bson:"assignedOfficial,omitempty" json:"assignedOfficial,omitempty"`
	SubmittedAt      time.Time           `bson:"submittedAt" json:"submittedAt"`
	ResolvedAt       *time.Time          `bson:"resolvedAt,omitempty" json:"resolvedAt,omitempty"`
	IsPublic         bool                `bson:"isPublic" json:"isPublic"`
	PublicAt         *time.Time          `bson:"publicAt,omitempty" json:"publicAt,omitempty"`
	CreatedAt        time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time           `bson:"updatedAt" json:"updatedAt"`
}
