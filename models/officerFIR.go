package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Defaults applied when an officer files a new FIR.
const (
	DefaultFIRStatus   = "Open"
	DefaultFIRPriority = "High"
)

// OfficerFIR is an officer-initiated First Information Report. Ownership is
// strict: only the creating officer may read, update, or delete it.
type OfficerFIR struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title           string             `bson:"title" json:"title"`
	Category        string             `bson:"category" json:"category"`
	ComplainantName string             `bson:"complainant_name" json:"complainant_name"`
	Contact         string             `bson:"contact" json:"contact"`
	Location        string             `bson:"location" json:"location"`
	Description     string             `bson:"description" json:"description"`
	Priority        string             `bson:"priority" json:"priority"`
	OfficerID       primitive.ObjectID `bson:"officer_id" json:"officer_id"`
	OfficerName     string             `bson:"officer_name" json:"officer_name"`
	Status          string             `bson:"status" json:"status"`
	OfficerNotes    string             `bson:"officer_notes,omitempty" json:"officer_notes,omitempty"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}
