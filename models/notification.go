package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Alert is a broadcast notification sent by an officer or admin. The read
// flag is written as false and never mutated.
type Alert struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title   string             `bson:"title" json:"title"`
	Message string             `bson:"message" json:"message"`
	SentBy  string             `bson:"sent_by" json:"sent_by"`
	SentAt  time.Time          `bson:"sent_at" json:"sent_at"`
	Read    bool               `bson:"read" json:"read"`
}
