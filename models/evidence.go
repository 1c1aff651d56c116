package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxEvidenceFileSize is the per-file upload ceiling (10 MiB).
const MaxEvidenceFileSize = 10 << 20

// Evidence is the metadata record for one uploaded file. The blob itself
// lives in the blob store under FileID. Exactly one of CaseID or FIRID links
// the evidence to its parent resource.
type Evidence struct {
	ID               primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	FileID           primitive.ObjectID  `bson:"file_id" json:"file_id"`
	Filename         string              `bson:"filename" json:"filename"`
	OriginalFilename string              `bson:"original_filename" json:"original_filename"`
	ContentType      string              `bson:"content_type" json:"content_type"`
	FileSize         int64               `bson:"file_size" json:"file_size"`
	CaseID           *primitive.ObjectID `bson:"case_id,omitempty" json:"case_id,omitempty"`
	FIRID            *primitive.ObjectID `bson:"fir_id,omitempty" json:"fir_id,omitempty"`
	OfficerID        primitive.ObjectID  `bson:"officer_id" json:"officer_id"`
	OfficerName      string              `bson:"officer_name" json:"officer_name"`
	Notes            string              `bson:"notes,omitempty" json:"notes,omitempty"`
	UploadedAt       time.Time           `bson:"uploaded_at" json:"uploaded_at"`
	Status           string              `bson:"status" json:"status"`
}
