package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CaseStatus enum
type CaseStatus string

const (
	CaseOpen       CaseStatus = "Open"
	CasePending    CaseStatus = "Pending"
	CaseInProgress CaseStatus = "In Progress"
	CaseResolved   CaseStatus = "Resolved"
	CaseClosed     CaseStatus = "Closed"
)

// ValidCaseStatus reports whether s is a member of the closed status set.
func ValidCaseStatus(s string) bool {
	switch CaseStatus(s) {
	case CaseOpen, CasePending, CaseInProgress, CaseResolved, CaseClosed:
		return true
	}
	return false
}

var caseTransitions = map[CaseStatus][]CaseStatus{
	CaseOpen:       {CasePending, CaseInProgress, CaseResolved, CaseClosed},
	CasePending:    {CaseInProgress, CaseResolved, CaseClosed},
	CaseInProgress: {CasePending, CaseResolved, CaseClosed},
	CaseResolved:   {CaseInProgress, CaseClosed},
	CaseClosed:     {},
}

// CanTransition reports whether a status change from one state to another is
// allowed. Setting the same status again is always allowed.
func CanTransition(from, to CaseStatus) bool {
	if from == to {
		return true
	}
	for _, next := range caseTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Case is a citizen-filed complaint. Citizen name and email are denormalized
// at creation time.
type Case struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	CitizenID    primitive.ObjectID  `bson:"citizen_id" json:"citizen_id"`
	CitizenName  string              `bson:"citizen_name" json:"citizen_name"`
	CitizenEmail string              `bson:"citizen_email" json:"citizen_email"`
	Title        string              `bson:"title" json:"title"`
	Description  string              `bson:"description" json:"description"`
	Category     string              `bson:"category" json:"category"`
	Location     string              `bson:"location" json:"location"`
	Status       CaseStatus          `bson:"status" json:"status"`
	Priority     string              `bson:"priority" json:"priority"`
	AssignedTo   *primitive.ObjectID `bson:"assigned_to,omitempty" json:"assigned_to,omitempty"`
	CreatedAt    time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time           `bson:"updated_at" json:"updated_at"`
}
