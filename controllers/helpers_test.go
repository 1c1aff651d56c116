package controllers

import (
	"testing"
	"time"

	"crimewatch-be/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMissingFieldsPreservesOrder(t *testing.T) {
	missing := missingFields([]requiredField{
		{"first_name", ""},
		{"last_name", "Verma"},
		{"email", "   "},
		{"phone", "555-0100"},
		{"password", ""},
	})

	assert.Equal(t, []string{"first_name", "email", "password"}, missing)
}

func TestMissingFieldsNoneMissing(t *testing.T) {
	missing := missingFields([]requiredField{
		{"title", "Theft"},
		{"location", "Main St"},
	})
	assert.Nil(t, missing)
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Citizen", capitalize("citizen"))
	assert.Equal(t, "Admin", capitalize("admin"))
	assert.Equal(t, "", capitalize(""))
	assert.Equal(t, "X", capitalize("x"))
}

func TestAsDocRoundTripsModel(t *testing.T) {
	user := models.User{
		ID:           primitive.NewObjectID(),
		FirstName:    "Asha",
		Email:        "asha@example.com",
		PasswordHash: "$2a$10$secret",
		Role:         models.RoleCitizen,
		CreatedAt:    time.Now(),
	}

	doc := asDoc(user)
	require.NotNil(t, doc)

	assert.Equal(t, user.ID, doc["_id"])
	assert.Equal(t, "asha@example.com", doc["email"])
	// The hash survives the round trip; stripping it is the sanitizer's job.
	assert.Equal(t, user.PasswordHash, doc["password_hash"])
}
