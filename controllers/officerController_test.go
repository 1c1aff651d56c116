package controllers

import (
	"testing"

	"crimewatch-be/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTeamRosterExcludesCallerAndCarriesStatus(t *testing.T) {
	self := models.User{ID: primitive.NewObjectID(), FirstName: "Asha", LastName: "Verma", Role: models.RoleOfficer}
	peer := models.User{
		ID:         primitive.NewObjectID(),
		FirstName:  "Ravi",
		LastName:   "Kumar",
		Email:      "ravi@example.com",
		Badge:      "B-1021",
		Department: "Homicide",
		Role:       models.RoleOfficer,
	}

	team := teamRoster([]models.User{self, peer}, self.ID.Hex())

	require.Len(t, team, 1)
	entry := team[0]
	assert.Equal(t, peer.ID.Hex(), entry["id"])
	assert.Equal(t, "Ravi Kumar", entry["name"])
	assert.Equal(t, "ravi@example.com", entry["email"])
	assert.Equal(t, "B-1021", entry["badge"])
	assert.Equal(t, "Homicide", entry["department"])
	assert.Equal(t, "Offline", entry["status"])
}

func TestTeamRosterEmpty(t *testing.T) {
	self := models.User{ID: primitive.NewObjectID()}

	team := teamRoster([]models.User{self}, self.ID.Hex())
	require.NotNil(t, team)
	assert.Len(t, team, 0)
}
