package utils

import (
	"testing"

	"crimewatch-be/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func claimsFor(role, userID string) *Claims {
	return &Claims{UserID: userID, Role: role}
}

func denyReason(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	deny, ok := err.(*DenyError)
	require.True(t, ok, "expected *DenyError, got %T", err)
	return deny.Reason
}

func TestAuthorizeAdminBypassesAllChecks(t *testing.T) {
	admin := claimsFor(models.RoleAdmin, "a1")

	for _, resource := range []Resource{ResourceCase, ResourceFIR, ResourceUser, ResourceEvidence, ResourceAlert} {
		for _, action := range []Action{ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionList} {
			assert.NoError(t, Authorize(admin, resource, action, &Target{OfficerID: "someone-else"}))
			assert.NoError(t, Authorize(admin, resource, action, nil))
		}
	}
}

func TestAuthorizeNilClaims(t *testing.T) {
	err := Authorize(nil, ResourceCase, ActionRead, nil)
	assert.Equal(t, ReasonWrongRole, denyReason(t, err))
}

func TestAuthorizeCitizenCases(t *testing.T) {
	citizen := claimsFor(models.RoleCitizen, "c1")

	assert.NoError(t, Authorize(citizen, ResourceCase, ActionCreate, nil))
	assert.NoError(t, Authorize(citizen, ResourceCase, ActionRead, &Target{CitizenID: "c1"}))
	assert.NoError(t, Authorize(citizen, ResourceCase, ActionDelete, &Target{CitizenID: "c1"}))

	err := Authorize(citizen, ResourceCase, ActionRead, &Target{CitizenID: "c2"})
	assert.Equal(t, ReasonNotOwner, denyReason(t, err))

	err = Authorize(citizen, ResourceCase, ActionList, nil)
	assert.Equal(t, ReasonWrongRole, denyReason(t, err))
}

func TestAuthorizeCitizenForbiddenResources(t *testing.T) {
	citizen := claimsFor(models.RoleCitizen, "c1")

	for _, resource := range []Resource{ResourceFIR, ResourceEvidence} {
		err := Authorize(citizen, resource, ActionRead, &Target{OfficerID: "c1"})
		assert.Equal(t, ReasonWrongRole, denyReason(t, err))
	}

	err := Authorize(citizen, ResourceAlert, ActionCreate, nil)
	assert.Equal(t, ReasonWrongRole, denyReason(t, err))
	assert.NoError(t, Authorize(citizen, ResourceAlert, ActionRead, nil))
}

func TestAuthorizeCitizenProfile(t *testing.T) {
	citizen := claimsFor(models.RoleCitizen, "c1")

	assert.NoError(t, Authorize(citizen, ResourceUser, ActionRead, &Target{UserID: "c1"}))
	assert.NoError(t, Authorize(citizen, ResourceUser, ActionUpdate, &Target{UserID: "c1"}))

	err := Authorize(citizen, ResourceUser, ActionRead, &Target{UserID: "c2"})
	assert.Equal(t, ReasonWrongRole, denyReason(t, err))
}

func TestAuthorizeOfficerCases(t *testing.T) {
	officer := claimsFor(models.RoleOfficer, "o1")

	// Own-scope listing is allowed, a citizen-scoped listing is not.
	assert.NoError(t, Authorize(officer, ResourceCase, ActionList, nil))
	err := Authorize(officer, ResourceCase, ActionList, &Target{CitizenID: "c1"})
	assert.Equal(t, ReasonWrongRole, denyReason(t, err))

	// Assigned and unclaimed cases are accessible, another officer's are not.
	assert.NoError(t, Authorize(officer, ResourceCase, ActionRead, &Target{AssignedOfficer: "o1"}))
	assert.NoError(t, Authorize(officer, ResourceCase, ActionUpdate, &Target{AssignedOfficer: ""}))
	err = Authorize(officer, ResourceCase, ActionRead, &Target{AssignedOfficer: "o2"})
	assert.Equal(t, ReasonNotOwner, denyReason(t, err))

	err = Authorize(officer, ResourceCase, ActionDelete, &Target{AssignedOfficer: "o1"})
	assert.Equal(t, ReasonWrongRole, denyReason(t, err))
}

func TestAuthorizeOfficerFIRs(t *testing.T) {
	officer := claimsFor(models.RoleOfficer, "o1")

	assert.NoError(t, Authorize(officer, ResourceFIR, ActionCreate, nil))
	assert.NoError(t, Authorize(officer, ResourceFIR, ActionList, nil))
	assert.NoError(t, Authorize(officer, ResourceFIR, ActionRead, &Target{OfficerID: "o1"}))
	assert.NoError(t, Authorize(officer, ResourceFIR, ActionDelete, &Target{OfficerID: "o1"}))

	err := Authorize(officer, ResourceFIR, ActionRead, &Target{OfficerID: "o2"})
	assert.Equal(t, ReasonNotOwner, denyReason(t, err))
	err = Authorize(officer, ResourceFIR, ActionUpdate, &Target{OfficerID: "o2"})
	assert.Equal(t, ReasonNotOwner, denyReason(t, err))
}

func TestAuthorizeOfficerEvidence(t *testing.T) {
	officer := claimsFor(models.RoleOfficer, "o1")

	assert.NoError(t, Authorize(officer, ResourceEvidence, ActionCreate, nil))
	assert.NoError(t, Authorize(officer, ResourceEvidence, ActionRead, &Target{OfficerID: "o2"}))
	assert.NoError(t, Authorize(officer, ResourceEvidence, ActionDelete, &Target{OfficerID: "o1"}))

	err := Authorize(officer, ResourceEvidence, ActionDelete, &Target{OfficerID: "o2"})
	assert.Equal(t, ReasonNotOwner, denyReason(t, err))
}

func TestAuthorizeOfficerProfile(t *testing.T) {
	officer := claimsFor(models.RoleOfficer, "o1")

	assert.NoError(t, Authorize(officer, ResourceUser, ActionRead, &Target{UserID: "o1"}))

	err := Authorize(officer, ResourceUser, ActionRead, &Target{UserID: "c3"})
	assert.Equal(t, ReasonWrongRole, denyReason(t, err))
	err = Authorize(officer, ResourceUser, ActionDelete, &Target{UserID: "o1"})
	assert.Equal(t, ReasonWrongRole, denyReason(t, err))
}

func TestAuthorizeUnknownRole(t *testing.T) {
	err := Authorize(claimsFor("auditor", "x1"), ResourceCase, ActionRead, nil)
	assert.Equal(t, ReasonWrongRole, denyReason(t, err))
}
