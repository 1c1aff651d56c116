package utils

import "crimewatch-be/models"

// Resource kinds covered by the authorization policy.
type Resource string

const (
	ResourceCase     Resource = "case"
	ResourceFIR      Resource = "fir"
	ResourceUser     Resource = "user"
	ResourceEvidence Resource = "evidence"
	ResourceAlert    Resource = "alert"
)

// Actions on a resource.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionList   Action = "list"
)

// Target identifies the owners of the document being acted on. Fields that
// do not apply to the resource kind are left empty. A nil target means the
// action is scoped to the caller's own documents rather than a particular
// one (e.g. an officer listing their assigned cases).
type Target struct {
	// UserID is the subject of a user-resource action.
	UserID string
	// CitizenID is the owning citizen of a case.
	CitizenID string
	// OfficerID is the owning officer of a FIR or the uploader of evidence.
	OfficerID string
	// AssignedOfficer is the officer assigned to a case, empty when the case
	// is unclaimed.
	AssignedOfficer string
}

// Deny reasons. Authentication-class reasons (no token, expired token,
// invalid token) are produced by the middleware before the policy runs and
// map to 401; these map to 403.
const (
	ReasonWrongRole = "wrong-role"
	ReasonNotOwner  = "not-owner"
)

// DenyError is a typed authorization denial.
type DenyError struct {
	Reason string
}

func (e *DenyError) Error() string {
	return "access denied: " + e.Reason
}

var (
	errWrongRole = &DenyError{Reason: ReasonWrongRole}
	errNotOwner  = &DenyError{Reason: ReasonNotOwner}
)

// Authorize maps (role, resource, action, target) to allow or a typed
// denial. All role and ownership rules live here; handlers never re-derive
// them.
func Authorize(claims *Claims, resource Resource, action Action, target *Target) error {
	if claims == nil {
		return errWrongRole
	}
	if claims.Role == models.RoleAdmin {
		return nil
	}

	switch claims.Role {
	case models.RoleOfficer:
		return authorizeOfficer(claims, resource, action, target)
	case models.RoleCitizen:
		return authorizeCitizen(claims, resource, action, target)
	}
	return errWrongRole
}

func authorizeOfficer(claims *Claims, resource Resource, action Action, target *Target) error {
	switch resource {
	case ResourceCase:
		switch action {
		case ActionRead, ActionUpdate:
			if target == nil {
				return nil
			}
			// A case with no assigned officer is visible to every officer.
			if target.AssignedOfficer == "" || target.AssignedOfficer == claims.UserID {
				return nil
			}
			return errNotOwner
		case ActionList:
			// Officers list only their assigned cases; a citizen-scoped
			// listing is an admin concern.
			if target == nil {
				return nil
			}
			return errWrongRole
		}
		return errWrongRole

	case ResourceFIR:
		if action == ActionCreate || action == ActionList {
			return nil
		}
		if target != nil && target.OfficerID == claims.UserID {
			return nil
		}
		return errNotOwner

	case ResourceEvidence:
		switch action {
		case ActionCreate, ActionRead, ActionList:
			return nil
		case ActionDelete:
			if target != nil && target.OfficerID == claims.UserID {
				return nil
			}
			return errNotOwner
		}
		return errWrongRole

	case ResourceAlert:
		if action == ActionCreate || action == ActionRead || action == ActionList {
			return nil
		}
		return errWrongRole

	case ResourceUser:
		if (action == ActionRead || action == ActionUpdate) && target != nil && target.UserID == claims.UserID {
			return nil
		}
		return errWrongRole
	}
	return errWrongRole
}

func authorizeCitizen(claims *Claims, resource Resource, action Action, target *Target) error {
	switch resource {
	case ResourceCase:
		if action == ActionCreate {
			return nil
		}
		if target == nil {
			return errWrongRole
		}
		if target.CitizenID == claims.UserID {
			return nil
		}
		return errNotOwner

	case ResourceAlert:
		if action == ActionRead || action == ActionList {
			return nil
		}
		return errWrongRole

	case ResourceUser:
		if (action == ActionRead || action == ActionUpdate) && target != nil && target.UserID == claims.UserID {
			return nil
		}
		return errWrongRole
	}
	return errWrongRole
}
